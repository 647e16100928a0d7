package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

func hall(id uint64, name string, capacity uint32) model.Hall {
	return model.Hall{ID: id, Name: name, Capacity: capacity, IsActive: true}
}

func TestBestFit(t *testing.T) {
	halls := []model.Hall{
		hall(1, "Krishna Hall", 500),
		hall(2, "Radha Hall", 250),
		hall(3, "Gopal Hall", 100),
	}

	names := func(hs []model.Hall) []string {
		out := make([]string, 0, len(hs))
		for _, h := range hs {
			out = append(out, h.Name)
		}
		return out
	}

	// Smallest sufficient hall first, not the largest.
	assert.Equal(t, []string{"Radha Hall", "Krishna Hall"}, names(BestFit(halls, 150)))

	// Exact capacity qualifies.
	assert.Equal(t, []string{"Gopal Hall", "Radha Hall", "Krishna Hall"}, names(BestFit(halls, 100)))

	// Nothing big enough.
	assert.Empty(t, BestFit(halls, 600))

	// Zero disables the filter but still sorts by capacity.
	assert.Equal(t, []string{"Gopal Hall", "Radha Hall", "Krishna Hall"}, names(BestFit(halls, 0)))

	// Equal capacities break ties by ID.
	twins := []model.Hall{hall(9, "B", 200), hall(4, "A", 200)}
	assert.Equal(t, []string{"A", "B"}, names(BestFit(twins, 50)))

	// The input slice is not reordered.
	assert.Equal(t, uint64(1), halls[0].ID)
}
