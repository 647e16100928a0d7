package availability

import (
	"sort"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// BestFit filters halls to those seating at least required attendees
// and orders them smallest sufficient capacity first, so the top of
// the list is the tightest fit rather than the largest room.  A
// required value of zero disables the capacity filter.  Equal
// capacities are ordered by hall ID for reproducible output.  An empty
// result is a normal outcome meaning no hall fits.
func BestFit(halls []model.Hall, required uint32) []model.Hall {
	fit := make([]model.Hall, 0, len(halls))
	for _, h := range halls {
		if required > 0 && h.Capacity < required {
			continue
		}
		fit = append(fit, h)
	}
	sort.Slice(fit, func(i, j int) bool {
		if fit[i].Capacity != fit[j].Capacity {
			return fit[i].Capacity < fit[j].Capacity
		}
		return fit[i].ID < fit[j].ID
	})
	return fit
}
