package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// HallRepo reads hall records. Halls are owned by an external
// administrative process, so this repository exposes no writes; the
// service only lists halls and resolves them for booking checks.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

const hallColumns = `id, name, description, capacity, is_active, created_at, updated_at`

// scanHall reads one hall row from either *sql.Row or *sql.Rows.
func scanHall(scan func(dest ...any) error) (*model.Hall, error) {
	var h model.Hall
	var desc sql.NullString
	if err := scan(&h.ID, &h.Name, &desc, &h.Capacity, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		h.Description = &d
	}
	return &h, nil
}

// GetByID retrieves a hall by its ID. It returns
// availability.ErrHallNotFound when no row is found, so the validator
// and handlers can treat a missing hall uniformly.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE id = ?`
	h, err := scanHall(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, availability.ErrHallNotFound
		}
		return nil, err
	}
	return h, nil
}

// GetActiveByName resolves a hall by name, case-insensitively, among
// active halls. The assistant path uses it to match the hall name
// extracted from a user's message.
func (r *HallRepo) GetActiveByName(ctx context.Context, name string) (*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE LOWER(name) = ? AND is_active = 1`
	h, err := scanHall(r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(name))).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, availability.ErrHallNotFound
		}
		return nil, err
	}
	return h, nil
}

// ListActive returns all active halls ordered by id.
func (r *HallRepo) ListActive(ctx context.Context) ([]model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE is_active = 1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]model.Hall, 0)
	for rows.Next() {
		h, err := scanHall(rows.Scan)
		if err != nil {
			return nil, err
		}
		halls = append(halls, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return halls, nil
}
