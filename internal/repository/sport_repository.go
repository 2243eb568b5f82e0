package repository

import (
	"context"
	"database/sql"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// SportRepo reads the sports catalog.  The catalog is seeded by
// migration and treated as read-only by the API.
type SportRepo struct {
	db *sql.DB
}

// NewSportRepo returns a new SportRepo bound to the given database.
func NewSportRepo(db *sql.DB) *SportRepo { return &SportRepo{db: db} }

const sportCols = `id, name, category, icon, created_at`

func scanSport(row interface{ Scan(...any) error }) (*model.Sport, error) {
	var s model.Sport
	var icon sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &icon, &s.CreatedAt); err != nil {
		return nil, err
	}
	if icon.Valid {
		v := icon.String
		s.Icon = &v
	}
	return &s, nil
}

// List returns the whole catalog, optionally restricted to one
// category, ordered by name.
func (r *SportRepo) List(ctx context.Context, category string) ([]model.Sport, error) {
	q := `SELECT ` + sportCols + ` FROM sports`
	args := []any{}
	if category != "" {
		q += ` WHERE category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Sport, 0)
	for rows.Next() {
		s, err := scanSport(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Categories returns the distinct category labels in the catalog.
func (r *SportRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM sports ORDER BY category`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, classify(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// GetByID returns one sport or sql.ErrNoRows.
func (r *SportRepo) GetByID(ctx context.Context, id uint64) (*model.Sport, error) {
	s, err := scanSport(r.db.QueryRowContext(ctx,
		`SELECT `+sportCols+` FROM sports WHERE id = ?`, id))
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}
