package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// SportifRepo persists sportif profiles.
type SportifRepo struct {
	db *sql.DB
}

// NewSportifRepo returns a new SportifRepo bound to the given database.
func NewSportifRepo(db *sql.DB) *SportifRepo { return &SportifRepo{db: db} }

const sportifCols = `id, user_id, first_name, last_name, phone, city, profile_photo, created_at, updated_at`

func scanSportif(row interface{ Scan(...any) error }) (*model.Sportif, error) {
	var s model.Sportif
	var phone, city, photo sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.FirstName, &s.LastName, &phone, &city, &photo,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		v := phone.String
		s.Phone = &v
	}
	if city.Valid {
		v := city.String
		s.City = &v
	}
	if photo.Valid {
		v := photo.String
		s.ProfilePhoto = &v
	}
	return &s, nil
}

// CreateTx inserts a sportif profile for a freshly registered user
// within the registration transaction.
func (r *SportifRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64, firstName, lastName string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sportifs (user_id, first_name, last_name) VALUES (?, ?, ?)`,
		userID, firstName, lastName)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	return uint64(id), nil
}

// GetByID returns a sportif profile or sql.ErrNoRows.
func (r *SportifRepo) GetByID(ctx context.Context, id uint64) (*model.Sportif, error) {
	s, err := scanSportif(r.db.QueryRowContext(ctx,
		`SELECT `+sportifCols+` FROM sportifs WHERE id = ?`, id))
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}

// GetByUserID resolves the sportif profile of a user account.
func (r *SportifRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Sportif, error) {
	s, err := scanSportif(r.db.QueryRowContext(ctx,
		`SELECT `+sportifCols+` FROM sportifs WHERE user_id = ?`, userID))
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}

// UserIDOf returns the user account owning the sportif profile.
func (r *SportifRepo) UserIDOf(ctx context.Context, sportifID uint64) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM sportifs WHERE id = ?`, sportifID).Scan(&userID)
	return userID, classify(err)
}

// SportifProfileUpdate carries the caller-editable profile columns;
// nil fields are left untouched.
type SportifProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
}

func (r *SportifRepo) UpdateProfile(ctx context.Context, id uint64, u SportifProfileUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.FirstName != nil {
		add("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		add("last_name", *u.LastName)
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.City != nil {
		add("city", *u.City)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		`UPDATE sportifs SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return classify(err)
}
