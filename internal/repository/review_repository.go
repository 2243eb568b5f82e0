package repository

import (
	"context"
	"database/sql"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// ReviewRepo persists reviews.  A review may only be created from a
// completed reservation and at most one review exists per
// reservation; the handler checks completion via the booking package
// and this repository guards against duplicates.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `id, reservation_id, sportif_id, coach_id, rating, comment, coach_response, is_visible, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	var comment, response sql.NullString
	err := row.Scan(&rv.ID, &rv.ReservationID, &rv.SportifID, &rv.CoachID, &rv.Rating,
		&comment, &response, &rv.IsVisible, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		v := comment.String
		rv.Comment = &v
	}
	if response.Valid {
		v := response.String
		rv.CoachResponse = &v
	}
	return &rv, nil
}

// Create inserts a review and returns its ID.  ErrConflict is
// returned when the reservation already has a review (unique key on
// reservation_id).
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (reservation_id, sportif_id, coach_id, rating, comment) VALUES (?, ?, ?, ?, ?)`,
		rv.ReservationID, rv.SportifID, rv.CoachID, rv.Rating, rv.Comment)
	if err != nil {
		var n int
		dupErr := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM reviews WHERE reservation_id = ?`, rv.ReservationID).Scan(&n)
		if dupErr == nil && n > 0 {
			return 0, ErrConflict
		}
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	return uint64(id), nil
}

// GetByID returns one review or sql.ErrNoRows.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewCols+` FROM reviews WHERE id = ?`, id))
	if err != nil {
		return nil, classify(err)
	}
	return rv, nil
}

// ExistsForReservation reports whether the reservation already has a
// review, regardless of visibility.
func (r *ReviewRepo) ExistsForReservation(ctx context.Context, reservationID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE reservation_id = ?`, reservationID).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// ReviewDetail is a review joined with the author's public name.
type ReviewDetail struct {
	model.Review
	SportifFirstName string `json:"sportif_first_name"`
	SportifLastName  string `json:"sportif_last_name"`
}

// ListByCoach returns the visible reviews of a coach, newest first.
func (r *ReviewRepo) ListByCoach(ctx context.Context, coachID uint64) ([]ReviewDetail, error) {
	const q = `SELECT rv.id, rv.reservation_id, rv.sportif_id, rv.coach_id, rv.rating,
                      rv.comment, rv.coach_response, rv.is_visible, rv.created_at, rv.updated_at,
                      sp.first_name, sp.last_name
               FROM reviews rv
               JOIN sportifs sp ON rv.sportif_id = sp.id
               WHERE rv.coach_id = ? AND rv.is_visible = 1
               ORDER BY rv.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, coachID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]ReviewDetail, 0)
	for rows.Next() {
		var d ReviewDetail
		var comment, response sql.NullString
		if err := rows.Scan(&d.ID, &d.ReservationID, &d.SportifID, &d.CoachID, &d.Rating,
			&comment, &response, &d.IsVisible, &d.CreatedAt, &d.UpdatedAt,
			&d.SportifFirstName, &d.SportifLastName); err != nil {
			return nil, classify(err)
		}
		if comment.Valid {
			v := comment.String
			d.Comment = &v
		}
		if response.Valid {
			v := response.String
			d.CoachResponse = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListBySportif returns all reviews written by the sportif, newest first.
func (r *ReviewRepo) ListBySportif(ctx context.Context, sportifID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewCols+` FROM reviews WHERE sportif_id = ? ORDER BY created_at DESC`, sportifID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Update rewrites the rating and comment of a review owned by the
// sportif.  Zero rows affected means the review does not exist or is
// not theirs; callers disambiguate with a prior GetByID.
func (r *ReviewRepo) Update(ctx context.Context, id, sportifID uint64, rating uint8, comment *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ? WHERE id = ? AND sportif_id = ?`,
		rating, comment, id, sportifID)
	return classify(err)
}

// SetResponse records the coach's public reply.
func (r *ReviewRepo) SetResponse(ctx context.Context, id, coachID uint64, response string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET coach_response = ? WHERE id = ? AND coach_id = ?`,
		response, id, coachID)
	return classify(err)
}

// Delete removes a review owned by the sportif.
func (r *ReviewRepo) Delete(ctx context.Context, id, sportifID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ? AND sportif_id = ?`, id, sportifID)
	return classify(err)
}
