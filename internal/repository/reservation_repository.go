package repository

import (
	"context"
	"database/sql"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// ReservationRepo provides persistence for reservations.  Status
// transitions are guarded: every update names the expected prior
// status in its WHERE clause, so a row changed by a concurrent
// transaction affects zero rows and surfaces as ErrConflict instead
// of silently overwriting.  The state machine itself lives in the
// booking package; this layer only executes decisions already made.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = `id, sportif_id, coach_id, availability_id, sport_id, session_date, start_time, end_time,
       price, status, notes_sportif, notes_coach, cancelled_by, cancellation_reason, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var notesSportif, notesCoach, cancelledBy, cancelReason sql.NullString
	err := row.Scan(&res.ID, &res.SportifID, &res.CoachID, &res.AvailabilityID, &res.SportID,
		&res.SessionDate, &res.StartTime, &res.EndTime, &res.Price, &res.Status,
		&notesSportif, &notesCoach, &cancelledBy, &cancelReason, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if notesSportif.Valid {
		v := notesSportif.String
		res.NotesSportif = &v
	}
	if notesCoach.Valid {
		v := notesCoach.String
		res.NotesCoach = &v
	}
	if cancelledBy.Valid {
		v := cancelledBy.String
		res.CancelledBy = &v
	}
	if cancelReason.Valid {
		v := cancelReason.String
		res.CancellationReason = &v
	}
	return &res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller must commit or rollback the transaction.  Session date
// and times must already be copied from the consumed slot; the status
// column defaults to en_attente in the schema.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
               (sportif_id, coach_id, availability_id, sport_id, session_date, start_time, end_time, price, notes_sportif)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.SportifID, res.CoachID, res.AvailabilityID, res.SportID,
		res.SessionDate, res.StartTime, res.EndTime, res.Price, res.NotesSportif)
	if err != nil {
		return classify(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return classify(err)
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	full, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return classify(err)
	}
	*res = *full
	return nil
}

// GetByID returns a reservation or sql.ErrNoRows.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// GetByIDTx loads a reservation within a transaction and locks the
// row.  Transition handlers use it so the status they validate cannot
// change before their guarded update runs.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// updateStatusTx performs a guarded status write.  extraSet may add
// more assignments (with matching args placed before id/fromStatus).
func (r *ReservationRepo) updateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, fromStatus, toStatus, extraSet string, extraArgs ...any) error {
	q := `UPDATE reservations SET status = ?` + extraSet + ` WHERE id = ? AND status = ?`
	args := append([]any{toStatus}, extraArgs...)
	args = append(args, id, fromStatus)
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// AcceptTx moves a pending reservation to acceptee.
func (r *ReservationRepo) AcceptTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	return r.updateStatusTx(ctx, tx, id, "en_attente", "acceptee", "")
}

// RefuseTx moves a pending reservation to refusee, recording the
// optional reason in notes_coach.
func (r *ReservationRepo) RefuseTx(ctx context.Context, tx *sql.Tx, id uint64, reason *string) error {
	if reason == nil {
		return r.updateStatusTx(ctx, tx, id, "en_attente", "refusee", "")
	}
	return r.updateStatusTx(ctx, tx, id, "en_attente", "refusee", ", notes_coach = ?", *reason)
}

// CancelTx moves a reservation from the given prior status to annulee,
// recording who cancelled and the optional reason.
func (r *ReservationRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64, fromStatus, cancelledBy string, reason *string) error {
	return r.updateStatusTx(ctx, tx, id, fromStatus, "annulee",
		", cancelled_by = ?, cancellation_reason = ?", cancelledBy, reason)
}

// CompleteTx moves an accepted reservation to terminee.
func (r *ReservationRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	return r.updateStatusTx(ctx, tx, id, "acceptee", "terminee", "")
}

// SetNotes updates the note column owned by the calling role.  The
// status and session fields are immutable here; only the free-form
// notes may change after creation.
func (r *ReservationRepo) SetNotes(ctx context.Context, id uint64, coachNote bool, note string) error {
	col := "notes_sportif"
	if coachNote {
		col = "notes_coach"
	}
	_, err := r.db.ExecContext(ctx, `UPDATE reservations SET `+col+` = ? WHERE id = ?`, note, id)
	return classify(err)
}

// ReservationFilters narrows reservation listings.  Zero values mean
// "no constraint".
type ReservationFilters struct {
	Status   string
	Date     string
	FromDate string
	ToDate   string
}

// ReservationDetail is a reservation joined with the names the client
// renders next to it.  It is returned by the listing queries for both
// roles; fields irrelevant to the caller are simply ignored by the
// handler's response shaping.
type ReservationDetail struct {
	model.Reservation
	SportName        string  `json:"sport_name"`
	CoachFirstName   string  `json:"coach_first_name"`
	CoachLastName    string  `json:"coach_last_name"`
	CoachPhone       *string `json:"coach_phone,omitempty"`
	SportifFirstName string  `json:"sportif_first_name"`
	SportifLastName  string  `json:"sportif_last_name"`
	SportifPhone     *string `json:"sportif_phone,omitempty"`
}

const detailCols = `res.id, res.sportif_id, res.coach_id, res.availability_id, res.sport_id,
       res.session_date, res.start_time, res.end_time, res.price, res.status,
       res.notes_sportif, res.notes_coach, res.cancelled_by, res.cancellation_reason,
       res.created_at, res.updated_at,
       s.name, c.first_name, c.last_name, c.phone, sp.first_name, sp.last_name, sp.phone`

const detailJoins = ` FROM reservations res
       JOIN sports s ON res.sport_id = s.id
       JOIN coaches c ON res.coach_id = c.id
       JOIN sportifs sp ON res.sportif_id = sp.id`

func (r *ReservationRepo) listDetails(ctx context.Context, q string, args ...any) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var notesSportif, notesCoach, cancelledBy, cancelReason sql.NullString
		var coachPhone, sportifPhone sql.NullString
		if err := rows.Scan(&d.ID, &d.SportifID, &d.CoachID, &d.AvailabilityID, &d.SportID,
			&d.SessionDate, &d.StartTime, &d.EndTime, &d.Price, &d.Status,
			&notesSportif, &notesCoach, &cancelledBy, &cancelReason,
			&d.CreatedAt, &d.UpdatedAt,
			&d.SportName, &d.CoachFirstName, &d.CoachLastName, &coachPhone,
			&d.SportifFirstName, &d.SportifLastName, &sportifPhone); err != nil {
			return nil, classify(err)
		}
		if notesSportif.Valid {
			v := notesSportif.String
			d.NotesSportif = &v
		}
		if notesCoach.Valid {
			v := notesCoach.String
			d.NotesCoach = &v
		}
		if cancelledBy.Valid {
			v := cancelledBy.String
			d.CancelledBy = &v
		}
		if cancelReason.Valid {
			v := cancelReason.String
			d.CancellationReason = &v
		}
		if coachPhone.Valid {
			v := coachPhone.String
			d.CoachPhone = &v
		}
		if sportifPhone.Valid {
			v := sportifPhone.String
			d.SportifPhone = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListByCoach returns the coach's reservations, newest session first,
// optionally filtered by status and date bounds.
func (r *ReservationRepo) ListByCoach(ctx context.Context, coachID uint64, f ReservationFilters) ([]ReservationDetail, error) {
	q := `SELECT ` + detailCols + detailJoins + ` WHERE res.coach_id = ?`
	args := []any{coachID}
	if f.Status != "" {
		q += ` AND res.status = ?`
		args = append(args, f.Status)
	}
	if f.Date != "" {
		q += ` AND res.session_date = ?`
		args = append(args, f.Date)
	}
	if f.FromDate != "" {
		q += ` AND res.session_date >= ?`
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		q += ` AND res.session_date <= ?`
		args = append(args, f.ToDate)
	}
	q += ` ORDER BY res.session_date DESC, res.start_time DESC`
	return r.listDetails(ctx, q, args...)
}

// ListBySportif returns the sportif's reservations, newest session
// first, optionally filtered by status.
func (r *ReservationRepo) ListBySportif(ctx context.Context, sportifID uint64, status string) ([]ReservationDetail, error) {
	q := `SELECT ` + detailCols + detailJoins + ` WHERE res.sportif_id = ?`
	args := []any{sportifID}
	if status != "" {
		q += ` AND res.status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY res.session_date DESC, res.start_time DESC`
	return r.listDetails(ctx, q, args...)
}

// TodaySessions returns the coach's accepted sessions for today,
// ordered by start time.  It backs the coach dashboard.
func (r *ReservationRepo) TodaySessions(ctx context.Context, coachID uint64) ([]ReservationDetail, error) {
	q := `SELECT ` + detailCols + detailJoins +
		` WHERE res.coach_id = ? AND res.session_date = CURDATE() AND res.status = 'acceptee'
          ORDER BY res.start_time`
	return r.listDetails(ctx, q, coachID)
}
