package repository

import (
	"context"
	"database/sql"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// AvailabilityRepo owns coach availability slots.  It enforces the
// no-overlap invariant on insert and the booked/free state of each
// slot.  Overlap checks always run inside the same transaction as the
// insert they protect, with the candidate coach/date row set locked,
// so two concurrent inserts cannot both pass the check.  Booking a
// slot is a compare-and-swap on is_booked so that multiple server
// processes can race safely without an in-process mutex.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *AvailabilityRepo) DB() *sql.DB { return r.db }

// SlotInput carries the caller-supplied fields of a new slot.
type SlotInput struct {
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	IsRecurring  bool    `json:"is_recurring"`
	RecurringDay *string `json:"recurring_day"`
}

const availabilityCols = `id, coach_id, available_date, start_time, end_time, is_booked, is_recurring, recurring_day, created_at, updated_at`

func scanAvailability(row interface{ Scan(...any) error }) (*model.Availability, error) {
	var a model.Availability
	var recurringDay sql.NullString
	err := row.Scan(&a.ID, &a.CoachID, &a.Date, &a.StartTime, &a.EndTime,
		&a.IsBooked, &a.IsRecurring, &recurringDay, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if recurringDay.Valid {
		d := recurringDay.String
		a.RecurringDay = &d
	}
	return &a, nil
}

// hasOverlapTx reports whether any slot of the coach on the date
// intersects the half-open [startTime, endTime) interval.  Matching
// rows are locked so a concurrent insert into the same window blocks
// until this transaction finishes.  Booked state is irrelevant to the
// check: a booked slot blocks new slots exactly like a free one.
func (r *AvailabilityRepo) hasOverlapTx(ctx context.Context, tx *sql.Tx, coachID uint64, date, startTime, endTime string) (bool, error) {
	const q = `SELECT COUNT(*) FROM availabilities
               WHERE coach_id = ? AND available_date = ?
                 AND start_time < ? AND end_time > ?
               FOR UPDATE`
	var n int
	if err := tx.QueryRowContext(ctx, q, coachID, date, endTime, startTime).Scan(&n); err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

func (r *AvailabilityRepo) insertTx(ctx context.Context, tx *sql.Tx, coachID uint64, in SlotInput) (uint64, error) {
	const q = `INSERT INTO availabilities (coach_id, available_date, start_time, end_time, is_recurring, recurring_day)
               VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, coachID, in.Date, in.StartTime, in.EndTime, in.IsRecurring, in.RecurringDay)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	return uint64(id), nil
}

// Create inserts one slot for the coach.  It returns ErrOverlap when
// the interval intersects any existing slot for the same coach and
// date; the check and the insert run in one transaction.
func (r *AvailabilityRepo) Create(ctx context.Context, coachID uint64, in SlotInput) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	overlap, err := r.hasOverlapTx(ctx, tx, coachID, in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return 0, err
	}
	if overlap {
		return 0, ErrOverlap
	}
	id, err := r.insertTx(ctx, tx, coachID, in)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, classify(err)
	}
	committed = true
	return id, nil
}

// CreateBulk inserts a batch of slots for the coach inside one
// transaction.  Each candidate is checked against the current state,
// including slots inserted earlier in the same batch; overlapping
// candidates are skipped silently instead of failing the batch.  It
// returns the number of slots actually created.
func (r *AvailabilityRepo) CreateBulk(ctx context.Context, coachID uint64, slots []SlotInput) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	created := 0
	inserted := make(map[string][][2]string, len(slots))
	for _, in := range slots {
		if !booking.ValidInterval(in.StartTime, in.EndTime) {
			continue
		}
		if booking.OverlapsAny(in.StartTime, in.EndTime, inserted[in.Date]) {
			continue
		}
		overlap, err := r.hasOverlapTx(ctx, tx, coachID, in.Date, in.StartTime, in.EndTime)
		if err != nil {
			return 0, err
		}
		if overlap {
			continue
		}
		if _, err := r.insertTx(ctx, tx, coachID, in); err != nil {
			return 0, err
		}
		inserted[in.Date] = append(inserted[in.Date], [2]string{in.StartTime, in.EndTime})
		created++
	}
	if err := tx.Commit(); err != nil {
		return 0, classify(err)
	}
	committed = true
	return created, nil
}

// hasOverlapExcludingTx is hasOverlapTx with one slot exempted from
// the check, so an edited slot never collides with itself.
func (r *AvailabilityRepo) hasOverlapExcludingTx(ctx context.Context, tx *sql.Tx, coachID, excludeID uint64, date, startTime, endTime string) (bool, error) {
	const q = `SELECT COUNT(*) FROM availabilities
               WHERE coach_id = ? AND available_date = ? AND id != ?
                 AND start_time < ? AND end_time > ?
               FOR UPDATE`
	var n int
	if err := tx.QueryRowContext(ctx, q, coachID, date, excludeID, endTime, startTime).Scan(&n); err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// Update rewrites the date and interval of a slot owned by the coach.
// Booked slots cannot be edited; the reservation consuming them fixes
// the session time.  It returns sql.ErrNoRows when the slot does not
// exist, ErrForbidden on foreign slots, ErrSlotBooked on booked ones
// and ErrOverlap when the new interval would collide with another slot
// of the same coach and date.  The row is locked for the whole check
// and write.
func (r *AvailabilityRepo) Update(ctx context.Context, id, coachID uint64, in SlotInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	a, err := r.GetByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if a.CoachID != coachID {
		return ErrForbidden
	}
	if a.IsBooked {
		return ErrSlotBooked
	}
	overlap, err := r.hasOverlapExcludingTx(ctx, tx, coachID, id, in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return err
	}
	if overlap {
		return ErrOverlap
	}
	const q = `UPDATE availabilities
               SET available_date = ?, start_time = ?, end_time = ?, is_recurring = ?, recurring_day = ?
               WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, in.Date, in.StartTime, in.EndTime, in.IsRecurring, in.RecurringDay, id); err != nil {
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	committed = true
	return nil
}

// GetByID returns a single slot or sql.ErrNoRows.
func (r *AvailabilityRepo) GetByID(ctx context.Context, id uint64) (*model.Availability, error) {
	const q = `SELECT ` + availabilityCols + ` FROM availabilities WHERE id = ?`
	a, err := scanAvailability(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, classify(err)
	}
	return a, nil
}

// GetByIDTx loads a slot within a transaction and locks the row.
// Reservation creation uses it so that the free check, the booking
// CAS and the reservation insert see a consistent row.
func (r *AvailabilityRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Availability, error) {
	const q = `SELECT ` + availabilityCols + ` FROM availabilities WHERE id = ? FOR UPDATE`
	a, err := scanAvailability(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, classify(err)
	}
	return a, nil
}

// ListByCoach returns all slots of a coach ordered by date and start
// time, optionally limited to a date range.  Empty bounds are ignored.
func (r *AvailabilityRepo) ListByCoach(ctx context.Context, coachID uint64, fromDate, toDate string) ([]model.Availability, error) {
	q := `SELECT ` + availabilityCols + ` FROM availabilities WHERE coach_id = ?`
	args := []any{coachID}
	if fromDate != "" {
		q += ` AND available_date >= ?`
		args = append(args, fromDate)
	}
	if toDate != "" {
		q += ` AND available_date <= ?`
		args = append(args, toDate)
	}
	q += ` ORDER BY available_date, start_time`
	return r.list(ctx, q, args...)
}

// ListFree returns the free future slots of a coach.  When date is
// non-empty only that day is returned, otherwise everything from
// today onwards.
func (r *AvailabilityRepo) ListFree(ctx context.Context, coachID uint64, date string) ([]model.Availability, error) {
	q := `SELECT ` + availabilityCols + ` FROM availabilities WHERE coach_id = ? AND is_booked = 0`
	args := []any{coachID}
	if date != "" {
		q += ` AND available_date = ?`
		args = append(args, date)
	} else {
		q += ` AND available_date >= CURDATE()`
	}
	q += ` ORDER BY available_date, start_time`
	return r.list(ctx, q, args...)
}

func (r *AvailabilityRepo) list(ctx context.Context, q string, args ...any) ([]model.Availability, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Availability, 0)
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// AvailableDates returns the distinct future dates on which the coach
// still has at least one free slot, ascending, capped at 30 results.
func (r *AvailabilityRepo) AvailableDates(ctx context.Context, coachID uint64) ([]string, error) {
	const q = `SELECT DISTINCT available_date FROM availabilities
               WHERE coach_id = ? AND is_booked = 0 AND available_date >= CURDATE()
               ORDER BY available_date
               LIMIT 30`
	rows, err := r.db.QueryContext(ctx, q, coachID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, classify(err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return dates, nil
}

// BookTx atomically flips a free slot to booked.  It returns false
// when the slot is deleted or already booked, which is how a
// concurrent booking race is lost: exactly one of two competing
// transactions sees an affected row.
func (r *AvailabilityRepo) BookTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE availabilities SET is_booked = 1 WHERE id = ? AND is_booked = 0`, id)
	if err != nil {
		return false, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classify(err)
	}
	return n == 1, nil
}

// FreeTx releases a slot within an existing transaction.  Refuse and
// cancel transitions call it so the status write and the slot release
// commit together.
func (r *AvailabilityRepo) FreeTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `UPDATE availabilities SET is_booked = 0 WHERE id = ?`, id)
	return classify(err)
}

// Delete removes a slot owned by the coach.  It returns sql.ErrNoRows
// when the slot does not exist, ErrForbidden when it belongs to
// another coach and ErrSlotBooked when it is currently consumed by a
// reservation.  The row is locked before the checks so a concurrent
// booking cannot slip between check and delete.
func (r *AvailabilityRepo) Delete(ctx context.Context, id, coachID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	a, err := r.GetByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if a.CoachID != coachID {
		return ErrForbidden
	}
	if a.IsBooked {
		return ErrSlotBooked
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM availabilities WHERE id = ? AND is_booked = 0`, id); err != nil {
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	committed = true
	return nil
}

// DeleteByCoachAndDate removes all free slots of the coach on the
// given date and returns how many were deleted.  Booked slots on the
// date are left untouched.
func (r *AvailabilityRepo) DeleteByCoachAndDate(ctx context.Context, coachID uint64, date string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM availabilities WHERE coach_id = ? AND available_date = ? AND is_booked = 0`,
		coachID, date)
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}
