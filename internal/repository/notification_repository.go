package repository

import (
	"context"
	"database/sql"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// NotificationRepo persists in-app notifications.  Writes are invoked
// through the notify dispatcher, which treats failures as best-effort;
// reads back the notification endpoints.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

const notificationCols = `id, user_id, title, message, type, reference_id, reference_type, is_read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	var refID sql.NullInt64
	var refType sql.NullString
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &refID, &refType, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if refID.Valid {
		v := uint64(refID.Int64)
		n.ReferenceID = &v
	}
	if refType.Valid {
		v := refType.String
		n.ReferenceType = &v
	}
	return &n, nil
}

// Create inserts a notification row.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, title, message, type, reference_id, reference_type) VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.Title, n.Message, n.Type, n.ReferenceID, n.ReferenceType)
	return classify(err)
}

// ListByUser returns the newest notifications of a user, capped by limit.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.list(ctx,
		`SELECT `+notificationCols+` FROM notifications WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
}

// ListUnread returns the unread notifications of a user, newest first.
func (r *NotificationRepo) ListUnread(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return r.list(ctx,
		`SELECT `+notificationCols+` FROM notifications WHERE user_id = ? AND is_read = 0 ORDER BY created_at DESC`,
		userID)
}

func (r *NotificationRepo) list(ctx context.Context, q string, args ...any) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&n)
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// MarkRead flags one notification as read.  It returns sql.ErrNoRows
// when the notification does not exist and ErrForbidden when it
// belongs to another user.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM notifications WHERE id = ?`, id).Scan(&ownerID)
	if err != nil {
		return classify(err)
	}
	if ownerID != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	return classify(err)
}

// MarkAllRead flags every unread notification of the user as read and
// returns how many were updated.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// Delete removes one notification owned by the user.  Ownership
// violations surface as ErrForbidden, missing rows as sql.ErrNoRows.
func (r *NotificationRepo) Delete(ctx context.Context, id, userID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM notifications WHERE id = ?`, id).Scan(&ownerID)
	if err != nil {
		return classify(err)
	}
	if ownerID != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	return classify(err)
}
