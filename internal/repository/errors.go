// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// each one to a distinct HTTP status. Domain errors are never retried;
// ErrTransient marks persistence-layer failures (lock wait timeout,
// deadlock, lost connection) that the calling layer may retry.
package repository

import (
	"database/sql/driver"
	"errors"
	"io"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrOverlap is returned when creating an availability slot whose
// half-open interval intersects an existing slot for the same coach
// and date. The check runs inside the insert transaction, so the
// error also covers races between check and insert.
var ErrOverlap = errors.New("availability overlaps an existing slot")

// ErrSlotUnavailable is returned when a reservation targets a slot
// that is already booked, including the case where a concurrent
// creation attempt won the race for the same free slot.
var ErrSlotUnavailable = errors.New("availability slot is not free")

// ErrSlotBooked is returned when deleting a slot that is currently
// booked. Booked slots may only be freed through a reservation
// transition, never deleted directly.
var ErrSlotBooked = errors.New("availability slot is booked")

// ErrTransient wraps retryable persistence failures. Callers that
// see it may retry the whole unit of work; all other repository
// errors are final.
var ErrTransient = errors.New("transient database error")

// MySQL server error numbers that indicate a retryable condition.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// classify wraps retryable driver and server errors with ErrTransient
// and passes everything else through unchanged. Repositories call it
// on the way out of every Exec/Query so handlers only need one
// errors.Is check.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlErrLockWaitTimeout || myErr.Number == mysqlErrDeadlock {
			return errors.Join(ErrTransient, err)
		}
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Join(ErrTransient, err)
	}
	return err
}
