package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/model"
	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

func testContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteErrStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no rows", sql.ErrNoRows, http.StatusNotFound},
		{"forbidden", repository.ErrForbidden, http.StatusForbidden},
		{"overlap", repository.ErrOverlap, http.StatusConflict},
		{"slot unavailable", repository.ErrSlotUnavailable, http.StatusConflict},
		{"slot booked", repository.ErrSlotBooked, http.StatusConflict},
		{"invalid transition", booking.ErrInvalidTransition, http.StatusConflict},
		{"lost update", repository.ErrConflict, http.StatusConflict},
		{"transient db failure", repository.ErrTransient, http.StatusServiceUnavailable},
		{"wrapped sentinel", fmt.Errorf("accept: %w", booking.ErrInvalidTransition), http.StatusConflict},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := testContext(t)
			if err := writeErr(c, tc.err); err != nil {
				t.Fatalf("writeErr returned error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Fatal("error body missing")
			}
		})
	}
}

func TestGetUserIDClaimTypes(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  uint64
		ok    bool
	}{
		{"float64 from json claims", float64(42), 42, true},
		{"uint64", uint64(7), 7, true},
		{"int64", int64(9), 9, true},
		{"numeric string", "15", 15, true},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testContext(t)
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error, got none")
			}
			if got != tc.want {
				t.Fatalf("id = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestViewOfAffordances(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	cases := []struct {
		name          string
		status        string
		date, start   string
		cancellable   bool
		completable   bool
	}{
		{"pending future session", "en_attente", "2026-03-10", "15:00:00", true, false},
		{"accepted future session", "acceptee", "2026-03-11", "09:00:00", true, false},
		{"accepted session in the past", "acceptee", "2026-03-10", "11:00:00", false, false},
		{"completed", "terminee", "2026-03-01", "10:00:00", false, true},
		{"cancelled", "annulee", "2026-03-20", "10:00:00", false, false},
		{"corrupt status", "whatever", "2026-03-20", "10:00:00", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := &model.Reservation{
				Status:      tc.status,
				SessionDate: tc.date,
				StartTime:   tc.start,
			}
			v := viewOf(res, now)
			if v.CanBeCancelled != tc.cancellable {
				t.Fatalf("CanBeCancelled = %v, want %v", v.CanBeCancelled, tc.cancellable)
			}
			if v.IsCompletable != tc.completable {
				t.Fatalf("IsCompletable = %v, want %v", v.IsCompletable, tc.completable)
			}
		})
	}
}
