package handler

import (
	"testing"

	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

func TestValidSlot(t *testing.T) {
	cases := []struct {
		name      string
		in        repository.SlotInput
		wantMsg   bool
		wantStart string
		wantEnd   string
	}{
		{
			name:      "full timestamps",
			in:        repository.SlotInput{Date: "2026-04-01", StartTime: "09:00:00", EndTime: "10:00:00"},
			wantStart: "09:00:00",
			wantEnd:   "10:00:00",
		},
		{
			name:      "short times get seconds",
			in:        repository.SlotInput{Date: "2026-04-01", StartTime: "09:00", EndTime: "10:30"},
			wantStart: "09:00:00",
			wantEnd:   "10:30:00",
		},
		{
			name:      "surrounding whitespace",
			in:        repository.SlotInput{Date: " 2026-04-01 ", StartTime: " 09:00 ", EndTime: " 10:00 "},
			wantStart: "09:00:00",
			wantEnd:   "10:00:00",
		},
		{
			name:    "bad date format",
			in:      repository.SlotInput{Date: "01/04/2026", StartTime: "09:00", EndTime: "10:00"},
			wantMsg: true,
		},
		{
			name:    "bad start time",
			in:      repository.SlotInput{Date: "2026-04-01", StartTime: "9h", EndTime: "10:00"},
			wantMsg: true,
		},
		{
			name:    "reversed interval",
			in:      repository.SlotInput{Date: "2026-04-01", StartTime: "10:00", EndTime: "09:00"},
			wantMsg: true,
		},
		{
			name:    "empty interval",
			in:      repository.SlotInput{Date: "2026-04-01", StartTime: "10:00", EndTime: "10:00"},
			wantMsg: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, msg := validSlot(tc.in)
			if tc.wantMsg {
				if msg == "" {
					t.Fatal("expected a validation message, got none")
				}
				return
			}
			if msg != "" {
				t.Fatalf("unexpected validation message %q", msg)
			}
			if got.StartTime != tc.wantStart || got.EndTime != tc.wantEnd {
				t.Fatalf("normalized to %s-%s, want %s-%s", got.StartTime, got.EndTime, tc.wantStart, tc.wantEnd)
			}
		})
	}
}
