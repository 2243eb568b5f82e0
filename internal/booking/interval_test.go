package booking

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{
			name: "partial overlap at the end",
			s1:   "10:00:00", e1: "11:00:00",
			s2: "10:30:00", e2: "11:30:00",
			want: true,
		},
		{
			name: "identical windows",
			s1:   "10:00:00", e1: "11:00:00",
			s2: "10:00:00", e2: "11:00:00",
			want: true,
		},
		{
			name: "contained window",
			s1:   "09:00:00", e1: "12:00:00",
			s2: "10:00:00", e2: "11:00:00",
			want: true,
		},
		{
			name: "back to back, second starts at first end",
			s1:   "10:00:00", e1: "11:00:00",
			s2: "11:00:00", e2: "12:00:00",
			want: false,
		},
		{
			name: "back to back, second ends at first start",
			s1:   "10:00:00", e1: "11:00:00",
			s2: "09:00:00", e2: "10:00:00",
			want: false,
		},
		{
			name: "fully disjoint",
			s1:   "08:00:00", e1: "09:00:00",
			s2: "14:00:00", e2: "15:00:00",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
			// The relation is symmetric.
			if got := Overlaps(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v", tt.s2, tt.e2, tt.s1, tt.e1, got, tt.want)
			}
		})
	}
}

func TestValidInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{name: "normal window", start: "10:00:00", end: "11:00:00", want: true},
		{name: "zero length", start: "10:00:00", end: "10:00:00", want: false},
		{name: "inverted", start: "11:00:00", end: "10:00:00", want: false},
		{name: "one second", start: "10:00:00", end: "10:00:01", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidInterval(tt.start, tt.end); got != tt.want {
				t.Errorf("ValidInterval(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestOverlapsAny(t *testing.T) {
	existing := [][2]string{
		{"09:00:00", "10:00:00"},
		{"10:00:00", "11:00:00"},
		{"14:00:00", "15:30:00"},
	}
	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{name: "fits in the noon gap", start: "11:00:00", end: "12:00:00", want: false},
		{name: "collides with morning slot", start: "10:30:00", end: "11:30:00", want: true},
		{name: "duplicate of existing slot", start: "09:00:00", end: "10:00:00", want: true},
		{name: "spans the afternoon slot", start: "13:00:00", end: "16:00:00", want: true},
		{name: "after everything", start: "16:00:00", end: "17:00:00", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapsAny(tt.start, tt.end, existing); got != tt.want {
				t.Errorf("OverlapsAny(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}

	if OverlapsAny("10:00:00", "11:00:00", nil) {
		t.Errorf("OverlapsAny with no existing slots = true, want false")
	}
}
