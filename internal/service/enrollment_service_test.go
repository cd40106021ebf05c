package service

import (
	"testing"
	"time"
)

func TestCurrentSchoolYear(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), "2026-2027"},
	}
	for _, tt := range tests {
		if got := CurrentSchoolYear(tt.now); got != tt.want {
			t.Errorf("CurrentSchoolYear(%s) = %q, want %q", tt.now.Format("2006-01-02"), got, tt.want)
		}
	}
}
