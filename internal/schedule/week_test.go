package schedule

import (
	"testing"
	"time"
)

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"new year midnight", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"new year noon", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), 1},
		{"exactly one week", time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), 1},
		{"just past one week", time.Date(2026, 1, 8, 0, 1, 0, 0, time.UTC), 2},
		{"mid october", time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekNumber(tt.now); got != tt.want {
				t.Errorf("WeekNumber(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestWeekParity(t *testing.T) {
	if got := WeekParity(1); got != Odd {
		t.Errorf("WeekParity(1) = %q, want odd", got)
	}
	if got := WeekParity(2); got != Even {
		t.Errorf("WeekParity(2) = %q, want even", got)
	}
	if got := WeekParity(0); got != Even {
		t.Errorf("WeekParity(0) = %q, want even", got)
	}
}

func TestWeekType(t *testing.T) {
	first := time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)
	if got := WeekType(first); got != Odd {
		t.Errorf("WeekType(%v) = %q, want odd", first, got)
	}
	second := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	if got := WeekType(second); got != Even {
		t.Errorf("WeekType(%v) = %q, want even", second, got)
	}
}

func TestParseParity(t *testing.T) {
	for in, want := range map[string]Parity{"odd": Odd, " EVEN ": Even, "Odd": Odd} {
		got, err := ParseParity(in)
		if err != nil {
			t.Fatalf("ParseParity(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseParity(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseParity("weekly"); err != ErrUnknownParity {
		t.Errorf("expected ErrUnknownParity, got %v", err)
	}
	if Odd.Other() != Even || Even.Other() != Odd {
		t.Error("Other should flip the parity")
	}
}

func TestCurrentDay(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	if got := CurrentDay(sunday); got != 0 {
		t.Errorf("CurrentDay(sunday) = %d, want 0", got)
	}
	if got := CurrentDay(sunday.AddDate(0, 0, 1)); got != 1 {
		t.Errorf("CurrentDay(monday) = %d, want 1", got)
	}
}
