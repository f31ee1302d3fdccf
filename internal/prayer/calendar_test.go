package prayer

import (
	"testing"
	"time"
)

func TestDayName(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		want  string
	}{
		{2026, time.March, 1, "Minggu"},
		{2026, time.March, 2, "Senin"},
		{2026, time.March, 20, "Jumat"},
		{2026, time.October, 14, "Rabu"},
		{2026, time.February, 30, "-"},
		{2026, time.March, 0, "-"},
	}

	for _, tt := range tests {
		if got := DayName(tt.year, tt.month, tt.day); got != tt.want {
			t.Errorf("DayName(%d, %v, %d) = %q, want %q", tt.year, tt.month, tt.day, got, tt.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(time.March); got != "Maret" {
		t.Errorf("MonthName(March) = %q, want Maret", got)
	}
	if got := MonthName(time.Month(13)); got != "" {
		t.Errorf("MonthName(13) = %q, want empty", got)
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	if want := "Rabu, 14 Oktober 2026"; got != want {
		t.Errorf("FormatDate = %q, want %q", got, want)
	}
}

func TestFormatClock(t *testing.T) {
	got := FormatClock(time.Date(2026, 10, 14, 4, 5, 9, 0, time.UTC))
	if want := "04.05.09"; got != want {
		t.Errorf("FormatClock = %q, want %q", got, want)
	}
}
