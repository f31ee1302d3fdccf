package prayer

import (
	"fmt"
	"time"
)

var weekdays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Weekday returns the Indonesian name of a weekday.
func Weekday(d time.Weekday) string {
	return weekdays[d]
}

// MonthName returns the Indonesian name of a month.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}

// DayName returns the Indonesian weekday of year/month/day, or "-" when the
// day does not exist in that month.
func DayName(year int, month time.Month, day int) string {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return "-"
	}
	return Weekday(t.Weekday())
}

// FormatDate renders t as a long Indonesian date, e.g. "Rabu, 14 Oktober 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", Weekday(t.Weekday()), t.Day(), MonthName(t.Month()), t.Year())
}

// FormatClock renders t the way id-ID locales show time: "14.05.09".
func FormatClock(t time.Time) string {
	return t.Format("15.04.05")
}
