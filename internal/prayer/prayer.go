package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// Names lists the six imsakiyah slots in chronological order.
var Names = []string{"imsak", "subuh", "dzuhur", "ashar", "maghrib", "isya"}

// ShortNames maps prayer names to compact abbreviations for status lines.
var ShortNames = map[string]string{
	"imsak":   "Im",
	"subuh":   "S",
	"dzuhur":  "D",
	"ashar":   "A",
	"maghrib": "M",
	"isya":    "I",
}

// DisplayName returns the title-cased name shown to users, e.g. "Subuh".
func DisplayName(name string) string {
	return cases.Title(language.Indonesian).String(name)
}

// Raw returns the API time string for each slot of d, keyed by name.
func Raw(d api.Day) map[string]string {
	return map[string]string{
		"imsak":   d.Imsak,
		"subuh":   d.Subuh,
		"dzuhur":  d.Dzuhur,
		"ashar":   d.Ashar,
		"maghrib": d.Maghrib,
		"isya":    d.Isya,
	}
}

// HasTime reports whether raw carries a time rather than a placeholder.
func HasTime(raw string) bool {
	s := strings.TrimSpace(raw)
	return s != "" && s != "-"
}

// ParseDay converts a schedule row into prayers for year/month/d.Tanggal.
// Slots without a time are skipped; malformed times are an error.
func ParseDay(d api.Day, year int, month time.Month, loc *time.Location) ([]Prayer, error) {
	raw := Raw(d)
	date, err := dayStart(year, month, int(d.Tanggal), loc)
	if err != nil {
		return nil, err
	}

	var prayers []Prayer
	for _, name := range Names {
		s := raw[name]
		if !HasTime(s) {
			continue
		}

		t, err := parseTimeStr(s, date, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time for %s on day %d (%q): %w", name, d.Tanggal, s, err)
		}
		prayers = append(prayers, Prayer{Name: name, Time: t})
	}

	return prayers, nil
}

// At returns the timestamp of the time string raw on year/month/day in loc.
// Dates that do not exist, such as 30 February, are an error.
func At(year int, month time.Month, day int, raw string, loc *time.Location) (time.Time, error) {
	date, err := dayStart(year, month, day, loc)
	if err != nil {
		return time.Time{}, err
	}
	return parseTimeStr(raw, date, loc)
}

func dayStart(year int, month time.Month, day int, loc *time.Location) (time.Time, error) {
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Month() != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %d-%02d-%02d", year, month, day)
	}
	return date, nil
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers have passed, it returns nil.
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer whose time has passed, or nil
// before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		cur = &prayers[i]
	}
	return cur
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xj Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dj %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// parseTimeStr parses "04:31", "04.31" or "04:31 (WIB)" into a time.Time
// on the given date in the given location.
func parseTimeStr(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}
	s = strings.Replace(s, ".", ":", 1)

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %q", raw)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}
