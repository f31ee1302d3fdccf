package notify

import (
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/api"
	"github.com/smokyabdulrahman/imsakiyah/internal/prayer"
)

// Alert is one (date, prayer, time) triple of a schedule.
type Alert struct {
	Day    int
	Prayer string
	At     time.Time
}

// BuildAlerts expands every row of s into alerts for year/month in loc.
// Slots with no time, unparseable times and impossible dates are left out.
func BuildAlerts(s *api.Schedule, year int, month time.Month, loc *time.Location) []Alert {
	if s == nil {
		return nil
	}

	var alerts []Alert
	for _, d := range s.Days {
		raw := prayer.Raw(d)
		for _, name := range prayer.Names {
			if !prayer.HasTime(raw[name]) {
				continue
			}
			at, err := prayer.At(year, month, int(d.Tanggal), raw[name], loc)
			if err != nil {
				continue
			}
			alerts = append(alerts, Alert{Day: int(d.Tanggal), Prayer: name, At: at})
		}
	}
	return alerts
}
