package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// envelope is the top-level shape of every equran.id response.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Schedule is one month of imsakiyah times for a single province and city.
type Schedule struct {
	Provinsi string `json:"provinsi" yaml:"provinsi"`
	Kabkota  string `json:"kabkota" yaml:"kabkota"`
	Days     []Day  `json:"imsakiyah" yaml:"imsakiyah"`
}

// Day holds the times of a single schedule row as HH:MM strings.
// An empty string or "-" means the API gave no time for that slot.
type Day struct {
	Tanggal DayNumber `json:"tanggal" yaml:"tanggal"`
	Imsak   string    `json:"imsak" yaml:"imsak"`
	Subuh   string    `json:"subuh" yaml:"subuh"`
	Terbit  string    `json:"terbit,omitempty" yaml:"terbit,omitempty"`
	Dhuha   string    `json:"dhuha,omitempty" yaml:"dhuha,omitempty"`
	Dzuhur  string    `json:"dzuhur" yaml:"dzuhur"`
	Ashar   string    `json:"ashar" yaml:"ashar"`
	Maghrib string    `json:"maghrib" yaml:"maghrib"`
	Isya    string    `json:"isya" yaml:"isya"`
}

// DayNumber is the day of month. The API has sent it both as a number and
// as a quoted string, so both are accepted.
type DayNumber int

// UnmarshalJSON accepts 5, "5" and "05".
func (d *DayNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid tanggal %s: %w", b, err)
	}
	*d = DayNumber(n)
	return nil
}

// scheduleItem is the nested shape: data[0] = {provinsi, kabkota, imsakiyah}.
type scheduleItem struct {
	Provinsi  string `json:"provinsi"`
	Kabkota   string `json:"kabkota"`
	Imsakiyah []Day  `json:"imsakiyah"`
}

// decodeSchedule accepts the three payload shapes seen across API versions:
// a flat list of days, data[0].imsakiyah, and data.imsakiyah.
func decodeSchedule(raw json.RawMessage) (*Schedule, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrInvalidResponse
	}

	switch raw[0] {
	case '{':
		var item scheduleItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode schedule: %w", err)
		}
		if item.Imsakiyah == nil {
			return nil, ErrInvalidResponse
		}
		return &Schedule{Provinsi: item.Provinsi, Kabkota: item.Kabkota, Days: item.Imsakiyah}, nil

	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("failed to decode schedule: %w", err)
		}
		if len(elems) == 0 {
			return &Schedule{Days: []Day{}}, nil
		}

		var first scheduleItem
		if err := json.Unmarshal(elems[0], &first); err == nil && first.Imsakiyah != nil {
			return &Schedule{Provinsi: first.Provinsi, Kabkota: first.Kabkota, Days: first.Imsakiyah}, nil
		}

		var days []Day
		if err := json.Unmarshal(raw, &days); err != nil {
			return nil, fmt.Errorf("failed to decode schedule: %w", err)
		}
		return &Schedule{Days: days}, nil
	}

	return nil, ErrInvalidResponse
}
