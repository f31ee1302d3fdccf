// Package notify turns a prayer schedule into one-shot reminders and delivers
// them through desktop, console or MQTT notifiers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/imsakiyah/internal/prayer"
)

// Permission is the user's answer to "may we show notifications?".
type Permission string

const (
	PermissionDefault Permission = ""
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ParsePermission normalizes a stored permission value. Anything it does not
// recognize is treated as not yet asked.
func ParsePermission(s string) Permission {
	switch Permission(strings.ToLower(strings.TrimSpace(s))) {
	case PermissionGranted:
		return PermissionGranted
	case PermissionDenied:
		return PermissionDenied
	default:
		return PermissionDefault
	}
}

// Notification is a single reminder as shown to the user.
type Notification struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Prayer string    `json:"prayer"`
	At     time.Time `json:"at"`
}

// NewNotification builds the reminder for prayer name at the given time.
func NewNotification(name string, at time.Time) Notification {
	display := prayer.DisplayName(name)
	return Notification{
		Title:  fmt.Sprintf("Waktu %s telah tiba", display),
		Body:   fmt.Sprintf("Selamat menunaikan ibadah %s", display),
		Prayer: name,
		At:     at,
	}
}

// Notifier delivers a notification somewhere the user will see it.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Multi fans a notification out to every notifier it holds. All of them are
// tried; their errors are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
