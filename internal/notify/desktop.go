package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupported is returned when the platform has no desktop notifier.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// Desktop shows notifications with notify-send on Linux and the BSDs, and
// with osascript on macOS.
type Desktop struct {
	goos string
	run  Runner
}

// NewDesktop returns a desktop notifier for the running platform.
func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS, run: execRunner}
}

// Supported reports whether the platform has a known notification command.
func (d *Desktop) Supported() bool {
	_, _, ok := d.command(Notification{})
	return ok
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	name, args, ok := d.command(n)
	if !ok {
		return ErrUnsupported
	}
	return d.run(ctx, name, args...)
}

func (d *Desktop) command(n Notification) (string, []string, bool) {
	switch d.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
		return "osascript", []string{"-e", script}, true
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{"--app-name=imsakiyah", n.Title, n.Body}, true
	default:
		return "", nil, false
	}
}
