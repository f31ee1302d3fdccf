// Package display renders imsakiyah output for the terminal using raw ANSI
// escape codes, in a light or dark palette.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"fmt"
	"os"
)

// ANSI escape codes for styling.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	fgGray = "\033[90m" // bright black = gray
)

// palette is the set of codes that change with the theme.
type palette struct {
	accent string
	muted  string
}

var palettes = map[string]palette{
	"light": {accent: bold + blue, muted: fgGray},
	"dark":  {accent: bold + cyan, muted: dim},
}

// enabled reports whether color output is active.
// It is set once at init time.
var enabled bool

var current = palettes["light"]

func init() {
	enabled = shouldEnable()
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	// Respect NO_COLOR (https://no-color.org/).
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	// Respect FORCE_COLOR for testing.
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	// Disable color when stdout is not a terminal (piped/redirected).
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
// Uses Stat().Mode() to check for a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetEnabled overrides the auto-detected color state.
// json and yaml output switch it off.
func SetEnabled(b bool) {
	enabled = b
}

// SetTheme selects the "dark" or "light" palette. Unknown names select light.
func SetTheme(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["light"]
	}
	current = p
}

// wrap applies an ANSI code around text, only when colors are enabled.
func wrap(code, text string) string {
	if !enabled {
		return text
	}
	return code + text + reset
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return wrap(bold, text)
}

// Green returns text rendered in green.
func Green(text string) string {
	return wrap(green, text)
}

// Yellow returns text rendered in yellow.
func Yellow(text string) string {
	return wrap(yellow, text)
}

// Muted returns text in the theme's secondary color.
func Muted(text string) string {
	return wrap(current.muted, text)
}

// Accent returns text in the theme's highlight color.
// Used for today's row and the next prayer.
func Accent(text string) string {
	return wrap(current.accent, text)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}
