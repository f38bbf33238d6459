// Package color decides whether sysdash output is styled.
//
// Colour is off when NO_COLOR is set (any value, see https://no-color.org/)
// or when the output is not a terminal. Disabling switches lipgloss to the
// Ascii profile, so every styled render produces plain text.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether f is an interactive terminal, including
// Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NoColorRequested reports whether NO_COLOR is present in the environment.
func NoColorRequested() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// ShouldDisableColor reports whether output written to f should be plain.
func ShouldDisableColor(f *os.File) bool {
	return NoColorRequested() || !IsTerminal(f)
}

// Apply configures the global lipgloss profile for output to f and returns
// true if colour stays enabled.
func Apply(f *os.File) bool {
	if ShouldDisableColor(f) {
		ForceDisable()
		return false
	}
	return true
}

// ForceDisable unconditionally switches lipgloss to plain text.
func ForceDisable() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
