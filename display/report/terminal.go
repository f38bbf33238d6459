package report

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
)

// DefaultWidth is used when no terminal width can be detected.
const DefaultWidth = 80

// DetectWidth returns the width of the terminal on stdout. It falls back
// to $COLUMNS, then DefaultWidth, when stdout is not a terminal.
func DetectWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}
