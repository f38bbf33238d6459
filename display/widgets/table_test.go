package widgets

import (
	"strings"
	"testing"
)

func TestRenderTable_Basic(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Columns = []Column{
		{Title: "Mountpoint"},
		{Title: "Usage", Align: AlignRight},
	}
	cfg.Rows = [][]string{
		{"/", "40.0%"},
		{"/data", "85.0%"},
	}

	out := RenderTable(cfg)
	lines := strings.Split(out, "\n")
	// Header + rule + 2 rows.
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Mountpoint") || !strings.Contains(lines[0], "Usage") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "──────────") {
		t.Errorf("rule = %q", lines[1])
	}
	if lines[2] != "/           40.0%" {
		t.Errorf("row = %q, want %q", lines[2], "/           40.0%")
	}
}

func TestRenderTable_NoColumns(t *testing.T) {
	if out := RenderTable(TableConfig{Rows: [][]string{{"x"}}}); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderTable_ShortRow(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Columns = []Column{{Title: "A"}, {Title: "B"}}
	cfg.Rows = [][]string{{"only"}}

	lines := strings.Split(RenderTable(cfg), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[2], "only") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestRenderTable_FlexShrinks(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Columns = []Column{
		{Title: "PID", Align: AlignRight},
		{Title: "Name", Flex: true},
		{Title: "CPU", Align: AlignRight},
	}
	cfg.Rows = [][]string{{"2210", "a-very-long-process-name", "14.5"}}
	cfg.MaxWidth = 20

	out := RenderTable(cfg)
	for _, line := range strings.Split(out, "\n") {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("line width %d exceeds max: %q", n, line)
		}
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected truncated name, got:\n%s", out)
	}
	if !strings.Contains(out, "14.5") {
		t.Errorf("fixed column should survive, got:\n%s", out)
	}
}

func TestRenderTable_StyledCell(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Columns = []Column{{Title: "Bar"}, {Title: "Pct", Align: AlignRight}}
	cfg.Rows = [][]string{
		{"\x1b[31m██\x1b[0m", "5.0%"},
		{"████", "50.0%"},
	}

	lines := strings.Split(RenderTable(cfg), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[2] != "\x1b[31m██\x1b[0m     5.0%" {
		t.Errorf("styled row = %q", lines[2])
	}
	if lines[3] != "████  50.0%" {
		t.Errorf("plain row = %q", lines[3])
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		align Alignment
		want  string
	}{
		{"abc", 5, AlignLeft, "abc  "},
		{"abc", 5, AlignRight, "  abc"},
		{"abcdef", 4, AlignLeft, "abc…"},
		{"abc", 1, AlignLeft, "a"},
		{"abc", 0, AlignLeft, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width, tt.align); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
