package widgets

import (
	"strings"
	"testing"
)

func TestRenderLineChart_Empty(t *testing.T) {
	if out := RenderLineChart(LineChartConfig{}); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if out := RenderLineChart(LineChartConfig{Series: []Series{{Name: "CPU"}}}); out != "" {
		t.Errorf("expected empty output for empty series, got %q", out)
	}
}

func TestRenderLineChart_Layout(t *testing.T) {
	out := RenderLineChart(LineChartConfig{
		Series: []Series{
			{Name: "CPU", Data: []float64{0, 100}, Glyph: 'c'},
			{Name: "Memory", Data: []float64{50, 50}, Glyph: 'm'},
		},
		Labels: []string{"10:00:00", "10:00:05"},
		Width:  20,
		Height: 5,
	})
	lines := strings.Split(out, "\n")
	// 5 plot rows + axis + time labels + legend.
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "100 ┤") || !strings.HasPrefix(lines[4], "  0 ┤") {
		t.Errorf("y axis labels wrong:\n%s", out)
	}
	if !strings.HasPrefix(lines[2], " 50 ┤") {
		t.Errorf("mid label = %q", lines[2])
	}

	// CPU goes from bottom-left to top-right.
	if r := []rune(lines[4]); r[axisGutter] != 'c' {
		t.Errorf("expected CPU point at bottom-left, got %q", lines[4])
	}
	if r := []rune(lines[0]); r[axisGutter+19] != 'c' {
		t.Errorf("expected CPU point at top-right, got %q", lines[0])
	}
	if strings.Count(lines[2], "m") != 2 {
		t.Errorf("expected both memory points on the 50%% row, got %q", lines[2])
	}

	if !strings.Contains(lines[6], "10:00:00") || !strings.HasSuffix(lines[6], "10:00:05") {
		t.Errorf("time axis = %q", lines[6])
	}
	if !strings.Contains(lines[7], "CPU") || !strings.Contains(lines[7], "Memory") {
		t.Errorf("legend = %q", lines[7])
	}
}

func TestRenderLineChart_KeepsMostRecent(t *testing.T) {
	data := make([]float64, 30)
	labels := make([]string, 30)
	for i := range data {
		labels[i] = "t" + string(rune('A'+i%26))
	}
	data[29] = 100

	out := RenderLineChart(LineChartConfig{
		Series: []Series{{Name: "CPU", Data: data, Glyph: 'x'}},
		Labels: labels,
		Width:  10,
		Height: 3,
	})
	lines := strings.Split(out, "\n")
	if r := []rune(lines[0]); r[len(r)-1] != 'x' {
		t.Errorf("newest point should be at the right edge, got %q", lines[0])
	}
	if strings.Count(lines[2], "x") != 9 {
		t.Errorf("expected 9 older points on the floor, got %q", lines[2])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[4]), labels[20]) {
		t.Errorf("first visible label should be %q, got %q", labels[20], lines[4])
	}
}

func TestChartRow(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{100, 0},
		{0, 9},
		{150, 0},
		{-5, 9},
		{50, 5},
	}
	for _, tt := range tests {
		if got := chartRow(tt.v, 10); got != tt.want {
			t.Errorf("chartRow(%v, 10) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
