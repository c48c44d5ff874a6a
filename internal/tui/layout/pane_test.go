package layout

import "testing"

func TestCalculatePaneHeight(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 17},               // 24 - 7 = 17
		{"large terminal", 50, 43},                // 50 - 7 = 43
		{"small terminal enforces min", 8, 5},     // 8 - 7 = 1, min is 5
		{"terminal smaller than reduction", 4, 5}, // negative clamps to min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculatePaneHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculatePaneLayout(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name          string
		terminalWidth int
		want          PaneLayout
	}{
		// usable = 140-6 = 134; sidebar 134*22/100 = 29; preview 134*35/100 = 46
		{"standard terminal", 140, PaneLayout{Sidebar: 29, List: 59, Preview: 46, ShowPreview: true}},
		// usable = 94; sidebar 20 -> min 27; preview 32; list 35
		{"sidebar enforces min", 100, PaneLayout{Sidebar: 27, List: 35, Preview: 32, ShowPreview: true}},
		// usable = 194; sidebar 42 -> max 32; preview 67; list 95
		{"sidebar enforces max", 200, PaneLayout{Sidebar: 32, List: 95, Preview: 67, ShowPreview: true}},
		// list would be 9, so preview is dropped: 60-4-27 = 29
		{"narrow drops preview", 60, PaneLayout{Sidebar: 27, List: 29}},
		{"tiny terminal clamps list", 20, PaneLayout{Sidebar: 27, List: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneLayout(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculatePaneLayout(%d) = %+v, want %+v", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name      string
		paneWidth int
		want      int
	}{
		{"normal pane", 24, 20},
		{"wide pane", 40, 36},
		{"narrow pane", 15, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateItemWidth(tt.paneWidth, cfg); got != tt.want {
				t.Errorf("CalculateItemWidth(%d) = %d, want %d", tt.paneWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleHeight(t *testing.T) {
	tests := []struct {
		name        string
		paneHeight  int
		headerLines int
		want        int
	}{
		{"normal with header", 18, 2, 16},
		{"no header", 18, 0, 18},
		{"header equals height", 10, 10, 1},
		{"header exceeds height", 5, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateVisibleHeight(tt.paneHeight, tt.headerLines); got != tt.want {
				t.Errorf("CalculateVisibleHeight(%d, %d) = %d, want %d",
					tt.paneHeight, tt.headerLines, got, tt.want)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5},
		{"selection near end", 18, 20, 10, 10},
		{"selection at end", 19, 20, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight); got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
