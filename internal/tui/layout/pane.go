package layout

// PaneLayout holds the calculated widths of the sidebar, bookmark list and
// preview panes.
type PaneLayout struct {
	Sidebar     int
	List        int
	Preview     int
	ShowPreview bool
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneLayout splits the terminal width into sidebar | list | preview.
// The preview is dropped when keeping it would squeeze the list below
// MinListWidth.
func CalculatePaneLayout(terminalWidth int, cfg PaneConfig) PaneLayout {
	usable := terminalWidth - 3*cfg.PaneBorder

	sidebar := usable * cfg.SidebarWidthPercent / 100
	if sidebar < cfg.MinSidebarWidth {
		sidebar = cfg.MinSidebarWidth
	}
	if sidebar > cfg.MaxSidebarWidth {
		sidebar = cfg.MaxSidebarWidth
	}

	preview := usable * cfg.PreviewWidthPercent / 100
	list := usable - sidebar - preview
	if list >= cfg.MinListWidth {
		return PaneLayout{Sidebar: sidebar, List: list, Preview: preview, ShowPreview: true}
	}

	list = terminalWidth - 2*cfg.PaneBorder - sidebar
	if list < 1 {
		list = 1
	}
	return PaneLayout{Sidebar: sidebar, List: list}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}
	if maxOffset := total - viewportHeight; offset > maxOffset {
		offset = maxOffset
	}
	return offset
}
