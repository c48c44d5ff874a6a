package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/tui/layout"
)

func (a App) renderView() string {
	switch a.mode {
	case ModeAddBookmark, ModeConfirmDelete, ModeLogin:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	// App padding takes 2 columns on each side
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneLayout(a.width-4, a.layoutConfig.Pane)

	columns := []string{
		a.renderSidebar(panes.Sidebar, paneHeight),
		a.renderBookmarkPane(panes.List, paneHeight),
	}
	if panes.ShowPreview {
		columns = append(columns, a.renderPreviewPane(panes.Preview, paneHeight))
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderStatusLine(),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		a.renderHelpBar(),
	))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderStatusLine shows the active collection, filters, page and identity.
func (a App) renderStatusLine() string {
	parts := []string{"stash"}

	if view, ok := a.store.CollectionData()[a.store.ActiveCollection()]; ok {
		parts = append(parts, view.Name)
	}
	if term := a.store.SearchTerm(); term != "" {
		parts = append(parts, fmt.Sprintf("search:%q", term))
	}
	if tag := a.store.SelectedTag(); tag != "" {
		parts = append(parts, "#"+tag)
	}
	if r := a.store.SelectedDateRange(); r != "" {
		parts = append(parts, r.Label())
	}

	parts = append(parts, fmt.Sprintf("%d of %d", len(a.store.FilteredBookmarks()), a.store.FilteredTotal()))

	if a.store.IsBulkSelectMode() {
		parts = append(parts, fmt.Sprintf("BULK %d selected", len(a.store.SelectedBookmarkIDs())))
	}

	if a.auth != nil {
		user, ok := a.auth.CurrentUser()
		switch {
		case a.authPending && ok:
			parts = append(parts, "signing out...")
		case a.authPending:
			parts = append(parts, "signing in...")
		case ok:
			parts = append(parts, user.Email)
		default:
			parts = append(parts, "guest")
		}
	}

	line, _ := layout.TruncateText(strings.Join(parts, " · "), a.width-4, a.layoutConfig.Text)
	return a.styles.StatusLine.Render(line)
}

func (a App) renderSidebar(width, height int) string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Collections") + "\n\n")

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.ListHeaderLines)

	cols := a.store.Collections()
	active := a.store.ActiveCollection()
	offset := layout.CalculateViewportOffset(a.collectionCursor, len(cols), visibleHeight)

	for i := offset; i < len(cols) && i < offset+visibleHeight; i++ {
		c := cols[i]
		marker := "  "
		if c.ID == active {
			marker = "▸ "
		}
		line, _ := layout.TruncateWithPrefixSuffix(
			c.Name, itemWidth,
			marker+collectionGlyph(c.Icon)+" ",
			fmt.Sprintf(" (%d)", c.Count),
			a.layoutConfig.Text,
		)

		isCursor := a.focusedPane == PaneCollections && i == a.collectionCursor
		if isCursor {
			content.WriteString(a.styles.ItemSelected.Render(padRight(line, itemWidth)) + "\n")
		} else {
			content.WriteString(a.styles.Item.Render(line) + "\n")
		}
	}

	return a.paneStyle(PaneCollections).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderBookmarkPane(width, height int) string {
	var content strings.Builder

	activeName := a.store.ActiveCollection()
	if view, ok := a.store.CollectionData()[activeName]; ok {
		activeName = view.Name
	}
	content.WriteString(a.styles.Title.Render(activeName) + "\n")

	// Search input, active search term or an empty spacer
	term := a.store.SearchTerm()
	switch {
	case a.mode == ModeSearch:
		content.WriteString("/" + a.search.Input.View() + "\n")
	case term != "":
		content.WriteString(a.styles.Tag.Render("/"+term) + "\n")
	default:
		content.WriteString("\n")
	}

	list := a.store.FilteredBookmarks()
	hasMore := a.store.HasMore()
	footerLines := 0
	if hasMore {
		footerLines = 1
	}
	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.ListHeaderLines+footerLines)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(list) == 0 {
		content.WriteString(a.styles.Empty.Render(a.emptyListText()))
	} else {
		offset := layout.CalculateViewportOffset(a.bookmarkCursor, len(list), visibleHeight)
		for i := offset; i < len(list) && i < offset+visibleHeight; i++ {
			isCursor := a.focusedPane == PaneBookmarks && i == a.bookmarkCursor
			content.WriteString(a.renderBookmarkRow(list[i], isCursor, itemWidth) + "\n")
		}
	}

	if hasMore {
		more := fmt.Sprintf("n: load more (%d of %d)", len(list), a.store.FilteredTotal())
		content.WriteString(a.styles.Empty.Render(more))
	}

	return a.paneStyle(PaneBookmarks).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) emptyListText() string {
	if a.store.ActiveCollection() == model.CollectionFavorites && !a.store.IsAuthenticated() {
		return "(log in to see favorites)"
	}
	if a.store.SearchTerm() != "" || a.store.SelectedTag() != "" || a.store.SelectedDateRange() != "" {
		return "(no matches)"
	}
	return "(no bookmarks)"
}

func (a App) renderBookmarkRow(b model.Bookmark, isCursor bool, maxWidth int) string {
	bulk := a.store.IsBulkSelectMode()
	isMarked := bulk && a.store.IsSelected(b.ID)
	prefix := bookmarkPrefix(b, bulk, isMarked)

	if isCursor || isMarked {
		line, _ := layout.TruncateWithPrefixSuffix(b.Title, maxWidth, prefix, "", a.layoutConfig.Text)
		line = padRight(line, maxWidth)
		switch {
		case isCursor && isMarked:
			return a.styles.ItemMarkedCursor.Render(line)
		case isCursor:
			return a.styles.ItemSelected.Render(line)
		default:
			return a.styles.ItemMarked.Render(line)
		}
	}

	if b.IsFavorite {
		prefix = strings.Replace(prefix, "★", a.styles.Favorite.Render("★"), 1)
	}
	title := highlightTerm(b.Title, a.store.SearchTerm(), a.styles.Collection, a.styles.Match)
	line := layout.TruncateStyled(prefix+title, maxWidth, a.layoutConfig.Text)
	return lipgloss.NewStyle().PaddingLeft(1).Render(line)
}

func (a App) renderPreviewPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if b, ok := a.CurrentBookmark(); ok {
		content.WriteString(a.styles.Title.Render(b.Title) + "\n\n")

		url, _ := layout.TruncateText(b.URL, itemWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.URL.Render(url) + "\n\n")

		if b.Description != "" {
			content.WriteString(b.Description + "\n\n")
		}
		if tags := formatTags(b.Tags); tags != "" {
			content.WriteString(a.styles.Tag.Render(tags) + "\n\n")
		}

		if b.Collection != "" {
			name := b.Collection
			if view, ok := a.store.CollectionData()[b.Collection]; ok {
				name = view.Name
			}
			content.WriteString(a.styles.Date.Render("In: "+name) + "\n")
		}
		if created, ok := b.Created(); ok {
			content.WriteString(a.styles.Date.Render(fmt.Sprintf(
				"Created: %s (%s)", created.Format("2006-01-02"), formatTimeAgo(created, a.now()),
			)) + "\n")
		}

		var flags []string
		if b.IsFavorite {
			flags = append(flags, a.styles.Favorite.Render("★ favorite"))
		}
		if b.IsPublic {
			flags = append(flags, "public")
		}
		if len(flags) > 0 {
			content.WriteString("\n" + strings.Join(flags, "  "))
		}
	} else {
		content.WriteString(a.styles.Empty.Render("(nothing selected)"))
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) paneStyle(p Pane) lipgloss.Style {
	if a.focusedPane == p && a.mode == ModeNormal {
		return a.styles.PaneActive
	}
	if p == PaneBookmarks && a.mode == ModeSearch {
		return a.styles.PaneActive
	}
	return a.styles.Pane
}

func (a App) renderModal() string {
	var title, content strings.Builder

	widthPercent := a.layoutConfig.Modal.DefaultWidthPercent
	if a.mode == ModeAddBookmark {
		widthPercent = a.layoutConfig.Modal.LargeWidthPercent
	}
	modalWidth := layout.CalculateModalWidth(a.width, widthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	switch a.mode {
	case ModeAddBookmark:
		title.WriteString("Add Bookmark\n\n")
		content.WriteString("Title:\n" + a.modal.TitleInput.View() + "\n\n")
		content.WriteString("URL:\n" + a.modal.URLInput.View() + "\n\n")
		content.WriteString("Description:\n" + a.modal.DescriptionInput.View() + "\n\n")
		content.WriteString("Tags (comma-separated):\n" + a.modal.TagsInput.View() + "\n\n")
		content.WriteString("Collection:\n")
		content.WriteString(a.renderCollectionPicker())
		if a.modal.Error != "" {
			content.WriteString("\n\n" + a.renderError(a.modal.Error))
		}

	case ModeConfirmDelete:
		ids := a.modal.DeleteIDs
		if len(ids) == 1 {
			name := "this bookmark"
			if b, ok := a.store.GetBookmarkByID(ids[0]); ok {
				name = b.Title
			}
			title.WriteString("Delete Bookmark?\n\n")
			content.WriteString("\"" + name + "\"\n\n")
		} else {
			title.WriteString(fmt.Sprintf("Delete %d bookmarks?\n\n", len(ids)))
		}
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeLogin:
		title.WriteString("Log In\n\n")
		content.WriteString("Email:\n" + a.login.EmailInput.View() + "\n\n")
		content.WriteString("Password:\n" + a.login.PasswordInput.View() + "\n\n")
		content.WriteString(a.styles.Empty.Render("Any password works. Favorites unlock after signing in."))
		if a.login.Error != "" {
			content.WriteString("\n\n" + a.renderError(a.login.Error))
		}
	}

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// renderCollectionPicker renders the collection choice of the add form.
func (a App) renderCollectionPicker() string {
	cols := a.modal.Collections
	if len(cols) == 0 {
		return a.styles.Empty.Render("(none)")
	}
	if a.modal.Focus != fieldCollection {
		return "  " + cols[a.modal.CollectionIdx].Name
	}

	var b strings.Builder
	start, end := layout.CalculateVisibleListItems(a.layoutConfig.Modal.CollectionsVisible, a.modal.CollectionIdx, len(cols))
	for i := start; i < end; i++ {
		if i == a.modal.CollectionIdx {
			b.WriteString(a.styles.ItemSelected.Render("▸ " + cols[i].Name))
		} else {
			b.WriteString("  " + cols[i].Name)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderError(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
		Render("✗ " + text)
}

func (a App) renderHelpBar() string {
	var lines []string

	// Message replaces the gap
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Keys  ")+hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("gg/G   top/bottom\n")
	left.WriteString("tab    switch pane\n")
	left.WriteString("h/l    panes\n")
	left.WriteString("enter  open\n")
	left.WriteString("n      load more\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("filter") + "\n")
	left.WriteString("/      search\n")
	left.WriteString("t      cycle tag\n")
	left.WriteString("r      date range\n")
	left.WriteString("esc    clear\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a      add bookmark\n")
	right.WriteString("d      delete\n")
	right.WriteString("f      favorite\n")
	right.WriteString("J/K    move down/up\n")
	right.WriteString("Y      yank url\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("select") + "\n")
	right.WriteString("v      bulk mode\n")
	right.WriteString("space  toggle\n")
	right.WriteString("A      select all\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("account") + "\n")
	right.WriteString("L      login/logout\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if n := width - layout.VisibleLength(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// formatTimeAgo formats the time between t and now in human-readable form.
func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	} else if d < time.Hour {
		m := int(d.Minutes())
		if m == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", m)
	} else if d < 24*time.Hour {
		h := int(d.Hours())
		if h == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", h)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1d ago"
	}
	return fmt.Sprintf("%dd ago", days)
}
