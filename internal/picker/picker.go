// Package picker is the one-shot chooser shown by `stash <query>` when the
// quick search has several hits.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/search"
	"github.com/nikbrunner/stash/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Action is what the user chose to do with the selected bookmark.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionCopy
)

// KeyMap defines the picker key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the picker key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
		Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
		Top:    key.NewBinding(key.WithKeys("g")),
		Bottom: key.NewBinding(key.WithKeys("G")),
		Open:   key.NewBinding(key.WithKeys("enter", "l")),
		Copy:   key.NewBinding(key.WithKeys("Y")),
		Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
	}
}

// Params holds parameters for creating a Picker.
type Params struct {
	Results     []search.SearchResult
	Query       string
	Collections []model.Collection // optional, names shown next to each hit
}

// Picker lists search results and lets the user open or copy one.
type Picker struct {
	results     []search.SearchResult
	query       string
	collections map[string]string
	keys        KeyMap
	text        layout.TextConfig

	cursor      int
	lastKeyWasG bool
	action      Action

	width  int
	height int
}

// New creates a Picker over params.Results.
func New(params Params) Picker {
	names := make(map[string]string, len(params.Collections))
	for _, c := range params.Collections {
		names[c.ID] = c.Name
	}
	return Picker{
		results:     params.Results,
		query:       params.Query,
		collections: names,
		keys:        DefaultKeyMap(),
		text:        layout.DefaultConfig().Text,
		width:       80,
		height:      24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Top) {
			if p.lastKeyWasG {
				p.cursor = 0
			}
			p.lastKeyWasG = !p.lastKeyWasG
			return p, nil
		}
		p.lastKeyWasG = false

		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.action = ActionNone
			return p, tea.Quit
		case key.Matches(msg, p.keys.Open):
			return p.choose(ActionOpen)
		case key.Matches(msg, p.keys.Copy):
			return p.choose(ActionCopy)
		case key.Matches(msg, p.keys.Down):
			p.cursor = min(p.cursor+1, max(len(p.results)-1, 0))
		case key.Matches(msg, p.keys.Up):
			p.cursor = max(p.cursor-1, 0)
		case key.Matches(msg, p.keys.Bottom):
			p.cursor = max(len(p.results)-1, 0)
		}
	}

	return p, nil
}

func (p Picker) choose(action Action) (tea.Model, tea.Cmd) {
	if len(p.results) == 0 {
		return p, nil
	}
	p.action = action
	return p, tea.Quit
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	noun := "results"
	if len(p.results) == 1 {
		noun = "result"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d %s)", p.query, len(p.results), noun)))
	b.WriteString("\n\n")

	// Two lines per result
	visible := max((p.height-5)/2, 1)
	start, end := layout.CalculateVisibleListItems(visible, p.cursor, len(p.results))
	width := max(p.width-4, 10)

	for i := start; i < end; i++ {
		b.WriteString(p.renderResult(p.results[i], i == p.cursor, width))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: open  Y: copy URL  q/Esc: cancel"))

	return b.String()
}

func (p Picker) renderResult(r search.SearchResult, isCursor bool, width int) string {
	cursor := "  "
	style := normalStyle
	if isCursor {
		cursor = "> "
		style = selectedStyle
	}

	var title strings.Builder
	if r.Bookmark.IsFavorite {
		title.WriteString(starStyle.Render("★ "))
	}
	for _, run := range search.Highlight(r.Bookmark.Title, r.MatchedIndexes) {
		if run.Matched {
			title.WriteString(matchStyle.Inherit(style).Render(run.Text))
		} else {
			title.WriteString(style.Render(run.Text))
		}
	}

	meta := r.Bookmark.URL
	if name := p.collections[r.Bookmark.Collection]; name != "" {
		meta += "  in " + name
	}
	meta, _ = layout.TruncateText(meta, width, p.text)
	line := metaStyle.Render(meta)
	if len(r.Bookmark.Tags) > 0 {
		line += " " + tagStyle.Render("#"+strings.Join(r.Bookmark.Tags, " #"))
	}

	return cursor + layout.TruncateStyled(title.String(), width, p.text) + "\n   " + line + "\n"
}

// SelectedBookmark returns the chosen bookmark, or false if cancelled.
func (p Picker) SelectedBookmark() (model.Bookmark, bool) {
	if p.action == ActionNone || p.cursor >= len(p.results) {
		return model.Bookmark{}, false
	}
	return p.results[p.cursor].Bookmark, true
}

// Action returns what to do with SelectedBookmark.
func (p Picker) Action() Action {
	return p.action
}

// Cancelled returns true if the picker closed without a choice.
func (p Picker) Cancelled() bool {
	return p.action == ActionNone
}
