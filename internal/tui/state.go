package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/tui/layout"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAddBookmark
	ModeConfirmDelete
	ModeLogin
	ModeHelp
)

// Pane identifies the focused pane.
type Pane int

const (
	PaneCollections Pane = iota
	PaneBookmarks
)

// MessageType controls how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds the inline search bar above the bookmark list.
type SearchState struct {
	Input    textinput.Model
	Previous string // term restored when the search is cancelled
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "title, url or description..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// Fields of the add bookmark form, in tab order.
const (
	fieldTitle = iota
	fieldURL
	fieldDescription
	fieldTags
	fieldCollection
	fieldCount
)

// ModalState holds state for the add bookmark form and delete confirmation.
type ModalState struct {
	TitleInput       textinput.Model
	URLInput         textinput.Model
	DescriptionInput textinput.Model
	TagsInput        textinput.Model
	Focus            int // one of the field constants

	Collections   []model.Collection // static collections offered by the form
	CollectionIdx int

	DeleteIDs []int  // bookmarks awaiting confirmation
	Error     string // validation error shown inside the modal
}

// NewModalState creates a new ModalState with initialized inputs.
func NewModalState(cfg layout.LayoutConfig) ModalState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	descInput := textinput.New()
	descInput.Placeholder = "Description"
	descInput.CharLimit = cfg.Input.DescriptionCharLimit
	descInput.Width = cfg.Input.StandardWidth

	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = cfg.Input.TagsCharLimit
	tagsInput.Width = cfg.Input.StandardWidth

	return ModalState{
		TitleInput:       titleInput,
		URLInput:         urlInput,
		DescriptionInput: descInput,
		TagsInput:        tagsInput,
	}
}

// ResetInputs clears all modal inputs for a new modal session.
func (m *ModalState) ResetInputs() {
	m.TitleInput.Reset()
	m.URLInput.Reset()
	m.DescriptionInput.Reset()
	m.TagsInput.Reset()
	m.Focus = fieldTitle
	m.Collections = nil
	m.CollectionIdx = 0
	m.DeleteIDs = nil
	m.Error = ""
}

// inputs returns the text fields in tab order.
func (m *ModalState) inputs() []*textinput.Model {
	return []*textinput.Model{&m.TitleInput, &m.URLInput, &m.DescriptionInput, &m.TagsInput}
}

// FocusField moves focus to field, blurring the others.
func (m *ModalState) FocusField(field int) {
	m.Focus = field
	for i, input := range m.inputs() {
		if i == field {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// SelectedCollection returns the collection ID chosen in the form, or "".
func (m ModalState) SelectedCollection() string {
	if m.CollectionIdx < 0 || m.CollectionIdx >= len(m.Collections) {
		return ""
	}
	return m.Collections[m.CollectionIdx].ID
}

// LoginState holds the login form.
type LoginState struct {
	EmailInput    textinput.Model
	PasswordInput textinput.Model
	Focus         int // 0 = email, 1 = password
	Error         string
}

// NewLoginState creates a new LoginState with initialized inputs.
func NewLoginState(cfg layout.LayoutConfig) LoginState {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = cfg.Input.EmailCharLimit
	email.Width = cfg.Input.StandardWidth

	password := textinput.New()
	password.Placeholder = "any password"
	password.CharLimit = cfg.Input.PasswordCharLimit
	password.Width = cfg.Input.StandardWidth
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginState{EmailInput: email, PasswordInput: password}
}

// Reset clears the login form and focuses the email field.
func (l *LoginState) Reset() {
	l.EmailInput.Reset()
	l.PasswordInput.Reset()
	l.Error = ""
	l.FocusField(0)
}

// FocusField moves focus between the email (0) and password (1) fields.
func (l *LoginState) FocusField(field int) {
	l.Focus = field
	if field == 0 {
		l.EmailInput.Focus()
		l.PasswordInput.Blur()
		return
	}
	l.EmailInput.Blur()
	l.PasswordInput.Focus()
}

// parseTagsInput splits a comma-separated tag list, dropping blanks and
// duplicates while keeping the first-seen order.
func parseTagsInput(s string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
