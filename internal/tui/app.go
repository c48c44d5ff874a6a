package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/stash/internal/auth"
	"github.com/nikbrunner/stash/internal/logger"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/state"
	"github.com/nikbrunner/stash/internal/tui/layout"
)

// Authenticator is the auth provider behind the login key.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (auth.User, bool)
}

type loginDoneMsg struct {
	user auth.User
	err  error
}

type logoutDoneMsg struct {
	err error
}

// App is the main bubbletea model for the bookmark browser.
type App struct {
	store        state.View
	auth         Authenticator
	log          logger.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	now          func() time.Time

	mode        Mode
	focusedPane Pane

	collectionCursor int
	bookmarkCursor   int

	// For gg command
	lastKeyWasG bool

	search SearchState
	modal  ModalState
	login  LoginState

	// In-flight login or logout
	authPending bool
	cancelAuth  context.CancelFunc

	messageText string
	messageType MessageType

	copyToClipboard func(string) error
	openURL         func(string) error

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        state.View
	Auth         Authenticator        // optional, nil disables login
	Logger       logger.Logger        // optional
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Clipboard    func(string) error   // optional, system clipboard if nil
	OpenURL      func(string) error   // optional, nil shows the URL instead
	Now          func() time.Time     // optional, time.Now if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	log := params.Logger
	if log == nil {
		log = logger.Nop()
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	app := App{
		store:           params.Store,
		auth:            params.Auth,
		log:             log,
		keys:            keys,
		styles:          styles,
		layoutConfig:    layoutConfig,
		now:             now,
		focusedPane:     PaneBookmarks,
		search:          NewSearchState(layoutConfig),
		modal:           NewModalState(layoutConfig),
		login:           NewLoginState(layoutConfig),
		copyToClipboard: copyFn,
		openURL:         params.OpenURL,
		width:           80,
		height:          24,
	}
	app.syncCollectionCursor()
	return app
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode { return a.mode }

// FocusedPane returns the pane that receives navigation keys.
func (a App) FocusedPane() Pane { return a.focusedPane }

// CollectionCursor returns the highlighted sidebar row.
func (a App) CollectionCursor() int { return a.collectionCursor }

// BookmarkCursor returns the highlighted bookmark row.
func (a App) BookmarkCursor() int { return a.bookmarkCursor }

// MessageText returns the text of the message line, "" when empty.
func (a App) MessageText() string { return a.messageText }

// AuthPending reports whether a login or logout is running.
func (a App) AuthPending() bool { return a.authPending }

// Store returns the underlying bookmark store.
func (a App) Store() state.View { return a.store }

// CurrentBookmark returns the bookmark under the cursor.
func (a App) CurrentBookmark() (model.Bookmark, bool) {
	list := a.store.FilteredBookmarks()
	if a.bookmarkCursor < 0 || a.bookmarkCursor >= len(list) {
		return model.Bookmark{}, false
	}
	return list[a.bookmarkCursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loginDoneMsg:
		a.finishAuth()
		switch {
		case errors.Is(msg.err, context.Canceled):
			a.setMessage(MessageWarning, "Login cancelled")
		case msg.err != nil:
			a.log.Warn("login failed", logger.Error(msg.err))
			a.setMessage(MessageError, "Login failed: "+msg.err.Error())
		default:
			a.setMessage(MessageSuccess, "Signed in as "+msg.user.Email)
		}
		a.syncCollectionCursor()

	case logoutDoneMsg:
		a.finishAuth()
		switch {
		case errors.Is(msg.err, context.Canceled):
			a.setMessage(MessageWarning, "Logout cancelled")
		case msg.err != nil:
			a.log.Warn("logout failed", logger.Error(msg.err))
			a.setMessage(MessageError, "Logout failed: "+msg.err.Error())
		default:
			// Favorites is hidden while logged out
			if a.store.ActiveCollection() == model.CollectionFavorites {
				a.store.SetActiveCollection(model.CollectionAll)
				a.bookmarkCursor = 0
			}
			a.setMessage(MessageSuccess, "Signed out")
		}
		a.syncCollectionCursor()

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			cmd = a.handleSearchKey(msg)
		case ModeAddBookmark:
			cmd = a.handleAddBookmarkKey(msg)
		case ModeConfirmDelete:
			a.handleConfirmDeleteKey(msg)
		case ModeLogin:
			cmd = a.handleLoginKey(msg)
		case ModeHelp:
			a.handleHelpKey(msg)
		default:
			cmd = a.handleNormalKey(msg)
		}

	default:
		// Cursor blink and other input messages
		cmd = a.updateFocusedInput(msg)
	}

	a.clampCursors()
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// === Normal mode ===

func (a *App) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.setCursor(0)
			a.lastKeyWasG = false
			return nil
		}
		a.lastKeyWasG = true
		return nil
	}
	a.lastKeyWasG = false
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.cancelAuth != nil {
			a.cancelAuth()
		}
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.SwitchPane):
		if a.focusedPane == PaneCollections {
			a.focusedPane = PaneBookmarks
		} else {
			a.focusedPane = PaneCollections
		}

	case key.Matches(msg, a.keys.FocusSidebar):
		a.focusedPane = PaneCollections

	case key.Matches(msg, a.keys.FocusList):
		if a.focusedPane == PaneCollections {
			a.activateCollection()
		}
		a.focusedPane = PaneBookmarks

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		a.setCursor(a.focusedLen() - 1)

	case key.Matches(msg, a.keys.Enter):
		a.handleEnter()

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Previous = a.store.SearchTerm()
		a.search.Input.SetValue(a.search.Previous)
		a.search.Input.CursorEnd()
		a.search.Input.Focus()
		a.focusedPane = PaneBookmarks
		return textinput.Blink

	case key.Matches(msg, a.keys.CycleTag):
		a.cycleTag()

	case key.Matches(msg, a.keys.CycleRange):
		a.cycleDateRange()

	case key.Matches(msg, a.keys.Favorite):
		a.toggleFavorite()

	case key.Matches(msg, a.keys.AddBookmark):
		return a.openAddBookmark()

	case key.Matches(msg, a.keys.Delete):
		a.openConfirmDelete()

	case key.Matches(msg, a.keys.BulkMode):
		a.store.ToggleBulkSelectMode()
		if a.store.IsBulkSelectMode() {
			a.setMessage(MessageInfo, "Bulk select: space to toggle, A for all, d to delete")
		}

	case key.Matches(msg, a.keys.ToggleSelect):
		a.toggleSelection()

	case key.Matches(msg, a.keys.SelectAll):
		a.selectAllVisible()

	case key.Matches(msg, a.keys.Cancel):
		a.handleCancel()

	case key.Matches(msg, a.keys.MoveDown):
		a.moveBookmark(1)

	case key.Matches(msg, a.keys.MoveUp):
		a.moveBookmark(-1)

	case key.Matches(msg, a.keys.LoadMore):
		if a.store.HasMore() {
			a.store.LoadMoreBookmarks()
		} else {
			a.setMessage(MessageInfo, "All bookmarks shown")
		}

	case key.Matches(msg, a.keys.YankURL):
		a.yankURL()

	case key.Matches(msg, a.keys.Auth):
		return a.handleAuthKey()
	}

	return nil
}

func (a *App) handleEnter() {
	if a.focusedPane == PaneCollections {
		a.activateCollection()
		a.focusedPane = PaneBookmarks
		return
	}
	if a.store.IsBulkSelectMode() {
		a.toggleSelection()
		return
	}

	b, ok := a.CurrentBookmark()
	if !ok {
		return
	}
	if a.openURL == nil {
		a.setMessage(MessageInfo, b.URL)
		return
	}
	if err := a.openURL(b.URL); err != nil {
		a.log.Warn("open url failed", logger.String("url", b.URL), logger.Error(err))
		a.setMessage(MessageError, "Open failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Opened "+b.Title)
}

func (a *App) activateCollection() {
	cols := a.store.Collections()
	if a.collectionCursor < 0 || a.collectionCursor >= len(cols) {
		return
	}
	id := cols[a.collectionCursor].ID
	if id == a.store.ActiveCollection() {
		return
	}
	a.store.SetActiveCollection(id)
	a.bookmarkCursor = 0
	a.log.Debug("collection activated", logger.String("collection", id))
}

func (a *App) cycleTag() {
	tags := a.store.AvailableTags()
	if len(tags) == 0 {
		a.setMessage(MessageInfo, "No tags in use")
		return
	}

	next := tags[0]
	if i := slices.Index(tags, a.store.SelectedTag()); i >= 0 {
		if i == len(tags)-1 {
			next = ""
		} else {
			next = tags[i+1]
		}
	}
	a.store.SetSelectedTag(next)
	a.bookmarkCursor = 0
}

func (a *App) cycleDateRange() {
	current := a.store.SelectedDateRange()
	if current == "" {
		current = state.DateRangeAll
	}
	i := slices.Index(state.DateRanges, current)
	next := state.DateRanges[(i+1)%len(state.DateRanges)]
	a.store.SetSelectedDateRange(next)
	a.bookmarkCursor = 0
}

func (a *App) toggleFavorite() {
	b, ok := a.CurrentBookmark()
	if !ok {
		return
	}
	a.store.ToggleFavorite(b.ID)
	if b.IsFavorite {
		a.setMessage(MessageSuccess, "Removed from favorites")
	} else {
		a.setMessage(MessageSuccess, "Added to favorites")
	}
}

func (a *App) toggleSelection() {
	if !a.store.IsBulkSelectMode() {
		a.setMessage(MessageWarning, "Press v to start bulk select")
		return
	}
	if b, ok := a.CurrentBookmark(); ok {
		a.store.ToggleBookmarkSelection(b.ID)
	}
}

func (a *App) selectAllVisible() {
	if !a.store.IsBulkSelectMode() {
		a.setMessage(MessageWarning, "Press v to start bulk select")
		return
	}
	list := a.store.FilteredBookmarks()
	ids := make([]int, len(list))
	for i, b := range list {
		ids[i] = b.ID
	}
	a.store.SelectAllVisible(ids)
}

// handleCancel backs out one level: pending auth, then the selection,
// then bulk mode, then active filters.
func (a *App) handleCancel() {
	switch {
	case a.authPending && a.cancelAuth != nil:
		a.cancelAuth()
	case len(a.store.SelectedBookmarkIDs()) > 0:
		a.store.ClearSelection()
		a.setMessage(MessageInfo, "Selection cleared")
	case a.store.IsBulkSelectMode():
		a.store.ToggleBulkSelectMode()
	case a.store.SearchTerm() != "" || a.store.SelectedTag() != "" || a.store.SelectedDateRange() != "":
		a.store.SetSearchTerm("")
		a.store.SetSelectedTag("")
		a.store.SetSelectedDateRange("")
		a.bookmarkCursor = 0
		a.setMessage(MessageInfo, "Filters cleared")
	}
}

// moveBookmark swaps the bookmark under the cursor with its visible
// neighbour in the given direction.
func (a *App) moveBookmark(delta int) {
	if a.store.ActiveCollection() == model.CollectionRecentlyAdded {
		a.setMessage(MessageWarning, "Recently Added is ordered by date")
		return
	}

	list := a.store.FilteredBookmarks()
	from, to := a.bookmarkCursor, a.bookmarkCursor+delta
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return
	}

	if delta > 0 {
		// Moving down is moving the next one up
		target := list[from].ID
		a.store.ReorderBookmarks(list[to].ID, &target)
	} else {
		target := list[to].ID
		a.store.ReorderBookmarks(list[from].ID, &target)
	}
	a.bookmarkCursor = to
}

func (a *App) yankURL() {
	b, ok := a.CurrentBookmark()
	if !ok {
		return
	}
	if err := a.copyToClipboard(b.URL); err != nil {
		a.log.Warn("copy to clipboard failed", logger.Error(err))
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied "+b.URL)
}

// === Search mode ===

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.store.SetSearchTerm(a.search.Previous)
		a.closeSearch()
		return nil
	case tea.KeyEnter:
		a.closeSearch()
		return nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if term := a.search.Input.Value(); term != a.store.SearchTerm() {
		a.store.SetSearchTerm(term)
		a.bookmarkCursor = 0
	}
	return cmd
}

func (a *App) closeSearch() {
	a.search.Input.Blur()
	a.search.Input.Reset()
	a.search.Previous = ""
	a.mode = ModeNormal
}

// === Add bookmark ===

func (a *App) openAddBookmark() tea.Cmd {
	a.modal.ResetInputs()
	a.modal.Collections = a.store.StaticCollections()
	if i := slices.IndexFunc(a.modal.Collections, func(c model.Collection) bool {
		return c.ID == a.store.ActiveCollection()
	}); i >= 0 {
		a.modal.CollectionIdx = i
	}
	a.modal.FocusField(fieldTitle)
	a.mode = ModeAddBookmark
	return textinput.Blink
}

func (a *App) handleAddBookmarkKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.modal.ResetInputs()
		a.modal.FocusField(-1)
		a.mode = ModeNormal
		return nil
	case "tab", "down":
		a.modal.FocusField((a.modal.Focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		a.modal.FocusField((a.modal.Focus + fieldCount - 1) % fieldCount)
		return nil
	case "enter":
		a.submitAddBookmark()
		return nil
	}

	if a.modal.Focus == fieldCollection {
		n := len(a.modal.Collections)
		if n == 0 {
			return nil
		}
		switch msg.String() {
		case "left", "h":
			a.modal.CollectionIdx = (a.modal.CollectionIdx + n - 1) % n
		case "right", "l":
			a.modal.CollectionIdx = (a.modal.CollectionIdx + 1) % n
		}
		return nil
	}

	input := a.modal.inputs()[a.modal.Focus]
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

func (a *App) submitAddBookmark() {
	url := strings.TrimSpace(a.modal.URLInput.Value())
	if url == "" {
		a.modal.Error = "URL is required"
		a.modal.FocusField(fieldURL)
		return
	}
	title := strings.TrimSpace(a.modal.TitleInput.Value())
	if title == "" {
		title = url
	}

	b := a.store.AddBookmark(model.NewBookmarkParams{
		Title:       title,
		URL:         url,
		Description: strings.TrimSpace(a.modal.DescriptionInput.Value()),
		Tags:        parseTagsInput(a.modal.TagsInput.Value()),
		Collection:  a.modal.SelectedCollection(),
	})

	a.modal.ResetInputs()
	a.modal.FocusField(-1)
	a.mode = ModeNormal
	a.focusedPane = PaneBookmarks

	if i := slices.IndexFunc(a.store.FilteredBookmarks(), func(x model.Bookmark) bool { return x.ID == b.ID }); i >= 0 {
		a.bookmarkCursor = i
	}
	a.setMessage(MessageSuccess, "Added "+b.Title)
}

// === Delete ===

func (a *App) openConfirmDelete() {
	a.modal.ResetInputs()
	if a.store.IsBulkSelectMode() {
		ids := a.store.SelectedBookmarkIDs()
		if len(ids) == 0 {
			a.setMessage(MessageWarning, "Nothing selected")
			return
		}
		a.modal.DeleteIDs = ids
	} else {
		b, ok := a.CurrentBookmark()
		if !ok {
			return
		}
		a.modal.DeleteIDs = []int{b.ID}
	}
	a.mode = ModeConfirmDelete
}

func (a *App) handleConfirmDeleteKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter", "y":
		n := len(a.modal.DeleteIDs)
		if a.store.IsBulkSelectMode() {
			a.store.DeleteSelectedBookmarks()
		} else {
			a.store.DeleteBookmarks(a.modal.DeleteIDs)
		}
		a.modal.ResetInputs()
		a.mode = ModeNormal
		if n == 1 {
			a.setMessage(MessageSuccess, "Deleted 1 bookmark")
		} else {
			a.setMessage(MessageSuccess, fmt.Sprintf("Deleted %d bookmarks", n))
		}
	case "esc", "n", "q":
		a.modal.ResetInputs()
		a.mode = ModeNormal
	}
}

// === Auth ===

func (a *App) handleAuthKey() tea.Cmd {
	if a.auth == nil {
		a.setMessage(MessageWarning, "Login is not available")
		return nil
	}
	if a.authPending {
		a.setMessage(MessageInfo, "Please wait...")
		return nil
	}
	if _, ok := a.auth.CurrentUser(); ok {
		svc := a.auth
		a.setMessage(MessageInfo, "Signing out...")
		return a.startAuth(func(ctx context.Context) tea.Msg {
			return logoutDoneMsg{err: svc.Logout(ctx)}
		})
	}

	a.login.Reset()
	a.mode = ModeLogin
	return textinput.Blink
}

func (a *App) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.login.Reset()
		a.login.EmailInput.Blur()
		a.mode = ModeNormal
		return nil
	case "tab", "shift+tab", "up", "down":
		a.login.FocusField(1 - a.login.Focus)
		return nil
	case "enter":
		email := strings.TrimSpace(a.login.EmailInput.Value())
		if email == "" {
			a.login.Error = "Email is required"
			a.login.FocusField(0)
			return nil
		}
		password := a.login.PasswordInput.Value()
		svc := a.auth
		a.login.Reset()
		a.login.EmailInput.Blur()
		a.mode = ModeNormal
		a.setMessage(MessageInfo, "Signing in...")
		return a.startAuth(func(ctx context.Context) tea.Msg {
			user, err := svc.Login(ctx, email, password)
			return loginDoneMsg{user: user, err: err}
		})
	}

	var cmd tea.Cmd
	if a.login.Focus == 0 {
		a.login.EmailInput, cmd = a.login.EmailInput.Update(msg)
	} else {
		a.login.PasswordInput, cmd = a.login.PasswordInput.Update(msg)
	}
	return cmd
}

// startAuth runs fn off the event loop with a cancellable context.
func (a *App) startAuth(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelAuth = cancel
	a.authPending = true
	return func() tea.Msg {
		return fn(ctx)
	}
}

func (a *App) finishAuth() {
	if a.cancelAuth != nil {
		a.cancelAuth()
		a.cancelAuth = nil
	}
	a.authPending = false
}

// === Help ===

func (a *App) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "?", "q", "esc":
		a.mode = ModeNormal
	}
}

// === Helpers ===

func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.mode {
	case ModeSearch:
		a.search.Input, cmd = a.search.Input.Update(msg)
	case ModeAddBookmark:
		if a.modal.Focus < fieldCollection {
			input := a.modal.inputs()[a.modal.Focus]
			*input, cmd = input.Update(msg)
		}
	case ModeLogin:
		if a.login.Focus == 0 {
			a.login.EmailInput, cmd = a.login.EmailInput.Update(msg)
		} else {
			a.login.PasswordInput, cmd = a.login.PasswordInput.Update(msg)
		}
	}
	return cmd
}

func (a *App) focusedLen() int {
	if a.focusedPane == PaneCollections {
		return len(a.store.Collections())
	}
	return len(a.store.FilteredBookmarks())
}

func (a *App) moveCursor(delta int) {
	if a.focusedPane == PaneCollections {
		a.setCursor(a.collectionCursor + delta)
	} else {
		a.setCursor(a.bookmarkCursor + delta)
	}
}

func (a *App) setCursor(i int) {
	i = max(min(i, a.focusedLen()-1), 0)
	if a.focusedPane == PaneCollections {
		a.collectionCursor = i
	} else {
		a.bookmarkCursor = i
	}
}

// syncCollectionCursor points the sidebar cursor at the active collection.
func (a *App) syncCollectionCursor() {
	active := a.store.ActiveCollection()
	if i := slices.IndexFunc(a.store.Collections(), func(c state.CollectionView) bool {
		return c.ID == active
	}); i >= 0 {
		a.collectionCursor = i
	}
}

func (a *App) clampCursors() {
	if n := len(a.store.Collections()); a.collectionCursor >= n {
		a.collectionCursor = max(n-1, 0)
	}
	if n := len(a.store.FilteredBookmarks()); a.bookmarkCursor >= n {
		a.bookmarkCursor = max(n-1, 0)
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}
