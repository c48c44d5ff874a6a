package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/stash/internal/auth"
	"github.com/nikbrunner/stash/internal/exporter"
	"github.com/nikbrunner/stash/internal/logger"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/picker"
	"github.com/nikbrunner/stash/internal/search"
	"github.com/nikbrunner/stash/internal/state"
	"github.com/nikbrunner/stash/internal/storage"
	"github.com/nikbrunner/stash/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "list":
			runList(os.Args[2:])
			return
		case "tags":
			runTags()
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "login":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: stash login <email>\n")
				os.Exit(1)
			}
			runLogin(os.Args[2])
			return
		case "logout":
			runLogout()
			return
		case "whoami":
			runWhoami()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	runTUI()
}

func printHelp() {
	help := `stash - keyboard-driven bookmark collections

Usage:
  stash                 Open interactive TUI
  stash <query>         Quick search → select → open
  stash list [flags]    Print bookmarks in the current view
      -collection <id>  all, favorites, recently_added or a collection id
      -search <term>    Filter by title, description or tag
      -tag <tag>        Filter by tag
      -range <range>    all, today, last7days or last30days
      -all              Print every match instead of the first page
  stash tags            List tags in use
  stash export [path]   Export bookmarks (.html, .json or .yaml)
  stash login <email>   Sign in (any password works)
  stash logout          Sign out
  stash whoami          Show the signed-in user
  stash help            Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    Tab/h/l     Switch pane
    Enter       Open collection / bookmark

  Filters:
    /           Live search
    t           Cycle tag filter
    r           Cycle date range
    n           Load more

  Editing:
    a           Add bookmark
    f           Toggle favorite
    d           Delete
    J/K         Move bookmark down/up
    Y           Copy URL to clipboard

  Bulk select:
    v           Toggle bulk mode
    Space       Toggle selection
    A           Select all visible
    Esc         Clear selection / cancel

  Other:
    L           Log in / out
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/stash/config.json
`
	fmt.Print(help)
}

// env is everything a subcommand needs, built from the config file.
type env struct {
	log   logger.Logger
	kv    storage.KV
	auth  *auth.Service
	store *state.Store
}

func (e *env) Close() {
	if e.kv != nil {
		_ = e.kv.Close()
	}
	_ = e.log.Sync()
}

// setup loads config, seed data and the auth session. Failures are fatal.
func setup() *env {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fatal("getting config path", err)
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fatal("loading config", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fatal("loading environment", err)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile, err = storage.DefaultLogFilePath()
		if err != nil {
			fatal("getting log path", err)
		}
	}
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: logFile})
	if err != nil {
		fatal("creating logger", err)
	}

	seed, err := storage.OpenSeed(cfg.SeedPath)
	if err != nil {
		fatal("loading bookmarks", err)
	}

	kv, err := storage.OpenKV(cfg.AuthBackend)
	if err != nil {
		fatal("opening auth store", err)
	}

	delay := cfg.AuthDelay()
	svc := auth.New(auth.Params{KV: kv, Logger: log.Named("auth"), Delay: &delay})
	if err := svc.Restore(); err != nil {
		log.Warn("restoring session failed", logger.Error(err))
	}

	store := state.New(state.Params{
		Seed:        seed,
		Auth:        svc,
		Logger:      log.Named("state"),
		PageSize:    cfg.PageSize,
		RecentLimit: cfg.RecentLimit,
	})

	return &env{log: log, kv: kv, auth: svc, store: store}
}

func fatal(doing string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", doing, err)
	os.Exit(1)
}

// runTUI runs the full interactive TUI.
func runTUI() {
	e := setup()
	defer e.Close()

	app := tui.NewApp(tui.AppParams{
		Store:   e.store,
		Auth:    e.auth,
		Logger:  e.log.Named("tui"),
		OpenURL: openURL,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		e.log.Error("tui exited", logger.Error(err))
		fatal("running app", err)
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	e := setup()
	defer e.Close()

	results := search.FuzzySearchBookmarks(e.store.Bookmarks(), query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	var selected model.Bookmark
	if len(results) == 1 {
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		program := tea.NewProgram(picker.New(picker.Params{
			Results:     results,
			Query:       query,
			Collections: e.store.StaticCollections(),
		}))
		finalModel, err := program.Run()
		if err != nil {
			fatal("running picker", err)
		}

		finalPicker := finalModel.(picker.Picker)
		var ok bool
		selected, ok = finalPicker.SelectedBookmark()
		if !ok {
			return
		}
		if finalPicker.Action() == picker.ActionCopy {
			if err := clipboard.WriteAll(selected.URL); err != nil {
				fatal("copying URL", err)
			}
			fmt.Printf("Copied %s\n", selected.URL)
			return
		}
	}

	if err := openURL(selected.URL); err != nil {
		fatal("opening bookmark", err)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}
	return cmd.Start()
}

// runList prints the derived view for the given filters.
func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	collection := fs.String("collection", model.CollectionAll, "collection id")
	term := fs.String("search", "", "search term")
	tag := fs.String("tag", "", "tag filter")
	dateRange := fs.String("range", "", "date range: all, today, last7days, last30days")
	all := fs.Bool("all", false, "print every match")
	_ = fs.Parse(args)

	e := setup()
	defer e.Close()

	e.store.SetActiveCollection(*collection)
	e.store.SetSearchTerm(*term)
	e.store.SetSelectedTag(*tag)
	e.store.SetSelectedDateRange(state.DateRange(*dateRange))
	if *all {
		for e.store.HasMore() {
			e.store.LoadMoreBookmarks()
		}
	}

	names := make(map[string]string)
	for _, c := range e.store.Collections() {
		names[c.ID] = c.Name
	}

	bookmarks := e.store.FilteredBookmarks()
	for _, b := range bookmarks {
		star := " "
		if b.IsFavorite {
			star = "★"
		}
		fmt.Printf("%s %3d  %-32s  %s", star, b.ID, b.Title, b.URL)
		if name := names[b.Collection]; name != "" {
			fmt.Printf("  [%s]", name)
		}
		if len(b.Tags) > 0 {
			fmt.Printf("  #%s", strings.Join(b.Tags, " #"))
		}
		fmt.Println()
	}

	fmt.Printf("\n%d of %d bookmarks", len(bookmarks), e.store.FilteredTotal())
	if name := names[e.store.ActiveCollection()]; name != "" {
		fmt.Printf(" in %s", name)
	}
	fmt.Println()
}

// runTags prints every tag in use.
func runTags() {
	e := setup()
	defer e.Close()

	for _, tag := range e.store.AvailableTags() {
		fmt.Println(tag)
	}
}

// runExport writes the bookmarks to outputPath in the format its
// extension names, HTML by default.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fatal("getting default export path", err)
		}
	}

	e := setup()
	defer e.Close()

	export := &model.Store{
		Collections: e.store.StaticCollections(),
		Bookmarks:   e.store.Bookmarks(),
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".json", ".yaml", ".yml":
		if err := storage.SaveSeed(outputPath, export); err != nil {
			fatal("writing file", err)
		}
	default:
		if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(export)), 0644); err != nil {
			fatal("writing file", err)
		}
	}

	fmt.Printf("Exported %d bookmarks, %d collections to %s\n",
		len(export.Bookmarks), len(export.Collections), outputPath)
}

// runLogin signs in with the mocked provider. Ctrl+C aborts the delay.
func runLogin(email string) {
	e := setup()
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Signing in...")
	user, err := e.auth.Login(ctx, email, "")
	if errors.Is(err, context.Canceled) {
		fmt.Println("Login cancelled")
		return
	}
	if err != nil {
		fatal("logging in", err)
	}
	fmt.Printf("Signed in as %s\n", user.Email)
}

// runLogout clears the stored session.
func runLogout() {
	e := setup()
	defer e.Close()

	if !e.auth.IsAuthenticated() {
		fmt.Println("Not signed in")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := e.auth.Logout(ctx); err != nil {
		fatal("logging out", err)
	}
	fmt.Println("Signed out")
}

// runWhoami prints the current user.
func runWhoami() {
	e := setup()
	defer e.Close()

	user, ok := e.auth.CurrentUser()
	if !ok {
		fmt.Println("Not signed in")
		return
	}
	fmt.Printf("%s (%s)\n", user.Email, user.DisplayName)
}
