package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/tumble/pkg/carousel"
	"github.com/Dicklesworthstone/tumble/pkg/config"
	"github.com/Dicklesworthstone/tumble/pkg/deck"
	"github.com/Dicklesworthstone/tumble/pkg/ui"
	"github.com/Dicklesworthstone/tumble/pkg/updater"
	"github.com/Dicklesworthstone/tumble/pkg/version"
)

type cliFlags struct {
	version      bool
	checkUpdate  bool
	print        bool
	watch        bool
	merge        bool
	noRotate     bool
	noControls   bool
	noPagination bool
	noMouse      bool
	timeout      int
	slide        int
	style        string
}

func main() {
	var f cliFlags
	flag.BoolVar(&f.version, "version", false, "Show version")
	flag.BoolVar(&f.checkUpdate, "check-update", false, "Check for a newer release and exit")
	flag.BoolVar(&f.print, "print", false, "Print the slides instead of running the carousel")
	flag.BoolVar(&f.watch, "watch", false, "Reload the deck when it changes on disk")
	flag.BoolVar(&f.merge, "merge", false, "Merge every deck in a directory instead of picking one")
	flag.BoolVar(&f.noRotate, "no-rotate", false, "Disable auto-advance")
	flag.BoolVar(&f.noControls, "no-controls", false, "Hide the prev/next controls")
	flag.BoolVar(&f.noPagination, "no-pagination", false, "Hide the pagination dots")
	flag.BoolVar(&f.noMouse, "no-mouse", false, "Do not capture the mouse")
	flag.IntVar(&f.timeout, "timeout", 0, "Auto-advance interval in milliseconds")
	flag.IntVar(&f.slide, "slide", 0, "Start at slide `N` (1-based)")
	flag.StringVar(&f.style, "style", "", "Markdown style: dark, light, notty, dracula, ...")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tumble [flags] [deck.md | dir]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if f.version {
		fmt.Printf("tumble %s\n", version.Version)
		return
	}
	if f.checkUpdate {
		tag, url, err := updater.CheckForUpdates(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking for updates: %v\n", err)
			os.Exit(1)
		}
		if tag == "" {
			fmt.Println("tumble is up to date")
			return
		}
		fmt.Printf("New version available: %s (%s)\n", tag, url)
		return
	}

	if err := run(f, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f cliFlags, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !f.print

	path, isDir, err := resolveDeck(target, f.merge, interactive)
	if err != nil {
		return err
	}

	overrides := flagSettings(f)
	d, settings, err := loadDeck(path, isDir, overrides)
	if err != nil {
		return err
	}

	if !interactive {
		return printDeck(os.Stdout, d, settings.GetStyle())
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	app, err := ui.NewApp(d, ui.AppConfig{
		Options: settings.Options(),
		Theme:   ui.DefaultTheme(lipgloss.DefaultRenderer()),
		Style:   settings.GetStyle(),
		Logger:  log.Default(),
	})
	if err != nil {
		return err
	}

	if f.watch {
		w, err := deck.NewWatcher(path, isDir)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		defer w.Close()
		app.Watch(w, func() (*deck.Deck, carousel.Options, error) {
			d, s, err := loadDeck(path, isDir, overrides)
			if err != nil {
				return nil, carousel.Options{}, err
			}
			return d, s.Options(), nil
		})
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if settings.MouseEnabled() {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err = tea.NewProgram(app, opts...).Run()
	return err
}

// loadDeck reads the deck at path and resolves its settings: user and
// project config, then the deck's front matter, then overrides.
func loadDeck(path string, isDir bool, overrides config.Settings) (*deck.Deck, config.Settings, error) {
	d, err := deck.Load(context.Background(), path)
	if err != nil {
		return nil, config.Settings{}, err
	}
	deckDir := path
	if !isDir {
		deckDir = filepath.Dir(path)
	}
	settings, err := config.Discover(deckDir)
	if err != nil {
		return nil, config.Settings{}, err
	}
	return d, settings.Merge(d.Settings).Merge(overrides), nil
}

// resolveDeck picks the file (or, with merge, directory) to show.
func resolveDeck(target string, merge, interactive bool) (string, bool, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", false, fmt.Errorf("failed to read deck %s: %w", target, err)
	}
	if !info.IsDir() {
		return target, false, nil
	}
	if merge {
		return target, true, nil
	}

	paths, err := deck.List(target)
	if err != nil {
		return "", false, err
	}
	switch {
	case len(paths) == 0:
		return "", false, fmt.Errorf("no decks in %s: %w", target, deck.ErrEmptyDeck)
	case len(paths) == 1:
		return paths[0], false, nil
	case !interactive:
		return "", false, fmt.Errorf("%d decks in %s; pass one, or use --merge", len(paths), target)
	}

	choice, err := pickDeck(paths)
	return choice, false, err
}

func pickDeck(paths []string) (string, error) {
	options := make([]huh.Option[string], len(paths))
	for i, p := range paths {
		options[i] = huh.NewOption(filepath.Base(p), p)
	}
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which deck?").
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errors.New("no deck selected")
		}
		return "", err
	}
	return choice, nil
}

// flagSettings turns the flags that were set into the top settings layer.
func flagSettings(f cliFlags) config.Settings {
	var s config.Settings
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "no-rotate":
			s.Rotate = config.Bool(!f.noRotate)
		case "no-controls":
			s.ShowControls = config.Bool(!f.noControls)
		case "no-pagination":
			s.ShowPagination = config.Bool(!f.noPagination)
		case "no-mouse":
			s.Mouse = config.Bool(!f.noMouse)
		case "timeout":
			s.Timeout = config.Int(f.timeout)
		case "slide":
			// Users count from 1.
			s.InitialSlide = config.Int(f.slide - 1)
		case "style":
			s.Style = config.String(f.style)
		}
	})
	return s
}

// setupLogging keeps log output off the screen while the TUI runs.
func setupLogging() (func(), error) {
	if os.Getenv("TUMBLE_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile("tumble-debug.log", "tumble")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}

// printDeck writes every slide, separated by a rule, for pipes and --print.
func printDeck(w io.Writer, d *deck.Deck, style string) error {
	width := 80
	if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 {
		width = cols
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		style = "notty"
	}
	md := ui.NewMarkdownRenderer(width-4, style)
	rule := strings.Repeat("─", width)
	for i, s := range d.Slides {
		if i > 0 {
			if _, err := fmt.Fprintln(w, rule); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\n", ui.PageIndicator(i+1, len(d.Slides)))
		if _, err := fmt.Fprintln(w, md.Render(s.Body)); err != nil {
			return err
		}
	}
	return nil
}
