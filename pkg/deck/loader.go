package deck

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadResult contains the result of loading a single deck file
type LoadResult struct {
	Path  string
	Deck  *Deck
	Error error
}

// DirLoader merges every deck in a directory into one.
type DirLoader struct {
	dir    string
	logger *log.Logger
}

// NewDirLoader creates a loader for the markdown files in dir
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{
		dir:    dir,
		logger: log.Default(),
	}
}

// SetLogger sets a custom logger for error reporting
func (l *DirLoader) SetLogger(logger *log.Logger) {
	l.logger = logger
}

// List returns the deck files in a directory, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isDeckFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func isDeckFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return (ext == ".md" || ext == ".markdown") && !strings.HasPrefix(name, ".")
}

// LoadAll parses every deck file in parallel and concatenates the slides in
// file name order. Files that fail to parse are logged and skipped; it is
// an error only when nothing could be loaded.
func (l *DirLoader) LoadAll(ctx context.Context) (*Deck, []LoadResult, error) {
	paths, err := List(l.dir)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no decks in %s: %w", l.dir, ErrEmptyDeck)
	}

	results, err := l.loadParallel(ctx, paths)
	if err != nil {
		return nil, results, fmt.Errorf("fatal error during parallel loading: %w", err)
	}

	merged := &Deck{
		Title: filepath.Base(l.dir),
		Path:  l.dir,
	}
	for _, result := range results {
		if result.Error != nil {
			l.logDeckError(result.Path, result.Error)
			continue
		}
		merged.Settings = merged.Settings.Merge(result.Deck.Settings)
		merged.Slides = append(merged.Slides, result.Deck.Slides...)
	}
	if len(merged.Slides) == 0 {
		return nil, results, fmt.Errorf("%s: %w", l.dir, ErrEmptyDeck)
	}
	return merged, results, nil
}

func (l *DirLoader) loadParallel(ctx context.Context, paths []string) ([]LoadResult, error) {
	results := make([]LoadResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = LoadResult{Path: path, Error: ctx.Err()}
				return nil
			default:
			}
			d, err := LoadFile(path)
			results[i] = LoadResult{Path: path, Deck: d, Error: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (l *DirLoader) logDeckError(path string, err error) {
	if l.logger != nil {
		l.logger.Printf("WARNING: Failed to load deck %q: %v", path, err)
	}
}

// Load reads path as a single deck file or, for a directory, merges every
// deck in it.
func Load(ctx context.Context, path string) (*Deck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}
	if !info.IsDir() {
		return LoadFile(path)
	}
	d, _, err := NewDirLoader(path).LoadAll(ctx)
	return d, err
}
