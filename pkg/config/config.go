// Package config loads carousel settings from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/tumble/pkg/carousel"
)

// FileName is the per-deck settings file looked up next to a deck.
const FileName = ".tumble.yaml"

// ErrInvalid is returned for settings that can never be honored.
var ErrInvalid = errors.New("invalid settings")

// Settings holds optional overrides. A nil field keeps the value from the
// layer below it.
type Settings struct {
	InitialSlide   *int    `yaml:"initial_slide,omitempty"`
	Rotate         *bool   `yaml:"rotate,omitempty"`
	Timeout        *int    `yaml:"timeout,omitempty"` // milliseconds
	ShowControls   *bool   `yaml:"show_controls,omitempty"`
	ShowPagination *bool   `yaml:"show_pagination,omitempty"`
	Style          *string `yaml:"style,omitempty"` // glamour style: dark, light, notty, ...
	Mouse          *bool   `yaml:"mouse,omitempty"`
}

// Parse decodes settings, rejecting unknown keys.
func Parse(data []byte) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadFile reads settings from path.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// UserPath returns the per-user settings location, or "" if there is no
// home directory.
func UserPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tumble", "config.yaml")
}

// Discover merges the user settings and the settings file in deckDir.
// Missing files are skipped; malformed ones are errors.
func Discover(deckDir string) (Settings, error) {
	var merged Settings
	for _, path := range []string{UserPath(), filepath.Join(deckDir, FileName)} {
		if path == "" {
			continue
		}
		s, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Settings{}, err
		}
		merged = merged.Merge(s)
	}
	return merged, nil
}

// Validate checks the fields that are set.
func (s Settings) Validate() error {
	if s.InitialSlide != nil && *s.InitialSlide < 0 {
		return fmt.Errorf("initial_slide %d: %w", *s.InitialSlide, ErrInvalid)
	}
	if s.Timeout != nil && *s.Timeout <= 0 {
		return fmt.Errorf("timeout %dms: %w", *s.Timeout, ErrInvalid)
	}
	return nil
}

// Merge returns s with every field set in over replacing its own.
func (s Settings) Merge(over Settings) Settings {
	if over.InitialSlide != nil {
		s.InitialSlide = over.InitialSlide
	}
	if over.Rotate != nil {
		s.Rotate = over.Rotate
	}
	if over.Timeout != nil {
		s.Timeout = over.Timeout
	}
	if over.ShowControls != nil {
		s.ShowControls = over.ShowControls
	}
	if over.ShowPagination != nil {
		s.ShowPagination = over.ShowPagination
	}
	if over.Style != nil {
		s.Style = over.Style
	}
	if over.Mouse != nil {
		s.Mouse = over.Mouse
	}
	return s
}

// Apply overlays s onto opts.
func (s Settings) Apply(opts carousel.Options) carousel.Options {
	if s.InitialSlide != nil {
		opts.InitialSlide = *s.InitialSlide
	}
	if s.Rotate != nil {
		opts.Rotate = *s.Rotate
	}
	if s.Timeout != nil {
		opts.Timeout = time.Duration(*s.Timeout) * time.Millisecond
	}
	if s.ShowControls != nil {
		opts.ShowControls = *s.ShowControls
	}
	if s.ShowPagination != nil {
		opts.ShowPagination = *s.ShowPagination
	}
	return opts
}

// Options returns the carousel options for s over the defaults.
func (s Settings) Options() carousel.Options {
	return s.Apply(carousel.DefaultOptions())
}

// GetStyle returns the markdown style, defaulting to "dark".
func (s Settings) GetStyle() string {
	if s.Style == nil || *s.Style == "" {
		return "dark"
	}
	return *s.Style
}

// MouseEnabled reports whether mouse clicks should be captured. Defaults to true.
func (s Settings) MouseEnabled() bool {
	return s.Mouse == nil || *s.Mouse
}

// Int returns a pointer to v, for building Settings in code.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
