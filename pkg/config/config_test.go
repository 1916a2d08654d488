package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dicklesworthstone/tumble/pkg/carousel"
	"github.com/Dicklesworthstone/tumble/pkg/config"
)

func TestParseAndApply(t *testing.T) {
	s, err := config.Parse([]byte("rotate: false\ntimeout: 3000\ninitial_slide: 2\nshow_pagination: false\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	opts := s.Options()
	want := carousel.Options{
		InitialSlide:   2,
		Rotate:         false,
		Timeout:        3 * time.Second,
		ShowControls:   true,
		ShowPagination: false,
	}
	if opts != want {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	s, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Options() != carousel.DefaultOptions() {
		t.Errorf("Expected defaults, got %+v", s.Options())
	}
	if s.GetStyle() != "dark" || !s.MouseEnabled() {
		t.Error("Unexpected presentation defaults")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "autoplay: true\n"},
		{"negative initial", "initial_slide: -1\n"},
		{"zero timeout", "timeout: 0\n"},
		{"bad type", "rotate: maybe\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Expected error for %q", tt.yaml)
			}
		})
	}
	_, err := config.Parse([]byte("timeout: -5\n"))
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestMergeLaterWins(t *testing.T) {
	base := config.Settings{Rotate: config.Bool(true), Timeout: config.Int(1000)}
	over := config.Settings{Timeout: config.Int(2000), Style: config.String("light")}
	got := base.Merge(over)
	if !*got.Rotate || *got.Timeout != 2000 || got.GetStyle() != "light" {
		t.Errorf("Unexpected merge result: rotate=%v timeout=%d style=%s", *got.Rotate, *got.Timeout, got.GetStyle())
	}
	if *base.Timeout != 1000 {
		t.Error("Merge modified the receiver")
	}
}

func TestDiscoverReadsDeckDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	s, err := config.Discover(dir)
	if err != nil {
		t.Fatalf("Discover with no files: %v", err)
	}
	if s.Rotate != nil {
		t.Error("Expected empty settings")
	}

	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("show_controls: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err = config.Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if s.Options().ShowControls {
		t.Error("Expected show_controls from the deck directory")
	}

	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("show_controls: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Discover(dir); err == nil {
		t.Error("Expected error for malformed settings")
	}
}
