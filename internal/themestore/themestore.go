// Package themestore owns the light/dark preference.
package themestore

import (
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/idilsaglam/taskboard/internal/storage"
)

// StorageKey holds the raw theme string.
const StorageKey = "theme"

const (
	Light = "light"
	Dark  = "dark"
)

// Preference reports the system's colour scheme.
type Preference interface {
	PrefersDark() bool
}

// TerminalPreference asks the terminal for its background colour.
// Output defaults to os.Stdout. When it is not a terminal nothing can be
// detected and the answer is light.
type TerminalPreference struct {
	Output *os.File
}

func (p TerminalPreference) PrefersDark() bool {
	out := p.Output
	if out == nil {
		out = os.Stdout
	}
	if !term.IsTerminal(out.Fd()) {
		return false
	}
	return lipgloss.HasDarkBackground()
}

// StaticPreference is a fixed answer.
type StaticPreference bool

func (p StaticPreference) PrefersDark() bool { return bool(p) }

// Store keeps the current theme and writes every change through.
type Store struct {
	kv    storage.KeyValue
	theme string
}

// New picks the persisted theme, falling back to the system preference
// and finally to light. pref may be nil.
func New(kv storage.KeyValue, pref Preference) (*Store, error) {
	saved, ok, err := kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	s := &Store{kv: kv}
	switch {
	case ok && saved != "":
		s.theme = saved
	case pref != nil && pref.PrefersDark():
		s.theme = Dark
	default:
		s.theme = Light
	}
	log.Printf("themestore: initial theme %q", s.theme)
	return s, nil
}

// Theme returns the raw theme value.
func (s *Store) Theme() string { return s.theme }

// IsDark reports whether the theme is dark.
func (s *Store) IsDark() bool { return s.theme == Dark }

// SetTheme stores value as-is; callers validate user input.
func (s *Store) SetTheme(value string) error {
	s.theme = value
	return s.save()
}

// Toggle flips between light and dark. Any other value becomes light.
func (s *Store) Toggle() error {
	if s.theme == Light {
		s.theme = Dark
	} else {
		s.theme = Light
	}
	return s.save()
}

func (s *Store) save() error {
	if err := s.kv.Set(StorageKey, s.theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	log.Printf("themestore: theme %q", s.theme)
	return nil
}
