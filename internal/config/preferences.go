package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences holds user-configurable display settings. Persisted to
// ~/.config/mdux/config.json.
type Preferences struct {
	// Width overrides the detected terminal width when positive.
	Width int `json:"width,omitempty"`

	// Theme selects the palette: "default" or "mono".
	Theme string `json:"theme,omitempty"`

	// SyntaxHighlight enables chroma coloring in fenced code blocks.
	SyntaxHighlight bool `json:"syntax_highlight"`

	// ChromaStyle names the chroma style used when highlighting.
	ChromaStyle string `json:"chroma_style,omitempty"`
}

// DefaultPreferences returns the defaults used when no config file
// exists.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:           "default",
		SyntaxHighlight: true,
	}
}

// LoadPreferences reads ~/.config/mdux/config.json, falling back to
// defaults when the file is missing or malformed.
func LoadPreferences() Preferences {
	p := DefaultPreferences()
	dir := ConfigDir()
	if dir == "" {
		return p
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		fmt.Fprintf(os.Stderr, "config: parse config.json: %v\n", err)
		return DefaultPreferences()
	}
	if p.Theme != "default" && p.Theme != "mono" {
		p.Theme = "default"
	}
	if p.Width < 0 {
		p.Width = 0
	}
	return p
}

// SavePreferences writes preferences to ~/.config/mdux/config.json.
func SavePreferences(p Preferences) error {
	dir := ConfigDir()
	if dir == "" {
		return fmt.Errorf("could not determine config directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600)
}
