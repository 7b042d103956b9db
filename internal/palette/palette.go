// Package palette offers the power actions through an external launcher
// menu (rofi, fuzzel, wofi or dmenu).
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label    string // Display text
	Action   string // Action identifier returned on selection
	Icon     string // Icon name (e.g., "system-shutdown") for rofi -show-icons
	Meta     string // Hidden search keywords (rofi meta field)
	IsActive bool   // Highlighted as the preselected row
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show displays items under prompt, with an optional message bar, and
	// returns the selected item or ErrCancelled.
	Show(prompt string, items []Item, message string) (Item, error)
}

// AutoDetect selects the first available backend in priority order.
func AutoDetect() (Backend, error) {
	name, err := DetectBackend()
	if err != nil {
		return nil, err
	}
	return NewBackend(name)
}

// NewBackend creates a backend by name.
//
// Supported names: auto, rofi, fuzzel, wofi, dmenu.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		return AutoDetect()
	case "rofi", "fuzzel", "wofi", "dmenu":
		if _, err := exec.LookPath(name); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", name)
		}
		return newDmenuLike(name), nil
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, rofi, fuzzel, wofi, dmenu)", name)
	}
}
