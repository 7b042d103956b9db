package ui

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed style.yaml
var bundledStyleSheet []byte

// styleClass is one entry of the style sheet.
type styleClass struct {
	Foreground       string `yaml:"foreground"`
	Background       string `yaml:"background"`
	Bold             bool   `yaml:"bold"`
	Padding          []int  `yaml:"padding"`
	MarginBottom     int    `yaml:"margin_bottom"`
	Border           string `yaml:"border"`
	BorderForeground string `yaml:"border_foreground"`
}

type styleSheet struct {
	Window        styleClass `yaml:"window"`
	TitleHeader   styleClass `yaml:"title-header"`
	Button        styleClass `yaml:"button"`
	ButtonFocused styleClass `yaml:"button-focused"`
	Help          styleClass `yaml:"help"`
}

// Theme holds the styles applied to every element of the widget.
type Theme struct {
	Window        lipgloss.Style
	Clock         lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Help          lipgloss.Style
}

// DefaultTheme parses the bundled style sheet.
func DefaultTheme() (*Theme, error) {
	return ParseTheme(bundledStyleSheet)
}

// ParseTheme builds a Theme from style sheet YAML.
func ParseTheme(data []byte) (*Theme, error) {
	var sheet styleSheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sheet); err != nil {
		return nil, fmt.Errorf("style sheet: %w", err)
	}

	th := &Theme{}
	for _, cl := range []struct {
		name string
		c    styleClass
		dst  *lipgloss.Style
	}{
		{"window", sheet.Window, &th.Window},
		{"title-header", sheet.TitleHeader, &th.Clock},
		{"button", sheet.Button, &th.Button},
		{"button-focused", sheet.ButtonFocused, &th.ButtonFocused},
		{"help", sheet.Help, &th.Help},
	} {
		s, err := cl.c.style()
		if err != nil {
			return nil, fmt.Errorf("style sheet: %s: %w", cl.name, err)
		}
		*cl.dst = s
	}
	return th, nil
}

func (c styleClass) style() (lipgloss.Style, error) {
	s := lipgloss.NewStyle().Bold(c.Bold)
	if c.Foreground != "" {
		s = s.Foreground(lipgloss.Color(c.Foreground))
	}
	if c.Background != "" {
		s = s.Background(lipgloss.Color(c.Background))
	}

	switch len(c.Padding) {
	case 0:
	case 1:
		s = s.Padding(c.Padding[0])
	case 2:
		s = s.Padding(c.Padding[0], c.Padding[1])
	case 4:
		s = s.Padding(c.Padding[0], c.Padding[1], c.Padding[2], c.Padding[3])
	default:
		return s, fmt.Errorf("padding takes 1, 2 or 4 values, got %d", len(c.Padding))
	}

	if c.MarginBottom > 0 {
		s = s.MarginBottom(c.MarginBottom)
	}

	switch c.Border {
	case "", "none":
	case "rounded":
		s = s.Border(lipgloss.RoundedBorder())
	case "normal":
		s = s.Border(lipgloss.NormalBorder())
	case "thick":
		s = s.Border(lipgloss.ThickBorder())
	case "double":
		s = s.Border(lipgloss.DoubleBorder())
	default:
		return s, fmt.Errorf("unknown border %q", c.Border)
	}
	if c.BorderForeground != "" {
		s = s.BorderForeground(lipgloss.Color(c.BorderForeground))
	}
	return s, nil
}
