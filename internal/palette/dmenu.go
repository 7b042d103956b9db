package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// runFunc runs a launcher with input on stdin and returns its stdout.
type runFunc func(name string, args []string, input string) (string, error)

type dmenuLikeBackend struct {
	command string
	// indexOutput backends print the selected row index instead of its text.
	indexOutput bool
	run         runFunc
}

func newDmenuLike(command string) *dmenuLikeBackend {
	return &dmenuLikeBackend{
		command:     command,
		indexOutput: command == "rofi" || command == "fuzzel",
		run:         runLauncher,
	}
}

func (b *dmenuLikeBackend) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	out, err := b.run(b.command, b.buildArgs(prompt, message, items), b.formatInput(items))
	selection := strings.TrimSpace(out)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		return Item{}, err
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return b.parseSelection(selection, items)
}

func (b *dmenuLikeBackend) buildArgs(prompt string, message string, items []Item) []string {
	var args []string

	// Only rofi has a message bar; the others show the message in the prompt.
	if b.command != "rofi" && message != "" {
		if prompt == "" {
			prompt = message
		} else {
			prompt += ": " + message
		}
	}

	switch b.command {
	case "rofi":
		args = []string{"-dmenu", "-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		// Index output keeps selection parsing independent of label text.
		args = append(args, "-format", "i", "-no-custom", "-show-icons")
		if row, ok := activeRow(items); ok {
			args = append(args, "-a", strconv.Itoa(row), "-selected-row", strconv.Itoa(row))
		}
		if message != "" {
			args = append(args, "-mesg", message)
		}

	case "fuzzel":
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt+" ")
		}

	case "wofi":
		args = []string{"--dmenu", "--allow-images"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}

	default:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}

	return args
}

func (b *dmenuLikeBackend) formatInput(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, b.formatItem(item))
	}
	return strings.Join(lines, "\n")
}

func (b *dmenuLikeBackend) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)

	switch b.command {
	case "rofi":
		// Row properties use a single NUL followed by \x1f separated key/value pairs.
		var attrs []string
		if item.Icon != "" {
			attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
		}
		if item.Meta != "" {
			attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
		}
		if len(attrs) > 0 {
			display += "\x00" + strings.Join(attrs, "\x1f")
		}
	case "fuzzel":
		if item.Icon != "" {
			display += "\x00icon\x1f" + sanitizeRofiField(item.Icon)
		}
	}
	return display
}

func (b *dmenuLikeBackend) parseSelection(selection string, items []Item) (Item, error) {
	if b.indexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func activeRow(items []Item) (int, bool) {
	for i, item := range items {
		if item.IsActive {
			return i, true
		}
	}
	return 0, false
}

func runLauncher(name string, args []string, input string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil && !isCancelExit(err) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return string(out), fmt.Errorf("%s failed: %s", name, msg)
		}
		return string(out), fmt.Errorf("%s failed: %w", name, err)
	}
	return string(out), err
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// Launchers use 1 for "no selection" and 130 for Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
