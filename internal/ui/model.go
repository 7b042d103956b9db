package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/systool/internal/app"
)

// Abstract window units per terminal cell.
const unitsPerCell = 10

// timeMsg carries a new displayed time from the state observer.
type timeMsg string

type button struct {
	label string
	kind  app.EventKind
}

var buttons = []button{
	{"Shutdown", app.RequestShutdown},
	{"Reboot", app.RequestReboot},
	{"Logout", app.RequestLogout},
	{"Hibernate", app.RequestHibernate},
	{"Sleep", app.RequestSleep},
}

// model is the root bubbletea model: one clock label above five buttons.
type model struct {
	title string
	cols  int
	rows  int
	clock string

	focus int
	post  func(app.Event) error

	// Confirmation prompt for destructive buttons.
	confirmDestructive bool
	form               *huh.Form
	answer             *bool
	pending            int

	theme *Theme
	keys  keyMap
	help  help.Model

	// Terminal dimensions
	width  int
	height int
}

func newModel(opts Options, initial string, post func(app.Event) error) model {
	cols := opts.Width / unitsPerCell
	rows := opts.Height / unitsPerCell
	return model{
		title:              opts.Title,
		cols:               cols,
		rows:               rows,
		clock:              initial,
		post:               post,
		confirmDestructive: opts.ConfirmDestructive,
		theme:              opts.Theme,
		keys:               defaultKeyMap(),
		help:               help.New(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timeMsg:
		m.clock = string(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	// The confirmation prompt captures all input; only ctrl+c escapes.
	if m.form != nil {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.focus = (m.focus - 1 + len(buttons)) % len(buttons)
		case key.Matches(msg, m.keys.Down):
			m.focus = (m.focus + 1) % len(buttons)
		case key.Matches(msg, m.keys.Activate):
			return m.press(m.focus)
		case key.Matches(msg, m.keys.Direct):
			i := int(msg.String()[0] - '1')
			m.focus = i
			return m.press(i)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i, ok := m.buttonAt(msg.X, msg.Y); ok {
			m.focus = i
			return m.press(i)
		}
	}
	return m, nil
}

// press activates button i, asking first when it is destructive and
// confirmation is enabled.
func (m model) press(i int) (tea.Model, tea.Cmd) {
	b := buttons[i]
	if m.confirmDestructive && b.kind.Destructive() {
		m.pending = i
		m.answer = new(bool)
		m.form = newConfirmForm(b.label, m.answer, m.cols)
		return m, m.form.Init()
	}
	return m.emit(b.kind)
}

func (m model) emit(kind app.EventKind) (tea.Model, tea.Cmd) {
	if err := m.post(app.Event{Kind: kind}); err != nil {
		if errors.Is(err, app.ErrStopped) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.resolveConfirm(false)
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.resolveConfirm(*m.answer)
	case huh.StateAborted:
		return m.resolveConfirm(false)
	}
	return m, cmd
}

func (m model) resolveConfirm(ok bool) (tea.Model, tea.Cmd) {
	kind := buttons[m.pending].kind
	m.form = nil
	m.answer = nil
	if !ok {
		return m, nil
	}
	return m.emit(kind)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	helpBar := m.theme.Help.Render(m.help.View(m.keys))
	body := lipgloss.Place(m.width, m.height-lipgloss.Height(helpBar), lipgloss.Center, lipgloss.Center, m.box())
	return lipgloss.JoinVertical(lipgloss.Left, body, helpBar)
}

// box renders the window: the clock label and the buttons, or the
// confirmation prompt while one is open.
func (m model) box() string {
	inner := m.innerWidth()

	var content string
	if m.form != nil {
		content = m.form.View()
	} else {
		parts := []string{m.renderClock()}
		for i := range buttons {
			parts = append(parts, m.renderButton(i))
		}
		content = lipgloss.JoinVertical(lipgloss.Center, parts...)
	}

	return m.theme.Window.
		Width(inner + m.theme.Window.GetHorizontalPadding()).
		Height(m.rows).
		Align(lipgloss.Center).
		Render(content)
}

func (m model) innerWidth() int {
	w := m.cols - m.theme.Window.GetHorizontalPadding()
	if least := len("Hibernate") + m.theme.Button.GetHorizontalPadding(); w < least {
		w = least
	}
	if w < len(m.clock) {
		w = len(m.clock)
	}
	return w
}

func (m model) renderClock() string {
	return m.theme.Clock.Render(m.clock)
}

func (m model) renderButton(i int) string {
	style := m.theme.Button
	if i == m.focus {
		style = m.theme.ButtonFocused
	}
	return style.Width(m.innerWidth()).Align(lipgloss.Center).Render(buttons[i].label)
}

// buttonAt maps a terminal cell to a button index using the same geometry
// View produces.
func (m model) buttonAt(x, y int) (int, bool) {
	if m.form != nil || m.width == 0 || m.height == 0 {
		return 0, false
	}

	helpBar := m.theme.Help.Render(m.help.View(m.keys))
	box := m.box()
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
	bodyH := m.height - lipgloss.Height(helpBar)

	left := max(0, (m.width-boxW)/2)
	top := max(0, (bodyH-boxH)/2)
	if x < left || x >= left+boxW {
		return 0, false
	}

	row := top + m.theme.Window.GetBorderTopSize() + m.theme.Window.GetPaddingTop() + lipgloss.Height(m.renderClock())
	for i := range buttons {
		h := lipgloss.Height(m.renderButton(i))
		if y >= row && y < row+h {
			return i, true
		}
		row += h
	}
	return 0, false
}

func newConfirmForm(label string, answer *bool, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s now?", label)).
				Description(strings.ToLower(label) + " cannot be undone from here").
				Affirmative("Yes").
				Negative("No").
				Value(answer),
		),
	).WithShowHelp(false).WithWidth(width)
}
