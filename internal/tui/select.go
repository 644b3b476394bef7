// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meslamib3/storiesdb/internal/errors"
	"github.com/meslamib3/storiesdb/internal/method"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a record.
	ActionSelected
	// ActionCancelled indicates the user left the picker without choosing.
	ActionCancelled
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action SelectionAction
	ID     int64
}

type methodItem struct {
	method.Method
}

func (i methodItem) Title() string {
	name := i.MethodName
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("#%d %s", i.ID, name)
}

func (i methodItem) FilterValue() string {
	return i.MethodName
}

func (i methodItem) Description() string {
	parts := make([]string, 0, 2)
	for _, v := range []string{i.Partner, i.MethodType} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

type itemStyles struct {
	normal      lipgloss.Style
	selected    lipgloss.Style
	titleStyle  lipgloss.Style
	detailStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		detailStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type methodDelegate struct {
	styles itemStyles
}

func newDelegate() methodDelegate {
	return methodDelegate{styles: newItemStyles()}
}

func (d methodDelegate) Height() int                         { return 4 }
func (d methodDelegate) Spacing() int                        { return 1 }
func (d methodDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d methodDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	record, ok := item.(methodItem)
	if !ok {
		return
	}

	titleLine := d.styles.titleStyle.Render(truncate(record.Title(), m.Width()-4))
	detailLine := d.styles.detailStyle.Render(truncate(record.Description(), m.Width()-4))
	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, detailLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list   list.Model
	prompt string
	result SelectionResult
}

func newModel(prompt string, methods []method.Method) *model {
	listItems := make([]list.Item, len(methods))
	for i, m := range methods {
		listItems[i] = methodItem{Method: m}
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		prompt: prompt,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(methodItem); ok {
				m.result = SelectionResult{Action: ActionSelected, ID: selected.ID}
				return m, tea.Quit
			}
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		case "esc":
			m.result = SelectionResult{Action: ActionCancelled}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(m.prompt)
	help := helpStyle.Render("Up/Down navigate | Enter select | esc cancel | q stop")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectMethod lets the user pick one of methods in the terminal.
// Stopping with q or ctrl+c returns a StopProcessingError.
func SelectMethod(prompt string, methods []method.Method) (SelectionResult, error) {
	if len(methods) == 0 {
		return SelectionResult{Action: ActionCancelled}, nil
	}

	finalModel, err := runProgram(newModel(prompt, methods))
	if err != nil {
		return SelectionResult{}, fmt.Errorf("failed to run method picker: %w", err)
	}

	typed, ok := finalModel.(*model)
	if !ok {
		return SelectionResult{}, fmt.Errorf("unexpected program result")
	}
	if typed.result.Action == ActionStopped {
		return typed.result, errors.NewStopProcessingError("selection stopped by user")
	}
	return typed.result, nil
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
