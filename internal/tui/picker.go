// Package tui provides the interactive todo picker.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfmeyers/tenzing/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	appStyle = lipgloss.NewStyle().Padding(1, 2)
)

// keyMap defines the picker key bindings.
type keyMap struct {
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// pickerItem adapts a TodoItem to the bubbles list.
type pickerItem struct {
	todo *model.TodoItem
}

func (i pickerItem) Title() string { return i.todo.Title }

func (i pickerItem) Description() string {
	desc := i.todo.ParentTitle()
	if i.todo.DueOn != nil {
		desc += fmt.Sprintf("  due %s", i.todo.DueOn.Format("Jan 2"))
	}
	return desc
}

func (i pickerItem) FilterValue() string { return i.todo.Title }

// Model is the picker TUI model.
type Model struct {
	list   list.Model
	choice *model.TodoItem
}

// NewModel creates a picker over the given todos.
func NewModel(todos []*model.TodoItem) Model {
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = pickerItem{todo: t}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Pick your current todo"
	l.Styles.Title = titleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select}
	}

	return Model{list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		// Don't intercept keys while the user is filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.Select):
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.choice = item.todo
			}
			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return appStyle.Render(m.list.View())
}

// PickTodo runs the picker and returns the chosen todo, or nil when the
// user cancelled.
func PickTodo(todos []*model.TodoItem) (*model.TodoItem, error) {
	p := tea.NewProgram(NewModel(todos), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.choice, nil
}
