// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hwskills/skillkit/internal/model"
)

// PickerAction represents the outcome of the skill picker.
type PickerAction int

const (
	// PickerActionNone means the user quit without confirming.
	PickerActionNone PickerAction = iota
	// PickerActionInstall means the user confirmed a selection.
	PickerActionInstall
)

// PickerResult contains the skills the user chose to install.
type PickerResult struct {
	Action PickerAction
	Skills []model.Skill
}

// pickerKeyMap defines the key bindings for the skill picker.
type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "install selected"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the skill picker.
var pickerStyles = struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Checked  lipgloss.Style
	Desc     lipgloss.Style
	Template lipgloss.Style
	Status   lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Item:     lipgloss.NewStyle().Padding(0, 2),
	Cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Checked:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	Desc:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Template: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 2),
	Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

// PickerModel is the BubbleTea model for choosing which skills to install.
type PickerModel struct {
	skills   []model.Skill
	selected map[int]bool
	cursor   int
	keys     pickerKeyMap
	result   PickerResult
	showHelp bool
	width    int
	height   int
	quitting bool
}

// NewPickerModel creates a picker over the given skills. Everything
// installable starts selected; templates are shown but not selectable.
func NewPickerModel(skills []model.Skill) PickerModel {
	selected := make(map[int]bool, len(skills))
	for i, s := range skills {
		if !s.Template {
			selected[i] = true
		}
	}
	return PickerModel{
		skills:   skills,
		selected: selected,
		keys:     defaultPickerKeyMap(),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.skills)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if !m.skills[m.cursor].Template {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
			return m, nil
		case key.Matches(msg, m.keys.All):
			for i, s := range m.skills {
				if !s.Template {
					m.selected[i] = true
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.None):
			for i := range m.selected {
				m.selected[i] = false
			}
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			m.result = PickerResult{
				Action: PickerActionInstall,
				Skills: m.selectedSkills(),
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m PickerModel) selectedSkills() []model.Skill {
	var picked []model.Skill
	for i, s := range m.skills {
		if m.selected[i] {
			picked = append(picked, s)
		}
	}
	return picked
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(pickerStyles.Title.Render("Install Skills - Select"))
	b.WriteString("\n\n")

	for i, s := range m.skills {
		line := m.itemLine(i, s)
		switch {
		case s.Template:
			b.WriteString(pickerStyles.Template.Render("  " + line))
		case i == m.cursor:
			b.WriteString(pickerStyles.Cursor.Render("> " + line))
		default:
			b.WriteString(pickerStyles.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickerStyles.Status.Render(
		fmt.Sprintf("%d of %d selected", m.countSelected(), m.installableCount())))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(pickerStyles.Help.Render(`Navigation:
  ↑/k      Move up
  ↓/j      Move down

Actions:
  Space    Toggle selection
  a        Select all
  n        Select none
  Enter    Install selected

General:
  ?        Toggle full help
  q        Quit without installing`))
	} else {
		keys := []string{"↑/↓ navigate", "space toggle", "a all", "n none", "enter install", "q quit"}
		b.WriteString(pickerStyles.Help.Render(strings.Join(keys, " • ")))
	}

	return b.String()
}

func (m PickerModel) itemLine(index int, s model.Skill) string {
	mark := "[ ]"
	if m.selected[index] {
		mark = pickerStyles.Checked.Render("[x]")
	}
	if s.Template {
		mark = "[-]"
	}
	line := fmt.Sprintf("%s %s", mark, s.Name)
	if s.Template {
		line += " (template)"
	}
	if s.Description != "" {
		line += "  " + pickerStyles.Desc.Render(s.Description)
	}
	return line
}

func (m PickerModel) countSelected() int {
	n := 0
	for _, on := range m.selected {
		if on {
			n++
		}
	}
	return n
}

func (m PickerModel) installableCount() int {
	n := 0
	for _, s := range m.skills {
		if !s.Template {
			n++
		}
	}
	return n
}

// Result returns the outcome of the interaction.
func (m PickerModel) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive skill picker and returns the selection.
func RunPicker(skills []model.Skill) (PickerResult, error) {
	picker := NewPickerModel(skills)
	finalModel, err := tea.NewProgram(picker, tea.WithAltScreen()).Run()
	if err != nil {
		return PickerResult{}, err
	}

	if m, ok := finalModel.(PickerModel); ok {
		return m.Result(), nil
	}

	return PickerResult{}, nil
}
