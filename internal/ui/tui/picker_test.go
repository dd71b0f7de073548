package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwskills/skillkit/internal/model"
)

func pickerSkills() []model.Skill {
	return []model.Skill{
		{Name: "api-design", Description: "API patterns", Path: "skills/api-design.md"},
		{Name: "kicad-schematics", Path: "skills/kicad-schematics.md"},
		{Name: "template", Path: "skills/_template.md", Template: true},
	}
}

func TestNewPickerModel(t *testing.T) {
	m := NewPickerModel(pickerSkills())

	if m.cursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", m.cursor)
	}
	if m.countSelected() != 2 {
		t.Fatalf("expected installable skills preselected, got %d", m.countSelected())
	}
	if m.installableCount() != 2 {
		t.Fatalf("expected 2 installable skills, got %d", m.installableCount())
	}
	if m.selected[2] {
		t.Fatal("templates must not be preselected")
	}
}

func TestPickerModel_ToggleAndConfirm(t *testing.T) {
	m := NewPickerModel(pickerSkills())

	// Deselect the first skill.
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newModel.(PickerModel)
	if m.selected[0] {
		t.Fatal("expected first skill to be deselected")
	}

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(PickerModel)
	if cmd == nil {
		t.Fatal("expected quit command after confirm")
	}

	result := m.Result()
	if result.Action != PickerActionInstall {
		t.Fatalf("expected install action, got %v", result.Action)
	}
	if len(result.Skills) != 1 || result.Skills[0].Name != "kicad-schematics" {
		t.Fatalf("unexpected selection: %v", result.Skills)
	}
}

func TestPickerModel_TemplateNotToggleable(t *testing.T) {
	m := NewPickerModel(pickerSkills())

	// Move the cursor onto the template entry and try to select it.
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = newModel.(PickerModel)
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = newModel.(PickerModel)
	if m.cursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", m.cursor)
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newModel.(PickerModel)
	if m.selected[2] {
		t.Fatal("templates must not be selectable")
	}
}

func TestPickerModel_SelectAllAndNone(t *testing.T) {
	m := NewPickerModel(pickerSkills())

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = newModel.(PickerModel)
	if m.countSelected() != 0 {
		t.Fatalf("expected nothing selected after n, got %d", m.countSelected())
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m = newModel.(PickerModel)
	if m.countSelected() != 2 {
		t.Fatalf("expected everything installable after a, got %d", m.countSelected())
	}
}

func TestPickerModel_Quit(t *testing.T) {
	m := NewPickerModel(pickerSkills())

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = newModel.(PickerModel)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.Result().Action != PickerActionNone {
		t.Fatal("quitting must not produce an install action")
	}
}

func TestPickerModel_View(t *testing.T) {
	m := NewPickerModel(pickerSkills())
	view := m.View()

	for _, want := range []string{"api-design", "kicad-schematics", "(template)", "2 of 2 selected"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
