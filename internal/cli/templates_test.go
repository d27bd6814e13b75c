package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestListTemplates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"barren.json", "lava.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	templates, err := listTemplates(dir)
	if err != nil {
		t.Fatalf("listTemplates() error: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("got %d templates, want 2 (only *.json files)", len(templates))
	}
	if templates[0].Name != "barren" || templates[1].Name != "lava" {
		t.Errorf("templates not sorted by name: %q, %q", templates[0].Name, templates[1].Name)
	}
	if templates[0].Path != filepath.Join(dir, "barren.json") {
		t.Errorf("unexpected path %q", templates[0].Path)
	}
}

func TestListTemplatesMissingDir(t *testing.T) {
	templates, err := listTemplates(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not be an error, got %v", err)
	}
	if templates != nil {
		t.Errorf("got %v, want empty list", templates)
	}
}

func TestTemplateListModelNavigation(t *testing.T) {
	m := newTemplateListModel([]templateInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	key := func(s string) tea.KeyMsg {
		switch s {
		case "up":
			return tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			return tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			return tea.KeyMsg{Type: tea.KeyEnter}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	next, _ := m.Update(key("down"))
	m = next.(TemplateListModel)
	next, _ = m.Update(key("down"))
	m = next.(TemplateListModel)
	next, _ = m.Update(key("down")) // clamped at the end
	m = next.(TemplateListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	next, _ = m.Update(key("up"))
	m = next.(TemplateListModel)
	next, cmd := m.Update(key("enter"))
	m = next.(TemplateListModel)
	if cmd == nil {
		t.Fatal("enter should quit the picker")
	}
	if m.Selected == nil || m.Selected.Name != "b" {
		t.Errorf("selected = %+v, want b", m.Selected)
	}
}

func TestTemplateListModelQuitWithoutSelection(t *testing.T) {
	m := newTemplateListModel([]templateInfo{{Name: "a"}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(TemplateListModel)
	if cmd == nil {
		t.Fatal("q should quit the picker")
	}
	if m.Selected != nil {
		t.Error("quitting must not select anything")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Minute), "30m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
		}
	}
}
