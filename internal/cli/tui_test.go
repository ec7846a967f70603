package cli

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestListSVGFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.svg", "a.svg", "notes.txt", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := listSVGFiles(dir)
	if err != nil {
		t.Fatalf("listSVGFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len = %d, want 2", len(files))
	}
	if filepath.Base(files[0].Path) != "a.svg" || filepath.Base(files[1].Path) != "b.svg" {
		t.Errorf("unexpected order: %v", files)
	}
}

func TestPickSVGFileEmptyDir(t *testing.T) {
	if _, err := pickSVGFile(t.TempDir()); err == nil {
		t.Error("pickSVGFile() succeeded with no candidates")
	}
}

func TestPickSVGFileSingleCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.svg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := pickSVGFile(dir)
	if err != nil {
		t.Fatalf("pickSVGFile() error = %v", err)
	}
	if got != path {
		t.Errorf("pickSVGFile() = %q, want %q", got, path)
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func TestFileListModelNavigation(t *testing.T) {
	m := NewFileListModel([]svgEntry{
		{Path: "a.svg", Size: 10},
		{Path: "b.svg", Size: 20},
		{Path: "c.svg", Size: 30},
	})

	next, _ := m.Update(keyMsg("down"))
	m = next.(FileListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(FileListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("up"))
	m = next.(FileListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	next, _ = m.Update(keyMsg("down"))
	m = next.(FileListModel)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(FileListModel)
	if m.Selected != "b.svg" {
		t.Errorf("Selected = %q, want b.svg", m.Selected)
	}
}

func TestFileListModelView(t *testing.T) {
	m := NewFileListModel([]svgEntry{{Path: "logo.svg", Size: 123}})
	view := m.View()
	if view == "" {
		t.Fatal("View() returned empty string")
	}
}
