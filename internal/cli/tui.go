package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// svgEntry is one candidate input file.
type svgEntry struct {
	Path string
	Size int64
}

// FileListModel is the bubbletea model for interactive SVG file selection,
// used when convert is invoked without a file argument. The conversion
// itself stays single-file and single-shot.
type FileListModel struct {
	Files    []svgEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewFileListModel creates a new file list model.
func NewFileListModel(files []svgEntry) FileListModel {
	return FileListModel{
		Files:  files,
		Height: 15,
	}
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Files[m.Cursor].Path
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select SVG File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Files[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(f.Path))
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(formatBytes(int(f.Size))))
		b.WriteString("\n")
	}

	return b.String()
}

// pickSVGFile lists *.svg files in dir and lets the user pick one. With a
// single candidate the picker is skipped.
func pickSVGFile(dir string) (string, error) {
	files, err := listSVGFiles(dir)
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no .svg files in %s; pass a file argument", dir)
	case 1:
		printInfo("Using %s", files[0].Path)
		return files[0].Path, nil
	}

	prog := tea.NewProgram(NewFileListModel(files))
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("file picker: %w", err)
	}
	m, ok := final.(FileListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no file selected")
	}
	return m.Selected, nil
}

// listSVGFiles collects the .svg files directly inside dir, sorted by name.
func listSVGFiles(dir string) ([]svgEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	files := make([]svgEntry, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, svgEntry{Path: path, Size: info.Size()})
	}
	return files, nil
}
