package planner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/config"
)

const sampleCSV = "CSCI100,Introduction to Computer Science\n" +
	"CSCI200,Data Structures,CSCI100\n" +
	"MATH201,Discrete Mathematics\n" +
	"CSCI300,Introduction to Algorithms,CSCI200,MATH201\n"

func newService() *catalog.Service {
	return catalog.NewService(config.CatalogConfig{
		MaxFileSize:        1 << 20,
		MaxConcurrentLoads: 1,
		LoadWait:           time.Second,
	})
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// send feeds msg to m.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeLine(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	// Run the load command inline, as the runtime would.
	if cmd != nil && m.state == stateLoading {
		m, cmd = send(t, m, cmd())
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := New(newService(), "")
	m, _ = typeLine(t, m, writeCatalog(t, sampleCSV))
	if m.state != stateMenu {
		t.Fatalf("state = %d after load, want menu; failure %q", m.state, m.failure)
	}
	return m
}

func TestFilePrompt_RetryThenLoad(t *testing.T) {
	m := New(newService(), "")

	m, _ = typeLine(t, m, filepath.Join(t.TempDir(), "missing.csv"))
	if m.state != stateFile {
		t.Fatalf("state = %d after missing file, want file prompt", m.state)
	}
	if !strings.Contains(m.failure, "CAT003") {
		t.Errorf("failure = %q, want CAT003", m.failure)
	}
	if !strings.Contains(m.View(), "Please try again or type 'exit' to quit.") {
		t.Errorf("View() missing retry hint:\n%s", m.View())
	}

	m, _ = typeLine(t, m, writeCatalog(t, "CSCI200,Data Structures,CSCI100\n"))
	if m.state != stateFile || !strings.Contains(m.failure, "CAT002") {
		t.Fatalf("dangling prerequisite: state = %d, failure = %q", m.state, m.failure)
	}
	if !strings.Contains(m.View(), "Missing prerequisite(s): CSCI100") {
		t.Errorf("View() does not name the missing prerequisite:\n%s", m.View())
	}

	m, _ = typeLine(t, m, writeCatalog(t, "CSCI100,Intro\nCSCI200\n"))
	if !strings.Contains(m.failure, "CAT001") || !strings.Contains(m.failure, "Row 2") {
		t.Errorf("malformed row: failure = %q, want CAT001 naming row 2", m.failure)
	}

	m, _ = typeLine(t, m, writeCatalog(t, sampleCSV))
	if m.state != stateMenu {
		t.Fatalf("state = %d, want menu", m.state)
	}
	if !strings.Contains(m.View(), "Welcome to the course planner.") {
		t.Errorf("View() = %s", m.View())
	}
}

func TestFilePrompt_Exit(t *testing.T) {
	m := New(newService(), "")
	m, cmd := typeLine(t, m, "EXIT")
	if !isQuit(cmd) {
		t.Fatal("exit did not quit")
	}
	if m.View() != "Good bye.\n" {
		t.Errorf("View() = %q", m.View())
	}
}

func TestInitialFile(t *testing.T) {
	m := New(newService(), writeCatalog(t, sampleCSV))
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned no load command")
	}
	m, _ = send(t, m, cmd())
	if m.state != stateMenu {
		t.Errorf("state = %d, want menu", m.state)
	}
}

func TestMenu_PrintCourseList(t *testing.T) {
	m := loadedModel(t)

	m, _ = typeLine(t, m, "1")
	if m.state != stateResult {
		t.Fatalf("state = %d, want result", m.state)
	}
	want := "CSCI100 - Introduction to Computer Science\n" +
		"CSCI200 - Data Structures\n" +
		"CSCI300 - Introduction to Algorithms\n" +
		"MATH201 - Discrete Mathematics\n"
	if m.resultBody != want {
		t.Errorf("course list =\n%s\nwant\n%s", m.resultBody, want)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateMenu {
		t.Errorf("Enter on result: state = %d, want menu", m.state)
	}
}

func TestMenu_FindCourse(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"csci300", "CSCI300 - Introduction to Algorithms\nPrerequisites: CSCI200, MATH201\n"},
		{" CSCI100 ", "CSCI100 - Introduction to Computer Science\nPrerequisites: None\n"},
		{"cs999", "Course CS999 not found.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m := loadedModel(t)
			m, _ = typeLine(t, m, "2")
			if m.state != stateFind {
				t.Fatalf("state = %d, want find", m.state)
			}
			m, _ = typeLine(t, m, tt.query)
			if m.resultBody != tt.want {
				t.Errorf("detail = %q, want %q", m.resultBody, tt.want)
			}
		})
	}
}

func TestMenu_HiddenStructureDump(t *testing.T) {
	m := loadedModel(t)
	if strings.Contains(m.View(), "Tree Structure") {
		t.Error("hidden option listed in the menu")
	}

	m, _ = typeLine(t, m, "3")
	if m.state != stateResult || !strings.Contains(m.resultBody, "(H=") {
		t.Errorf("structure dump = %q", m.resultBody)
	}
}

func TestMenu_InvalidOption(t *testing.T) {
	m := loadedModel(t)
	m, _ = typeLine(t, m, "7")
	if m.state != stateMenu {
		t.Fatalf("state = %d, want menu", m.state)
	}
	if !strings.Contains(m.View(), "Invalid option. Please try again.") {
		t.Errorf("View() = %s", m.View())
	}
}

func TestMenu_CursorSelection(t *testing.T) {
	m := loadedModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped to Exit)", m.cursor)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Fatal("selecting Exit did not quit")
	}
	if m.View() != "Thank you for using the course planner!\n" {
		t.Errorf("View() = %q", m.View())
	}
}

func TestMenu_Exit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := typeLine(t, m, "9")
	if !isQuit(cmd) {
		t.Error("9 did not quit")
	}
}

func TestEditLine(t *testing.T) {
	line := editLine("", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, DefaultKeyMap)
	line = editLine(line, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, DefaultKeyMap)
	line = editLine(line, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'é'}}, DefaultKeyMap)
	if line != "ab é" {
		t.Fatalf("line = %q", line)
	}
	line = editLine(line, tea.KeyMsg{Type: tea.KeyBackspace}, DefaultKeyMap)
	if line != "ab " {
		t.Errorf("after backspace line = %q", line)
	}
	if got := editLine("", tea.KeyMsg{Type: tea.KeyBackspace}, DefaultKeyMap); got != "" {
		t.Errorf("backspace on empty = %q", got)
	}
}
