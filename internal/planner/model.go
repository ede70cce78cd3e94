// Package planner is the interactive terminal front end of the catalog: a
// file prompt with retry, then a numbered main menu over the loaded index.
package planner

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/logging"
)

// LoadTimeout bounds a single catalog load started from the planner.
var LoadTimeout = 2 * time.Minute

type state int

const (
	stateFile state = iota
	stateLoading
	stateMenu
	stateFind
	stateResult
	stateDone
)

// loadedMsg reports a successful load.
type loadedMsg struct {
	result catalog.LoadResult
}

// loadFailedMsg reports a failed load; the previous catalog is unchanged.
type loadFailedMsg struct {
	err error
}

// Model is the bubbletea model of the planner.
type Model struct {
	svc  *catalog.Service
	keys KeyMap
	menu *Menu

	state  state
	input  string
	cursor int

	// pending is the file being loaded.
	pending string
	notice  string
	failure string

	resultTitle string
	resultBody  string
	farewell    string
}

// New returns a planner over svc. A non-empty file is loaded immediately
// instead of prompting for one.
func New(svc *catalog.Service, file string) Model {
	m := Model{
		svc:   svc,
		keys:  DefaultKeyMap,
		menu:  buildMainMenu(),
		state: stateFile,
	}
	if file = strings.TrimSpace(file); file != "" {
		m.state = stateLoading
		m.pending = file
	}
	return m
}

// Init starts the initial load when a file was given up front.
func (m Model) Init() tea.Cmd {
	if m.state == stateLoading {
		return loadCmd(m.svc, m.pending)
	}
	return nil
}

// loadCmd loads path off the UI goroutine.
func loadCmd(svc *catalog.Service, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
		defer cancel()

		res, err := svc.LoadFile(ctx, path)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{result: res}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		logging.WithFields(context.Background(), "load_id", msg.result.ID.String()).
			Debug("planner catalog ready", "courses", msg.result.Courses)
		m.state = stateMenu
		m.failure = ""
		m.notice = ""
		m.cursor = 0
		return m, nil

	case loadFailedMsg:
		m.state = stateFile
		m.failure = catalog.FormatUserError(msg.err)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.state = stateDone
			m.farewell = "Good bye."
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateLoading, stateDone:
		return m, nil

	case stateResult:
		if key.Matches(msg, m.keys.Submit) {
			m.state = stateMenu
			m.resultTitle, m.resultBody = "", ""
		}
		return m, nil

	case stateMenu:
		if !key.Matches(msg, m.keys.Submit) {
			m = m.handleMenuNavigation(msg)
			return m, nil
		}
		return m.selectMenu()
	}

	// stateFile and stateFind take a line of text.
	if !key.Matches(msg, m.keys.Submit) {
		m.input = editLine(m.input, msg, m.keys)
		return m, nil
	}

	line := strings.TrimSpace(m.input)
	m.input = ""

	if m.state == stateFind {
		return findCourse(m, line), nil
	}

	if strings.EqualFold(line, "exit") {
		m.state = stateDone
		m.farewell = "Good bye."
		return m, tea.Quit
	}
	if line == "" {
		return m, nil
	}
	m.state = stateLoading
	m.pending = line
	m.failure = ""
	return m, loadCmd(m.svc, line)
}

// handleMenuNavigation moves the cursor or edits the typed choice.
func (m Model) handleMenuNavigation(msg tea.KeyMsg) Model {
	visible := m.menu.Visible()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	default:
		m.input = editLine(m.input, msg, m.keys)
	}
	return m
}

// selectMenu runs the typed choice, or the highlighted item when nothing
// was typed.
func (m Model) selectMenu() (tea.Model, tea.Cmd) {
	choice := strings.TrimSpace(m.input)
	m.input = ""
	m.notice = ""

	var item MenuItem
	if choice == "" {
		item = m.menu.Visible()[m.cursor]
	} else {
		var ok bool
		if item, ok = m.menu.Find(choice); !ok {
			m.notice = "Invalid option. Please try again."
			return m, nil
		}
	}

	return item.Action(m)
}

func (m Model) showResult(title, body string) Model {
	m.state = stateResult
	m.resultTitle = title
	m.resultBody = body
	return m
}

// editLine applies a keystroke to a single line of input.
func editLine(line string, msg tea.KeyMsg, keys KeyMap) string {
	switch {
	case key.Matches(msg, keys.Erase):
		if r := []rune(line); len(r) > 0 {
			return string(r[:len(r)-1])
		}
		return line
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		if msg.Type == tea.KeySpace {
			return line + " "
		}
		return line + string(msg.Runes)
	}
	return line
}

// View renders the current screen.
func (m Model) View() string {
	if m.state == stateDone {
		return m.farewell + "\n"
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render("Advising Assistance Program") + "\n\n")

	switch m.state {
	case stateFile:
		if m.failure != "" {
			b.WriteString(errorStyle.Render(m.failure) + "\n")
			b.WriteString("Please try again or type 'exit' to quit.\n\n")
		}
		b.WriteString("Please enter the file name that contains the course data (or type 'exit' to exit): ")
		b.WriteString(m.input + cursorStyle.Render("█") + "\n")

	case stateLoading:
		b.WriteString("Loading courses from " + m.pending + "...\n")

	case stateMenu:
		b.WriteString("Welcome to the course planner.\n\n")
		b.WriteString(titleStyle.Render(m.menu.Title+":") + "\n")
		for i, item := range m.menu.Visible() {
			line := "  " + item.Key + ". " + item.Label
			if i == m.cursor {
				line = cursorStyle.Render("> " + item.Key + ". " + item.Label)
			}
			b.WriteString(line + "\n")
		}
		if m.notice != "" {
			b.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
		}
		b.WriteString("\nWhat would you like to do? " + m.input + cursorStyle.Render("█") + "\n")

	case stateFind:
		b.WriteString("What course do you want to know about? " + m.input + cursorStyle.Render("█") + "\n")

	case stateResult:
		b.WriteString(titleStyle.Render(m.resultTitle) + "\n")
		b.WriteString(m.resultBody)
		b.WriteString("\nPress Enter to continue...\n")
	}

	b.WriteString("\n" + hintStyle.Render(helpLine(m.keys)))
	return b.String()
}

func helpLine(k KeyMap) string {
	var parts []string
	for _, binding := range k.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
