package planner

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
)

// MenuItem is one main-menu choice. Hidden items are selectable by key but
// not listed.
type MenuItem struct {
	Key    string
	Label  string
	Hidden bool
	Action func(m Model) (Model, tea.Cmd)
}

// Menu is an ordered set of choices.
type Menu struct {
	Title string
	Items []MenuItem
}

// Visible returns the listed items in order.
func (m *Menu) Visible() []MenuItem {
	var out []MenuItem
	for _, item := range m.Items {
		if !item.Hidden {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the item selected by a typed choice.
func (m *Menu) Find(choice string) (MenuItem, bool) {
	choice = strings.TrimSpace(choice)
	for _, item := range m.Items {
		if item.Key == choice {
			return item, true
		}
	}
	return MenuItem{}, false
}

func buildMainMenu() *Menu {
	return &Menu{
		Title: "Main Menu",
		Items: []MenuItem{
			{Key: "1", Label: "Print Course List", Action: printCourseList},
			{Key: "2", Label: "Find Specific Course Details", Action: promptCourse},
			{Key: "3", Label: "Print Tree Structure", Hidden: true, Action: printStructure},
			{Key: "9", Label: "Exit", Action: exitMenu},
		},
	}
}

func printCourseList(m Model) (Model, tea.Cmd) {
	var b strings.Builder
	for id, c := range m.svc.All() {
		b.WriteString(id + " - " + c.Title() + "\n")
	}
	if b.Len() == 0 {
		b.WriteString("The catalog is empty.\n")
	}
	return m.showResult("Course List:", b.String()), nil
}

func promptCourse(m Model) (Model, tea.Cmd) {
	m.state = stateFind
	return m, nil
}

func printStructure(m Model) (Model, tea.Cmd) {
	var b strings.Builder
	m.svc.DumpStructure(&b)
	return m.showResult("Tree Structure:", b.String()), nil
}

func exitMenu(m Model) (Model, tea.Cmd) {
	m.farewell = "Thank you for using the course planner!"
	m.state = stateDone
	return m, tea.Quit
}

// findCourse renders the detail screen for a typed course number.
func findCourse(m Model, query string) Model {
	id := catalog.NormalizeID(query)
	c, ok := m.svc.Course(id)
	if !ok {
		return m.showResult("Course Details:", "Course "+id+" not found.\n")
	}
	return m.showResult("Course Details:", id+" - "+c.String()+"\n")
}
