package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h":
		m.shiftCalendarMonth(-1)
	case "l":
		m.shiftCalendarMonth(1)
	case "left":
		m.moveCalendarCursor(-1)
	case "right":
		m.moveCalendarCursor(1)
	case "up":
		m.moveCalendarCursor(-7)
	case "down":
		m.moveCalendarCursor(7)
	case "tab":
		m.cycleCalendarGoal(1)
	case "shift+tab":
		m.cycleCalendarGoal(-1)
	case " ", "enter":
		m.cycleSelectedCell()
	case "c":
		m.openCommentEditor(m.selectedCalendarKey())
	case "t":
		day, err := datekey.Parse(m.TodayKey)
		if err == nil {
			m.Calendar.FocusMonth = firstOfMonth(day)
			m.Calendar.DayCursor = day.Day() - 1
		}
	}
	return m
}

func (m *Model) shiftCalendarMonth(delta int) {
	m.Calendar.FocusMonth = m.Calendar.FocusMonth.AddDate(0, delta, 0)
	days := datekey.DaysInMonth(m.Calendar.FocusMonth.Year(), m.Calendar.FocusMonth.Month())
	if m.Calendar.DayCursor >= len(days) {
		m.Calendar.DayCursor = len(days) - 1
	}
	m.Status = StatusBar{
		Text:    fmt.Sprintf("calendar month: %s", m.Calendar.FocusMonth.Format("January 2006")),
		IsError: false,
	}
}

func (m *Model) moveCalendarCursor(delta int) {
	days := datekey.DaysInMonth(m.Calendar.FocusMonth.Year(), m.Calendar.FocusMonth.Month())
	next := m.Calendar.DayCursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(days) {
		next = len(days) - 1
	}
	m.Calendar.DayCursor = next
}

func (m *Model) cycleCalendarGoal(delta int) {
	if len(m.Doc.Goals) == 0 {
		return
	}
	n := len(m.Doc.Goals)
	m.Calendar.GoalCursor = ((m.Calendar.GoalCursor+delta)%n + n) % n
}

func (m Model) selectedCalendarGoal() (store.Goal, bool) {
	if len(m.Doc.Goals) == 0 {
		return store.Goal{}, false
	}
	cursor := m.Calendar.GoalCursor
	if cursor < 0 || cursor >= len(m.Doc.Goals) {
		cursor = 0
	}
	return m.Doc.Goals[cursor], true
}

func (m Model) selectedCalendarKey() string {
	days := datekey.DaysInMonth(m.Calendar.FocusMonth.Year(), m.Calendar.FocusMonth.Month())
	cursor := m.Calendar.DayCursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(days) {
		cursor = len(days) - 1
	}
	return datekey.Key(days[cursor])
}

func (m *Model) cycleSelectedCell() {
	goal, ok := m.selectedCalendarGoal()
	if !ok {
		m.Status = StatusBar{Text: "no goals yet, add one with /goal <title>", IsError: true}
		return
	}
	key := m.selectedCalendarKey()
	if !goal.VisibleOn(key) {
		m.Status = StatusBar{Text: fmt.Sprintf("%s starts on %s", goal.Title, goal.StartDate), IsError: true}
		return
	}
	next := nextCellStatus(m.Doc.Cell(key, goal.ID))
	m.Store.SetCell(key, goal.ID, next)
	m.refreshDoc()
	m.Status = StatusBar{Text: fmt.Sprintf("%s %s: %s", key, goal.Title, statusWord(next)), IsError: false}
}

func nextCellStatus(cur store.CellStatus) store.CellStatus {
	switch cur {
	case store.StatusUnset:
		return store.StatusDone
	case store.StatusDone:
		return store.StatusSkip
	default:
		return store.StatusUnset
	}
}

func (m Model) renderCalendarView() string {
	goal, hasGoal := m.selectedCalendarGoal()
	goalTitle := "(none)"
	position := ""
	if hasGoal {
		goalTitle = goal.Title
		position = fmt.Sprintf("(%d/%d)", m.Calendar.GoalCursor+1, len(m.Doc.Goals))
	}
	key := m.selectedCalendarKey()
	mark := views.GlyphUnset
	if hasGoal {
		switch m.Doc.Cell(key, goal.ID) {
		case store.StatusDone:
			mark = views.GlyphDone
		case store.StatusSkip:
			mark = views.GlyphSkip
		}
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		MonthLabel:   m.Calendar.FocusMonth.Format("January 2006"),
		GoalTitle:    goalTitle,
		GoalPosition: position,
		TableView:    m.calendarTable.View(),
		SelectedDate: key,
		SelectedMark: mark,
		Comment:      m.Doc.Comment(key),
	})
}
