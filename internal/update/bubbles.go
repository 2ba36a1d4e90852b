package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/views"
)

var weekdayTitles = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (m *Model) initBubbleComponents() {
	cols := make([]table.Column, 0, len(weekdayTitles))
	for _, title := range weekdayTitles {
		cols = append(cols, table.Column{Title: title, Width: 7})
	}
	m.calendarTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(7))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "task> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.commentArea = textarea.New()
	m.commentArea.SetWidth(54)
	m.commentArea.SetHeight(6)
	m.commentArea.ShowLineNumbers = false
	m.commentArea.Placeholder = "How did the day go?"

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.summaryView = viewport.New(54, 10)
}

func (m *Model) syncBubbleData() {
	goal, hasGoal := m.selectedCalendarGoal()
	weeks := datekey.CalendarWeeks(m.Calendar.FocusMonth.Year(), m.Calendar.FocusMonth.Month())
	rows := make([]table.Row, 0, len(weeks))
	for _, week := range weeks {
		row := make(table.Row, len(week))
		for i, day := range week {
			if day.IsZero() {
				row[i] = ""
				continue
			}
			mark := views.GlyphUnset
			if hasGoal {
				switch m.Doc.Cell(datekey.Key(day), goal.ID) {
				case store.StatusDone:
					mark = views.GlyphDone
				case store.StatusSkip:
					mark = views.GlyphSkip
				}
			}
			row[i] = fmt.Sprintf("%2d %s", day.Day(), mark)
		}
		rows = append(rows, row)
	}
	m.calendarTable.SetRows(rows)
	if len(rows) > 0 {
		m.calendarTable.SetCursor(m.calendarWeekIndex())
	}

	m.quickAddInput.SetValue(m.Daily.Input)
	m.commandInput.SetValue(m.Palette.Input)
	if m.Daily.Adding {
		m.quickAddInput.Focus()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if m.CurrentView == ViewSummary {
		md := m.summaryInterpretation()
		if strings.TrimSpace(md) != "" {
			m.summaryView.SetContent(views.RenderMarkdown(md, m.Doc.Theme == store.ThemeDark))
		}
	}
}

// calendarWeekIndex maps the day cursor to its row in the padded grid.
func (m Model) calendarWeekIndex() int {
	days := datekey.DaysInMonth(m.Calendar.FocusMonth.Year(), m.Calendar.FocusMonth.Month())
	if len(days) == 0 {
		return 0
	}
	cursor := m.Calendar.DayCursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(days) {
		cursor = len(days) - 1
	}
	lead := int(days[0].Weekday()+6) % 7
	return (lead + cursor) / 7
}
