package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/views"
)

func (m Model) handleDailyKey(msg tea.KeyMsg) Model {
	items := m.todayTasks()
	switch msg.String() {
	case "up", "k":
		if m.Daily.Cursor > 0 {
			m.Daily.Cursor--
		}
	case "down", "j":
		if m.Daily.Cursor < len(items)-1 {
			m.Daily.Cursor++
		}
	case " ":
		if task, ok := m.selectedDailyTask(); ok {
			next := nextCellStatus(task.Status)
			m.Store.SetDailyTaskStatus(task.ID, next)
			m.refreshDoc()
			m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", task.Title, statusWord(next)), IsError: false}
		}
	case "a":
		m.Daily.Adding = true
		m.Daily.Input = ""
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "daily task capture", IsError: false}
	case "d":
		if task, ok := m.selectedDailyTask(); ok {
			m.Store.RemoveDailyTask(task.ID)
			m.refreshDoc()
			if m.Daily.Cursor > 0 {
				m.Daily.Cursor--
			}
			m.Status = StatusBar{Text: fmt.Sprintf("removed: %s", task.Title), IsError: false}
		}
	case "p":
		if task, ok := m.selectedDailyTask(); ok {
			m.Store.PostponeDailyTaskToTomorrow(task.ID)
			m.refreshDoc()
			m.Status = StatusBar{Text: fmt.Sprintf("postponed to tomorrow: %s", task.Title), IsError: false}
		}
	}
	return m
}

func (m Model) handleDailyAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Daily.Adding = false
		m.Daily.Input = ""
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "capture cancelled", IsError: false}
		return m
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		if title != "" {
			m.Store.AddDailyTask(store.DailyTask{ID: m.newID(), Title: title, DateKey: m.TodayKey})
			m.refreshDoc()
			m.Status = StatusBar{Text: fmt.Sprintf("added daily task: %s", title), IsError: false}
		}
		m.Daily.Adding = false
		m.Daily.Input = ""
		m.quickAddInput.SetValue("")
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	m.Daily.Input = m.quickAddInput.Value()
	return m
}

// todayTasks lists the tasks scoped to today, in stored order.
func (m Model) todayTasks() []store.DailyTask {
	out := make([]store.DailyTask, 0, len(m.Doc.DailyTasks))
	for _, task := range m.Doc.DailyTasks {
		if task.DateKey == m.TodayKey {
			out = append(out, task)
		}
	}
	return out
}

func (m Model) selectedDailyTask() (store.DailyTask, bool) {
	items := m.todayTasks()
	if len(items) == 0 {
		return store.DailyTask{}, false
	}
	cursor := m.Daily.Cursor
	if cursor < 0 || cursor >= len(items) {
		cursor = 0
	}
	return items[cursor], true
}

func (m Model) renderDailyView() string {
	items := m.todayTasks()
	data := make([]views.DailyItemData, 0, len(items))
	for i, task := range items {
		mark := ""
		switch task.Status {
		case store.StatusDone:
			mark = views.GlyphDone
		case store.StatusSkip:
			mark = views.GlyphSkip
		}
		data = append(data, views.DailyItemData{
			Title:    task.Title,
			Mark:     mark,
			DateKey:  task.DateKey,
			Selected: i == m.Daily.Cursor,
		})
	}
	return views.RenderDailyPanel(views.DailyPanelData{
		DateLabel: m.TodayKey,
		Items:     data,
		AddView:   m.quickAddInput.View(),
		Adding:    m.Daily.Adding,
	})
}
