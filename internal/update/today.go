package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.GoalCursor > 0 {
			m.Today.GoalCursor--
		}
	case "down", "j":
		if m.Today.GoalCursor < len(m.visibleTodayGoals())-1 {
			m.Today.GoalCursor++
		}
	case " ":
		m.cycleTodayGoal()
	case "h", "left":
		if m.Today.BottleCursor > 0 {
			m.Today.BottleCursor--
		}
	case "l", "right":
		if m.Today.BottleCursor < store.BottleCount-1 {
			m.Today.BottleCursor++
		}
	case "enter":
		m.cycleTodayBottle()
	case "c":
		m.openCommentEditor(m.TodayKey)
	}
	return m
}

func (m Model) visibleTodayGoals() []store.Goal {
	goals := make([]store.Goal, 0, len(m.Doc.Goals))
	for _, goal := range m.Doc.Goals {
		if goal.VisibleOn(m.TodayKey) {
			goals = append(goals, goal)
		}
	}
	return goals
}

func (m *Model) cycleTodayGoal() {
	goals := m.visibleTodayGoals()
	if len(goals) == 0 {
		m.Status = StatusBar{Text: "no goals for today", IsError: true}
		return
	}
	cursor := m.Today.GoalCursor
	if cursor < 0 || cursor >= len(goals) {
		cursor = 0
	}
	goal := goals[cursor]
	next := nextCellStatus(m.Doc.Cell(m.TodayKey, goal.ID))
	m.Store.SetCell(m.TodayKey, goal.ID, next)
	m.refreshDoc()
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", goal.Title, statusWord(next)), IsError: false}
}

func (m *Model) cycleTodayBottle() {
	litres := store.CycleBottle(m.Doc.WaterAt(m.TodayKey), m.Today.BottleCursor)
	m.Store.SetWaterIntake(m.TodayKey, litres)
	m.refreshDoc()
	m.Status = StatusBar{Text: fmt.Sprintf("water: %.1fL", m.Doc.WaterAt(m.TodayKey)), IsError: false}
}

func (m Model) renderTodayView() string {
	goals := m.visibleTodayGoals()
	goalData := make([]views.TodayGoalData, 0, len(goals))
	for i, goal := range goals {
		mark := ""
		switch m.Doc.Cell(m.TodayKey, goal.ID) {
		case store.StatusDone:
			mark = views.GlyphDone
		case store.StatusSkip:
			mark = views.GlyphSkip
		}
		goalData = append(goalData, views.TodayGoalData{
			Title:    goal.Title,
			Mark:     mark,
			Selected: i == m.Today.GoalCursor,
		})
	}

	litres := m.Doc.WaterAt(m.TodayKey)
	bottles := make([]views.BottleData, 0, store.BottleCount)
	for i := 0; i < store.BottleCount; i++ {
		level := "empty"
		switch store.BottleState(litres, i) {
		case store.BottleFull:
			level = "full"
		case store.BottleHalf:
			level = "half"
		}
		bottles = append(bottles, views.BottleData{Level: level, Selected: i == m.Today.BottleCursor})
	}

	earnings := ""
	if e := m.Doc.EarningsAt(m.TodayKey); e.Amount != 0 || e.Note != "" {
		earnings = fmt.Sprintf("%.2f %s", e.Amount, e.Note)
	}
	weight := ""
	if kg, ok := m.Doc.WeightAt(m.TodayKey); ok {
		weight = fmt.Sprintf("%.1f kg", kg)
	}

	return views.RenderTodayPanel(views.TodayPanelData{
		DateLabel: m.TodayKey,
		Goals:     goalData,
		Bottles:   bottles,
		Litres:    litres,
		Comment:   m.Doc.Comment(m.TodayKey),
		Earnings:  earnings,
		Weight:    weight,
	})
}
