package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/stats"
	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/views"
)

func (m Model) handleSummaryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.Summary.Period = cyclePeriod(m.Summary.Period, -1)
	case "l", "right":
		m.Summary.Period = cyclePeriod(m.Summary.Period, 1)
	case "up", "k":
		if m.Summary.GoalCursor > 0 {
			m.Summary.GoalCursor--
		}
	case "down", "j":
		if m.Summary.GoalCursor < len(m.Doc.Goals)-1 {
			m.Summary.GoalCursor++
		}
	}
	return m
}

func (m Model) selectedSummaryGoal() (store.Goal, bool) {
	if len(m.Doc.Goals) == 0 {
		return store.Goal{}, false
	}
	cursor := m.Summary.GoalCursor
	if cursor < 0 || cursor >= len(m.Doc.Goals) {
		cursor = 0
	}
	return m.Doc.Goals[cursor], true
}

// heatmapDays maps the selected period to the trailing window the
// heatmap shows, in whole weeks.
func heatmapDays(label stats.PeriodLabel) int {
	switch label {
	case stats.PeriodWeek:
		return 7
	case stats.PeriodMonth:
		return 35
	case stats.Period3Months:
		return 91
	case stats.Period6Months:
		return 182
	default:
		return 364
	}
}

func (m Model) summaryStats() (current stats.PeriodStats, previous stats.PeriodStats, ok bool) {
	goal, hasGoal := m.selectedSummaryGoal()
	if !hasGoal {
		return stats.PeriodStats{}, stats.PeriodStats{}, false
	}
	today := m.todayTime()
	cur := stats.PeriodRange(m.Summary.Period, today)
	prev := stats.PreviousPeriodRange(m.Summary.Period, today)
	return stats.Period(m.Doc, goal, cur.Start, cur.End),
		stats.Period(m.Doc, goal, prev.Start, prev.End),
		true
}

func (m Model) summaryInterpretation() string {
	current, previous, ok := m.summaryStats()
	if !ok {
		return ""
	}
	return stats.AutoInterpretation(current, &previous, m.Summary.Period)
}

func (m Model) renderSummaryView() string {
	goal, hasGoal := m.selectedSummaryGoal()
	if !hasGoal {
		return views.RenderSummaryPanel(views.SummaryPanelData{
			GoalTitle:   "(none)",
			PeriodLabel: string(m.Summary.Period),
		})
	}
	current, _, _ := m.summaryStats()

	grid := stats.HeatmapGrid(m.Doc, goal, heatmapDays(m.Summary.Period), m.todayTime())
	heatmap := make([][]string, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			switch cell {
			case stats.HeatDone:
				cells = append(cells, "done")
			case stats.HeatSkip:
				cells = append(cells, "skip")
			default:
				cells = append(cells, "none")
			}
		}
		heatmap = append(heatmap, cells)
	}

	return views.RenderSummaryPanel(views.SummaryPanelData{
		GoalTitle:      goal.Title,
		PeriodLabel:    string(m.Summary.Period),
		Done:           current.Done,
		Skip:           current.Skip,
		ApplicableDays: current.ApplicableDays,
		Percent:        current.Percent,
		Heatmap:        heatmap,
		Interpretation: m.summaryView.View(),
	})
}
