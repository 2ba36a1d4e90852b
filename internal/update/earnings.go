package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/stats"
	"github.com/ozankoca/habitd/internal/views"
)

var periodLabels = []stats.PeriodLabel{
	stats.PeriodWeek,
	stats.PeriodMonth,
	stats.Period3Months,
	stats.Period6Months,
	stats.PeriodYear,
}

func cyclePeriod(cur stats.PeriodLabel, delta int) stats.PeriodLabel {
	idx := 0
	for i, label := range periodLabels {
		if label == cur {
			idx = i
			break
		}
	}
	n := len(periodLabels)
	return periodLabels[((idx+delta)%n+n)%n]
}

func (m Model) handleEarningsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.Earnings.Period = cyclePeriod(m.Earnings.Period, -1)
		m.Earnings.Cursor = 0
	case "l", "right":
		m.Earnings.Period = cyclePeriod(m.Earnings.Period, 1)
		m.Earnings.Cursor = 0
	case "up", "k":
		if m.Earnings.Cursor > 0 {
			m.Earnings.Cursor--
		}
	case "down", "j":
		if m.Earnings.Cursor < len(m.earningsInPeriod())-1 {
			m.Earnings.Cursor++
		}
	}
	return m
}

func (m Model) earningsRange() stats.Range {
	return stats.PeriodRange(m.Earnings.Period, m.todayTime())
}

func (m Model) earningsInPeriod() []stats.EarningsItem {
	rng := m.earningsRange()
	return stats.EarningsInRange(m.Doc, rng.Start, rng.End)
}

func (m Model) renderEarningsView() string {
	rng := m.earningsRange()
	items := stats.EarningsInRange(m.Doc, rng.Start, rng.End)
	rows := make([]views.EarningsRowData, 0, len(items))
	for i, item := range items {
		rows = append(rows, views.EarningsRowData{
			DateKey:  item.DateKey,
			Amount:   item.Amount,
			Note:     item.Note,
			Selected: i == m.Earnings.Cursor,
		})
	}
	return views.RenderEarningsPanel(views.EarningsPanelData{
		PeriodLabel: string(m.Earnings.Period),
		Rows:        rows,
		Total:       stats.TotalEarnings(m.Doc, rng.Start, rng.End),
	})
}
