package update

import (
	"time"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/store"
)

// Weight entry bounds in kilograms. The store persists whatever it is
// given; the UI clamps before writing.
const (
	minWeightKg = 20.0
	maxWeightKg = 300.0
)

func clampWeight(kg float64) (float64, bool) {
	switch {
	case kg < minWeightKg:
		return minWeightKg, true
	case kg > maxWeightKg:
		return maxWeightKg, true
	default:
		return kg, false
	}
}

func statusWord(s store.CellStatus) string {
	switch s {
	case store.StatusDone:
		return "done"
	case store.StatusSkip:
		return "skipped"
	default:
		return "cleared"
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (m Model) todayTime() time.Time {
	t, err := datekey.Parse(m.TodayKey)
	if err != nil {
		return time.Now()
	}
	return t
}
