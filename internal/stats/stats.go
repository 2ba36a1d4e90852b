// Package stats derives read-only views from a store snapshot: period
// completion statistics, heatmap grids, comparison interpretations and
// range-bounded entry lists. Nothing here mutates; every function
// takes the document by value and is safe to call concurrently with
// store mutation because snapshots are replaced atomically.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/store"
)

type HeatmapCell int

const (
	HeatNone HeatmapCell = iota
	HeatSkip
	HeatDone
)

// maxHeatmapDays caps the trailing window at one 52-week year.
const maxHeatmapDays = 364

type PeriodStats struct {
	Done           int
	Skip           int
	Total          int
	ApplicableDays int
	Percent        int
}

// Period walks every calendar day in [startKey, endKey] inclusive
// and counts the goal's marks. A day contributes to ApplicableDays
// only when the goal is visible on it; Percent is done over applicable
// days, zero when the goal was never applicable.
func Period(doc store.Document, goal store.Goal, startKey, endKey string) PeriodStats {
	var out PeriodStats
	for _, key := range datekey.KeysInRange(startKey, endKey) {
		if !goal.VisibleOn(key) {
			continue
		}
		out.ApplicableDays++
		switch doc.Cell(key, goal.ID) {
		case store.StatusDone:
			out.Done++
		case store.StatusSkip:
			out.Skip++
		}
	}
	out.Total = out.Done + out.Skip
	if out.ApplicableDays > 0 {
		out.Percent = int(math.Round(float64(out.Done) / float64(out.ApplicableDays) * 100))
	}
	return out
}

// HeatmapGrid builds a 7xW Monday-aligned grid covering the trailing
// daysBack days, plus lead-in to align the first column. Rows are
// Monday through Sunday. Future dates and dates before the goal's
// start render as none: none means "not applicable / no data", a
// different thing from skip.
func HeatmapGrid(doc store.Document, goal store.Goal, daysBack int, today time.Time) [][]HeatmapCell {
	if daysBack > maxHeatmapDays {
		daysBack = maxHeatmapDays
	}
	if daysBack < 0 {
		daysBack = 0
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	gridStart := datekey.MondayOnOrBefore(day.AddDate(0, 0, -daysBack))

	weeks := daysBack/7 + 1
	if daysBack%7 != 0 {
		weeks++
	}
	grid := make([][]HeatmapCell, 7)
	for row := 0; row < 7; row++ {
		grid[row] = make([]HeatmapCell, weeks)
		for col := 0; col < weeks; col++ {
			d := gridStart.AddDate(0, 0, col*7+row)
			key := datekey.Key(d)
			if d.After(day) || !goal.VisibleOn(key) {
				grid[row][col] = HeatNone
				continue
			}
			switch doc.Cell(key, goal.ID) {
			case store.StatusDone:
				grid[row][col] = HeatDone
			case store.StatusSkip:
				grid[row][col] = HeatSkip
			default:
				grid[row][col] = HeatNone
			}
		}
	}
	return grid
}

type PeriodLabel string

const (
	PeriodWeek    PeriodLabel = "1w"
	PeriodMonth   PeriodLabel = "1m"
	Period3Months PeriodLabel = "3m"
	Period6Months PeriodLabel = "6m"
	PeriodYear    PeriodLabel = "1y"
)

func (p PeriodLabel) Noun() string {
	switch p {
	case PeriodWeek:
		return "week"
	case PeriodMonth:
		return "month"
	case Period3Months:
		return "3 months"
	case Period6Months:
		return "6 months"
	default:
		return "year"
	}
}

type Range struct {
	Start string
	End   string
}

// PeriodRange resolves a label to its date window ending today. Month
// and year offsets use calendar-aware subtraction, not fixed day
// counts, to match what "one month ago" means to a person.
func PeriodRange(label PeriodLabel, today time.Time) Range {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var start time.Time
	switch label {
	case PeriodWeek:
		start = end.AddDate(0, 0, -6)
	case PeriodMonth:
		start = end.AddDate(0, -1, 0)
	case Period3Months:
		start = end.AddDate(0, -3, 0)
	case Period6Months:
		start = end.AddDate(0, -6, 0)
	default:
		start = end.AddDate(-1, 0, 0)
	}
	return Range{Start: datekey.Key(start), End: datekey.Key(end)}
}

// PreviousPeriodRange is the window of identical day count immediately
// before the current one, ending the day before its start.
func PreviousPeriodRange(label PeriodLabel, today time.Time) Range {
	current := PeriodRange(label, today)
	days := len(datekey.KeysInRange(current.Start, current.End))
	prevEnd := datekey.AddDays(current.Start, -1)
	prevStart := datekey.AddDays(prevEnd, -(days - 1))
	return Range{Start: prevStart, End: prevEnd}
}

// AutoInterpretation renders a one-line human summary of the current
// period, compared against the previous one when both have data.
func AutoInterpretation(current PeriodStats, previous *PeriodStats, label PeriodLabel) string {
	noun := label.Noun()
	if current.ApplicableDays == 0 {
		return fmt.Sprintf("No data for this %s yet.", noun)
	}
	text := fmt.Sprintf("%d/%d days done (%d%%).", current.Done, current.ApplicableDays, current.Percent)
	if previous == nil || previous.ApplicableDays == 0 {
		return text
	}
	switch {
	case current.Percent > previous.Percent:
		return fmt.Sprintf("%s Up from %d%% the previous %s — %d points of progress.",
			text, previous.Percent, noun, current.Percent-previous.Percent)
	case current.Percent < previous.Percent:
		return fmt.Sprintf("%s Down from %d%% the previous %s. A small dip; keep going.",
			text, previous.Percent, noun)
	default:
		return fmt.Sprintf("%s Same as the previous %s — steady.", text, noun)
	}
}

type EarningsItem struct {
	DateKey string
	Amount  float64
	Note    string
}

// EarningsInRange lists recorded earnings between the bounds, newest
// first. Empty bounds are open. Zero-amount-no-note entries are never
// stored, so no sentinel filtering is needed beyond the bounds.
func EarningsInRange(doc store.Document, startKey, endKey string) []EarningsItem {
	items := make([]EarningsItem, 0, len(doc.Earnings))
	for dateKey, e := range doc.Earnings {
		if !inBounds(dateKey, startKey, endKey) {
			continue
		}
		items = append(items, EarningsItem{DateKey: dateKey, Amount: e.Amount, Note: e.Note})
	}
	sort.Slice(items, func(a, b int) bool { return items[a].DateKey > items[b].DateKey })
	return items
}

// TotalEarnings sums recorded amounts between the bounds.
func TotalEarnings(doc store.Document, startKey, endKey string) float64 {
	var total float64
	for dateKey, e := range doc.Earnings {
		if inBounds(dateKey, startKey, endKey) {
			total += e.Amount
		}
	}
	return total
}

type WaterItem struct {
	DateKey string
	Litres  float64
}

// WaterIntakeInRange lists recorded water totals, newest first.
func WaterIntakeInRange(doc store.Document, startKey, endKey string) []WaterItem {
	items := make([]WaterItem, 0, len(doc.WaterIntake))
	for dateKey, litres := range doc.WaterIntake {
		if litres <= 0 || !inBounds(dateKey, startKey, endKey) {
			continue
		}
		items = append(items, WaterItem{DateKey: dateKey, Litres: litres})
	}
	sort.Slice(items, func(a, b int) bool { return items[a].DateKey > items[b].DateKey })
	return items
}

// DailyTasksInRange lists tasks whose day falls inside the bounds,
// oldest first, preserving insertion order within a day.
func DailyTasksInRange(doc store.Document, startKey, endKey string) []store.DailyTask {
	tasks := make([]store.DailyTask, 0, len(doc.DailyTasks))
	for _, t := range doc.DailyTasks {
		if inBounds(t.DateKey, startKey, endKey) {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(a, b int) bool { return tasks[a].DateKey < tasks[b].DateKey })
	return tasks
}

func inBounds(dateKey, startKey, endKey string) bool {
	if startKey != "" && dateKey < startKey {
		return false
	}
	if endKey != "" && dateKey > endKey {
		return false
	}
	return true
}
