// Package store holds the whole application state as one versioned
// JSON document and exposes a reactive container around it: every
// mutation swaps in a new snapshot, persists it, then notifies
// subscribers. Readers always observe a complete snapshot, never a
// half-applied one.
package store

import "strings"

// CellStatus is the per-goal, per-day completion mark. The zero value
// means "not marked"; unset cells are never persisted.
type CellStatus string

const (
	StatusUnset CellStatus = ""
	StatusDone  CellStatus = "done"
	StatusSkip  CellStatus = "skip"
)

func (s CellStatus) IsValid() bool {
	switch s {
	case StatusUnset, StatusDone, StatusSkip:
		return true
	default:
		return false
	}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Goal is a recurring daily target. It becomes visible on StartDate
// and never expires. Order is its dense zero-based position.
type Goal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	Order     int    `json:"order"`
}

// VisibleOn reports whether the goal applies on the given date key.
// Plain string comparison is safe: keys are fixed-width zero-padded.
func (g Goal) VisibleOn(dateKey string) bool {
	return dateKey >= g.StartDate
}

// DailyTask is scoped to a single day, independent of goals.
type DailyTask struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DateKey string     `json:"dateKey"`
	Status  CellStatus `json:"status"`
}

type EarningsEntry struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// Column width bounds in pixels.
const (
	MinColumnWidth     = 80
	MaxColumnWidth     = 400
	DefaultColumnWidth = 140
)

// Document is the entire persisted state. Map entries only ever hold
// non-default facts: all-unset days, empty comments, zero earnings
// with no note and zero water are deleted rather than stored, so the
// serialized size stays bounded by what the user actually recorded.
type Document struct {
	Goals              []Goal                           `json:"goals"`
	Completions        map[string]map[string]CellStatus `json:"completions"`
	ColumnWidths       map[string]int                   `json:"columnWidths"`
	Comments           map[string]string                `json:"comments"`
	Earnings           map[string]EarningsEntry         `json:"earnings"`
	WaterIntake        map[string]float64               `json:"waterIntake"`
	WeightMeasurements map[string]float64               `json:"weightMeasurements"`
	DailyTasks         []DailyTask                      `json:"dailyTasks"`
	Theme              Theme                            `json:"theme"`
}

// Default returns an empty document with every container allocated.
func Default() Document {
	return Document{
		Goals:              []Goal{},
		Completions:        map[string]map[string]CellStatus{},
		ColumnWidths:       map[string]int{},
		Comments:           map[string]string{},
		Earnings:           map[string]EarningsEntry{},
		WaterIntake:        map[string]float64{},
		WeightMeasurements: map[string]float64{},
		DailyTasks:         []DailyTask{},
		Theme:              ThemeLight,
	}
}

// Cell returns the status of one goal on one date, defaulting to
// unset for anything not recorded.
func (d Document) Cell(dateKey, goalID string) CellStatus {
	day, ok := d.Completions[dateKey]
	if !ok {
		return StatusUnset
	}
	return day[goalID]
}

// ColumnWidth returns the stored width for a goal column, or the
// default when none was recorded.
func (d Document) ColumnWidth(goalID string) int {
	if w, ok := d.ColumnWidths[goalID]; ok {
		return w
	}
	return DefaultColumnWidth
}

func (d Document) Comment(dateKey string) string {
	return d.Comments[dateKey]
}

func (d Document) EarningsAt(dateKey string) EarningsEntry {
	return d.Earnings[dateKey]
}

func (d Document) WaterAt(dateKey string) float64 {
	return d.WaterIntake[dateKey]
}

func (d Document) WeightAt(dateKey string) (float64, bool) {
	w, ok := d.WeightMeasurements[dateKey]
	return w, ok
}

// GoalByID returns the goal with the given id, if present.
func (d Document) GoalByID(id string) (Goal, bool) {
	for _, g := range d.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// TaskByID returns the daily task with the given id, if present.
func (d Document) TaskByID(id string) (DailyTask, bool) {
	for _, t := range d.DailyTasks {
		if t.ID == id {
			return t, true
		}
	}
	return DailyTask{}, false
}

func clampColumnWidth(px int) int {
	if px < MinColumnWidth {
		return MinColumnWidth
	}
	if px > MaxColumnWidth {
		return MaxColumnWidth
	}
	return px
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
