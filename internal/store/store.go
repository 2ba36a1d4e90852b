package store

import (
	"encoding/json"
	"errors"
	"maps"
	"sync"

	"github.com/ozankoca/habitd/internal/datekey"
)

var ErrDuplicateGoal = errors.New("store: goal id already exists")

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return maps.Clone(m)
}

type listener struct {
	id int
	fn func()
}

// Store is the reactive container around the document. It is owned by
// the application root and passed down explicitly; there is no package
// global, so tests can run independent instances side by side.
//
// Every mutation follows the same sequence: build the next snapshot
// with copy-on-write of only the touched containers, swap it in,
// persist it to the data file, then invoke listeners in registration
// order. Persistence happens before notification so a listener can
// immediately read back a durable snapshot.
type Store struct {
	mu        sync.RWMutex
	path      string
	doc       Document
	listeners []listener
	nextID    int
	saveErr   error
}

// New loads (or defaults) the document at path and wraps it.
func New(path string) *Store {
	return &Store{path: path, doc: loadDocument(path)}
}

// NewWithDocument wraps an already-normalized document. Used by tests
// and by callers that load from elsewhere.
func NewWithDocument(path string, doc Document) *Store {
	return &Store{path: path, doc: doc}
}

// Snapshot returns the current document. The returned value shares
// substructure with the live document but mutations never modify maps
// in place, so it is safe to hold and read indefinitely.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run synchronously after each mutation, in
// registration order.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// PersistErr reports the error from the most recent persistence
// attempt, if any. Mutations themselves never fail on storage errors:
// the in-memory document stays authoritative.
func (s *Store) PersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveErr
}

func (s *Store) mutate(apply func(Document) Document) {
	s.mu.Lock()
	s.doc = apply(s.doc)
	s.saveErr = saveDocument(s.path, s.doc)
	notify := make([]func(), len(s.listeners))
	for i, l := range s.listeners {
		notify[i] = l.fn
	}
	s.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
}

// AddGoal appends a goal with order equal to the current goal count.
// A colliding id is rejected rather than silently duplicated.
func (s *Store) AddGoal(goal Goal) error {
	s.mu.RLock()
	_, exists := s.doc.GoalByID(goal.ID)
	s.mu.RUnlock()
	if exists {
		return ErrDuplicateGoal
	}
	s.mutate(func(d Document) Document {
		goal.Order = len(d.Goals)
		next := make([]Goal, 0, len(d.Goals)+1)
		next = append(next, d.Goals...)
		next = append(next, goal)
		d.Goals = next
		return d
	})
	return nil
}

// ReorderGoals reassigns order 0..n-1 following orderedIDs. Goals not
// named keep their relative order and are appended after, so every
// goal always ends up with a defined, unique order.
func (s *Store) ReorderGoals(orderedIDs []string) {
	s.mutate(func(d Document) Document {
		position := make(map[string]int, len(orderedIDs))
		for i, id := range orderedIDs {
			if _, seen := position[id]; !seen {
				position[id] = i
			}
		}
		named := make([]Goal, 0, len(d.Goals))
		rest := make([]Goal, 0, len(d.Goals))
		for _, g := range d.Goals {
			if _, ok := position[g.ID]; ok {
				named = append(named, g)
			} else {
				rest = append(rest, g)
			}
		}
		for i := range named {
			for j := i + 1; j < len(named); j++ {
				if position[named[j].ID] < position[named[i].ID] {
					named[i], named[j] = named[j], named[i]
				}
			}
		}
		next := append(named, rest...)
		for i := range next {
			next[i].Order = i
		}
		d.Goals = next
		return d
	})
}

// RemoveGoal deletes the goal and prunes its column width and every
// completion cell, dropping date entries that become empty.
func (s *Store) RemoveGoal(id string) {
	s.mutate(func(d Document) Document {
		goals := make([]Goal, 0, len(d.Goals))
		for _, g := range d.Goals {
			if g.ID != id {
				goals = append(goals, g)
			}
		}
		for i := range goals {
			goals[i].Order = i
		}
		d.Goals = goals

		if _, ok := d.ColumnWidths[id]; ok {
			widths := cloneMap(d.ColumnWidths)
			delete(widths, id)
			d.ColumnWidths = widths
		}

		completions := cloneMap(d.Completions)
		for dateKey, day := range completions {
			if _, ok := day[id]; !ok {
				continue
			}
			next := maps.Clone(day)
			delete(next, id)
			if len(next) == 0 {
				delete(completions, dateKey)
			} else {
				completions[dateKey] = next
			}
		}
		d.Completions = completions
		return d
	})
}

// SetCell records one goal's status for one date. Setting every goal
// at a date back to unset removes the date entry entirely.
func (s *Store) SetCell(dateKey, goalID string, status CellStatus) {
	if !status.IsValid() {
		status = StatusUnset
	}
	s.mutate(func(d Document) Document {
		day := maps.Clone(d.Completions[dateKey])
		if day == nil {
			day = map[string]CellStatus{}
		}
		if status == StatusUnset {
			delete(day, goalID)
		} else {
			day[goalID] = status
		}
		completions := cloneMap(d.Completions)
		if len(day) == 0 {
			delete(completions, dateKey)
		} else {
			completions[dateKey] = day
		}
		d.Completions = completions
		return d
	})
}

// Cell reads one cell, defaulting to unset for unknown keys.
func (s *Store) Cell(dateKey, goalID string) CellStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Cell(dateKey, goalID)
}

// IsGoalVisibleOnDate reports whether the goal applies on the date.
// Goals never expire, they only begin.
func (s *Store) IsGoalVisibleOnDate(goal Goal, dateKey string) bool {
	return goal.VisibleOn(dateKey)
}

// SetColumnWidth stores a clamped pixel width for a goal column.
func (s *Store) SetColumnWidth(goalID string, px int) {
	s.mutate(func(d Document) Document {
		widths := cloneMap(d.ColumnWidths)
		widths[goalID] = clampColumnWidth(px)
		d.ColumnWidths = widths
		return d
	})
}

func (s *Store) SetTheme(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.mutate(func(d Document) Document {
		d.Theme = theme
		return d
	})
}

// SetComment stores the trimmed text for a date; empty text deletes.
func (s *Store) SetComment(dateKey, text string) {
	text = trimmed(text)
	s.mutate(func(d Document) Document {
		comments := cloneMap(d.Comments)
		if text == "" {
			delete(comments, dateKey)
		} else {
			comments[dateKey] = text
		}
		d.Comments = comments
		return d
	})
}

// SetEarnings records the day's earnings. The entry is deleted only
// when the amount is zero and the note is empty; a zero amount with a
// note is a fact worth keeping.
func (s *Store) SetEarnings(dateKey string, amount float64, note string) {
	amount = sanitizeAmount(amount)
	note = trimmed(note)
	s.mutate(func(d Document) Document {
		earnings := cloneMap(d.Earnings)
		if amount == 0 && note == "" {
			delete(earnings, dateKey)
		} else {
			earnings[dateKey] = EarningsEntry{Amount: amount, Note: note}
		}
		d.Earnings = earnings
		return d
	})
}

// SetWaterIntake stores the snapped litre total; zero deletes.
func (s *Store) SetWaterIntake(dateKey string, litres float64) {
	litres = SnapLitres(litres)
	s.mutate(func(d Document) Document {
		intake := cloneMap(d.WaterIntake)
		if litres == 0 {
			delete(intake, dateKey)
		} else {
			intake[dateKey] = litres
		}
		d.WaterIntake = intake
		return d
	})
}

// SetWeight records a weight measurement; non-positive values delete.
func (s *Store) SetWeight(dateKey string, kg float64) {
	s.mutate(func(d Document) Document {
		weights := cloneMap(d.WeightMeasurements)
		if kg <= 0 {
			delete(weights, dateKey)
		} else {
			weights[dateKey] = kg
		}
		d.WeightMeasurements = weights
		return d
	})
}

func (s *Store) AddDailyTask(task DailyTask) {
	if !task.Status.IsValid() {
		task.Status = StatusUnset
	}
	s.mutate(func(d Document) Document {
		next := make([]DailyTask, 0, len(d.DailyTasks)+1)
		next = append(next, d.DailyTasks...)
		next = append(next, task)
		d.DailyTasks = next
		return d
	})
}

func (s *Store) RemoveDailyTask(id string) {
	s.mutate(func(d Document) Document {
		next := make([]DailyTask, 0, len(d.DailyTasks))
		for _, t := range d.DailyTasks {
			if t.ID != id {
				next = append(next, t)
			}
		}
		d.DailyTasks = next
		return d
	})
}

func (s *Store) SetDailyTaskStatus(id string, status CellStatus) {
	if !status.IsValid() {
		status = StatusUnset
	}
	s.mutate(func(d Document) Document {
		next := make([]DailyTask, len(d.DailyTasks))
		copy(next, d.DailyTasks)
		for i := range next {
			if next[i].ID == id {
				next[i].Status = status
			}
		}
		d.DailyTasks = next
		return d
	})
}

// PostponeDailyTaskToTomorrow moves a task to the next calendar day
// and resets its status. It is a move, not a copy: the task never
// exists on two dates at once.
func (s *Store) PostponeDailyTaskToTomorrow(id string) {
	s.mutate(func(d Document) Document {
		next := make([]DailyTask, len(d.DailyTasks))
		copy(next, d.DailyTasks)
		for i := range next {
			if next[i].ID == id {
				next[i].DateKey = datekey.AddDays(next[i].DateKey, 1)
				next[i].Status = StatusUnset
			}
		}
		d.DailyTasks = next
		return d
	})
}

// ExportData serializes the whole document as pretty-printed JSON.
func (s *Store) ExportData() string {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(payload)
}

// ImportData replaces the document wholesale after running the input
// through the full normalization pipeline. It reports false without
// any side effect when the input is not parseable JSON; this is the
// only mutation allowed to fail.
func (s *Store) ImportData(raw []byte) bool {
	if !json.Valid(raw) {
		return false
	}
	doc := Normalize(raw)
	s.mutate(func(Document) Document { return doc })
	return true
}

// ResetAllData replaces the document with defaults, goals included.
func (s *Store) ResetAllData() {
	s.mutate(func(Document) Document { return Default() })
}

// ResetOptions selects the categories ResetDataOnly clears. Use
// ClearEverything for the common case.
type ResetOptions struct {
	Ticks       bool
	Comments    bool
	Earnings    bool
	WaterIntake bool
	DailyTasks  bool
}

func ClearEverything() ResetOptions {
	return ResetOptions{Ticks: true, Comments: true, Earnings: true, WaterIntake: true, DailyTasks: true}
}

// ResetDataOnly clears the selected categories while preserving
// goals, column widths, weights and theme.
func (s *Store) ResetDataOnly(opts ResetOptions) {
	s.mutate(func(d Document) Document {
		if opts.Ticks {
			d.Completions = map[string]map[string]CellStatus{}
		}
		if opts.Comments {
			d.Comments = map[string]string{}
		}
		if opts.Earnings {
			d.Earnings = map[string]EarningsEntry{}
		}
		if opts.WaterIntake {
			d.WaterIntake = map[string]float64{}
		}
		if opts.DailyTasks {
			d.DailyTasks = []DailyTask{}
		}
		return d
	})
}
