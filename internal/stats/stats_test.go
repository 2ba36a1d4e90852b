package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/store"
)

func docWith(t *testing.T, mutate func(*store.Store)) store.Document {
	t.Helper()
	s := store.New(t.TempDir() + "/habitd.json")
	mutate(s)
	return s.Snapshot()
}

func TestPeriodCountsOnlyApplicableDays(t *testing.T) {
	goal := store.Goal{ID: "g1", Title: "Water", StartDate: "2024-01-10"}
	doc := docWith(t, func(s *store.Store) {
		if err := s.AddGoal(goal); err != nil {
			t.Fatalf("add goal: %v", err)
		}
		// Marked before the goal's start date: stored, but must not
		// count toward applicable days.
		s.SetCell("2024-01-09", "g1", store.StatusDone)
		s.SetCell("2024-01-10", "g1", store.StatusDone)
		s.SetCell("2024-01-11", "g1", store.StatusSkip)
	})

	got := Period(doc, goal, "2024-01-08", "2024-01-12")
	if got.ApplicableDays != 3 {
		t.Fatalf("expected 3 applicable days, got %d", got.ApplicableDays)
	}
	if got.Done != 1 || got.Skip != 1 || got.Total != 2 {
		t.Fatalf("unexpected counts: %#v", got)
	}
}

func TestPeriodPercentRounding(t *testing.T) {
	goal := store.Goal{ID: "g1", Title: "Run", StartDate: "2024-01-01"}
	doc := docWith(t, func(s *store.Store) {
		if err := s.AddGoal(goal); err != nil {
			t.Fatalf("add goal: %v", err)
		}
		for _, key := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
			s.SetCell(key, "g1", store.StatusDone)
		}
		s.SetCell("2024-01-06", "g1", store.StatusSkip)
	})

	got := Period(doc, goal, "2024-01-01", "2024-01-07")
	want := PeriodStats{Done: 5, Skip: 1, Total: 6, ApplicableDays: 7, Percent: 71}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestPeriodZeroApplicableDays(t *testing.T) {
	goal := store.Goal{ID: "g1", Title: "Run", StartDate: "2025-01-01"}
	got := Period(store.Default(), goal, "2024-01-01", "2024-01-07")
	if got.ApplicableDays != 0 || got.Percent != 0 {
		t.Fatalf("expected zero stats, got %#v", got)
	}
}

func TestHeatmapGridShapeAndAlignment(t *testing.T) {
	goal := store.Goal{ID: "g1", Title: "Run", StartDate: "2000-01-01"}
	today := time.Date(2024, 1, 17, 15, 0, 0, 0, time.Local) // a Wednesday
	doneKey := "2024-01-15"                                  // the Monday of this week
	doc := docWith(t, func(s *store.Store) {
		if err := s.AddGoal(goal); err != nil {
			t.Fatalf("add goal: %v", err)
		}
		s.SetCell(doneKey, "g1", store.StatusDone)
		s.SetCell("2024-01-16", "g1", store.StatusSkip)
	})

	grid := HeatmapGrid(doc, goal, 28, today)
	if len(grid) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(grid))
	}
	weeks := len(grid[0])
	for row := range grid {
		if len(grid[row]) != weeks {
			t.Fatal("ragged grid")
		}
	}
	// Column 0 row 0 is a Monday: 28 days back from Wednesday Jan 17
	// is Wednesday Dec 20; its Monday is Dec 18.
	start := datekey.MondayOnOrBefore(time.Date(2023, 12, 20, 0, 0, 0, 0, time.Local))
	if datekey.Key(start) != "2023-12-18" {
		t.Fatalf("unexpected alignment origin: %s", datekey.Key(start))
	}
	// The done Monday sits in row 0 of the final in-range column.
	lastCol := weeks - 1
	if grid[0][lastCol] != HeatDone {
		t.Fatalf("expected done at row 0 col %d", lastCol)
	}
	if grid[1][lastCol] != HeatSkip {
		t.Fatalf("expected skip at row 1 col %d", lastCol)
	}
	// Thursday through Sunday of the current week are in the future.
	for row := 3; row < 7; row++ {
		if grid[row][lastCol] != HeatNone {
			t.Fatalf("future cell row %d should be none", row)
		}
	}
}

func TestHeatmapGridHidesPreVisibilityDays(t *testing.T) {
	today := time.Date(2024, 1, 17, 0, 0, 0, 0, time.Local)
	goal := store.Goal{ID: "g1", Title: "New habit", StartDate: "2024-01-16"}
	doc := docWith(t, func(s *store.Store) {
		if err := s.AddGoal(goal); err != nil {
			t.Fatalf("add goal: %v", err)
		}
		s.SetCell("2024-01-15", "g1", store.StatusDone) // before visibility
		s.SetCell("2024-01-16", "g1", store.StatusDone)
	})

	grid := HeatmapGrid(doc, goal, 7, today)
	lastCol := len(grid[0]) - 1
	if grid[0][lastCol] != HeatNone {
		t.Fatal("pre-visibility day must render none even when marked")
	}
	if grid[1][lastCol] != HeatDone {
		t.Fatal("first visible day should render done")
	}
}

func TestPeriodRangeCalendarAware(t *testing.T) {
	today := time.Date(2024, 3, 31, 12, 0, 0, 0, time.Local)
	if r := PeriodRange(PeriodWeek, today); r.Start != "2024-03-25" || r.End != "2024-03-31" {
		t.Fatalf("1w: %#v", r)
	}
	// One calendar month before Mar 31 normalizes through Feb.
	if r := PeriodRange(PeriodMonth, today); r.End != "2024-03-31" || r.Start != "2024-03-02" {
		t.Fatalf("1m: %#v", r)
	}
	if r := PeriodRange(PeriodYear, today); r.Start != "2023-03-31" {
		t.Fatalf("1y: %#v", r)
	}
}

func TestPreviousPeriodRangeAbutsCurrent(t *testing.T) {
	today := time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)
	current := PeriodRange(PeriodWeek, today)
	previous := PreviousPeriodRange(PeriodWeek, today)
	if previous.End != datekey.AddDays(current.Start, -1) {
		t.Fatalf("previous window must end the day before the current starts: %#v / %#v", previous, current)
	}
	if len(datekey.KeysInRange(previous.Start, previous.End)) != len(datekey.KeysInRange(current.Start, current.End)) {
		t.Fatal("windows must have identical day counts")
	}
}

func TestAutoInterpretation(t *testing.T) {
	if got := AutoInterpretation(PeriodStats{}, nil, PeriodWeek); !strings.Contains(got, "No data") {
		t.Fatalf("expected no-data text, got %q", got)
	}
	current := PeriodStats{Done: 5, ApplicableDays: 7, Percent: 71}
	if got := AutoInterpretation(current, nil, PeriodWeek); !strings.Contains(got, "5/7") {
		t.Fatalf("expected current-only text, got %q", got)
	}
	previous := PeriodStats{Done: 3, ApplicableDays: 7, Percent: 43}
	if got := AutoInterpretation(current, &previous, PeriodWeek); !strings.Contains(got, "28 points") {
		t.Fatalf("expected improvement text, got %q", got)
	}
	if got := AutoInterpretation(previous, &current, PeriodWeek); !strings.Contains(got, "Down from 71%") {
		t.Fatalf("expected regression text, got %q", got)
	}
	same := current
	if got := AutoInterpretation(current, &same, PeriodWeek); !strings.Contains(got, "steady") {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestEarningsInRangeSortedDescending(t *testing.T) {
	doc := docWith(t, func(s *store.Store) {
		s.SetEarnings("2024-01-05", 100, "")
		s.SetEarnings("2024-01-01", 50, "gift")
		s.SetEarnings("2024-01-10", 25, "")
		s.SetEarnings("2023-12-31", 10, "")
	})
	items := EarningsInRange(doc, "2024-01-01", "2024-01-31")
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{"2024-01-10", "2024-01-05", "2024-01-01"}
	for i, item := range items {
		if item.DateKey != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], item.DateKey)
		}
	}
	if items[2].Note != "gift" {
		t.Fatalf("note lost: %#v", items[2])
	}
	if all := EarningsInRange(doc, "", ""); len(all) != 4 {
		t.Fatalf("open bounds should list everything, got %d", len(all))
	}
	if got := TotalEarnings(doc, "2024-01-01", "2024-01-31"); got != 175 {
		t.Fatalf("expected 175, got %v", got)
	}
}

func TestWaterIntakeInRange(t *testing.T) {
	doc := docWith(t, func(s *store.Store) {
		s.SetWaterIntake("2024-01-03", 2)
		s.SetWaterIntake("2024-01-01", 1.5)
		s.SetWaterIntake("2024-01-09", 0.5)
	})
	items := WaterIntakeInRange(doc, "2024-01-01", "2024-01-05")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].DateKey != "2024-01-03" || items[1].DateKey != "2024-01-01" {
		t.Fatalf("not sorted newest first: %#v", items)
	}
}

func TestDailyTasksInRangeSortedAscending(t *testing.T) {
	doc := docWith(t, func(s *store.Store) {
		s.AddDailyTask(store.DailyTask{ID: "t2", Title: "b", DateKey: "2024-01-05"})
		s.AddDailyTask(store.DailyTask{ID: "t1", Title: "a", DateKey: "2024-01-02"})
		s.AddDailyTask(store.DailyTask{ID: "t3", Title: "c", DateKey: "2024-02-01"})
	})
	tasks := DailyTasksInRange(doc, "2024-01-01", "2024-01-31")
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "t1" || tasks[1].ID != "t2" {
		t.Fatalf("not sorted oldest first: %#v", tasks)
	}
}
