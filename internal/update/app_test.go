package update

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "habitd.json"))
	m := NewModel(st)
	m.TodayKey = "2024-01-17" // a Wednesday
	m.Calendar.FocusMonth = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	m.Calendar.DayCursor = 16
	m.exportDir = t.TempDir()
	seq := 0
	m.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Summary.Period != "1w" || m.Earnings.Period != "1m" {
		t.Fatalf("unexpected default periods: %+v %+v", m.Summary, m.Earnings)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t)
	cases := []struct {
		key  string
		want View
	}{
		{"1", ViewCalendar},
		{"3", ViewDaily},
		{"4", ViewEarnings},
		{"5", ViewSummary},
		{"2", ViewToday},
	}
	for _, tc := range cases {
		updated, _ := m.Update(keyRunes(tc.key))
		m = updated.(Model)
		if m.CurrentView != tc.want {
			t.Fatalf("key %q: expected view %q, got %q", tc.key, tc.want, m.CurrentView)
		}
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewSummary})
	next := updated.(Model)
	if next.CurrentView != ViewSummary {
		t.Fatalf("expected summary view, got %q", next.CurrentView)
	}
	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewSummary {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func paletteRun(t *testing.T, m Model, input string) Model {
	t.Helper()
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active after /")
	}
	updated, _ = next.Update(keyRunes(input))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func paletteRunCmd(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes(input))
	next = updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestPaletteGoalCommand(t *testing.T) {
	m := newTestModel(t)
	next := paletteRun(t, m, "goal Read 20 pages")
	doc := next.Store.Snapshot()
	if len(doc.Goals) != 1 || doc.Goals[0].Title != "Read 20 pages" {
		t.Fatalf("unexpected goals after palette add: %+v", doc.Goals)
	}
	if doc.Goals[0].StartDate != "2024-01-17" {
		t.Fatalf("expected goal to start today, got %q", doc.Goals[0].StartDate)
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
	if next.Palette.Active {
		t.Fatal("expected palette closed after execution")
	}
}

func TestPaletteDuplicateGoalRejected(t *testing.T) {
	m := newTestModel(t)
	next := paletteRun(t, m, "goal Run")
	next = paletteRun(t, next, "goal Run")
	if !next.Status.IsError {
		t.Fatalf("expected error status for duplicate goal, got %+v", next.Status)
	}
	if got := len(next.Store.Snapshot().Goals); got != 1 {
		t.Fatalf("expected single goal, got %d", got)
	}
}

func TestPaletteWeightClamped(t *testing.T) {
	m := newTestModel(t)
	next := paletteRun(t, m, "weight 500")
	kg, ok := next.Store.Snapshot().WeightAt("2024-01-17")
	if !ok || kg != 300 {
		t.Fatalf("expected clamped weight 300, got %v ok=%v", kg, ok)
	}
	if !strings.Contains(next.Status.Text, "clamped") {
		t.Fatalf("expected clamp notice, got %q", next.Status.Text)
	}
}

func TestPaletteUnknownCommandSetsErrorStatus(t *testing.T) {
	m := newTestModel(t)
	next := paletteRun(t, m, "frobnicate now")
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestCalendarCellCycling(t *testing.T) {
	m := newTestModel(t)
	m.Store.AddGoal(store.Goal{ID: "g1", Title: "Run", StartDate: "2024-01-01"})
	m.refreshDoc()
	m.CurrentView = ViewCalendar

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if next.Store.Cell("2024-01-17", "g1") != store.StatusDone {
		t.Fatalf("expected done after first cycle, got %q", next.Store.Cell("2024-01-17", "g1"))
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next = updated.(Model)
	if next.Store.Cell("2024-01-17", "g1") != store.StatusSkip {
		t.Fatalf("expected skip after second cycle, got %q", next.Store.Cell("2024-01-17", "g1"))
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next = updated.(Model)
	if next.Store.Cell("2024-01-17", "g1") != store.StatusUnset {
		t.Fatalf("expected unset after third cycle, got %q", next.Store.Cell("2024-01-17", "g1"))
	}
}

func TestCalendarRejectsMarkBeforeGoalStart(t *testing.T) {
	m := newTestModel(t)
	m.Store.AddGoal(store.Goal{ID: "g1", Title: "Run", StartDate: "2024-02-01"})
	m.refreshDoc()
	m.CurrentView = ViewCalendar

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
	if next.Store.Cell("2024-01-17", "g1") != store.StatusUnset {
		t.Fatal("cell must stay unset before the goal's start date")
	}
}

func TestCalendarMonthAndCursorNavigation(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewCalendar

	updated, _ := m.Update(keyRunes("l"))
	next := updated.(Model)
	if next.Calendar.FocusMonth.Month() != time.February {
		t.Fatalf("expected February focus, got %s", next.Calendar.FocusMonth.Format("January 2006"))
	}
	updated, _ = next.Update(keyRunes("h"))
	next = updated.(Model)
	if next.Calendar.FocusMonth.Month() != time.January {
		t.Fatalf("expected January focus, got %s", next.Calendar.FocusMonth.Format("January 2006"))
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRight})
	next = updated.(Model)
	if next.selectedCalendarKey() != "2024-01-18" {
		t.Fatalf("expected cursor on 18th, got %s", next.selectedCalendarKey())
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})
	next = updated.(Model)
	if next.selectedCalendarKey() != "2024-01-11" {
		t.Fatalf("expected cursor a week back, got %s", next.selectedCalendarKey())
	}
}

func TestTodayWaterBottleCycle(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewToday

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if got := next.Store.Snapshot().WaterAt("2024-01-17"); got != 0.5 {
		t.Fatalf("expected 0.5L after first cycle, got %v", got)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if got := next.Store.Snapshot().WaterAt("2024-01-17"); got != 1.0 {
		t.Fatalf("expected 1.0L after second cycle, got %v", got)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if got := next.Store.Snapshot().WaterAt("2024-01-17"); got != 0 {
		t.Fatalf("expected empty after third cycle, got %v", got)
	}
}

func TestTodayGoalMarkCycle(t *testing.T) {
	m := newTestModel(t)
	m.Store.AddGoal(store.Goal{ID: "g1", Title: "Stretch", StartDate: "2024-01-01"})
	m.refreshDoc()
	m.CurrentView = ViewToday

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if next.Store.Cell("2024-01-17", "g1") != store.StatusDone {
		t.Fatalf("expected done, got %q", next.Store.Cell("2024-01-17", "g1"))
	}
}

func TestDailyTaskAddMarkAndPostpone(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewDaily

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	if !next.Daily.Adding {
		t.Fatal("expected capture mode after a")
	}
	updated, _ = next.Update(keyRunes("buy stamps"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	tasks := next.todayTasks()
	if len(tasks) != 1 || tasks[0].Title != "buy stamps" {
		t.Fatalf("unexpected tasks after add: %+v", tasks)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next = updated.(Model)
	if got := next.todayTasks()[0].Status; got != store.StatusDone {
		t.Fatalf("expected done task, got %q", got)
	}

	updated, _ = next.Update(keyRunes("p"))
	next = updated.(Model)
	if len(next.todayTasks()) != 0 {
		t.Fatal("postponed task must leave today's list")
	}
	doc := next.Store.Snapshot()
	if len(doc.DailyTasks) != 1 || doc.DailyTasks[0].DateKey != "2024-01-18" {
		t.Fatalf("expected task moved to tomorrow, got %+v", doc.DailyTasks)
	}
	if doc.DailyTasks[0].Status != store.StatusUnset {
		t.Fatal("postponing must reset the task status")
	}
}

func TestEarningsPeriodCycle(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewEarnings

	updated, _ := m.Update(keyRunes("l"))
	next := updated.(Model)
	if next.Earnings.Period != "3m" {
		t.Fatalf("expected 3m period, got %q", next.Earnings.Period)
	}
	updated, _ = next.Update(keyRunes("h"))
	next = updated.(Model)
	if next.Earnings.Period != "1m" {
		t.Fatalf("expected 1m period, got %q", next.Earnings.Period)
	}
}

func TestSummaryViewRendersStats(t *testing.T) {
	m := newTestModel(t)
	m.Store.AddGoal(store.Goal{ID: "g1", Title: "Run", StartDate: "2024-01-11"})
	for _, key := range []string{"2024-01-15", "2024-01-16", "2024-01-17"} {
		m.Store.SetCell(key, "g1", store.StatusDone)
	}
	m.refreshDoc()
	m.CurrentView = ViewSummary

	out := m.View()
	if !strings.Contains(out, "goal: Run") {
		t.Fatalf("expected goal title in summary, got %q", out)
	}
	if !strings.Contains(out, "done: 3") {
		t.Fatalf("expected done count in summary, got %q", out)
	}
	if !strings.Contains(out, "heatmap") {
		t.Fatalf("expected heatmap section, got %q", out)
	}
}

func TestExportKeyWritesWorkbook(t *testing.T) {
	m := newTestModel(t)
	m.Store.AddGoal(store.Goal{ID: "g1", Title: "Run", StartDate: "2024-01-01"})
	m.Store.SetCell("2024-01-17", "g1", store.StatusDone)
	m.refreshDoc()

	updated, _ := m.Update(keyRunes("E"))
	next := updated.(Model)
	if next.Status.IsError {
		t.Fatalf("unexpected export error: %+v", next.Status)
	}
	path := filepath.Join(m.exportDir, "habits-2024-01-17.xlsx")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected workbook at %s: %v", path, err)
	}
}

func TestBackupKeyWritesJSON(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyRunes("B"))
	next := updated.(Model)
	if next.Status.IsError {
		t.Fatalf("unexpected backup error: %+v", next.Status)
	}
	path := filepath.Join(m.exportDir, "habitd-backup-2024-01-17.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if !strings.Contains(string(raw), "\"goals\"") {
		t.Fatalf("backup does not look like a document: %q", raw)
	}
}

func TestImportDataMsg(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(ImportDataMsg{Raw: []byte(`{"goals":[{"id":"g1","title":"Run","startDate":"2024-01-01","order":0}]}`)})
	next := updated.(Model)
	if next.Status.IsError {
		t.Fatalf("unexpected import error: %+v", next.Status)
	}
	if len(next.Doc.Goals) != 1 {
		t.Fatalf("expected imported goal, got %+v", next.Doc.Goals)
	}

	updated, _ = next.Update(ImportDataMsg{Raw: []byte("{broken")})
	next = updated.(Model)
	if !next.Status.IsError {
		t.Fatal("expected error status for invalid import")
	}
	if len(next.Doc.Goals) != 1 {
		t.Fatal("failed import must not change the document")
	}
}

func TestResetDataMsg(t *testing.T) {
	m := newTestModel(t)
	m.Store.AddGoal(store.Goal{ID: "g1", Title: "Run", StartDate: "2024-01-01"})
	m.Store.SetCell("2024-01-17", "g1", store.StatusDone)
	m.Store.SetComment("2024-01-17", "note")
	m.refreshDoc()

	updated, _ := m.Update(ResetDataMsg{Options: store.ClearEverything()})
	next := updated.(Model)
	if len(next.Doc.Completions) != 0 || len(next.Doc.Comments) != 0 {
		t.Fatalf("expected cleared data, got %+v", next.Doc)
	}
	if len(next.Doc.Goals) != 1 {
		t.Fatal("data-only reset must keep goals")
	}

	updated, _ = next.Update(ResetDataMsg{All: true})
	next = updated.(Model)
	if len(next.Doc.Goals) != 0 {
		t.Fatal("full reset must drop goals")
	}
}

func TestStatusAndErrorMsgs(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(t)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Today") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "today: 2024-01-17") {
		t.Fatalf("expected date in header: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}

func TestManualSyncWithoutSyncerReportsError(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(keyRunes("S"))
	next := updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
	if cmd != nil {
		t.Fatal("expected no command without a syncer")
	}
}

func TestPaletteImportCommandRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m = paletteRun(t, m, "goal Run")
	backup := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(backup, []byte(m.Store.ExportData()), 0o644); err != nil {
		t.Fatalf("write backup: %v", err)
	}

	next, cmd := paletteRunCmd(t, m, "reset all")
	if cmd == nil {
		t.Fatal("expected reset command")
	}
	updated, _ := next.Update(cmd())
	next = updated.(Model)
	if len(next.Doc.Goals) != 0 {
		t.Fatalf("expected empty document after reset, got %+v", next.Doc.Goals)
	}

	next, cmd = paletteRunCmd(t, next, "import "+backup)
	if cmd == nil {
		t.Fatal("expected import command")
	}
	updated, _ = next.Update(cmd())
	next = updated.(Model)
	if len(next.Doc.Goals) != 1 || next.Doc.Goals[0].Title != "Run" {
		t.Fatalf("expected goal restored from backup, got %+v", next.Doc.Goals)
	}
	if next.Status.IsError || next.Status.Text != "data imported" {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestPaletteImportMissingFile(t *testing.T) {
	m := newTestModel(t)
	next, cmd := paletteRunCmd(t, m, "import /no/such/file.json")
	if cmd != nil {
		t.Fatal("expected no command for unreadable file")
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestPaletteResetDataKeepsGoals(t *testing.T) {
	m := newTestModel(t)
	m = paletteRun(t, m, "goal Run")
	m.Store.SetCell("2024-01-17", "id-1", store.StatusDone)
	m.Store.SetComment("2024-01-17", "note")

	next, cmd := paletteRunCmd(t, m, "reset data")
	if cmd == nil {
		t.Fatal("expected reset command")
	}
	updated, _ := next.Update(cmd())
	next = updated.(Model)
	if len(next.Doc.Completions) != 0 || len(next.Doc.Comments) != 0 {
		t.Fatalf("expected cleared data, got %+v", next.Doc)
	}
	if len(next.Doc.Goals) != 1 {
		t.Fatal("data-only reset must keep goals")
	}
}

func TestPaletteResetRequiresScope(t *testing.T) {
	m := newTestModel(t)
	next, cmd := paletteRunCmd(t, m, "reset")
	if cmd != nil {
		t.Fatal("expected no command for bare reset")
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestPaletteInputInsertsAtCursor(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("oal Jog"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyHome})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("g"))
	next = updated.(Model)
	if next.Palette.Input != "goal Jog" {
		t.Fatalf("expected insert at cursor, got %q", next.Palette.Input)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	doc := next.Store.Snapshot()
	if len(doc.Goals) != 1 || doc.Goals[0].Title != "Jog" {
		t.Fatalf("unexpected goals: %+v", doc.Goals)
	}
}

func TestCommentEditorInsertsAtCursor(t *testing.T) {
	m := newTestModel(t)
	m.Store.SetComment(m.TodayKey, "bc")
	updated, _ := m.Update(StoreChangedMsg{})
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("2"))
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("c"))
	next = updated.(Model)
	if !next.Comment.Active {
		t.Fatal("expected comment editor active")
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyHome})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("a"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = updated.(Model)
	if got := next.Doc.Comment(next.TodayKey); got != "abc" {
		t.Fatalf("expected insert at cursor, got %q", got)
	}
}

func TestCloseRemovesStoreListener(t *testing.T) {
	m := newTestModel(t)
	m.Store.SetComment(m.TodayKey, "before")
	select {
	case <-m.changes:
	default:
		t.Fatal("expected change notification while subscribed")
	}

	m.Close()
	m.Store.SetComment(m.TodayKey, "after")
	select {
	case <-m.changes:
		t.Fatal("expected no notification after close")
	default:
	}
}
