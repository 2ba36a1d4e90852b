package store

import (
	"encoding/json"
	"math"
	"sort"
)

// Normalize produces a valid Document from arbitrary bytes. It never
// fails: unparseable input yields the default document and any field
// that does not decode falls back to its empty container. This is the
// single trust boundary for data entering the store, whether from
// disk, an import file or a remote pull, and it is idempotent:
// re-normalizing a normalized document changes nothing.
func Normalize(raw []byte) Document {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Default()
	}
	doc := Default()
	doc.Goals = normalizeGoals(fields["goals"])
	doc.Completions = normalizeCompletions(fields["completions"])
	doc.ColumnWidths = normalizeColumnWidths(fields["columnWidths"])
	doc.Comments = normalizeComments(fields["comments"])
	doc.Earnings = normalizeEarnings(fields["earnings"])
	doc.WaterIntake = normalizeWater(fields["waterIntake"])
	doc.WeightMeasurements = normalizeWeights(fields["weightMeasurements"])
	doc.DailyTasks = normalizeDailyTasks(fields["dailyTasks"])
	doc.Theme = normalizeTheme(fields["theme"])
	return doc
}

// rawGoal distinguishes a missing order from an explicit zero so that
// legacy goals without the field can be backfilled by array position.
type rawGoal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	Order     *int   `json:"order"`
}

func normalizeGoals(raw json.RawMessage) []Goal {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Goal{}
	}
	goals := make([]Goal, 0, len(items))
	for i, item := range items {
		var rg rawGoal
		if err := json.Unmarshal(item, &rg); err != nil || rg.ID == "" {
			continue
		}
		order := i
		if rg.Order != nil {
			order = *rg.Order
		}
		goals = append(goals, Goal{ID: rg.ID, Title: rg.Title, StartDate: rg.StartDate, Order: order})
	}
	sort.SliceStable(goals, func(a, b int) bool { return goals[a].Order < goals[b].Order })
	for i := range goals {
		goals[i].Order = i
	}
	return goals
}

func normalizeCompletions(raw json.RawMessage) map[string]map[string]CellStatus {
	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return map[string]map[string]CellStatus{}
	}
	out := make(map[string]map[string]CellStatus, len(days))
	for dateKey, dayRaw := range days {
		var day map[string]CellStatus
		if err := json.Unmarshal(dayRaw, &day); err != nil {
			continue
		}
		clean := make(map[string]CellStatus, len(day))
		for goalID, status := range day {
			if goalID == "" || status == StatusUnset || !status.IsValid() {
				continue
			}
			clean[goalID] = status
		}
		if len(clean) > 0 {
			out[dateKey] = clean
		}
	}
	return out
}

func normalizeColumnWidths(raw json.RawMessage) map[string]int {
	var widths map[string]float64
	if err := json.Unmarshal(raw, &widths); err != nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(widths))
	for goalID, w := range widths {
		if goalID == "" || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		out[goalID] = clampColumnWidth(int(w))
	}
	return out
}

func normalizeComments(raw json.RawMessage) map[string]string {
	var comments map[string]string
	if err := json.Unmarshal(raw, &comments); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(comments))
	for dateKey, text := range comments {
		if t := trimmed(text); t != "" {
			out[dateKey] = t
		}
	}
	return out
}

// normalizeEarnings accepts both the current {amount, note} shape and
// the legacy bare-number values and converges them on EarningsEntry.
func normalizeEarnings(raw json.RawMessage) map[string]EarningsEntry {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return map[string]EarningsEntry{}
	}
	out := make(map[string]EarningsEntry, len(entries))
	for dateKey, entryRaw := range entries {
		entry, ok := decodeEarningsEntry(entryRaw)
		if !ok {
			continue
		}
		if entry.Amount == 0 && entry.Note == "" {
			continue
		}
		out[dateKey] = entry
	}
	return out
}

func decodeEarningsEntry(raw json.RawMessage) (EarningsEntry, bool) {
	var amount float64
	if err := json.Unmarshal(raw, &amount); err == nil {
		return EarningsEntry{Amount: sanitizeAmount(amount)}, true
	}
	var entry struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return EarningsEntry{}, false
	}
	return EarningsEntry{Amount: sanitizeAmount(entry.Amount), Note: trimmed(entry.Note)}, true
}

func sanitizeAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}

func normalizeWater(raw json.RawMessage) map[string]float64 {
	var litres map[string]float64
	if err := json.Unmarshal(raw, &litres); err != nil {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(litres))
	for dateKey, l := range litres {
		if snapped := SnapLitres(l); snapped > 0 {
			out[dateKey] = snapped
		}
	}
	return out
}

func normalizeWeights(raw json.RawMessage) map[string]float64 {
	var weights map[string]float64
	if err := json.Unmarshal(raw, &weights); err != nil {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(weights))
	for dateKey, kg := range weights {
		if math.IsNaN(kg) || math.IsInf(kg, 0) {
			continue
		}
		out[dateKey] = kg
	}
	return out
}

func normalizeDailyTasks(raw json.RawMessage) []DailyTask {
	var tasks []DailyTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return []DailyTask{}
	}
	out := make([]DailyTask, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		if !t.Status.IsValid() {
			t.Status = StatusUnset
		}
		out = append(out, t)
	}
	return out
}

func normalizeTheme(raw json.RawMessage) Theme {
	var theme string
	if err := json.Unmarshal(raw, &theme); err == nil && Theme(theme) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}
