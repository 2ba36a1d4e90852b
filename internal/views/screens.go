package views

import (
	"fmt"
	"strings"
)

// Mark glyphs shared by the calendar grid and the today checklist.
const (
	GlyphDone  = "✓"
	GlyphSkip  = "-"
	GlyphUnset = "·"
)

type CalendarPanelData struct {
	MonthLabel   string
	GoalTitle    string
	GoalPosition string
	TableView    string
	SelectedDate string
	SelectedMark string
	Comment      string
}

type TodayGoalData struct {
	Title    string
	Mark     string
	Selected bool
}

type BottleData struct {
	Level    string
	Selected bool
}

type TodayPanelData struct {
	DateLabel string
	Goals     []TodayGoalData
	Bottles   []BottleData
	Litres    float64
	Comment   string
	Earnings  string
	Weight    string
}

type DailyItemData struct {
	Title    string
	Mark     string
	DateKey  string
	Selected bool
}

type DailyPanelData struct {
	DateLabel string
	Items     []DailyItemData
	AddView   string
	Adding    bool
}

type EarningsRowData struct {
	DateKey  string
	Amount   float64
	Note     string
	Selected bool
}

type EarningsPanelData struct {
	PeriodLabel string
	Rows        []EarningsRowData
	Total       float64
}

type SummaryPanelData struct {
	GoalTitle      string
	PeriodLabel    string
	Done           int
	Skip           int
	ApplicableDays int
	Percent        int
	Heatmap        [][]string
	Interpretation string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type CommentEditorData struct {
	Active   bool
	DateKey  string
	AreaView string
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("month: %s | goal: %s %s\n", data.MonthLabel, data.GoalTitle, data.GoalPosition))
	b.WriteString("actions: [arrows]day [h/l]month [tab]goal [space]mark [c]comment [t]today\n")
	b.WriteString(data.TableView + "\n")
	b.WriteString(fmt.Sprintf("selected: %s %s\n", data.SelectedDate, data.SelectedMark))
	if data.Comment != "" {
		b.WriteString("comment: " + data.Comment)
	}
	return strings.TrimSpace(b.String())
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString("today: " + data.DateLabel + "\n")
	b.WriteString("actions: [j/k]goal [space]mark [h/l]bottle [enter]fill [c]comment\n")
	b.WriteString("\ngoals:\n")
	if len(data.Goals) == 0 {
		b.WriteString("  (no goals yet, try /goal <title>)\n")
	}
	for _, g := range data.Goals {
		cursor := " "
		if g.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", cursor, markOrDot(g.Mark), g.Title))
	}
	b.WriteString("\nwater: " + renderBottles(data.Bottles))
	b.WriteString(fmt.Sprintf(" %.1fL\n", data.Litres))
	if data.Comment != "" {
		b.WriteString("comment: " + data.Comment + "\n")
	}
	if data.Earnings != "" {
		b.WriteString("earnings: " + data.Earnings + "\n")
	}
	if data.Weight != "" {
		b.WriteString("weight: " + data.Weight + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderBottles(bottles []BottleData) string {
	parts := make([]string, 0, len(bottles))
	for _, bot := range bottles {
		glyph := "○"
		switch bot.Level {
		case "full":
			glyph = "●"
		case "half":
			glyph = "◐"
		}
		if bot.Selected {
			glyph = "[" + glyph + "]"
		} else {
			glyph = " " + glyph + " "
		}
		parts = append(parts, glyph)
	}
	return strings.Join(parts, "")
}

func RenderDailyPanel(data DailyPanelData) string {
	var b strings.Builder
	b.WriteString("daily tasks: " + data.DateLabel + "\n")
	b.WriteString("actions: [j/k]move [space]mark [a]add [d]delete [p]postpone\n")
	if data.Adding {
		b.WriteString(data.AddView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("  (nothing for today)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s (%s)\n", cursor, markOrDot(item.Mark), item.Title, item.DateKey))
	}
	return strings.TrimSpace(b.String())
}

func RenderEarningsPanel(data EarningsPanelData) string {
	var b strings.Builder
	b.WriteString("earnings:\n")
	b.WriteString(fmt.Sprintf("period: %s | total: %.2f\n", data.PeriodLabel, data.Total))
	b.WriteString("actions: [h/l]period [j/k]move\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no earnings in this period)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %10.2f", cursor, row.DateKey, row.Amount))
		if row.Note != "" {
			b.WriteString("  " + row.Note)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderSummaryPanel(data SummaryPanelData) string {
	var b strings.Builder
	b.WriteString("summary:\n")
	b.WriteString(fmt.Sprintf("goal: %s | period: %s\n", data.GoalTitle, data.PeriodLabel))
	b.WriteString("actions: [h/l]period [j/k]goal\n")
	b.WriteString(fmt.Sprintf("done: %d skipped: %d applicable: %d (%d%%)\n",
		data.Done, data.Skip, data.ApplicableDays, data.Percent))
	if len(data.Heatmap) > 0 {
		b.WriteString("\nheatmap (mon..sun):\n")
		for _, row := range data.Heatmap {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				switch cell {
				case "done":
					cells = append(cells, "█")
				case "skip":
					cells = append(cells, "▒")
				default:
					cells = append(cells, "·")
				}
			}
			b.WriteString(strings.Join(cells, "") + "\n")
		}
	}
	if data.Interpretation != "" {
		b.WriteString("\n" + data.Interpretation)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderCommentEditor(data CommentEditorData) string {
	if !data.Active {
		return ""
	}
	return fmt.Sprintf("comment-editor: %s\nkeys: [esc] save and close\n%s", data.DateKey, data.AreaView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func markOrDot(mark string) string {
	if strings.TrimSpace(mark) == "" {
		return GlyphUnset
	}
	return mark
}
