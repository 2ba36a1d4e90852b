package update

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/commands"
	"github.com/ozankoca/habitd/internal/store"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

// executePaletteCommand parses and runs the palette line. Import and
// reset do not mutate inline; they return a command that emits the
// matching message so the central Update handler applies them.
func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	cmd, err := commands.Parse(m.Palette.Input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Goal: func(a commands.GoalArgs) (commands.Result, error) {
			goal := store.Goal{ID: m.newID(), Title: a.Title, StartDate: m.TodayKey}
			if err := m.Store.AddGoal(goal); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("added goal: %s", a.Title)}, nil
		},
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			m.Store.AddDailyTask(store.DailyTask{ID: m.newID(), Title: a.Title, DateKey: m.TodayKey})
			return commands.Result{Message: fmt.Sprintf("added daily task: %s", a.Title)}, nil
		},
		Water: func(a commands.WaterArgs) (commands.Result, error) {
			m.Store.SetWaterIntake(m.TodayKey, a.Litres)
			return commands.Result{Message: fmt.Sprintf("water set: %.1fL", store.SnapLitres(a.Litres))}, nil
		},
		Weight: func(a commands.WeightArgs) (commands.Result, error) {
			kg, clamped := clampWeight(a.Kilograms)
			m.Store.SetWeight(m.TodayKey, kg)
			msg := fmt.Sprintf("weight set: %.1f kg", kg)
			if clamped {
				msg += " (clamped)"
			}
			return commands.Result{Message: msg}, nil
		},
		Earn: func(a commands.EarnArgs) (commands.Result, error) {
			m.Store.SetEarnings(m.TodayKey, a.Amount, a.Note)
			return commands.Result{Message: fmt.Sprintf("earnings set: %.2f", a.Amount)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			m.Store.SetComment(m.TodayKey, a.Text)
			return commands.Result{Message: "comment saved"}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			theme := store.ThemeLight
			if a.Name == "dark" {
				theme = store.ThemeDark
			}
			m.Store.SetTheme(theme)
			return commands.Result{Message: fmt.Sprintf("theme: %s", a.Name)}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			raw, err := os.ReadFile(a.Path)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("cannot read %s: %v", a.Path, err)}
			}
			followUp = func() tea.Msg { return ImportDataMsg{Raw: raw} }
			return commands.Result{Message: fmt.Sprintf("importing %s", a.Path)}, nil
		},
		Reset: func(a commands.ResetArgs) (commands.Result, error) {
			all := a.All
			followUp = func() tea.Msg {
				return ResetDataMsg{All: all, Options: store.ClearEverything()}
			}
			if all {
				return commands.Result{Message: "resetting everything"}, nil
			}
			return commands.Result{Message: "resetting tracked data"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.refreshDoc()
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, followUp
}
