package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ozankoca/habitd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Calendar, Action: "switch to Calendar"},
		{Key: m.Keys.Today, Action: "switch to Today"},
		{Key: m.Keys.Daily, Action: "switch to Daily"},
		{Key: m.Keys.Earnings, Action: "switch to Earnings"},
		{Key: m.Keys.Summary, Action: "switch to Summary"},
		{Key: "/", Action: "open command palette"},
		{Key: "E", Action: "export xlsx workbook"},
		{Key: "B", Action: "write JSON backup"},
		{Key: "S", Action: "push to sync backend"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewCalendar:
		return []KeyBinding{
			{Key: "arrows", Action: "move day cursor"},
			{Key: "h/l", Action: "previous/next month"},
			{Key: "tab", Action: "cycle goal column"},
			{Key: "space", Action: "cycle day mark"},
			{Key: "c", Action: "edit day comment"},
			{Key: "t", Action: "jump to today"},
		}
	case ViewToday:
		return []KeyBinding{
			{Key: "j/k", Action: "move goal cursor"},
			{Key: "space", Action: "cycle goal mark"},
			{Key: "h/l", Action: "select water bottle"},
			{Key: "enter", Action: "cycle selected bottle"},
			{Key: "c", Action: "edit today's comment"},
		}
	case ViewDaily:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "cycle task mark"},
			{Key: "a", Action: "add task"},
			{Key: "d", Action: "delete task"},
			{Key: "p", Action: "postpone to tomorrow"},
		}
	case ViewEarnings:
		return []KeyBinding{
			{Key: "h/l", Action: "cycle period"},
			{Key: "j/k", Action: "move cursor"},
		}
	case ViewSummary:
		return []KeyBinding{
			{Key: "h/l", Action: "cycle period"},
			{Key: "j/k", Action: "cycle goal"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
