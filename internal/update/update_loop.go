package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForStoreCmd(m.changes)
}

func waitForStoreCmd(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return StoreChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.Comment.Active {
			next := m.handleCommentKey(typed)
			return next, nil
		}
		if m.Daily.Adding {
			next := m.handleDailyAddKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			return m, nil
		case m.Keys.Daily:
			m.CurrentView = ViewDaily
			return m, nil
		case m.Keys.Earnings:
			m.CurrentView = ViewEarnings
			return m, nil
		case m.Keys.Summary:
			m.CurrentView = ViewSummary
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "E":
			return m.exportWorkbook(), nil
		case "B":
			return m.exportBackup(), nil
		case "S":
			return m.startManualSync()
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewDaily:
			return m.handleDailyKey(typed), nil
		case ViewEarnings:
			return m.handleEarningsKey(typed), nil
		case ViewSummary:
			return m.handleSummaryKey(typed), nil
		}
	case spinner.TickMsg:
		if m.syncActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case StoreChangedMsg:
		m.refreshDoc()
		return m, waitForStoreCmd(m.changes)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case SyncResultMsg:
		m.syncActive = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("sync failed: %v", typed.Err), IsError: true}
		} else {
			m.Status = StatusBar{Text: "sync complete", IsError: false}
		}
		return m, nil
	case ImportDataMsg:
		if m.Store.ImportData(typed.Raw) {
			m.refreshDoc()
			m.Status = StatusBar{Text: "data imported", IsError: false}
		} else {
			m.Status = StatusBar{Text: "import rejected: not valid JSON", IsError: true}
		}
		return m, nil
	case ResetDataMsg:
		if typed.All {
			m.Store.ResetAllData()
		} else {
			m.Store.ResetDataOnly(typed.Options)
		}
		m.refreshDoc()
		m.Status = StatusBar{Text: "data reset", IsError: false}
		return m, nil
	}

	return m, nil
}

func (m *Model) refreshDoc() {
	m.Doc = m.Store.Snapshot()
	if err := m.Store.PersistErr(); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("save error: %v", err), IsError: true}
	}
}

func (m Model) View() string {
	m.syncBubbleData()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewCalendar:
		leftPane = m.renderCalendarView()
	case ViewToday:
		leftPane = m.renderTodayView()
	case ViewDaily:
		leftPane = m.renderDailyView()
	case ViewEarnings:
		leftPane = m.renderEarningsView()
	case ViewSummary:
		leftPane = m.renderSummaryView()
	}
	rightPane := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.Palette.Input),
		views.RenderCommentEditor(views.CommentEditorData{
			Active:   m.Comment.Active,
			DateKey:  m.Comment.DateKey,
			AreaView: m.commentArea.View(),
		}),
		m.renderHelpIfVisible(),
	}, "\n"))

	notification := ""
	if m.syncActive {
		notification = "sync: " + m.syncSpinner.View() + " running"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("habitd | view: %s | today: %s", m.CurrentView, m.TodayKey),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s cal | %s today | %s daily | %s earn | %s summary | / cmd | E export | B backup | S sync | %s help | %s quit",
			m.Keys.Calendar, m.Keys.Today, m.Keys.Daily, m.Keys.Earnings, m.Keys.Summary, m.Keys.Help, m.Keys.Quit),
		DarkTheme: m.Doc.Theme == store.ThemeDark,
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewCalendar, ViewToday, ViewDaily, ViewEarnings, ViewSummary:
		return true
	default:
		return false
	}
}
