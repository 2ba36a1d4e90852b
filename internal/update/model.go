package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/google/uuid"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/stats"
	"github.com/ozankoca/habitd/internal/store"
	"github.com/ozankoca/habitd/internal/syncclient"
)

type View string

const (
	ViewCalendar View = "Calendar"
	ViewToday    View = "Today"
	ViewDaily    View = "Daily"
	ViewEarnings View = "Earnings"
	ViewSummary  View = "Summary"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Calendar string
	Today    string
	Daily    string
	Earnings string
	Summary  string
	Help     string
	Quit     string
}

type CalendarState struct {
	FocusMonth time.Time
	DayCursor  int
	GoalCursor int
}

type TodayState struct {
	GoalCursor   int
	BottleCursor int
}

type DailyState struct {
	Cursor int
	Adding bool
	Input  string
}

type EarningsState struct {
	Period stats.PeriodLabel
	Cursor int
}

type SummaryState struct {
	Period     stats.PeriodLabel
	GoalCursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type CommentEditorState struct {
	Active  bool
	DateKey string
}

// Model is the whole TUI state. The store is the single source of
// truth; Doc is the snapshot the views render from and is refreshed
// after every mutation and on StoreChangedMsg.
type Model struct {
	Store       *store.Store
	Doc         store.Document
	TodayKey    string
	CurrentView View
	Calendar    CalendarState
	Today       TodayState
	Daily       DailyState
	Earnings    EarningsState
	Summary     SummaryState
	Palette     CommandPaletteState
	Comment     CommentEditorState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	Syncer     *syncclient.Syncer
	syncActive bool

	// Bubble components used for rich TUI controls
	calendarTable table.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	commentArea   textarea.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
	summaryView   viewport.Model

	changes     chan struct{}
	unsubscribe func()
	newID       func() string
	exportDir   string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type StoreChangedMsg struct{}

type SyncResultMsg struct {
	Err error
}

type ImportDataMsg struct {
	Raw []byte
}

type ResetDataMsg struct {
	All     bool
	Options store.ResetOptions
}

func NewModel(st *store.Store) Model {
	todayKey := datekey.Today()
	day, _ := datekey.Parse(todayKey)
	m := Model{
		Store:       st,
		Doc:         st.Snapshot(),
		TodayKey:    todayKey,
		CurrentView: ViewToday,
		Calendar: CalendarState{
			FocusMonth: time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()),
			DayCursor:  day.Day() - 1,
		},
		Earnings: EarningsState{Period: stats.PeriodMonth},
		Summary:  SummaryState{Period: stats.PeriodWeek},
		Keys: GlobalKeyMap{
			Calendar: "1",
			Today:    "2",
			Daily:    "3",
			Earnings: "4",
			Summary:  "5",
			Help:     "?",
			Quit:     "q",
		},
		changes:   make(chan struct{}, 1),
		newID:     uuid.NewString,
		exportDir: ".",
	}
	m.unsubscribe = st.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// Close removes the store listener registered by NewModel. Call it
// once the program is done with the model.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func NewModelWithConfig(st *store.Store, cfg RuntimeConfig, syncer *syncclient.Syncer) Model {
	m := NewModel(st)
	m.Syncer = syncer
	if cfg.ExportDir != "" {
		m.exportDir = cfg.ExportDir
	}
	return m
}
