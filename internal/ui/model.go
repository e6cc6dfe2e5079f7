package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/logbuf"
	"github.com/five82/airshare/internal/prefs"
	"github.com/five82/airshare/internal/sharing"
	"github.com/five82/airshare/internal/view"
)

// Engine is the sharing surface the UI drives. *sharing.Engine satisfies it.
type Engine interface {
	ViewModel() sharing.View
	LogEntries() []logbuf.Entry
	Refresh(ctx context.Context) error
	Toggle(ctx context.Context, deviceID string) error
	SetLocale(code string) error
	ClearLog()
	T(key string, params ...locale.Params) string
	SubscribeDirectory(fn func(sharing.View)) (unsubscribe func())
	SubscribeLog(fn func([]logbuf.Entry)) (unsubscribe func())
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Engine    Engine
	Locales   []string // cycled by the language key
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	engine    Engine
	locales   []string
	prefsPath string

	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	// Cached engine state. View never calls back into the engine for data.
	directory sharing.View
	entries   []logbuf.Entry
	selected  int

	logViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	locales := opts.Locales
	if len(locales) == 0 {
		locales = []string{locale.DefaultLocale}
	}

	return Model{
		ctx:       ctx,
		engine:    opts.Engine,
		locales:   locales,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

// Messages

type directoryMsg sharing.View

type logMsg []logbuf.Entry

// opDoneMsg reports a finished engine call. Failures already reach the
// activity log, so the error is informational.
type opDoneMsg struct{ err error }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(syncCmd(m.engine), refreshCmd(m.ctx, m.engine))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.logViewport = viewport.New(m.logWidth(), m.logHeight())
		} else {
			m.logViewport.Width = m.logWidth()
			m.logViewport.Height = m.logHeight()
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case directoryMsg:
		m.directory = sharing.View(msg)
		m.clampSelection()
		if m.ready {
			m.logViewport.Height = m.logHeight()
			m.updateLogViewport()
		}
		return m, nil

	case logMsg:
		m.entries = []logbuf.Entry(msg)
		m.updateLogViewport()
		return m, nil

	case opDoneMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.directory.Rows)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.selectedRow()
		if !ok || !row.ShareEnabled {
			return m, nil
		}
		return m, toggleCmd(m.ctx, m.engine, row.ID)

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.engine)

	case key.Matches(msg, m.keys.ClearLog):
		return m, clearLogCmd(m.engine)

	case key.Matches(msg, m.keys.CycleLocale):
		next := nextLocale(m.locales, m.directory.Locale)
		return m, setLocaleCmd(m.engine, next, m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Locale: m.directory.Locale})
		}
		m.updateLogViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) selectedRow() (row view.Row, ok bool) {
	if m.selected < 0 || m.selected >= len(m.directory.Rows) {
		return view.Row{}, false
	}
	return m.directory.Rows[m.selected], true
}

func (m *Model) clampSelection() {
	if n := len(m.directory.Rows); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func nextLocale(locales []string, current string) string {
	for i, code := range locales {
		if code == current {
			return locales[(i+1)%len(locales)]
		}
	}
	return locales[0]
}

// Commands
//
// Engine mutations run off the event loop: the engine notifies subscribers
// synchronously, and those subscribers feed this loop through Program.Send.

func syncCmd(engine Engine) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return directoryMsg(engine.ViewModel()) },
		func() tea.Msg { return logMsg(engine.LogEntries()) },
	)
}

func refreshCmd(ctx context.Context, engine Engine) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: engine.Refresh(ctx)}
	}
}

func toggleCmd(ctx context.Context, engine Engine, id string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: engine.Toggle(ctx, id)}
	}
}

func clearLogCmd(engine Engine) tea.Cmd {
	return func() tea.Msg {
		engine.ClearLog()
		return opDoneMsg{}
	}
}

func setLocaleCmd(engine Engine, code, prefsPath, themeName string) tea.Cmd {
	return func() tea.Msg {
		if err := engine.SetLocale(code); err != nil {
			return opDoneMsg{err: err}
		}
		if prefsPath != "" {
			_ = prefs.Save(prefsPath, prefs.Prefs{Theme: themeName, Locale: code})
		}
		return opDoneMsg{}
	}
}

// Run starts the Bubble Tea program and forwards engine updates to it until
// the user quits or ctx is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))

	offDirectory := opts.Engine.SubscribeDirectory(func(v sharing.View) { p.Send(directoryMsg(v)) })
	defer offDirectory()
	offLog := opts.Engine.SubscribeLog(func(entries []logbuf.Entry) { p.Send(logMsg(entries)) })
	defer offLog()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
