package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/focus/internal/cli/formatter"
	"github.com/alexanderramin/focus/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const completionBanner = "Session complete. Take a break."

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Open the live dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app)
		},
	}
}

func runWatch(cmd *cobra.Command, app *App) error {
	m := newWatchModel(cmd.Context(), app)
	defer m.shutdown()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// engineMsg tells the model the engine changed state.
type engineMsg struct{}

// watchNotifier is the dashboard's engine listener. It runs under the engine
// lock, so it never blocks: wakeups coalesce into one pending signal.
type watchNotifier struct {
	wake      chan struct{}
	completed atomic.Bool
}

func newWatchNotifier() *watchNotifier {
	return &watchNotifier{wake: make(chan struct{}, 1)}
}

func (n *watchNotifier) OnDisplayUpdate(string)     { n.signal() }
func (n *watchNotifier) OnRunningStateChanged(bool) { n.signal() }

func (n *watchNotifier) OnSessionComplete() {
	n.completed.Store(true)
	n.signal()
}

func (n *watchNotifier) signal() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

type watchKeyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Preset  key.Binding
	Visible key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Preset:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "preset")),
		Visible: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "show/hide")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Visible, k.Help, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Preset},
		{k.Visible, k.Help, k.Quit},
	}
}

// watchModel is the live dashboard. It renders straight from the engine;
// engine notifications only tell it when to render again.
type watchModel struct {
	ctx      context.Context
	app      *App
	engine   *timer.Engine
	notifier *watchNotifier
	done     chan struct{}
	stopOnce sync.Once

	keys    watchKeyMap
	help    help.Model
	visible bool
	today   int
	banner  string
	err     error
}

func newWatchModel(ctx context.Context, app *App) *watchModel {
	n := newWatchNotifier()
	m := &watchModel{
		ctx:      ctx,
		app:      app,
		notifier: n,
		done:     make(chan struct{}),
		keys:     newWatchKeyMap(),
		help:     help.New(),
	}
	m.engine = app.newEngine(n)
	m.visible = app.timerVisible(ctx)
	m.today = app.todayCount(ctx)
	return m
}

// shutdown stops ticking. The persisted countdown keeps going and the next
// process resumes it.
func (m *watchModel) shutdown() {
	m.stopOnce.Do(func() {
		close(m.done)
		m.engine.Close()
	})
}

func (m *watchModel) waitForEngine() tea.Cmd {
	wake, done := m.notifier.wake, m.done
	return func() tea.Msg {
		select {
		case <-wake:
			return engineMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *watchModel) Init() tea.Cmd {
	return m.waitForEngine()
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineMsg:
		m.checkCompleted()
		return m, m.waitForEngine()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *watchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.banner = ""
		if m.engine.IsRunning() {
			m.engine.Pause()
		} else if err := m.engine.Start(); err != nil && !errors.Is(err, timer.ErrAlreadyRunning) {
			m.err = err
		}

	case key.Matches(msg, m.keys.Reset):
		m.banner = ""
		m.engine.Reset()

	case key.Matches(msg, m.keys.Preset):
		idx := int(msg.String()[0] - '1')
		if idx < len(m.app.Presets) {
			m.banner = ""
			m.err = m.engine.SetPreset(m.app.Presets[idx])
		}

	case key.Matches(msg, m.keys.Visible):
		if m.app.Prefs == nil {
			m.visible = !m.visible
			break
		}
		visible, err := m.app.Prefs.ToggleTimerVisible(m.ctx)
		if err != nil {
			m.err = err
			break
		}
		m.visible = visible

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.checkCompleted()
	return m, nil
}

// checkCompleted turns a pending completion into the one-shot banner.
func (m *watchModel) checkCompleted() {
	if m.notifier.completed.Swap(false) {
		m.banner = completionBanner
		m.today = m.app.todayCount(m.ctx)
	}
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.FormatTimerStatus(formatter.TimerStatusData{
		Snapshot:   m.engine.Snapshot(),
		Visible:    m.visible,
		Now:        m.app.Clock.Now(),
		TodayCount: m.today,
	}))
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString(formatter.StyleGreen.Render(m.banner))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	if line := presetLine(m.app.Presets); line != "" {
		b.WriteString(formatter.Dim(line))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func presetLine(presets []int) string {
	if len(presets) == 0 {
		return ""
	}
	parts := make([]string, 0, len(presets))
	for i, p := range presets {
		if i >= 9 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d %s", i+1, formatter.FormatMinutes(p)))
	}
	return "presets: " + strings.Join(parts, "  ")
}
