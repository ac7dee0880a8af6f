package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/ensigniasec/relic-scan/internal/clock"
	"github.com/ensigniasec/relic-scan/internal/orbit"
	"github.com/ensigniasec/relic-scan/internal/scan"
	"github.com/ensigniasec/relic-scan/internal/storage"
)

// Options configures NewModel. Zero values fall back to defaults.
type Options struct {
	// Scheduler runs debounce and reveal timers. Run supplies one that
	// delivers callbacks through the update loop.
	Scheduler clock.Scheduler
	Generator scan.Generator
	// Storage persists changes made on the settings page; nil keeps them in memory.
	Storage   *storage.Storage
	Settings  storage.Settings
	StartPage string
	// AutoScan starts a scan as soon as the program runs.
	AutoScan bool
}

// Model is the root Bubble Tea model.
type Model struct {
	s *session

	width    int
	height   int
	quitting bool

	// dial animation; dialAngle is unwrapped so the spring never swings the long way round.
	spring    harmonica.Spring
	dialAngle float64
	dialVel   float64
	ticking   bool

	progress    progress.Model
	spinner     spinner.Model
	historyList list.Model
	historyHead string

	settingsIndex int
	status        statusMsg
	helpVisible   bool
	autoScan      bool

	// timers is nil when the scheduler delivers callbacks itself, as in tests.
	timers *clock.Loop

	keys keyMap
}

// NewModel constructs a Model with initial state.
func NewModel(opts Options) Model {
	sched := opts.Scheduler
	if sched == nil {
		sched = clock.Real()
	}
	gen := opts.Generator
	if gen == nil {
		gen = scan.NewMockGenerator(uint64(time.Now().UnixNano())) //nolint:gosec // not security sensitive
	}
	settings := opts.Settings
	if settings == (storage.Settings{}) {
		settings = storage.DefaultSettings()
	}
	s := newSession(sched, gen, opts.Storage, settings)
	if p, ok := pageForRoute(opts.StartPage); ok {
		s.page = p
		for _, n := range s.nav.Catalog() {
			if n.Route == opts.StartPage {
				s.nav.SetActiveNode(n.ID)
			}
		}
	}

	lst := list.New([]list.Item{}, historyDelegate{}, rightViewportMax, historyListHeight)
	lst.Title = "Appraisal history"
	lst.SetShowStatusBar(true)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.KeyMap.CursorUp = key.NewBinding(key.WithKeys("["))
	lst.KeyMap.CursorDown = key.NewBinding(key.WithKeys("]"))

	m := Model{
		s:           s,
		spring:      harmonica.NewSpring(harmonica.FPS(framesPerSecond), springFrequency, springDamping),
		dialAngle:   s.nav.State().CurrentAngle,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(rightViewportMax-8)),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		historyList: lst,
		autoScan:    opts.AutoScan,
		keys:        newKeyMap(),
	}
	if l, ok := sched.(*clock.Loop); ok {
		m.timers = l
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.timers != nil {
		cmds = append(cmds, listenForTimers(m.timers))
	}
	if m.autoScan {
		cmds = append(cmds, func() tea.Msg { return startScanMsg{} })
	}
	return tea.Batch(cmds...)
}

// tickFrame schedules the next animation frame.
func tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// ensureFrames starts the frame loop unless one is already running.
func (m *Model) ensureFrames() tea.Cmd {
	if m.ticking || !m.needsFrames() {
		return nil
	}
	m.ticking = true
	return tickFrame()
}

func (m Model) needsFrames() bool {
	return m.s.driver.Active() || !m.dialSettled() || m.s.revealing(m.s.sched.Now())
}

// dialTarget is the navigation angle expressed closest to the current dial angle.
func (m Model) dialTarget() float64 {
	current := orbit.NormalizeAngle(m.dialAngle)
	return m.dialAngle + orbit.AngularDistance(current, m.s.nav.State().CurrentAngle)
}

func (m Model) dialSettled() bool {
	return math.Abs(m.dialTarget()-m.dialAngle) < dialSettleDegrees && math.Abs(m.dialVel) < dialSettleDegrees
}

// stepDial advances the spring one frame; reduced motion jumps straight to the target.
func (m *Model) stepDial() {
	target := m.dialTarget()
	if m.s.settings.ReducedMotion {
		m.dialAngle, m.dialVel = target, 0
		return
	}
	m.dialAngle, m.dialVel = m.spring.Update(m.dialAngle, m.dialVel, target)
	if math.Abs(target-m.dialAngle) < dialSettleDegrees && math.Abs(m.dialVel) < dialSettleDegrees {
		m.dialAngle, m.dialVel = target, 0
	}
}

// Close cancels the scan driver, the wheel debounce and any reveal in flight.
func (m Model) Close() {
	m.s.close()
	if m.timers != nil {
		m.timers.Close()
	}
}
