// Package tui implements the interactive sysdash dashboard on bubbletea.
//
// The Model owns the history buffer. Sampling passes run as commands off
// the update goroutine and come back as messages; only Update appends to
// the history, so the buffer has a single writer.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/sysdash/collectors"
	"gitlab.com/tinyland/lab/sysdash/history"
	"gitlab.com/tinyland/lab/sysdash/monitor"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabOverview Tab = iota
	TabHistory
	TabDetails
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabOverview: "Overview",
	TabHistory:  "History",
	TabDetails:  "Details",
}

// IntervalStep is how much one press of +/- changes the refresh interval.
const IntervalStep = time.Second

const headerHeight = 2 // tab bar and its rule

// Options configures a Model.
type Options struct {
	// Context bounds every sampling pass. Nil means context.Background.
	Context context.Context
	Source  collectors.Source
	// History receives one sample per cycle. Nil allocates the default size.
	History  *history.Buffer
	Interval time.Duration
	// ProcessLimit caps the process table rows. Zero shows all.
	ProcessLimit int
	// Zones tracks clickable regions. Nil creates a private manager.
	Zones  *zone.Manager
	Logger *slog.Logger
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	ctx     context.Context
	src     collectors.Source
	sampler *monitor.Sampler
	history *history.Buffer
	loop    *monitor.Loop
	zones   *zone.Manager
	logger  *slog.Logger

	reading    monitor.Reading
	hasReading bool
	host       collectors.HostInfo

	activeTab    Tab
	width        int
	height       int
	ready        bool
	processLimit int

	search    textinput.Model
	searching bool
	help      help.Model
	vp        viewport.Model
}

// New returns a Model in the waiting phase. Init starts the first pass.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.History == nil {
		opts.History = history.New(history.MaxHistoryPoints)
	}
	if opts.Zones == nil {
		opts.Zones = zone.New()
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "process name"
	search.CharLimit = 64

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return Model{
		ctx:          opts.Context,
		src:          opts.Source,
		sampler:      monitor.NewSampler(opts.Source, opts.Logger),
		history:      opts.History,
		loop:         monitor.NewLoop(opts.Interval),
		zones:        opts.Zones,
		logger:       opts.Logger,
		activeTab:    TabOverview,
		processLimit: opts.ProcessLimit,
		search:       search,
		help:         help.New(),
		vp:           vp,
	}
}

// Init implements tea.Model. It reads the host summary and starts the
// first sampling pass.
func (m Model) Init() tea.Cmd {
	return tea.Batch(hostInfoCmd(m.ctx, m.src), m.beginSample())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case readingMsg:
		return m.onReading(msg.reading)

	case tickMsg:
		if !m.loop.Due(msg.token) {
			m.logger.Debug("tui: stale wait token", "token", msg.token, "phase", m.loop.Phase())
			return m, nil
		}
		return m, m.beginSample()

	case hostInfoMsg:
		if msg.err != nil {
			m.logger.Warn("tui: host info incomplete", "error", msg.err)
		}
		m.host = msg.info
		return m, nil

	case tea.MouseMsg:
		return m.onMouse(msg)

	case tea.KeyMsg:
		if m.searching {
			return m.onSearchKey(msg)
		}
		return m.onKey(msg)
	}

	// Cursor blink and similar messages belong to the search field.
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// onReading records a finished pass and arms the next wait.
func (m Model) onReading(r monitor.Reading) (tea.Model, tea.Cmd) {
	m.loop.Sampled()
	m.history.Append(r.Sample)
	m.reading = r
	m.hasReading = true
	m.refreshContent()

	token := m.loop.Rendered()
	return m, waitCmd(token, m.loop.Interval())
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.NextTab):
		m.setTab((m.activeTab + 1) % tabCount)
	case key.Matches(msg, keys.PrevTab):
		m.setTab((m.activeTab - 1 + tabCount) % tabCount)
	case key.Matches(msg, keys.Overview):
		m.setTab(TabOverview)
	case key.Matches(msg, keys.History):
		m.setTab(TabHistory)
	case key.Matches(msg, keys.Details):
		m.setTab(TabDetails)
	case key.Matches(msg, keys.Refresh):
		return m, m.refreshNow()
	case key.Matches(msg, keys.Slower):
		return m, m.changeInterval(IntervalStep)
	case key.Matches(msg, keys.Faster):
		return m, m.changeInterval(-IntervalStep)
	case key.Matches(msg, keys.Search):
		if m.activeTab != TabDetails {
			m.setTab(TabDetails)
		}
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, keys.Cancel):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refreshContent()
		}
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// onSearchKey routes keys while the process filter has focus. The filter
// applies as the user types.
func (m Model) onSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, keys.Done):
		m.searching = false
		m.search.Blur()
	case key.Matches(msg, keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.vp.GotoTop()
		m.refreshContent()
		return m, cmd
	}
	m.refreshContent()
	return m, nil
}

func (m Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		for _, id := range clickTargets() {
			if z := m.zones.Get(id); z != nil && z.InBounds(msg) {
				return m.click(id)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// click performs the action bound to a clickable zone.
func (m Model) click(id string) (tea.Model, tea.Cmd) {
	switch id {
	case zoneRefresh:
		return m, m.refreshNow()
	case zoneIntervalUp:
		return m, m.changeInterval(IntervalStep)
	case zoneIntervalDown:
		return m, m.changeInterval(-IntervalStep)
	}
	for t := Tab(0); t < tabCount; t++ {
		if id == tabZone(t) {
			m.setTab(t)
		}
	}
	return m, nil
}

// beginSample starts a pass unless one is already in flight.
func (m Model) beginSample() tea.Cmd {
	if !m.loop.Begin() {
		return nil
	}
	return sampleCmd(m.ctx, m.sampler, monitor.Options{Processes: true})
}

// refreshNow cuts the current wait short. Requests made while a pass is
// in flight are ignored.
func (m Model) refreshNow() tea.Cmd {
	if !m.loop.RefreshNow() {
		m.logger.Debug("tui: refresh ignored", "phase", m.loop.Phase())
		return nil
	}
	return sampleCmd(m.ctx, m.sampler, monitor.Options{Processes: true})
}

// changeInterval adjusts the wait and, when waiting, re-arms it so the new
// interval takes effect from now. During a pass the next wait picks it up.
func (m Model) changeInterval(delta time.Duration) tea.Cmd {
	d := m.loop.SetInterval(max(m.loop.Interval()+delta, monitor.MinInterval))
	token, ok := m.loop.Rearm()
	if !ok {
		return nil
	}
	return waitCmd(token, d)
}

func (m *Model) setTab(t Tab) {
	if t == m.activeTab {
		return
	}
	m.activeTab = t
	m.vp.GotoTop()
	m.resize()
}

// layout returns the responsive dimensions for the current width.
func (m Model) layout() LayoutConfig {
	return LayoutForSize(DetectLayout(m.width), m.width)
}

// bodyHeight is the number of rows between header and footer.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - lipgloss.Height(m.renderFooter())
	if m.layout().SidebarWidth == 0 {
		h-- // folded status line
	}
	return max(h, 1)
}

// contentWidth is the usable width of the tab area.
func (m Model) contentWidth() int {
	w := m.width - styleContent.GetHorizontalPadding()
	if sw := m.layout().SidebarWidth; sw > 0 {
		w -= sw + 1 // sidebar border
	}
	return max(w, 10)
}

// resize fits the viewport to the window and re-renders its content.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	h := m.bodyHeight()
	if m.activeTab == TabDetails {
		h-- // search line
	}
	m.vp.Width = m.contentWidth()
	m.vp.Height = max(h, 1)
	m.refreshContent()
}

// refreshContent re-renders the active tab into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderTab())
}
