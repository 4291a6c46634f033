// Package app contains the root Bubble Tea model.
//
// The model owns the two panels, the detail cache and the log cache. The log
// is loaded asynchronously; `jj show` output for the selected change is
// looked up (and computed on a miss) synchronously inside Update, so the
// details panel never shows output for anything but the selection.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/jjview/internal/cachemanager"
	"github.com/zjrosen/jjview/internal/config"
	"github.com/zjrosen/jjview/internal/detailcache"
	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/keys"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/pubsub"
	"github.com/zjrosen/jjview/internal/ui/details"
	uihelp "github.com/zjrosen/jjview/internal/ui/help"
	"github.com/zjrosen/jjview/internal/ui/logoverlay"
	"github.com/zjrosen/jjview/internal/ui/logpanel"
	"github.com/zjrosen/jjview/internal/ui/messagepopup"
	"github.com/zjrosen/jjview/internal/ui/styles"
	"github.com/zjrosen/jjview/internal/watcher"
)

// detailsZoneID marks the details panel for mouse hit-testing.
const detailsZoneID = "jjview-details"

// Focus names the panel receiving navigation keys.
type Focus int

const (
	FocusLog Focus = iota
	FocusDetails
)

// Options configures a Model.
type Options struct {
	Executor jj.Executor
	Config   config.Config
	// JJConfig is jj's own configuration, used to resolve the diff format
	// and tool.
	JJConfig jj.Config
	// WorkspaceRoot enables auto-refresh when non-empty and
	// Config.AutoRefresh is set.
	WorkspaceRoot string
	// Tracer records log loads and detail lookups. Nil disables tracing.
	Tracer trace.Tracer
	// Debug shows the latest log line in the status bar.
	Debug bool
}

// Model is the root application model.
type Model struct {
	exec   jj.Executor
	tracer trace.Tracer
	cfg    config.Config

	revset   string
	format   jj.DiffFormat
	diffTool string
	hasTool  bool
	layout   Layout
	percent  int

	detailCache *detailcache.Cache
	logCache    *cachemanager.ReadThrough[[]jj.LogEntry]

	log      logpanel.Model
	details  details.Model
	popup    messagepopup.Model
	help     uihelp.Model
	logs     logoverlay.Model
	status   help.Model
	showHelp bool
	focus    Focus
	loaded   bool

	// shownKey is the key of the output currently in the details panel.
	shownKey    detailcache.Key
	hasShown    bool
	shownFailed bool
	// activeTemplate is the key SetActive was last called with.
	activeTemplate detailcache.Key

	width  int
	height int

	workspaceRoot string
	watcher       *watcher.Watcher
	watchListener *pubsub.ContinuousListener[watcher.Event]
	ctx           context.Context
	cancel        context.CancelFunc
	closeOnce     *sync.Once

	debug       bool
	logListener *log.LogListener
	lastLogLine string
}

// New creates the root model.
func New(opts Options) Model {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("jjview")
	}

	cfg := opts.Config
	diffTool, hasTool := cfg.ResolveDiffTool(opts.JJConfig)
	revset := cfg.Revset

	percent := cfg.LayoutPercent
	if percent == 0 {
		percent = 50
	}

	exec := opts.Executor
	logStore := cachemanager.NewInMemoryCache[[]jj.LogEntry]("log", cfg.LogCacheTTL, 2*cfg.LogCacheTTL+time.Second)
	logCache := cachemanager.NewReadThrough(logStore, func(ctx context.Context, revset string) ([]jj.LogEntry, error) {
		return exec.Log(ctx, revset)
	}, cfg.LogCacheTTL)

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		exec:          exec,
		tracer:        tracer,
		cfg:           cfg,
		revset:        revset,
		format:        cfg.InitialDiffFormat(opts.JJConfig),
		diffTool:      diffTool,
		hasTool:       hasTool,
		layout:        ParseLayout(cfg.Layout),
		percent:       percent,
		detailCache:   detailcache.New(),
		logCache:      logCache,
		log:           logpanel.New().SetRevset(revset),
		details:       details.New(detailsZoneID),
		popup:         messagepopup.New(),
		help:          uihelp.New(cfg.UI.MarkdownStyle),
		logs:          logoverlay.New(opts.Debug),
		status:        help.New(),
		workspaceRoot: opts.WorkspaceRoot,
		ctx:           ctx,
		cancel:        cancel,
		closeOnce:     &sync.Once{},
		debug:         opts.Debug,
	}

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	if cfg.AutoRefresh && opts.WorkspaceRoot != "" {
		m = m.startWatcher()
	}

	log.Info(log.CatApp, "Starting",
		"revset", revset,
		"format", m.format.String(),
		"tool", diffTool,
		"layout", m.layout.String(),
		"percent", percent)
	return m
}

func (m Model) startWatcher() Model {
	cfg := watcher.DefaultConfig(m.workspaceRoot)
	if m.cfg.AutoRefreshDebounce > 0 {
		cfg.DebounceDur = m.cfg.AutoRefreshDebounce
	}
	w, err := watcher.New(cfg)
	if err != nil {
		log.Warn(log.CatWatcher, "Auto-refresh disabled", "error", err)
		return m
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "Auto-refresh disabled", "error", err)
		_ = w.Stop()
		return m
	}
	m.watcher = w
	m.watchListener = pubsub.NewContinuousListener(m.ctx, w.Broker())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadLog(false)}
	if m.watchListener != nil {
		cmds = append(cmds, m.watchListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Close stops background work. Safe to call more than once.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		if m.watcher != nil {
			if err := m.watcher.Stop(); err != nil {
				log.Debug(log.CatWatcher, "Stopping watcher", "error", err)
			}
		}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.resize()
		return m, nil

	case logLoadedMsg:
		return m.handleLogLoaded(msg), nil

	case pubsub.Event[watcher.Event]:
		return m.handleWatcherEvent(msg)

	case log.LogEvent:
		m.lastLogLine = strings.TrimSpace(msg.Payload)
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case messagepopup.DismissedMsg, logoverlay.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		if m.popup.Visible() || m.showHelp || m.logs.Visible() {
			return m, nil
		}
		m.details, _ = m.details.HandleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.popup.Visible() {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}

	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, keys.App.Help) || key.Matches(msg, keys.Popup.Dismiss) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, keys.App.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, keys.App.Logs):
		m.logs = m.logs.Toggle()
		return m, nil
	case key.Matches(msg, keys.App.SwitchFocus):
		return m.setFocus(1 - m.focus), nil
	case key.Matches(msg, keys.App.CycleFormat):
		m.format = m.format.Next(m.diffTool, m.hasTool)
		log.Debug(log.CatApp, "Diff format changed", "format", m.format.String())
		m = m.syncActive()
		return m.refreshDetails(), nil
	case key.Matches(msg, keys.App.Reload):
		return m, m.loadLog(true)
	}

	// Details keys avoid the log keys, so they work from either panel.
	var handled bool
	if m.details, handled = m.details.HandleKey(msg); handled {
		return m, nil
	}

	if m.focus == FocusDetails {
		switch {
		case key.Matches(msg, keys.Log.Down):
			m.details = m.details.HandleEvent(details.ScrollDown)
		case key.Matches(msg, keys.Log.Up):
			m.details = m.details.HandleEvent(details.ScrollUp)
		case key.Matches(msg, keys.Log.Top):
			m.details = m.details.ScrollTo(0)
		case key.Matches(msg, keys.Log.Bottom):
			m.details = m.details.ScrollTo(m.details.Lines() - 1)
		}
		return m, nil
	}

	if m.log, handled = m.log.HandleKey(msg); handled {
		m = m.refreshDetails()
	}
	return m, nil
}

func (m Model) setFocus(f Focus) Model {
	m.focus = f
	m.log = m.log.SetFocused(f == FocusLog)
	m.details = m.details.SetFocused(f == FocusDetails)
	return m
}

func (m Model) handleLogLoaded(msg logLoadedMsg) Model {
	if msg.err != nil {
		m.popup = m.popup.ShowError("jj log failed", msg.err)
		return m
	}
	if msg.revset != m.revset {
		return m
	}

	m.loaded = true
	m.log = m.log.SetEntries(msg.entries)
	log.Debug(log.CatApp, "Log loaded", "entries", len(msg.entries))

	m = m.syncActive()
	return m.refreshDetails()
}

func (m Model) handleWatcherEvent(msg pubsub.Event[watcher.Event]) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg.Payload.Kind {
	case watcher.RepoChanged:
		log.Debug(log.CatWatcher, "Repository changed, reloading log")
		m.logCache.Invalidate(m.ctx)
		cmds = append(cmds, m.loadLog(false))
	case watcher.WatcherError:
		log.Warn(log.CatWatcher, "Watcher error", "error", msg.Payload.Err)
	}
	if m.watchListener != nil {
		cmds = append(cmds, m.watchListener.Listen())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) resize() Model {
	logRect, detailsRect := split(m.layout, m.percent, m.width, m.height)
	m.log = m.log.SetSize(logRect.width, logRect.height)
	m.details = m.details.SetSize(detailsRect.width, detailsRect.height)
	m.popup = m.popup.SetSize(m.width, m.height)
	m.help = m.help.SetSize(m.width, m.height)
	m.logs = m.logs.SetSize(m.width, m.height)
	m.status.Width = m.width

	// Tool output depends on the width, so a resize changes which keys are
	// active.
	if m.loaded && m.template() != m.activeTemplate {
		m = m.syncActive()
	}
	return m.refreshDetails()
}

// template is the key every listed head is substituted into.
func (m Model) template() detailcache.Key {
	return detailcache.NewKey(jj.Head{}, m.format, m.details.Columns())
}

// syncActive rebuilds the detail cache's active set from the listed heads.
func (m Model) syncActive() Model {
	m.activeTemplate = m.template()
	m.detailCache.SetActive(m.log.Heads(), m.activeTemplate)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var panels string
	if m.layout == Vertical {
		panels = lipgloss.JoinVertical(lipgloss.Left, m.log.View(), m.details.View())
	} else {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, m.log.View(), m.details.View())
	}
	view := zone.Scan(lipgloss.JoinVertical(lipgloss.Left, panels, m.statusBar()))

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.logs.Overlay(view)
	if m.popup.Visible() {
		view = m.popup.Overlay(view)
	}
	return view
}

func (m Model) statusBar() string {
	right := fmt.Sprintf("%s  %s", m.format.String(), m.cacheSummary())
	if m.debug && m.lastLogLine != "" {
		right = m.lastLogLine
	}
	left := m.status.View(keys.StatusHelp{})

	// The right side gives way first, then the key hints.
	room := m.width - lipgloss.Width(left) - 1
	if room < minStatusRight {
		left = styles.TruncateString(left, max(m.width-minStatusRight-1, 0))
		room = m.width - lipgloss.Width(left) - 1
	}
	right = styles.TruncateString(right, room)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + styles.MutedStyle.Render(right))
}

// minStatusRight is the narrowest the right side of the status bar gets
// before the key hints are truncated.
const minStatusRight = 40

func (m Model) cacheSummary() string {
	metrics := m.detailCache.Metrics()
	kib := (m.detailCache.ByteSize() + 1023) / 1024
	return fmt.Sprintf("cache %d/%d stale %dKiB, %.0f%% hit",
		m.detailCache.Len(), m.detailCache.Stale(), kib, metrics.HitRate())
}

// Focus returns the focused panel.
func (m Model) Focus() Focus { return m.focus }

// Format returns the current diff format.
func (m Model) Format() jj.DiffFormat { return m.format }

// DetailCache exposes the cache for inspection.
func (m Model) DetailCache() *detailcache.Cache { return m.detailCache }
