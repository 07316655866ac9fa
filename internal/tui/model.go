// Package tui implements the Bubble Tea TUI for fitsel.
package tui

import (
	"bytes"
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/colonyops/fitsel/internal/core/fragment"
	"github.com/colonyops/fitsel/internal/core/logging"
	"github.com/colonyops/fitsel/internal/core/notify"
	"github.com/colonyops/fitsel/internal/core/selection"
	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/tabs"
	tuinotify "github.com/colonyops/fitsel/internal/tui/notify"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateModal
)

const (
	tabBarHeight   = 2 // labels plus bottom border
	statusHeight   = 1
	defaultWidth   = 80
	defaultHeight  = 24
	historyEntries = 10
)

// Fetcher is the part of the archive client the TUI needs.
type Fetcher interface {
	Get(ctx context.Context, path string) ([]byte, error)
	PostFileList(ctx context.Context, path string, files []string) ([]byte, error)
}

// Options configures the TUI.
type Options struct {
	Context       context.Context // cancels in-flight fetches; defaults to Background
	Tabs          *tabs.Controller
	Client        Fetcher
	Bus           *tuinotify.Bus // optional
	MarkdownStyle string         // glamour base style: dark, light, notty
	Warnings      []string       // startup warnings to display as toasts
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx    context.Context
	tabs   *tabs.Controller
	groups *selection.Manager
	client Fetcher
	bus    *tuinotify.Bus
	log    zerolog.Logger

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	toasts    *ToastController
	toastView *ToastView
	modal     Modal
	state     UIState

	markdownStyle string
	renderer      *glamour.TermRenderer
	prose         map[string]string // tab id -> rendered markdown at current width

	cursors  map[string]int // tab id -> target index
	layout   paneLayout
	tabSpans []tabSpan
	warnings []string

	width    int
	height   int
	quitting bool
}

// New creates the TUI model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	bus := opts.Bus
	if bus == nil {
		bus = tuinotify.NewBus(notify.NewMemoryStore(50))
	}

	toasts := NewToastController()
	bus.Subscribe(toasts.Push)

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.TabLoadingStyle.Padding(0)

	m := Model{
		ctx:           ctx,
		tabs:          opts.Tabs,
		groups:        opts.Tabs.Groups(),
		client:        opts.Client,
		bus:           bus,
		log:           logging.Component("tui"),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       s,
		viewport:      viewport.New(defaultWidth, defaultHeight-tabBarHeight-statusHeight-1),
		toasts:        toasts,
		toastView:     NewToastView(toasts),
		markdownStyle: opts.MarkdownStyle,
		prose:         make(map[string]string),
		cursors:       make(map[string]int),
		warnings:      opts.Warnings,
		width:         defaultWidth,
		height:        defaultHeight,
	}
	m.viewport.MouseWheelEnabled = true
	m.renderer = newRenderer(m.markdownStyle, defaultWidth)
	m.refreshPane()
	return m
}

func newRenderer(style string, width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle(style)),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

// Init starts the spinner and the eager tab fetches.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for _, f := range m.tabs.Start() {
		cmds = append(cmds, m.fetchCmd(f))
	}
	for _, w := range m.warnings {
		m.bus.Warnf("%s", w)
	}
	if cmd := m.toastTickCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// fetchDoneMsg carries the parsed result of a tabs.Fetch.
type fetchDoneMsg struct {
	fetch   tabs.Fetch
	content fragment.Content
	err     error
}

func (m Model) fetchCmd(f tabs.Fetch) tea.Cmd {
	ctx := logging.WithTabID(m.ctx, f.TabID)
	client := m.client
	return func() tea.Msg {
		var (
			body []byte
			err  error
		)
		switch f.Kind {
		case tabs.SelectionLoad:
			body, err = client.PostFileList(ctx, f.Path, f.Files)
		default:
			body, err = client.Get(ctx, f.Path)
		}
		if err != nil {
			return fetchDoneMsg{fetch: f, err: err}
		}

		content, err := fragment.Parse(bytes.NewReader(body))
		return fetchDoneMsg{fetch: f, content: content, err: err}
	}
}

// toastTickCmd starts the toast timer if toasts are showing and it is not
// already running.
func (m Model) toastTickCmd() tea.Cmd {
	if m.toasts.HasToasts() && m.toasts.StartTicking() {
		return scheduleToastTick()
	}
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case fetchDoneMsg:
		return m.handleFetchDone(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.StopTicking()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}
