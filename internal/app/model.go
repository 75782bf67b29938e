package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/ambient"
	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/config"
	"github.com/ragdeck/ragdeck/internal/keymap"
	"github.com/ragdeck/ragdeck/internal/metrics"
	"github.com/ragdeck/ragdeck/internal/msg"
	"github.com/ragdeck/ragdeck/internal/state"
	"github.com/ragdeck/ragdeck/internal/theme"
)

// tickInterval drives the clock, ambient rechecks and metrics flushes.
const tickInterval = 2 * time.Second

// page is a dashboard tab. Pages receive every message while active and
// handle resolved keymap commands.
type page interface {
	ID() string
	Title() string
	Update(m tea.Msg) tea.Cmd
	View(width, height int) string
	HandleCommand(cmd string) tea.Cmd
}

// textInputConsumer is implemented by pages that want printable keys
// forwarded as typed text instead of being intercepted by shortcuts.
type textInputConsumer interface {
	consumesTextInput() bool
}

// Model is the root Bubble Tea model for the ragdeck application.
type Model struct {
	cfg       *config.Config
	km        *keymap.Registry
	themes    *theme.Provider
	terminal  *ambient.Terminal // nil when a file watcher feeds the provider
	store     *state.Store
	collector *metrics.Collector
	client    *api.Client

	pages  []page
	active int

	width  int
	height int

	showFooter bool
	health     string
	healthOK   bool

	toast      string
	toastErr   bool
	toastUntil time.Time
}

// Options carries the collaborators the app is wired with.
type Options struct {
	Config    *config.Config
	Keymap    *keymap.Registry
	Themes    *theme.Provider
	Terminal  *ambient.Terminal
	Store     *state.Store
	Collector *metrics.Collector
	Client    *api.Client
}

// New builds the root model. The active page is restored from state when
// the persisted ID still exists.
func New(opts Options) *Model {
	m := &Model{
		cfg:        opts.Config,
		km:         opts.Keymap,
		themes:     opts.Themes,
		terminal:   opts.Terminal,
		store:      opts.Store,
		collector:  opts.Collector,
		client:     opts.Client,
		showFooter: opts.Config.UI.ShowFooter,
		health:     "checking",
	}

	m.pages = []page{
		newSearchPage(opts.Client),
		newChatPage(opts.Client),
		newDomainsPage(opts.Client),
	}

	if saved := opts.Store.ActivePage(); saved != "" {
		for i, p := range m.pages {
			if p.ID() == saved {
				m.active = i
				break
			}
		}
	}

	return m
}

// Init starts the tick loop and the first health check.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		msg.Tick(tickInterval),
		m.checkHealth(),
		m.pages[m.active].HandleCommand("refresh"),
	)
}

func (m *Model) activePage() page {
	return m.pages[m.active]
}

func (m *Model) setActive(i int) tea.Cmd {
	if i < 0 || i >= len(m.pages) || i == m.active {
		return nil
	}
	m.active = i
	m.store.SetActivePage(m.pages[i].ID())
	m.collector.Inc(metrics.EventPageView)
	return m.pages[i].HandleCommand("refresh")
}
