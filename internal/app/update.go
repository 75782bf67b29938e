package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/metrics"
	"github.com/ragdeck/ragdeck/internal/msg"
)

// healthMsg carries the result of a backend health check.
type healthMsg struct {
	health api.Health
	err    error
}

// Update implements tea.Model.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		// Every page tracks its own size so switching tabs never shows a
		// stale layout.
		var cmds []tea.Cmd
		for _, p := range m.pages {
			if cmd := p.Update(message); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.FocusMsg:
		// Returning from another window is the moment the terminal's
		// background is most likely to have changed under us.
		return m, m.recheckAmbient()

	case msg.TickMsg:
		// Metrics are best effort; a failed flush requeues internally.
		_ = m.collector.Flush()
		if m.toast != "" && time.Now().After(m.toastUntil) {
			m.toast = ""
		}
		return m, tea.Batch(m.recheckAmbient(), msg.Tick(tickInterval))

	case msg.AmbientChangedMsg:
		// Palette already swapped by the provider; redraw is enough.
		return m, nil

	case msg.ToastMsg:
		m.toast = message.Message
		m.toastErr = message.IsError
		m.toastUntil = time.Now().Add(message.Duration)
		return m, nil

	case healthMsg:
		if message.err != nil {
			m.health = "unreachable"
			m.healthOK = false
		} else {
			m.health = message.health.Status
			m.healthOK = message.health.Status == "healthy"
		}
		return m, nil

	case domainSelectedMsg:
		// Scope the search page to the chosen domain. An empty id clears
		// the scope without leaving the current page.
		for _, p := range m.pages {
			if sp, ok := p.(*searchPage); ok {
				sp.setDomain(message.id, message.name)
			}
		}
		if message.id == "" {
			return m, msg.ShowToast("search unscoped", 3*time.Second)
		}
		cmd := m.focusPageID("search")
		return m, tea.Batch(cmd, msg.ShowToast(fmt.Sprintf("searching in %s", message.name), 3*time.Second))

	case tea.KeyMsg:
		return m, m.handleKey(message)
	}

	return m, m.forward(message)
}

// handleKey routes a key through the keymap, falling back to the active
// page for typed text.
func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	active := m.activePage()

	// Pages with a focused text input see printable keys first.
	if tic, ok := active.(textInputConsumer); ok && tic.consumesTextInput() {
		if !isControlKey(key) {
			return active.Update(key)
		}
	}

	command, ok := m.km.Lookup(key.String(), active.ID())
	if !ok {
		return m.forward(key)
	}

	switch command {
	case "quit":
		return tea.Quit
	case "next-page":
		return m.setActive((m.active + 1) % len(m.pages))
	case "prev-page":
		return m.setActive((m.active + len(m.pages) - 1) % len(m.pages))
	case "focus-page-1":
		return m.setActive(0)
	case "focus-page-2":
		return m.setActive(1)
	case "focus-page-3":
		return m.setActive(2)
	case "cycle-theme":
		pref := m.themes.Cycle()
		m.collector.Inc(metrics.EventThemeSwitch)
		return msg.ShowToast(fmt.Sprintf("theme: %s (%s)", pref, m.themes.Resolved()), 3*time.Second)
	case "toggle-footer":
		m.showFooter = !m.showFooter
		return nil
	case "refresh":
		m.client.InvalidateDomains()
		return tea.Batch(m.checkHealth(), active.HandleCommand("refresh"))
	default:
		return active.HandleCommand(command)
	}
}

// isControlKey reports whether a key should stay routable as a shortcut
// even while a text input is focused.
func isControlKey(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab, tea.KeyCtrlC:
		return true
	}
	return false
}

// recheckAmbient re-runs terminal background detection as a command, not
// inline: watcher subscribers fire synchronously from Recheck, and one of
// them sends back into the program — from inside Update that Send would
// block the event loop forever.
func (m *Model) recheckAmbient() tea.Cmd {
	if m.terminal == nil {
		return nil
	}
	terminal := m.terminal
	return func() tea.Msg {
		terminal.Recheck()
		return nil
	}
}

// forward hands a message to the active page.
func (m *Model) forward(message tea.Msg) tea.Cmd {
	return m.activePage().Update(message)
}

func (m *Model) focusPageID(id string) tea.Cmd {
	for i, p := range m.pages {
		if p.ID() == id {
			return m.setActive(i)
		}
	}
	return nil
}

func (m *Model) checkHealth() tea.Cmd {
	client := m.client
	timeout := m.cfg.Backend.Timeout
	m.collector.Inc(metrics.EventAPIRequest)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		h, err := client.Health(ctx)
		return healthMsg{health: h, err: err}
	}
}
