package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/styles"
)

const domainsTimeout = 10 * time.Second

// domainSelectedMsg tells the search page to scope queries to a domain.
type domainSelectedMsg struct {
	id   string
	name string
}

type domainsLoadedMsg struct {
	domains []api.Domain
	err     error
}

// domainsPage lists the backend's knowledge domains.
type domainsPage struct {
	client  *api.Client
	domains []api.Domain
	cursor  int
	loading bool
	err     error
}

func newDomainsPage(client *api.Client) *domainsPage {
	return &domainsPage{client: client}
}

func (p *domainsPage) ID() string    { return "domains" }
func (p *domainsPage) Title() string { return "Domains" }

func (p *domainsPage) Update(m tea.Msg) tea.Cmd {
	switch m := m.(type) {
	case domainsLoadedMsg:
		p.loading = false
		p.err = m.err
		if m.err == nil {
			p.domains = m.domains
			if p.cursor >= len(p.domains) {
				p.cursor = 0
			}
		}
	}
	return nil
}

func (p *domainsPage) HandleCommand(cmd string) tea.Cmd {
	switch cmd {
	case "cursor-down":
		if p.cursor < len(p.domains)-1 {
			p.cursor++
		}
		return nil
	case "cursor-up":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil
	case "select-domain":
		if p.cursor < len(p.domains) {
			d := p.domains[p.cursor]
			return func() tea.Msg {
				return domainSelectedMsg{id: d.ID, name: d.Name}
			}
		}
		return nil
	case "back":
		return func() tea.Msg { return domainSelectedMsg{} }
	case "refresh":
		return p.load()
	}
	return nil
}

func (p *domainsPage) load() tea.Cmd {
	if p.loading {
		return nil
	}
	p.loading = true

	client := p.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), domainsTimeout)
		defer cancel()
		domains, err := client.ListDomains(ctx)
		return domainsLoadedMsg{domains: domains, err: err}
	}
}

func (p *domainsPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(styles.PanelHeader.Render("Domains"))
	b.WriteString("\n\n")

	switch {
	case p.loading && len(p.domains) == 0:
		b.WriteString(styles.Muted.Render("loading domains..."))
	case p.err != nil && len(p.domains) == 0:
		b.WriteString(styles.StatusBad.Render("could not load domains: " + p.err.Error()))
	case len(p.domains) == 0:
		b.WriteString(styles.Muted.Render("no domains on the backend"))
	default:
		b.WriteString(p.renderList(width))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("enter scopes search to the selected domain, esc clears it"))
	}
	return b.String()
}

func (p *domainsPage) renderList(width int) string {
	var b strings.Builder
	for i, d := range p.domains {
		cursor := "  "
		line := fmt.Sprintf("%s (%d docs)", d.Name, d.DocumentCount)
		if i == p.cursor {
			cursor = styles.ListCursor.Render("> ")
			line = styles.ListItemSelected.Render(line)
		} else {
			line = styles.ListItemNormal.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(truncate(line, width-4))
		b.WriteString("\n")
		if i == p.cursor && d.Description != "" {
			b.WriteString("    ")
			b.WriteString(styles.Muted.Render(truncate(d.Description, width-6)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
