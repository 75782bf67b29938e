package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/styles"
)

const (
	searchLimit   = 10
	searchTimeout = 30 * time.Second
)

// searchDoneMsg carries search results back into the update loop.
type searchDoneMsg struct {
	query   string
	results []api.SearchResult
	err     error
}

// searchPage runs semantic searches against the backend and lists the
// retrieved chunks.
type searchPage struct {
	client *api.Client

	input      textinput.Model
	spin       spinner.Model
	searching  bool
	domainID   string
	domainName string

	results []api.SearchResult
	cursor  int
	err     error
}

func newSearchPage(client *api.Client) *searchPage {
	input := textinput.New()
	input.Placeholder = "search the knowledge base"
	input.CharLimit = 256
	input.Focus()

	return &searchPage{
		client: client,
		input:  input,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (p *searchPage) ID() string    { return "search" }
func (p *searchPage) Title() string { return "Search" }

func (p *searchPage) consumesTextInput() bool {
	return p.input.Focused()
}

// setDomain scopes future searches to a domain. Empty id clears the scope.
func (p *searchPage) setDomain(id, name string) {
	p.domainID = id
	p.domainName = name
}

func (p *searchPage) Update(m tea.Msg) tea.Cmd {
	switch m := m.(type) {
	case searchDoneMsg:
		p.searching = false
		p.err = m.err
		if m.err == nil {
			p.results = m.results
			p.cursor = 0
		}
		return nil
	case spinner.TickMsg:
		if !p.searching {
			return nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(m)
		return cmd
	case tea.KeyMsg:
		if p.input.Focused() {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(m)
			return cmd
		}
	}
	return nil
}

func (p *searchPage) HandleCommand(cmd string) tea.Cmd {
	switch cmd {
	case "focus-query":
		p.input.Focus()
		return textinput.Blink
	case "back":
		p.input.Blur()
		return nil
	case "run-search":
		return p.runSearch()
	case "cursor-down":
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}
		return nil
	case "cursor-up":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil
	case "refresh":
		return p.runSearch()
	}
	return nil
}

func (p *searchPage) runSearch() tea.Cmd {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		return nil
	}
	p.input.Blur()
	p.searching = true
	p.err = nil

	client := p.client
	domainID := p.domainID
	search := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		results, err := client.Search(ctx, query, domainID, searchLimit)
		return searchDoneMsg{query: query, results: results, err: err}
	}
	return tea.Batch(search, p.spin.Tick)
}

func (p *searchPage) View(width, height int) string {
	var b strings.Builder

	scope := ""
	if p.domainName != "" {
		scope = styles.Muted.Render(" in " + p.domainName)
	}
	b.WriteString(styles.PanelHeader.Render("Query" + scope))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	switch {
	case p.searching:
		b.WriteString(p.spin.View() + styles.Muted.Render(" searching..."))
	case p.err != nil:
		b.WriteString(styles.StatusBad.Render("search failed: " + p.err.Error()))
	case len(p.results) == 0:
		b.WriteString(styles.Muted.Render("no results yet — type a query and press enter"))
	default:
		b.WriteString(p.renderResults(width))
	}

	return b.String()
}

func (p *searchPage) renderResults(width int) string {
	var b strings.Builder
	for i, r := range p.results {
		title := fmt.Sprintf("%s · %s · %.2f", r.DocumentName, r.DomainName, r.SimilarityScore)
		if i == p.cursor {
			b.WriteString(styles.ListCursor.Render("> ") + styles.ListItemSelected.Render(title))
		} else {
			b.WriteString("  " + styles.ListItemNormal.Render(title))
		}
		b.WriteString("\n")
		if i == p.cursor {
			b.WriteString(indent(highlightSnippet(snippet(r.Content, 400), width-4), 4))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// highlightSnippet runs the chunk text through chroma as markdown. On any
// failure the plain text is returned.
func highlightSnippet(text string, width int) string {
	if width < 16 {
		return text
	}
	var out strings.Builder
	if err := quick.Highlight(&out, text, "markdown", "terminal256", styles.GetSyntaxTheme()); err != nil {
		return text
	}
	return strings.TrimRight(out.String(), "\n")
}

// snippet trims content to at most n bytes on a rune boundary.
func snippet(content string, n int) string {
	content = strings.TrimSpace(content)
	if len(content) <= n {
		return content
	}
	runes := []rune(content)
	for i := range runes {
		if len(string(runes[:i+1])) > n {
			return string(runes[:i]) + "…"
		}
	}
	return content
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
