package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/ragdeck/ragdeck/internal/styles"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	footer := ""
	if m.showFooter {
		footer = m.renderFooter()
	}

	bodyHeight := m.height - lipgloss.Height(header)
	if footer != "" {
		bodyHeight -= lipgloss.Height(footer)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := m.activePage().View(m.width, bodyHeight)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(body)
	if footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	title := styles.Title.Render("ragdeck")

	var tabs []string
	for i, p := range m.pages {
		label := fmt.Sprintf(" %d:%s ", i+1, p.Title())
		if i == m.active {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}

	status := m.renderStatus()

	left := title + " " + strings.Join(tabs, "")
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(status)
	if gap < 1 {
		gap = 1
	}

	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + status)
}

func (m *Model) renderStatus() string {
	var parts []string

	if m.toast != "" {
		if m.toastErr {
			parts = append(parts, styles.ToastError.Render(m.toast))
		} else {
			parts = append(parts, styles.ToastSuccess.Render(m.toast))
		}
	}

	if m.healthOK {
		parts = append(parts, styles.StatusOK.Render("● "+m.health))
	} else {
		parts = append(parts, styles.StatusBad.Render("● "+m.health))
	}

	parts = append(parts, styles.Muted.Render(fmt.Sprintf("%s/%s", m.themes.Preference(), m.themes.Resolved())))

	if m.cfg.UI.ShowClock {
		parts = append(parts, styles.Muted.Render(time.Now().Format("15:04")))
	}

	return strings.Join(parts, " ")
}

func (m *Model) renderFooter() string {
	hints := m.km.Hints(m.activePage().ID())

	var b strings.Builder
	for _, h := range hints {
		hint := fmt.Sprintf(" %s %s ", styles.KeyHint.Render(h.Key), h.Command)
		if ansi.StringWidth(b.String())+ansi.StringWidth(hint) > m.width-1 {
			break
		}
		b.WriteString(hint)
	}
	return styles.Footer.Width(m.width).Render(truncate(b.String(), m.width))
}

// truncate cuts s to width terminal cells, ANSI-aware for styled text and
// wide runes.
func truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	stripped := ansi.Strip(s)
	if runewidth.StringWidth(stripped) <= width {
		return stripped
	}
	return runewidth.Truncate(stripped, width-1, "…")
}
