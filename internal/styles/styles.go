package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ragdeck/ragdeck/internal/theme"
)

// themeMu protects the color/style variables and the active marker.
var themeMu sync.RWMutex

// activeMarker records which appearance is currently applied. Empty only
// before the first Apply; afterwards exactly one of light/dark.
var activeMarker theme.Resolved

// Color variables, updated by Apply.
var (
	Primary   = lipgloss.Color(DarkTheme.Colors.Primary)
	Secondary = lipgloss.Color(DarkTheme.Colors.Secondary)
	Accent    = lipgloss.Color(DarkTheme.Colors.Accent)

	Success = lipgloss.Color(DarkTheme.Colors.Success)
	Warning = lipgloss.Color(DarkTheme.Colors.Warning)
	Error   = lipgloss.Color(DarkTheme.Colors.Error)
	Info    = lipgloss.Color(DarkTheme.Colors.Info)

	TextPrimary   = lipgloss.Color(DarkTheme.Colors.TextPrimary)
	TextSecondary = lipgloss.Color(DarkTheme.Colors.TextSecondary)
	TextMuted     = lipgloss.Color(DarkTheme.Colors.TextMuted)

	BgPrimary   = lipgloss.Color(DarkTheme.Colors.BgPrimary)
	BgSecondary = lipgloss.Color(DarkTheme.Colors.BgSecondary)
	BgTertiary  = lipgloss.Color(DarkTheme.Colors.BgTertiary)

	BorderNormal = lipgloss.Color(DarkTheme.Colors.BorderNormal)
	BorderActive = lipgloss.Color(DarkTheme.Colors.BorderActive)

	LinkColor             = lipgloss.Color(DarkTheme.Colors.Link)
	SearchMatchBgColor    = lipgloss.Color(DarkTheme.Colors.SearchMatchBg)
	ToastSuccessTextColor = lipgloss.Color(DarkTheme.Colors.ToastSuccessText)
	ToastErrorTextColor   = lipgloss.Color(DarkTheme.Colors.ToastErrorText)
)

// Current syntax/markdown theme names for chroma and glamour.
var (
	currentSyntaxTheme   = DarkTheme.Colors.SyntaxTheme
	currentMarkdownTheme = DarkTheme.Colors.MarkdownTheme
)

// Styles rebuilt whenever the palette changes.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Code     lipgloss.Style
	Link     lipgloss.Style

	PanelActive   lipgloss.Style
	PanelInactive lipgloss.Style
	PanelHeader   lipgloss.Style

	Header  lipgloss.Style
	Footer  lipgloss.Style
	KeyHint lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ListItemNormal   lipgloss.Style
	ListItemSelected lipgloss.Style
	ListCursor       lipgloss.Style

	SearchMatch lipgloss.Style

	StatusOK  lipgloss.Style
	StatusBad lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// Apply switches the presentation layer to the resolved appearance: it
// flips lipgloss's dark-background state, swaps every color and style to
// the matching palette and records the marker. Exactly one marker is
// active once Apply returns.
func Apply(r theme.Resolved) {
	themeMu.Lock()
	defer themeMu.Unlock()

	t := DarkTheme
	if r == theme.ResolvedLight {
		t = LightTheme
	}
	lipgloss.SetHasDarkBackground(r == theme.ResolvedDark)
	applyColors(t.Colors)
	rebuildStyles()
	activeMarker = r
}

// ActiveMarker reports which appearance marker is currently applied.
func ActiveMarker() theme.Resolved {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return activeMarker
}

// Applier adapts this package to the theme engine.
type Applier struct{}

func (Applier) Apply(r theme.Resolved) { Apply(r) }

// GetSyntaxTheme returns the current chroma theme name.
func GetSyntaxTheme() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentSyntaxTheme
}

// GetMarkdownTheme returns the current glamour theme name.
func GetMarkdownTheme() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentMarkdownTheme
}

func applyColors(c ColorPalette) {
	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	Info = lipgloss.Color(c.Info)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	LinkColor = lipgloss.Color(c.Link)
	SearchMatchBgColor = lipgloss.Color(c.SearchMatchBg)
	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	currentSyntaxTheme = c.SyntaxTheme
	currentMarkdownTheme = c.MarkdownTheme
}

// rebuildStyles recreates all lipgloss styles with current colors.
func rebuildStyles() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Code = lipgloss.NewStyle().
		Foreground(Accent)

	Link = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	PanelHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginBottom(1)

	Header = lipgloss.NewStyle().
		Background(BgSecondary)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	TabInactive = lipgloss.NewStyle().
		Foreground(TextMuted)

	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	ListCursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	SearchMatch = lipgloss.NewStyle().
		Background(SearchMatchBgColor)

	StatusOK = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	StatusBad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ToastSuccess = lipgloss.NewStyle().
		Foreground(ToastSuccessTextColor).
		Background(Success).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Foreground(ToastErrorTextColor).
		Background(Error).
		Padding(0, 1)
}
