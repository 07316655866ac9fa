// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	TableHeaderStyle   lipgloss.Style
	TableCellStyle     lipgloss.Style
	TableBorderStyle   lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	SuccessTextStyle   lipgloss.Style

	// Tab header.
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	TabLoadingStyle  lipgloss.Style
	TabBarStyle      lipgloss.Style

	// Pane rows.
	RowStyle         lipgloss.Style
	RowCursorStyle   lipgloss.Style
	RowCheckedStyle  lipgloss.Style
	RowDisabledStyle lipgloss.Style
	RowReadOnlyStyle lipgloss.Style
	PaneHeaderStyle  lipgloss.Style
	PaneNoticeStyle  lipgloss.Style
	ToggleStyle      lipgloss.Style
	ToggleFocusStyle lipgloss.Style
	DownloadBarStyle lipgloss.Style

	// Modal.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// Prompt form.
	FormTitleStyle lipgloss.Style
	FormHelpStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorTextStyle = lipgloss.NewStyle().Foreground(p.Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(p.Success)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	TabLoadingStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Padding(0, 1)
	TabBarStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.Surface)

	RowStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	RowCursorStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Bold(true)
	RowCheckedStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	RowDisabledStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)
	RowReadOnlyStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	PaneHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	PaneNoticeStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true).
		Padding(1, 2)
	ToggleStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Foreground)
	ToggleFocusStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
	DownloadBarStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Secondary).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(p.Foreground)
	ToastInfoStyle = toast.BorderForeground(p.Primary)
	ToastWarningStyle = toast.BorderForeground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Error)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
// base selects the glamour starting point ("dark", "light", or "notty").
func GlamourStyle(base string) glamouransi.StyleConfig {
	var cfg glamouransi.StyleConfig
	switch base {
	case "light":
		cfg = glamourstyles.LightStyleConfig
	case "notty":
		return glamourstyles.NoTTYStyleConfig
	default:
		cfg = glamourstyles.DarkStyleConfig
	}

	p := CurrentPalette
	fg := colorPtr(p.Foreground)
	primary := colorPtr(p.Primary)
	secondary := colorPtr(p.Secondary)
	muted := colorPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = primary
	cfg.H3.Color = secondary

	cfg.Item.Color = fg
	cfg.HorizontalRule.Color = muted
	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	return cfg
}
