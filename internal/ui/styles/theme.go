// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble    lipgloss.Style
	BotBubble     lipgloss.Style
	Notice        lipgloss.Style
	FallbackReply lipgloss.Style
	Timestamp     lipgloss.Style
	SenderLabel   lipgloss.Style
	ReactionMark  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	MicActive        lipgloss.Style
	MicIdle          lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarItemActive   lipgloss.Style
	SidebarMeta         lipgloss.Style
	SidebarEmpty        lipgloss.Style

	// ==========================================================================
	// FORM STYLES (login / signup)
	// ==========================================================================

	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormFocused    lipgloss.Style
	FormBlurred    lipgloss.Style
	FormHint       lipgloss.Style
	AlertBox       lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style

	// ==========================================================================
	// FEEDBACK POPUP STYLES
	// ==========================================================================

	PopupBox          lipgloss.Style
	PopupTitle        lipgloss.Style
	PopupItem         lipgloss.Style
	PopupItemSelected lipgloss.Style

	// ==========================================================================
	// SPINNER AND WELCOME STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	TypingText   lipgloss.Style
	WelcomeBox   lipgloss.Style
	WelcomeTitle lipgloss.Style
	WelcomeHint  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.Notice = lipgloss.NewStyle().
		Foreground(NoticeFg).
		Background(NoticeBg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(NoticeBorder).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.FallbackReply = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SenderLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.ReactionMark = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(1)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.MicActive = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.MicIdle = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(1, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal).
		MarginBottom(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)

	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true).
		Padding(0, 1)

	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SidebarEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 1)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal).
		MarginBottom(1)

	t.FormFocused = lipgloss.NewStyle().
		Foreground(Teal)

	t.FormBlurred = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		MarginTop(1)

	t.AlertBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		Padding(0, 2).
		MarginTop(1)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 3)

	t.ButtonInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 3)

	// Feedback popup
	t.PopupBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 2)

	t.PopupTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber).
		MarginBottom(1)

	t.PopupItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PopupItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)

	// Spinner and welcome
	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.TypingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.WelcomeBox = lipgloss.NewStyle().
		Align(lipgloss.Center).
		Padding(2, 4)

	t.WelcomeTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.WelcomeHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// RenderError renders a blocking alert line in the error style.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Render("[!] " + message)
}

// RenderSuccess renders a confirmation line.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true).
		Render("[OK] " + message)
}
