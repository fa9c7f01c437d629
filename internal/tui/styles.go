package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold: warnings
	colorSuccess    = lipgloss.Color("#00E676") // Green: clean build
	colorDanger     = lipgloss.Color("#FF5252") // Red: errors/failures
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface: footer bg
	colorBlue       = lipgloss.Color("#5B8DEF") // Blue: building
)

// Status icons for build states.
const (
	iconClean    = "✓"
	iconFailed   = "✗"
	iconBuilding = "◎"
	iconWarning  = "⚠"
)

// Status bar styles: visually dominant with solid background.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusErrors = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorDanger).
				Bold(true)

	styleStatusWarnings = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent).
				Bold(true)

	styleStatusClean = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorSuccess).
				Bold(true)

	styleStatusBuilding = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorBlue)
)

// Report item styles.
var (
	styleTitleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleTitleWarning = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleItemIndex = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleEmpty = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true).
			Padding(1, 2)

	styleFailure = lipgloss.NewStyle().
			Foreground(colorDanger).
			Padding(1, 2)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleFooterKey = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMutedLight)
)
