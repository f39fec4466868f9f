package tui

// Color constants for the clockr TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Labels, input, titles
	ColorSecondaryText = "#B1B8C7" // Subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, active tab, borders
	ColorAccentBright = "#A78BFA" // Highlights, the clock
	ColorShimmer      = "#EAE6FF" // Shimmer highlight on the selected row

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B" // Pending metadata, confirmations
)
