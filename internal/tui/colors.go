package tui

// Color constants for the timeboxd TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#101B2D" // Deep navy
	ColorBorder         = "#32405A" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, input, titles)
	ColorSecondaryText = "#ADB7C9" // Secondary text
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Teal theme)
	ColorAccentMain   = "#14B8A6" // Logo, accent elements, active borders
	ColorAccentBright = "#5EEAD4" // Hover, highlights

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Overrun warnings
)
