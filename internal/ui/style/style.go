// Package style holds the colors and icons of coil's log lines.
package style

import "github.com/charmbracelet/lipgloss"

// Level colors.
var (
	Accent = lipgloss.Color("#0EA5E9")
	Muted  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Level prefixes.
const (
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
)
