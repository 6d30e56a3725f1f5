// Package style holds the palette and glyphs shared by hue's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#E8590C")
	Slate  = lipgloss.Color("#667085")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Heading renders section titles in listings.
var Heading = lipgloss.NewStyle().Bold(true).Foreground(Accent)

// Muted renders secondary detail such as aliases and families.
var Muted = lipgloss.NewStyle().Foreground(Slate)
