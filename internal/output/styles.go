package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for the ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: package names, paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "created" entry status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "removed" entry status.
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (package names, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (generating, converting).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Entry status constants.
const (
	StatusCreated = "created"
	StatusSkipped = "skipped"
	StatusIgnored = "ignored"
	StatusRemoved = "removed"
	StatusValid   = "valid"
	statusFailed  = "failed"
)

// statusStyle returns the lipgloss style for an entry status.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusSkipped, StatusIgnored:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minEntryColumnWidth is the minimum width of the path column before the
// status suffix, so status words line up.
const minEntryColumnWidth = 48

// FormatEntryLine renders a generated path with a right-aligned, color-coded
// status suffix.
//
// Format: e:<path>  <status>
func FormatEntryLine(path, status string) string {
	padding := minEntryColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("e:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth is the column at which vet check details start.
const vetLabelWidth = 34

// FormatVetCheck renders a passed validation check with an optional,
// column-aligned detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}

	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}
