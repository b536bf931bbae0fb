// Package cli provides the interactive terminal boundary: styled output with lipgloss,
// the review and cleanup prompts, and Ctrl-C handling.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette for every line the tool prints. Notebook blue for headings, muted grey for rules.
var (
	accent = lipgloss.Color("#5C7CFA")
	muted  = lipgloss.Color("#868E96")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	ruleStyle    = lipgloss.NewStyle().Foreground(muted)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

// tone is the kind of status line being printed.
type tone int

const (
	toneInfo tone = iota
	toneSuccess
	toneWarning
	toneError
)

// toneMarks pairs each tone with its leading symbol and colour.
var toneMarks = map[tone]struct {
	symbol string
	style  lipgloss.Style
}{
	toneInfo:    {"•", lipgloss.NewStyle().Foreground(lipgloss.Color("#74C0FC"))},
	toneSuccess: {"✓", lipgloss.NewStyle().Foreground(lipgloss.Color("#51CF66"))},
	toneWarning: {"!", lipgloss.NewStyle().Foreground(lipgloss.Color("#FCC419"))},
	toneError:   {"✗", lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))},
}

// ruleWidth is the width of the separators around prompts and the summary.
const ruleWidth = 60

func mark(t tone, message string) string {
	m := toneMarks[t]
	return m.style.Render(m.symbol + " " + message)
}

// FormatInfo marks an informational line.
func FormatInfo(message string) string { return mark(toneInfo, message) }

// FormatSuccess marks a line reporting something that worked.
func FormatSuccess(message string) string { return mark(toneSuccess, message) }

// FormatWarning marks a line the operator should notice.
func FormatWarning(message string) string { return mark(toneWarning, message) }

// FormatError marks a failure line.
func FormatError(message string) string { return mark(toneError, message) }

// FormatTitle renders the program banner.
func FormatTitle(title string) string {
	return headingStyle.Render("📚 " + title)
}

// FormatHeading renders a section heading without the banner icon.
func FormatHeading(heading string) string {
	return headingStyle.Render(heading)
}

// FormatPrompt renders text that waits for an answer.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt)
}

// Rule renders a horizontal separator.
func Rule() string {
	return ruleStyle.Render(strings.Repeat("=", ruleWidth))
}

// RenderBox frames content under a heading, used for the file list shown at review.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, FormatHeading(title), content))
}
