package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
)

// Summary styles, applied only when stdout is a terminal.
var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	summaryMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// isTerminal reports whether stdout is attached to a terminal. It is a
// variable so tests can force plain output.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// renderSummary formats the end-of-run summary. Styling is dropped when
// output is redirected so piped output stays clean.
func renderSummary(rep domain.Report, written []string) string {
	styled := isTerminal()
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	b.WriteString(style(summaryTitleStyle, fmt.Sprintf("Export of %s complete", rep.Account)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  repositories: %d (%d walked, %d failed)\n",
		rep.Repositories, rep.Walked, rep.Failed))
	b.WriteString(fmt.Sprintf("  rows: %d (%d files, %d errors)\n",
		rep.TotalRows(), rep.FileRows, rep.ErrorRows))
	if rep.TaskErrors > 0 {
		b.WriteString(style(summaryWarnStyle,
			fmt.Sprintf("  task errors: %d (see stderr)", rep.TaskErrors)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("  duration: %s\n", rep.Duration.Round(10*time.Millisecond)))
	if len(written) > 0 {
		b.WriteString(fmt.Sprintf("  written: %s\n", strings.Join(written, ", ")))
	}
	b.WriteString(style(summaryMutedStyle, fmt.Sprintf("  run: %s", rep.RunID)))
	b.WriteString("\n")

	return b.String()
}
