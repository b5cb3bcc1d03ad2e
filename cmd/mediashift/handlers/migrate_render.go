package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mediashift/mediashift/internal/provisioning"
)

var (
	reportColorGreen  = lipgloss.Color("#22c55e")
	reportColorRed    = lipgloss.Color("#ef4444")
	reportColorYellow = lipgloss.Color("#eab308")
	reportColorDim    = lipgloss.Color("#6b7280")
	reportColorWhite  = lipgloss.Color("#f9fafb")
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(reportColorWhite)

	reportDimStyle = lipgloss.NewStyle().
			Foreground(reportColorDim)

	reportGreenStyle = lipgloss.NewStyle().
				Foreground(reportColorGreen)

	reportRedStyle = lipgloss.NewStyle().
			Foreground(reportColorRed)

	reportYellowStyle = lipgloss.NewStyle().
				Foreground(reportColorYellow)
)

// renderReport produces a lipgloss-styled run summary string.
func renderReport(report *provisioning.Report, dryRun bool) string {
	var b strings.Builder

	title := "  migration report"
	if dryRun {
		title = "  migration report (dry run)"
	}
	b.WriteString("\n")
	b.WriteString(reportTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(reportDimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	if len(report.Outcomes) > 0 {
		b.WriteString(reportDimStyle.Render(fmt.Sprintf("  %-20s %-8s %-10s %s", "User", "Status", "Libraries", "Avatar")))
		b.WriteString("\n")
		for _, outcome := range report.Outcomes {
			b.WriteString(renderOutcomeRow(outcome))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	created, skipped, failed := report.Counts()
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		reportGreenStyle.Render(fmt.Sprintf("%d created", created)),
		reportYellowStyle.Render(fmt.Sprintf("%d skipped", skipped)),
		reportRedStyle.Render(fmt.Sprintf("%d failed", failed)),
	))

	switch report.Status {
	case provisioning.RunAborted:
		b.WriteString(reportRedStyle.Render(fmt.Sprintf("  Aborted: %s", report.FatalReason)))
		b.WriteString("\n")
	case provisioning.RunPartialFailure:
		b.WriteString(reportYellowStyle.Render("  Completed with failures; re-running is safe."))
		b.WriteString("\n")
	}

	b.WriteString(reportDimStyle.Render(fmt.Sprintf("  Took %s", report.Duration.Round(10*time.Millisecond))))
	b.WriteString("\n")

	return b.String()
}

// renderOutcomeRow formats one user's line with a status indicator.
func renderOutcomeRow(outcome provisioning.Outcome) string {
	status := string(outcome.Status)
	style := reportGreenStyle
	switch outcome.Status {
	case provisioning.StatusSkipped:
		style = reportYellowStyle
	case provisioning.StatusFailed:
		style = reportRedStyle
	}

	libraries := string(outcome.Libraries)
	if outcome.Libraries == provisioning.StepDone {
		libraries = fmt.Sprintf("%d granted", len(outcome.LibrariesGranted))
	}

	row := fmt.Sprintf("  %-20s %-8s %-10s %s", outcome.Username, status, libraries, outcome.Avatar)
	line := style.Render(row)
	if outcome.FailureReason != "" {
		line += "\n" + reportDimStyle.Render("      "+outcome.FailureReason)
	}
	return line
}

// printReportPlain writes an unstyled summary for non-TTY output.
func printReportPlain(report *provisioning.Report, dryRun bool) {
	if dryRun {
		fmt.Println("migration report (dry run)")
	} else {
		fmt.Println("migration report")
	}

	for _, outcome := range report.Outcomes {
		fmt.Printf("  %s: %s roles=%s libraries=%s avatar=%s",
			outcome.Username, outcome.Status, outcome.Roles, outcome.Libraries, outcome.Avatar)
		if outcome.FailureReason != "" {
			fmt.Printf(" (%s)", outcome.FailureReason)
		}
		fmt.Println()
	}

	created, skipped, failed := report.Counts()
	fmt.Printf("created=%d skipped=%d failed=%d status=%s\n", created, skipped, failed, report.Status)
	if report.FatalReason != "" {
		fmt.Printf("aborted: %s\n", report.FatalReason)
	}
}
