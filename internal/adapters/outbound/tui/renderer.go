package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// ── Warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	pkgStyle      = lipgloss.NewStyle().Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Status labels shown in the report header.
const (
	StatusPassed  = "PASSED"
	StatusWarning = "PASSED WITH WARNINGS"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
)

// Status classifies a report for display.
func Status(r *domain.Report) string {
	switch {
	case r.Skipped:
		return StatusSkipped
	case !r.Passed:
		return StatusFailed
	case r.HasOffending() || len(r.Warnings) > 0:
		return StatusWarning
	default:
		return StatusPassed
	}
}

// RenderReport formats a run for terminal output. previous is the last
// stored report of the same goal and may be nil; when present the offending
// packages are compared against it.
func RenderReport(r *domain.Report, previous *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	status := Status(r)
	title := headerStyle.Render("jdepscheck")
	subtitle := dimStyle.Render(goalTitle(r.Goal))
	statusStyled := lipgloss.NewStyle().Bold(true).Foreground(statusColor(status)).Render(status)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + statusStyled))
	b.WriteString("\n\n")

	if r.Skipped {
		b.WriteString("  " + skipStyle.Render("No classes to analyze.") + "\n\n")
		return b.String()
	}

	if r.Executable != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("jdeps", 10)), r.Executable)
	}
	if inv := r.Inventory; inv != nil {
		classes := fmt.Sprintf("%d in %d packages", inv.ClassFiles, len(inv.Packages))
		if inv.Versioned {
			classes += dimStyle.Render(" (multi-release)")
		}
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("classes", 10)), classes)
	}
	if r.ExitCode != 0 {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("exit code", 10)), failStyle.Render(fmt.Sprintf("%d", r.ExitCode)))
	}
	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Offending packages ──
	entries := r.Offending.Entries()
	if len(entries) > 0 {
		tag := warnTagStyle
		if r.FailOnWarn {
			tag = errorTagStyle
		}
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Offending packages"))
		b.WriteString("  ")
		b.WriteString(tag.Render(fmt.Sprintf("%d", len(entries))))
		if previous != nil && !previous.Skipped {
			b.WriteString(renderDelta(r.Offending, previous.Offending))
		}
		b.WriteString("\n\n")

		width := 0
		for _, e := range entries {
			width = max(width, len(e.Package))
		}
		for _, e := range entries {
			icon := warnStyle.Render("●")
			if r.FailOnWarn {
				icon = failStyle.Render("●")
			}
			fmt.Fprintf(&b, "    %s %s  %s\n", icon, pkgStyle.Render(padRight(e.Package, width)), dimStyle.Render(e.Value))
		}
	} else {
		b.WriteString("  " + passStyle.Render("No JDK internal API usage found.") + "\n")
	}

	// ── Profiles ──
	if profiles := r.Profiles.Entries(); len(profiles) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Profiles") + "\n\n")
		width := 0
		for _, e := range profiles {
			width = max(width, len(e.Package))
		}
		for _, e := range profiles {
			fmt.Fprintf(&b, "    %s %s  %s\n", infoTagStyle.Render("·"), padRight(e.Package, width), faintStyle.Render(e.Value))
		}
	}

	// ── Warnings ──
	if len(r.Warnings) > 0 {
		b.WriteString("\n  " + titleStyle.Render("JDeps Warnings") + "\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
		}
	}

	b.WriteString("\n")
	return b.String()
}

// renderDelta compares offending packages with a previous run.
func renderDelta(current, previous *domain.PackageMap) string {
	added, fixed := 0, 0
	for _, e := range current.Entries() {
		if _, ok := previous.Get(e.Package); !ok {
			added++
		}
	}
	for _, e := range previous.Entries() {
		if _, ok := current.Get(e.Package); !ok {
			fixed++
		}
	}

	var s string
	if added > 0 {
		s += "  " + failStyle.Render(fmt.Sprintf("↑%d new", added))
	}
	if fixed > 0 {
		s += "  " + passStyle.Render(fmt.Sprintf("↓%d fixed", fixed))
	}
	return s
}

// RenderResolution formats the outcome of locating jdeps.
func RenderResolution(executable string) string {
	return fmt.Sprintf("  %s %s\n", passStyle.Render("●"), executable)
}

func goalTitle(g domain.Goal) string {
	switch g {
	case domain.GoalTest:
		return "JDK internal API usage · test classes"
	case domain.GoalMain:
		return "JDK internal API usage · main classes"
	default:
		return "JDK internal API usage"
	}
}

func statusColor(status string) lipgloss.Color {
	switch status {
	case StatusPassed:
		return success
	case StatusWarning:
		return warning
	case StatusFailed:
		return danger
	default:
		return skipColor
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	last := make(map[domain.Goal]int)
	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		result := passStyle.Render("pass")
		if !e.Passed {
			result = failStyle.Render("fail")
		}
		count := fmt.Sprintf("%d offending", e.Offending)
		countStyled := dimStyle.Render(count)
		if e.Offending > 0 {
			countStyled = warnStyle.Render(count)
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			padRight(string(e.Goal), len(domain.GoalTest)),
			result,
			countStyled,
		)

		if prev, ok := last[e.Goal]; ok {
			diff := e.Offending - prev
			if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}
		last[e.Goal] = e.Offending

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
