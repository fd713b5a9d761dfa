package api

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"qc-station/internal/domain/port"
)

// ConsoleReporter печатает вердикты крупными баннерами в терминал оператора
type ConsoleReporter struct {
	out    io.Writer
	accept lipgloss.Style
	reject lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	banner := r.NewStyle().
		Bold(true).
		Padding(0, 3).
		Border(lipgloss.RoundedBorder(), true)

	return &ConsoleReporter{
		out:    out,
		accept: banner.Foreground(lipgloss.Color("#52C41A")).BorderForeground(lipgloss.Color("#52C41A")),
		reject: banner.Foreground(lipgloss.Color("#FF4D4F")).BorderForeground(lipgloss.Color("#FF4D4F")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	}
}

func (c *ConsoleReporter) ReportVerdict(ctx context.Context, report port.CycleReport) error {
	rec := report.Record
	v := report.Verdict

	banner := c.accept
	if !v.Accepted {
		banner = c.reject
	}
	lines := []string{banner.Render(v.Label())}

	if !v.Accepted {
		lines = append(lines, fmt.Sprintf("Component %d (phase %d): %s", v.ComponentID, v.Phase, formatPercent(v.PercentChange)))
	}
	color := fmt.Sprintf("Color: %s, exposure: %d us", rec.Color, rec.ExposureUs)
	if rec.ColorFallback {
		color += " " + c.warn.Render("(fallback)")
	}
	lines = append(lines,
		color,
		c.muted.Render(fmt.Sprintf("Good: %d  Bad: %d", rec.Good, rec.Bad)),
	)

	_, err := fmt.Fprintln(c.out, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

func (c *ConsoleReporter) ReportFailure(ctx context.Context, cycleID string, err error) error {
	_, werr := fmt.Fprintln(c.out, c.warn.Render(fmt.Sprintf("Cycle %s aborted: %v", shortID(cycleID), err)))
	return werr
}

var _ port.VerdictReporter = (*ConsoleReporter)(nil)
