// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-drive-cli/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

const progressWidth = 40

// progressPrinter redraws a single progress line on w. It is safe for
// concurrent use.
type progressPrinter struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	bar   progress.Model
	last  int
}

func newProgressPrinter(w io.Writer, label string) *progressPrinter {
	return &progressPrinter{
		w:     w,
		label: label,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth), progress.WithoutPercentage()),
	}
}

func (p *progressPrinter) update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// workers may report out of order
	if done <= p.last || total <= 0 {
		return
	}
	p.last = done

	fmt.Fprintf(p.w, "\r%s %s %d/%d blocks", titleStyle.Render(p.label), p.bar.ViewAs(float64(done)/float64(total)), done, total)
}

func (p *progressPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last > 0 {
		fmt.Fprintln(p.w)
	}
}

// renderTable lays rows out in columns separated by │ under a header.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, " │ "), " "))
		b.WriteString("\n")
	}

	writeRow(header)
	dividers := make([]string, len(widths))
	for i, w := range widths {
		dividers[i] = strings.Repeat("─", w)
	}
	b.WriteString(strings.Join(dividers, "─┼─"))
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

func renderEntries(entries []models.NodeEntry) string {
	if len(entries) == 0 {
		return helpStyle.Render("(empty folder)") + "\n"
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		name, size := e.Name, formatSize(e.Size)
		if e.Type == models.LinkTypeFolder {
			name += "/"
			size = "-"
		}
		rows[i] = []string{e.Type.String(), size, name, valueOrDash(e.MIMEType)}
	}

	return renderTable([]string{"TYPE", "SIZE", "NAME", "MIME"}, rows)
}

func renderHistory(records []models.TransferRecord) string {
	if len(records) == 0 {
		return helpStyle.Render("(no transfers recorded)") + "\n"
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		verified := "yes"
		if !r.Verified {
			verified = "no"
		}
		rows[i] = []string{
			r.CreatedAt.Local().Format(time.DateTime),
			string(r.Kind),
			r.RemotePath,
			r.LocalPath,
			formatSize(r.Size),
			verified,
		}
	}

	return renderTable([]string{"WHEN", "KIND", "REMOTE", "LOCAL", "SIZE", "VERIFIED"}, rows)
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
