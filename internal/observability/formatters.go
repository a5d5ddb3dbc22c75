package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintStatus outputs the store flags and a summary of the current content.
func (p *Printer) PrintStatus(status content.Status, doc types.StoredDocument) {
	var sb strings.Builder

	backend := "local only"
	if status.RemoteConfigured {
		backend = "remote + local"
	}
	sb.WriteString(fmt.Sprintf("Storage:     %s\n", backend))
	sb.WriteString(fmt.Sprintf("Last saved:  %s\n", formatTime(status.LastSavedAt)))
	sb.WriteString("\n")

	if doc.ProfileInfo != nil {
		sb.WriteString(fmt.Sprintf("Profile:     %s (%s, %d)\n", doc.ProfileInfo.Name, doc.ProfileInfo.Role, doc.ProfileInfo.Year))
	}

	sb.WriteString(fmt.Sprintf("Projects:    %d\n", len(doc.Projects)))
	count := min(len(doc.Projects), maxItemsToShow)
	for i := 0; i < count; i++ {
		project := doc.Projects[i]
		sb.WriteString(fmt.Sprintf("  #%d %s %s\n", project.ID, project.Icon, project.Name))
	}
	if len(doc.Projects) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Projects)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("Goals:       %d\n", len(doc.Goals2026)))
	for _, goal := range doc.Goals2026 {
		sb.WriteString(fmt.Sprintf("  #%d %s\n", goal.ID, goal.Title))
	}

	p.printBox("SITE CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// BackendDetails describes where content and the admin passphrase live.
type BackendDetails struct {
	LocalPath          string
	RemoteConnected    bool
	RemoteUpdatedAt    *time.Time
	AdminEnabled       bool
	PassphraseOverride bool
}

// PrintBackends outputs the storage locations and admin access state.
func (p *Printer) PrintBackends(d BackendDetails) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Local store:   %s\n", d.LocalPath))
	if d.RemoteConnected {
		sb.WriteString(fmt.Sprintf("Remote saved:  %s\n", formatTime(d.RemoteUpdatedAt)))
	} else {
		sb.WriteString("Remote saved:  not connected\n")
	}

	admin := "disabled"
	switch {
	case d.PassphraseOverride:
		admin = "override passphrase"
	case d.AdminEnabled:
		admin = "ADMIN_PASSWORD"
	}
	sb.WriteString(fmt.Sprintf("Admin login:   %s", admin))
	p.printBox("BACKENDS", sb.String())
}

// PrintLoadReport outputs where content was loaded from.
func (p *Printer) PrintLoadReport(report content.LoadReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s", report.Source))
	writeWarnings(&sb, report.Warnings)
	p.printBox("LOAD", sb.String())
}

// PrintSaveReport outputs which backends accepted a save.
func (p *Printer) PrintSaveReport(report content.SaveReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Local:  %s\n", yesNo(report.Local)))
	if report.RemoteAttempted {
		sb.WriteString(fmt.Sprintf("Remote: %s\n", yesNo(report.Remote)))
	} else {
		sb.WriteString("Remote: not configured\n")
	}
	sb.WriteString(fmt.Sprintf("Saved:  %s", formatTime(report.SavedAt)))
	writeWarnings(&sb, report.Warnings)
	p.printBox("SAVE", sb.String())
}

// PrintResetReport outputs which backends were cleared.
func (p *Printer) PrintResetReport(report content.ResetReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Local cleared:  %s\n", yesNo(report.LocalCleared)))
	sb.WriteString(fmt.Sprintf("Remote cleared: %s", yesNo(report.RemoteCleared)))
	writeWarnings(&sb, report.Warnings)
	p.printBox("RESET TO DEFAULTS", sb.String())
}

func writeWarnings(sb *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	sb.WriteString("\n\nWarnings:")
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("\n  ! %s", w))
	}
}
