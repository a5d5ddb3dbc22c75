package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/vibetank/vibetank/internal/catalog"
	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/types"
)

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStatus(content.Status{RemoteConfigured: true}, catalog.Document())

	out := buf.String()
	assert.Contains(t, out, "SITE CONTENT")
	assert.Contains(t, out, "remote + local")
	assert.Contains(t, out, "Last saved:  never")
	assert.Contains(t, out, "Profile:     TANK")
	assert.Contains(t, out, "Projects:    4")
	assert.Contains(t, out, "Goals:       4")
}

func TestPrintStatus_ManyProjects(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var projects []types.Project
	for i := 1; i <= 8; i++ {
		projects = append(projects, types.Project{ID: i, Name: "P"})
	}
	p.PrintStatus(content.Status{}, types.StoredDocument{Projects: projects})

	out := buf.String()
	assert.Contains(t, out, "local only")
	assert.Contains(t, out, "... and 3 more")
	assert.NotContains(t, out, "Profile:")
}

func TestPrintBackends(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)

	tests := []struct {
		name    string
		details BackendDetails
		want    []string
	}{
		{
			name:    "local only, admin disabled",
			details: BackendDetails{LocalPath: "data/vibetank.db"},
			want:    []string{"BACKENDS", "Local store:   data/vibetank.db", "Remote saved:  not connected", "Admin login:   disabled"},
		},
		{
			name:    "remote without a row",
			details: BackendDetails{LocalPath: "x.db", RemoteConnected: true, AdminEnabled: true},
			want:    []string{"Remote saved:  never", "Admin login:   ADMIN_PASSWORD"},
		},
		{
			name:    "remote row and override",
			details: BackendDetails{LocalPath: "x.db", RemoteConnected: true, RemoteUpdatedAt: &at, AdminEnabled: true, PassphraseOverride: true},
			want:    []string{"Remote saved:  2026-03-04 05:06:07", "Admin login:   override passphrase"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintBackends(tt.details)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintSaveReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	p.PrintSaveReport(content.SaveReport{
		Local:           true,
		RemoteAttempted: true,
		Remote:          false,
		SavedAt:         &at,
		Warnings:        []string{"remote save failed: offline"},
	})

	out := buf.String()
	assert.Contains(t, out, "Local:  yes")
	assert.Contains(t, out, "Remote: no")
	assert.Contains(t, out, "2026-01-02 03:04:05")
	assert.Contains(t, out, "! remote save failed: offline")
}

func TestPrintLoadAndResetReports(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLoadReport(content.LoadReport{Source: content.SourceLocal})
	p.PrintResetReport(content.ResetReport{LocalCleared: true})

	out := buf.String()
	assert.Contains(t, out, "Source: local")
	assert.Contains(t, out, "Local cleared:  yes")
	assert.Contains(t, out, "Remote cleared: no")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true)
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "verbose enables debug")

	logger, err = NewLogger(false)
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
