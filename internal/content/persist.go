package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vibetank/vibetank/internal/catalog"
	"github.com/vibetank/vibetank/internal/metrics"
	"github.com/vibetank/vibetank/internal/schemas"
	"github.com/vibetank/vibetank/internal/storage"
	"github.com/vibetank/vibetank/internal/types"
)

// Source names where a load took its document from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceLocal   Source = "local"
	SourceDefault Source = "default"
)

// LoadReport describes a finished Load.
type LoadReport struct {
	Source   Source   `json:"source"`
	Warnings []string `json:"warnings,omitempty"`
}

// SaveReport describes a finished Save.
type SaveReport struct {
	Local           bool       `json:"local"`
	RemoteAttempted bool       `json:"remoteAttempted"`
	Remote          bool       `json:"remote"`
	SavedAt         *time.Time `json:"savedAt,omitempty"`
	Warnings        []string   `json:"warnings,omitempty"`
}

// ResetReport describes a finished Reset.
type ResetReport struct {
	LocalCleared  bool     `json:"localCleared"`
	RemoteCleared bool     `json:"remoteCleared"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Load adopts the persisted document. The remote document wins when it
// exists; otherwise the local slot is used; otherwise the current values
// stay. Each top-level field is adopted only if present. isLoading stays
// true until every field has been adopted.
func (s *Store) Load(ctx context.Context) LoadReport {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	report := LoadReport{Source: SourceDefault}
	var doc *types.StoredDocument

	if s.remoteConfigured {
		d, err := s.backend.LoadRemote(ctx)
		switch {
		case err == nil:
			doc = d
			report.Source = SourceRemote
		case errors.Is(err, storage.ErrNotFound):
			s.logger.Debug("remote document not found, falling back to local")
		default:
			s.logger.Warn("remote load failed, falling back to local", zap.Error(err))
			report.Warnings = append(report.Warnings, fmt.Sprintf("remote load failed: %v", err))
		}
	}

	if doc == nil {
		d, err := s.backend.LoadLocal(ctx)
		switch {
		case err == nil:
			doc = d
			report.Source = SourceLocal
		case errors.Is(err, storage.ErrNotFound):
			s.logger.Debug("local document not found, keeping defaults")
		default:
			s.logger.Warn("local load failed, keeping current content", zap.Error(err))
			report.Warnings = append(report.Warnings, fmt.Sprintf("local load failed: %v", err))
		}
	}

	s.mu.Lock()
	if doc != nil {
		s.adoptLocked(doc, true)
	}
	s.loading--
	s.loaded = true
	s.mu.Unlock()

	var opErr error
	if len(report.Warnings) > 0 {
		opErr = errors.New(report.Warnings[len(report.Warnings)-1])
	}
	metrics.StoreOperation("load", opErr)
	s.logger.Info("content loaded", zap.String("source", string(report.Source)))
	return report
}

// Save persists the content as of the call. The local slot is always
// written first; the remote is written too when configured. A remote
// failure does not undo the local write. ErrSaveFailed is returned only
// when no backend accepted the document.
func (s *Store) Save(ctx context.Context) (SaveReport, error) {
	s.mu.Lock()
	s.saving++
	doc := s.snapshotLocked()
	s.mu.Unlock()

	var report SaveReport
	if err := s.backend.SaveLocal(ctx, doc); err != nil {
		s.logger.Warn("local save failed", zap.Error(err))
		report.Warnings = append(report.Warnings, fmt.Sprintf("local save failed: %v", err))
	} else {
		report.Local = true
	}

	if s.remoteConfigured {
		report.RemoteAttempted = true
		if err := s.backend.SaveRemote(ctx, doc); err != nil {
			s.logger.Warn("remote save failed, local copy kept", zap.Error(err))
			report.Warnings = append(report.Warnings, fmt.Sprintf("remote save failed: %v", err))
		} else {
			report.Remote = true
		}
	}

	var err error
	if report.Local || report.Remote {
		at := s.now()
		report.SavedAt = &at
	} else {
		err = ErrSaveFailed
	}

	s.mu.Lock()
	if report.SavedAt != nil {
		at := *report.SavedAt
		s.lastSavedAt = &at
	}
	s.saving--
	s.mu.Unlock()

	metrics.StoreOperation("save", err)
	if report.SavedAt != nil {
		metrics.SetLastSaved(*report.SavedAt)
	}
	return report, err
}

// Export returns the current content as pretty-printed JSON with the
// export timestamp and version.
func (s *Store) Export() (string, error) {
	doc := types.ExportDocument{
		StoredDocument: s.Snapshot(),
		ExportedAt:     s.now().UTC().Format(time.RFC3339),
		Version:        types.DocumentVersion,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}
	return string(raw), nil
}

// ExportFilename is the download name for an export taken now.
func (s *Store) ExportFilename() string {
	return ExportFilename(s.now())
}

// ExportFilename is the download name for an export taken at t.
func ExportFilename(t time.Time) string {
	return "vibetank-backup-" + t.Format("2006-01-02") + ".json"
}

// Import adopts each top-level field present in raw. It returns false and
// leaves the content untouched when raw is not a valid document. It does
// not persist.
func (s *Store) Import(raw []byte) bool {
	doc, err := schemas.DecodeDocument(raw)
	metrics.StoreOperation("import", err)
	if err != nil {
		s.logger.Warn("import rejected", zap.Error(err))
		return false
	}

	s.mu.Lock()
	s.adoptLocked(doc, false)
	s.mu.Unlock()
	return true
}

// Reset restores the catalog defaults and clears both backends. The
// backends are cleared concurrently; failures are reported, not returned.
func (s *Store) Reset(ctx context.Context) ResetReport {
	def := catalog.Document()
	s.mu.Lock()
	s.adoptLocked(&def, false)
	s.mu.Unlock()

	var (
		report    ResetReport
		localErr  error
		remoteErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		localErr = s.backend.ClearLocal(ctx)
		return localErr
	})
	if s.remoteConfigured {
		g.Go(func() error {
			remoteErr = s.backend.ClearRemote(ctx, storage.RemoteDocumentID)
			return remoteErr
		})
	}
	err := g.Wait()

	report.LocalCleared = localErr == nil
	if localErr != nil {
		s.logger.Warn("local clear failed", zap.Error(localErr))
		report.Warnings = append(report.Warnings, fmt.Sprintf("local clear failed: %v", localErr))
	}
	if s.remoteConfigured {
		report.RemoteCleared = remoteErr == nil
		if remoteErr != nil {
			s.logger.Warn("remote clear failed", zap.Error(remoteErr))
			report.Warnings = append(report.Warnings, fmt.Sprintf("remote clear failed: %v", remoteErr))
		}
	}

	metrics.StoreOperation("reset", err)
	s.logger.Info("content reset to defaults")
	return report
}
