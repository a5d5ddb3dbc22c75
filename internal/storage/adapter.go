// Package storage switches between the remote document store and the local
// key/value slot behind one capability flag.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/db"
	"github.com/vibetank/vibetank/internal/metrics"
	"github.com/vibetank/vibetank/internal/schemas"
	"github.com/vibetank/vibetank/internal/types"
)

const (
	// RemoteDocumentID keys the remote row.
	RemoteDocumentID = db.MainDocumentID
	// RemoteTable is the remote table name.
	RemoteTable = db.SiteDataTable
	// LocalSlotKey keys the local slot.
	LocalSlotKey = "vibetank_data"
)

var (
	// ErrNotFound means the backend holds no document. It is expected on first run.
	ErrNotFound = errors.New("document not found")
	// ErrRemoteNotConfigured is returned by remote calls when no remote is configured.
	ErrRemoteNotConfigured = errors.New("remote storage not configured")
)

// RemoteStore is the document table the adapter writes to. *db.DB implements it.
type RemoteStore interface {
	GetDocument(ctx context.Context, id string) ([]byte, error)
	ReplaceDocument(ctx context.Context, id string, content []byte) error
	DeleteDocument(ctx context.Context, id string) error
}

// LocalStore is a key/value slot store. *localstore.Store implements it.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Adapter is the persistence gateway used by the content store.
type Adapter struct {
	remote           RemoteStore
	local            LocalStore
	remoteConfigured bool
	logger           *zap.Logger
}

// NewAdapter builds an adapter. remoteConfigured is fixed for the adapter's
// lifetime; a nil remote forces it false.
func NewAdapter(remote RemoteStore, local LocalStore, remoteConfigured bool, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		remote:           remote,
		local:            local,
		remoteConfigured: remoteConfigured && remote != nil,
		logger:           logger,
	}
}

// IsRemoteConfigured reports whether remote calls are enabled.
func (a *Adapter) IsRemoteConfigured() bool {
	return a.remoteConfigured
}

// LoadRemote fetches the "main" document. Returns ErrNotFound when no row exists.
func (a *Adapter) LoadRemote(ctx context.Context) (doc *types.StoredDocument, err error) {
	if !a.remoteConfigured {
		return nil, ErrRemoteNotConfigured
	}
	defer observe("remote", "load", time.Now(), &err)

	raw, err := a.remote.GetDocument(ctx, RemoteDocumentID)
	if err != nil {
		return nil, fmt.Errorf("loading remote document: %w", err)
	}
	if raw == nil {
		a.logger.Debug("no remote document", zap.String("table", RemoteTable), zap.String("id", RemoteDocumentID))
		return nil, ErrNotFound
	}

	doc, err = schemas.DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding remote document: %w", err)
	}
	return doc, nil
}

// SaveRemote replaces the "main" row with doc.
func (a *Adapter) SaveRemote(ctx context.Context, doc types.StoredDocument) (err error) {
	if !a.remoteConfigured {
		return ErrRemoteNotConfigured
	}
	defer observe("remote", "save", time.Now(), &err)

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := a.remote.ReplaceDocument(ctx, RemoteDocumentID, raw); err != nil {
		return fmt.Errorf("saving remote document: %w", err)
	}
	return nil
}

// ClearRemote deletes the remote row with the given id.
func (a *Adapter) ClearRemote(ctx context.Context, id string) (err error) {
	if !a.remoteConfigured {
		return ErrRemoteNotConfigured
	}
	defer observe("remote", "clear", time.Now(), &err)

	if err := a.remote.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("clearing remote document: %w", err)
	}
	return nil
}

// LoadLocal reads the local slot. Returns ErrNotFound when the slot is empty.
func (a *Adapter) LoadLocal(ctx context.Context) (doc *types.StoredDocument, err error) {
	defer observe("local", "load", time.Now(), &err)

	raw, ok, err := a.local.Get(ctx, LocalSlotKey)
	if err != nil {
		return nil, fmt.Errorf("loading local document: %w", err)
	}
	if !ok {
		a.logger.Debug("no local document", zap.String("key", LocalSlotKey))
		return nil, ErrNotFound
	}

	doc, err = schemas.DecodeDocument([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding local document: %w", err)
	}
	return doc, nil
}

// SaveLocal overwrites the local slot with doc.
func (a *Adapter) SaveLocal(ctx context.Context, doc types.StoredDocument) (err error) {
	defer observe("local", "save", time.Now(), &err)

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := a.local.Set(ctx, LocalSlotKey, string(raw)); err != nil {
		return fmt.Errorf("saving local document: %w", err)
	}
	return nil
}

// ClearLocal empties the local slot.
func (a *Adapter) ClearLocal(ctx context.Context) (err error) {
	defer observe("local", "clear", time.Now(), &err)

	if err := a.local.Delete(ctx, LocalSlotKey); err != nil {
		return fmt.Errorf("clearing local document: %w", err)
	}
	return nil
}

func observe(backend, operation string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.ObserveBackend(backend, operation, start, err)
}
