// Package content owns the live site content and its persistence policy.
//
// The Store holds the current profile, projects and goals behind a mutex.
// Mutators apply synchronously, so a Save started right after a mutation
// always persists that mutation. Load prefers the remote backend, falls
// back to the local slot, and otherwise keeps the catalog defaults. Storage
// failures are logged and reported, never returned as raw I/O errors.
package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/catalog"
	"github.com/vibetank/vibetank/internal/types"
)

var (
	// ErrSaveFailed means no backend accepted the document.
	ErrSaveFailed = errors.New("save failed: no backend accepted the document")
	// ErrProjectNotFound is returned by project mutators for an unknown id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrGoalNotFound is returned by goal mutators for an unknown id.
	ErrGoalNotFound = errors.New("goal not found")
)

// Backend is the persistence gateway. *storage.Adapter implements it.
type Backend interface {
	IsRemoteConfigured() bool
	LoadRemote(ctx context.Context) (*types.StoredDocument, error)
	SaveRemote(ctx context.Context, doc types.StoredDocument) error
	ClearRemote(ctx context.Context, id string) error
	LoadLocal(ctx context.Context) (*types.StoredDocument, error)
	SaveLocal(ctx context.Context, doc types.StoredDocument) error
	ClearLocal(ctx context.Context) error
}

// Options configures a Store.
type Options struct {
	Logger *zap.Logger
	// Now overrides the clock used for lastSavedAt and exports.
	Now func() time.Time
}

// Status is the operational state exposed to the admin panel.
type Status struct {
	IsLoading        bool       `json:"isLoading"`
	IsSaving         bool       `json:"isSaving"`
	LastSavedAt      *time.Time `json:"lastSavedAt"`
	RemoteConfigured bool       `json:"remoteConfigured"`
}

// Store is the content store.
type Store struct {
	backend          Backend
	remoteConfigured bool
	logger           *zap.Logger
	now              func() time.Time

	mu          sync.Mutex
	profile     types.ProfileInfo
	projects    []types.Project
	goals       []types.Goal
	loading     int
	loaded      bool // a Load has finished
	saving      int
	lastSavedAt *time.Time
}

// New returns a Store seeded with the catalog defaults.
func New(backend Backend, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		backend:          backend,
		remoteConfigured: backend.IsRemoteConfigured(),
		logger:           logger,
		now:              now,
		profile:          catalog.Profile(),
		projects:         catalog.Projects(),
		goals:            catalog.Goals(),
	}
}

// Status returns the current operational flags. IsLoading is true until the
// first Load has finished.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		IsLoading:        s.loading > 0 || !s.loaded,
		IsSaving:         s.saving > 0,
		RemoteConfigured: s.remoteConfigured,
	}
	if s.lastSavedAt != nil {
		t := *s.lastSavedAt
		st.LastSavedAt = &t
	}
	return st
}

// Snapshot returns a deep copy of the current content with every field present.
func (s *Store) Snapshot() types.StoredDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() types.StoredDocument {
	profile := s.profile
	projects := types.CloneProjects(s.projects)
	if projects == nil {
		projects = []types.Project{}
	}
	for i := range projects {
		if projects[i].Tags == nil {
			projects[i].Tags = []string{}
		}
	}
	goals := types.CloneGoals(s.goals)
	if goals == nil {
		goals = []types.Goal{}
	}
	for i := range goals {
		if goals[i].Features == nil {
			goals[i].Features = []string{}
		}
	}
	return types.StoredDocument{
		Projects:    projects,
		ProfileInfo: &profile,
		Goals2026:   goals,
	}
}

// ProfileInfo returns the current profile.
func (s *Store) ProfileInfo() types.ProfileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Projects returns a copy of the current project list.
func (s *Store) Projects() []types.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.CloneProjects(s.projects)
}

// Goals2026 returns a copy of the current goal list.
func (s *Store) Goals2026() []types.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.CloneGoals(s.goals)
}

// adoptLocked overwrites each field present in doc. Projects are
// reconciled against the catalog when reconcile is set.
func (s *Store) adoptLocked(doc *types.StoredDocument, reconcile bool) {
	if doc.Projects != nil {
		projects := types.CloneProjects(doc.Projects)
		if reconcile {
			reconcileAssets(projects)
		}
		s.projects = projects
	}
	if doc.ProfileInfo != nil {
		s.profile = *doc.ProfileInfo
	}
	if doc.Goals2026 != nil {
		s.goals = types.CloneGoals(doc.Goals2026)
	}
}

// reconcileAssets forces the asset fields of catalog projects back to the
// catalog values.
func reconcileAssets(projects []types.Project) {
	for i := range projects {
		def, ok := catalog.ProjectByID(projects[i].ID)
		if !ok {
			continue
		}
		projects[i].IconImage = def.IconImage
		projects[i].AIImage = def.AIImage
		projects[i].Script = def.Script
	}
}
