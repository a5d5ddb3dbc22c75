package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/rendering"
	"github.com/vibetank/vibetank/internal/types"
)

// maxImportBytes bounds uploaded backups.
const maxImportBytes = 10 << 20

// StatusResponse is the body of GET /api/status
type StatusResponse struct {
	content.Status
	Projects int `json:"projects"`
	Goals    int `json:"goals"`
}

// handleSite renders the public portfolio page
func (s *Server) handleSite(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rendering.RenderSite(w, s.store.Snapshot()); err != nil {
		s.logger.Error("failed to render site", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// handleContent returns the current document
func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleStatus returns the store's operational state
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	doc := s.store.Snapshot()
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		Status:   s.store.Status(),
		Projects: len(doc.Projects),
		Goals:    len(doc.Goals2026),
	})
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.ProfileInfo
	if !s.decodeBody(w, r, &profile) {
		return
	}
	if err := profile.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), extractValidationErrors(err))
		return
	}

	s.store.SetProfileInfo(profile)
	s.jsonResponse(w, http.StatusOK, s.store.ProfileInfo())
}

func (s *Server) handleSetProjects(w http.ResponseWriter, r *http.Request) {
	var projects []types.Project
	if !s.decodeBody(w, r, &projects) {
		return
	}

	seen := make(map[int]bool, len(projects))
	for i := range projects {
		if err := projects[i].Validate(); err != nil {
			s.errorResponse(w, HTTPStatus(err), extractValidationErrors(err))
			return
		}
		if seen[projects[i].ID] {
			err := &ErrValidation{Field: "id", Message: fmt.Sprintf("duplicate project id %d", projects[i].ID)}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		seen[projects[i].ID] = true
	}

	s.store.SetProjects(projects)
	s.jsonResponse(w, http.StatusOK, s.store.Projects())
}

func (s *Server) handleAddProject(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusCreated, s.store.AddProject())
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var project types.Project
	if !s.decodeBody(w, r, &project) {
		return
	}
	project.ID = id
	if err := project.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), extractValidationErrors(err))
		return
	}

	updated, err := s.store.UpdateProject(id, func(types.Project) types.Project { return project })
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteProject(id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetGoals(w http.ResponseWriter, r *http.Request) {
	var goals []types.Goal
	if !s.decodeBody(w, r, &goals) {
		return
	}
	for i := range goals {
		if err := goals[i].Validate(); err != nil {
			s.errorResponse(w, HTTPStatus(err), extractValidationErrors(err))
			return
		}
	}

	s.store.SetGoals2026(goals)
	s.jsonResponse(w, http.StatusOK, s.store.Goals2026())
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var goal types.Goal
	if !s.decodeBody(w, r, &goal) {
		return
	}
	goal.ID = id
	if err := goal.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), extractValidationErrors(err))
		return
	}

	updated, err := s.store.UpdateGoal(id, func(types.Goal) types.Goal { return goal })
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.Save(r.Context())
	if err != nil {
		s.jsonResponse(w, HTTPStatus(err), map[string]any{
			"error":  err.Error(),
			"report": report,
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Load(r.Context()))
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	body, err := s.store.Export()
	if err != nil {
		s.logger.Error("failed to export", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.store.ExportFilename()))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Backup file too large")
		return
	}

	if !s.store.Import(raw) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid backup file")
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Reset(r.Context()))
}

// decodeBody decodes the JSON body into v, writing a 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the {id} path value, writing a 400 when it is not an integer.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		verr := &ErrValidation{Field: "id", Message: "must be an integer"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return 0, false
	}
	return id, true
}
