package web

// handlers_registry.go is the admin surface: reading and replacing the
// three override registries, the manual service-record edit, and the
// registry change history. PUT bodies replace the stored document in
// full; there is no partial patch.

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/fleetledger/internal/core"
	"github.com/JonMunkholm/fleetledger/internal/schema"
)

// maxBodyBytes caps registry documents; they are small JSON lists.
const maxBodyBytes = 1 << 20

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ============================================================================
// Aliases
// ============================================================================

type aliasesPayload struct {
	Aliases []schema.AliasEntry `json:"aliases"`
}

func (s *Server) handleGetAliases(w http.ResponseWriter, r *http.Request) {
	registries := s.service.LoadRegistries(r.Context())
	respondJSON(w, aliasesPayload{Aliases: registries.Aliases})
}

func (s *Server) handlePutAliases(w http.ResponseWriter, r *http.Request) {
	var payload aliasesPayload
	if err := s.decodeBody(w, r, &payload); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := core.ContextWithIPAddress(r.Context(), r.RemoteAddr)
	if err := s.service.SaveAliases(ctx, payload.Aliases); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]string{"status": "saved"})
}

// ============================================================================
// Exclusions
// ============================================================================

type exclusionsPayload struct {
	ExcludedColumns []string `json:"excluded_columns"`
}

func (s *Server) handleGetExclusions(w http.ResponseWriter, r *http.Request) {
	registries := s.service.LoadRegistries(r.Context())
	respondJSON(w, exclusionsPayload{ExcludedColumns: registries.ExclusionNames})
}

func (s *Server) handlePutExclusions(w http.ResponseWriter, r *http.Request) {
	var payload exclusionsPayload
	if err := s.decodeBody(w, r, &payload); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := core.ContextWithIPAddress(r.Context(), r.RemoteAddr)
	if err := s.service.SaveExclusions(ctx, payload.ExcludedColumns); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]string{"status": "saved"})
}

// ============================================================================
// Categories
// ============================================================================

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	registries := s.service.LoadRegistries(r.Context())
	respondJSON(w, registries.Categories)
}

func (s *Server) handlePutCategories(w http.ResponseWriter, r *http.Request) {
	var payload schema.CategoryConfig
	if err := s.decodeBody(w, r, &payload); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := core.ContextWithIPAddress(r.Context(), r.RemoteAddr)
	if err := s.service.SaveCategories(ctx, payload); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]string{"status": "saved"})
}

// ============================================================================
// Service-record edit
// ============================================================================

type serviceUpdatePayload struct {
	ComponentID string            `json:"component_id"`
	Values      map[string]string `json:"values"`
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var payload serviceUpdatePayload
	if err := s.decodeBody(w, r, &payload); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	update := core.ServiceUpdate{
		VehicleID:   vehicleID,
		ComponentID: payload.ComponentID,
		Values:      payload.Values,
	}
	if err := s.service.UpdateComponentService(r.Context(), update); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]string{"status": "saved"})
}

// ============================================================================
// Audit
// ============================================================================

func (s *Server) handleConfigAudit(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.Health.AuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, r, errInvalidLimit, http.StatusBadRequest)
			return
		}
		limit = n
	}

	changes, err := s.service.ConfigChanges(r.Context(), limit)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]any{"changes": changes})
}
