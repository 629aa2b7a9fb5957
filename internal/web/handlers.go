package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/fleetledger/internal/core"
)

// handleHealthz is the liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// handleSchema returns the assembled category tree.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	tree, err := s.service.AssembleSchema(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]any{"categories": tree})
}

// handleListVehicles returns the fleet roster.
func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.service.ListVehicles(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]any{"vehicles": vehicles})
}

// handleVehicleHealth computes one vehicle's health report. The preset
// query parameter picks the threshold preset; empty means the default.
func (s *Server) handleVehicleHealth(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	report, err := s.service.VehicleHealth(r.Context(), vehicleID, r.URL.Query().Get("preset"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, report)
}

// handleFleetHealth computes health reports for every vehicle.
func (s *Server) handleFleetHealth(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.FleetHealth(r.Context(), r.URL.Query().Get("preset"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, map[string]any{"vehicles": reports})
}

// handleExportHealth streams the fleet health table as a CSV download.
func (s *Server) handleExportHealth(w http.ResponseWriter, r *http.Request) {
	preset := r.URL.Query().Get("preset")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+core.ExportFileName(preset)+`"`)

	if err := s.service.ExportFleetHealth(r.Context(), preset, w); err != nil {
		// Headers may already be out; the mapped error still helps
		// clients that buffer the response before saving.
		s.respondServiceError(w, r, err)
	}
}
