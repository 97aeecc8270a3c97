package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// listWarehouses returns every warehouse with floors, zones, shelves and areas
func (r *Router) listWarehouses(w http.ResponseWriter, req *http.Request) {
	warehouses, err := r.svc.Hierarchy(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, warehouses)
}

// getFloor returns the live state of one floor
func (r *Router) getFloor(w http.ResponseWriter, req *http.Request) {
	floor, err := r.svc.Floor(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, floor)
}

type findPositionRequest struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
	Kind  string  `json:"kind"`
}

// findPosition proposes a free spot for a new shelf or zone
func (r *Router) findPosition(w http.ResponseWriter, req *http.Request) {
	var body findPositionRequest
	if !decode(w, req, &body) {
		return
	}
	if body.Kind == "" {
		body.Kind = string(layout.KindShelf)
	}
	kind, err := layout.ParseItemKind(body.Kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Width <= 0 || body.Depth <= 0 {
		respondError(w, http.StatusBadRequest, "width and depth must be positive")
		return
	}
	placement, err := r.svc.FindPosition(req.Context(), mux.Vars(req)["id"], body.Width, body.Depth, kind)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, placement)
}

type createZoneRequest struct {
	models.Zone
	AutoPlace bool `json:"auto_place"`
}

// createZone adds a zone, placing it automatically when asked
func (r *Router) createZone(w http.ResponseWriter, req *http.Request) {
	var body createZoneRequest
	if !decode(w, req, &body) {
		return
	}
	if body.Width <= 0 || body.Depth <= 0 {
		respondError(w, http.StatusBadRequest, "width and depth must be positive")
		return
	}
	zone, d, err := r.svc.CreateZone(req.Context(), mux.Vars(req)["id"], body.Zone, body.AutoPlace)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !d.Accepted {
		respondJSON(w, http.StatusConflict, map[string]interface{}{"decision": d, "zone": zone})
		return
	}
	respondJSON(w, http.StatusCreated, zone)
}

// createArea adds a lane or obstacle area
func (r *Router) createArea(w http.ResponseWriter, req *http.Request) {
	var area models.Area
	if !decode(w, req, &area) {
		return
	}
	if area.Width <= 0 || area.Depth <= 0 {
		respondError(w, http.StatusBadRequest, "width and depth must be positive")
		return
	}
	change, err := r.svc.CreateArea(req.Context(), mux.Vars(req)["id"], area)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !change.Accepted {
		respondJSON(w, http.StatusConflict, change)
		return
	}
	respondJSON(w, http.StatusCreated, change.Area)
}
