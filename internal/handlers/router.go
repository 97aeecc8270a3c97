// Package handlers exposes the floor-plan editor over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/Haricane11/OptiWareUi-sub000/internal/buildinfo"
	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/middleware"
	"github.com/Haricane11/OptiWareUi-sub000/internal/repository"
	"github.com/Haricane11/OptiWareUi-sub000/internal/services/floorplan"
	"github.com/Haricane11/OptiWareUi-sub000/internal/store"
	"github.com/Haricane11/OptiWareUi-sub000/internal/websocket"
)

// Router wraps the mux router and the editing service
type Router struct {
	*mux.Router
	svc *floorplan.Service
	hub *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(svc *floorplan.Service, hub *websocket.Hub) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		svc:    svc,
		hub:    hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Live floor events
	if hub != nil {
		r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWs(hub, w, req)
		})
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recover(log.Default()), middleware.RequestLogger(log.Default()))
	api.HandleFunc("/status", r.getStatus).Methods("GET")
	api.HandleFunc("/warehouses", r.listWarehouses).Methods("GET")

	// Floor routes
	floors := api.PathPrefix("/floors/{id}").Subrouter()
	floors.HandleFunc("", r.getFloor).Methods("GET")
	floors.HandleFunc("/find-position", r.findPosition).Methods("POST")
	floors.HandleFunc("/zones", r.createZone).Methods("POST")
	floors.HandleFunc("/areas", r.createArea).Methods("POST")
	floors.HandleFunc("/plan.dxf", r.floorDXF).Methods("GET")

	// Zone routes
	zones := api.PathPrefix("/zones/{id}").Subrouter()
	zones.HandleFunc("", r.updateZone).Methods("PUT")
	zones.HandleFunc("", r.deleteZone).Methods("DELETE")
	zones.HandleFunc("/move", r.moveZone).Methods("POST")
	zones.HandleFunc("/resize", r.resizeZone).Methods("POST")
	zones.HandleFunc("/generate", r.generateZone).Methods("POST")
	zones.HandleFunc("/generator-params", r.generatorParams).Methods("GET")
	zones.HandleFunc("/labels.pdf", r.zoneLabels).Methods("GET")
	zones.HandleFunc("/schedule.xlsx", r.zoneSchedule).Methods("GET")

	// Area routes
	areas := api.PathPrefix("/areas/{id}").Subrouter()
	areas.HandleFunc("", r.updateArea).Methods("PUT")
	areas.HandleFunc("", r.deleteArea).Methods("DELETE")
	areas.HandleFunc("/move", r.moveArea).Methods("POST")
	areas.HandleFunc("/resize", r.resizeArea).Methods("POST")

	// Shelf routes
	shelves := api.PathPrefix("/shelves/{id}").Subrouter()
	shelves.HandleFunc("", r.updateShelf).Methods("PUT")
	shelves.HandleFunc("", r.deleteShelf).Methods("DELETE")
	shelves.HandleFunc("/move", r.moveShelf).Methods("POST")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	status := map[string]interface{}{
		"status":      "running",
		"version":     buildinfo.Version,
		"build_time":  buildinfo.BuildTime,
		"commit_hash": buildinfo.CommitHash,
		"started_at":  buildinfo.StartTime,
		"rules":       r.svc.Rules(),
	}
	if r.hub != nil {
		status["ws_clients"] = r.hub.ClientCount("")
	}
	respondJSON(w, http.StatusOK, status)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps an editing-service error to a status code.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, layout.ErrNotFound), errors.Is(err, store.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, floorplan.ErrDuplicateCode):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, floorplan.ErrPersist):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		log.Errorf("❌ Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal error")
	}
}

// respondDecision answers 200 for an accepted edit and 409 for a rejected one.
func respondDecision(w http.ResponseWriter, d layout.Decision, body interface{}) {
	status := http.StatusOK
	if !d.Accepted {
		status = http.StatusConflict
	}
	respondJSON(w, status, body)
}

func decode(w http.ResponseWriter, req *http.Request, v interface{}) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return false
	}
	return true
}
