package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Haricane11/OptiWareUi-sub000/internal/services/floorplan"
)

type resizeAreaRequest struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// updateArea is a partial update; omitted fields keep their value. 409 when
// making the area an obstacle would overlap a zone.
func (r *Router) updateArea(w http.ResponseWriter, req *http.Request) {
	var patch floorplan.AreaPatch
	if !decode(w, req, &patch) {
		return
	}
	change, err := r.svc.UpdateArea(req.Context(), mux.Vars(req)["id"], patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondDecision(w, change.Decision, change)
}

func (r *Router) deleteArea(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.DeleteArea(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) moveArea(w http.ResponseWriter, req *http.Request) {
	var body moveRequest
	if !decode(w, req, &body) {
		return
	}
	change, err := r.svc.MoveArea(req.Context(), mux.Vars(req)["id"], body.X, body.Y)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondDecision(w, change.Decision, change)
}

func (r *Router) resizeArea(w http.ResponseWriter, req *http.Request) {
	var body resizeAreaRequest
	if !decode(w, req, &body) {
		return
	}
	change, err := r.svc.ResizeArea(req.Context(), mux.Vars(req)["id"], body.Width, body.Depth)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondDecision(w, change.Decision, change)
}
