package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
	"github.com/Haricane11/OptiWareUi-sub000/internal/services/floorplan"
)

// moveRequest is either a final position or the pointer offsets of a drag.
type moveRequest struct {
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Samples []layout.Point `json:"samples,omitempty"`
}

type resizeZoneRequest struct {
	Samples []floorplan.ResizeSample `json:"samples"`
}

type generateResponse struct {
	layout.Result
	Produced int `json:"produced"`
}

type generatorParamsResponse struct {
	layout.Inference
	Inferred bool `json:"inferred"`
}

// updateZone is a partial update; omitted fields keep their value
func (r *Router) updateZone(w http.ResponseWriter, req *http.Request) {
	var patch floorplan.ZonePatch
	if !decode(w, req, &patch) {
		return
	}
	updated, err := r.svc.UpdateZone(req.Context(), mux.Vars(req)["id"], patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (r *Router) deleteZone(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.DeleteZone(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveZone moves a zone and its shelves; 409 when the move is rejected
func (r *Router) moveZone(w http.ResponseWriter, req *http.Request) {
	var body moveRequest
	if !decode(w, req, &body) {
		return
	}
	id := mux.Vars(req)["id"]

	var (
		move layout.ZoneMove
		err  error
	)
	if len(body.Samples) > 0 {
		move, err = r.svc.DragZone(req.Context(), id, body.Samples)
	} else {
		move, err = r.svc.MoveZone(req.Context(), id, body.X, body.Y)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondDecision(w, move.Decision, move)
}

// resizeZone replays resize samples; 409 when the last sample was rejected
func (r *Router) resizeZone(w http.ResponseWriter, req *http.Request) {
	var body resizeZoneRequest
	if !decode(w, req, &body) {
		return
	}
	out, err := r.svc.ResizeZone(req.Context(), mux.Vars(req)["id"], body.Samples)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondDecision(w, out.Decision, out)
}

// generateZone bulk-generates racks, replacing the zone's shelves
func (r *Router) generateZone(w http.ResponseWriter, req *http.Request) {
	var params layout.GeneratorParams
	if !decode(w, req, &params) {
		return
	}
	if params.ShelfType == "" {
		params.ShelfType = models.ShelfTypeStandardRack
	}
	if !params.ShelfType.Valid() {
		respondError(w, http.StatusBadRequest, "unknown shelf type")
		return
	}
	if params.StartAisle == 0 {
		params.StartAisle = 1
	}
	res, err := r.svc.GenerateZone(req.Context(), mux.Vars(req)["id"], params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if res.Shelves == nil {
		res.Shelves = []models.Shelf{}
	}
	if res.Skipped == nil {
		res.Skipped = []layout.SkippedSlot{}
	}
	respondJSON(w, http.StatusOK, generateResponse{Result: res, Produced: res.Produced()})
}

// generatorParams infers the parameters of a zone's existing shelves
func (r *Router) generatorParams(w http.ResponseWriter, req *http.Request) {
	inf, ok, err := r.svc.InferZoneParams(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, generatorParamsResponse{Inference: inf, Inferred: ok})
}
