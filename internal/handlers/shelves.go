package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Haricane11/OptiWareUi-sub000/internal/services/floorplan"
)

// updateShelf is a partial update; omitted fields keep their value
func (r *Router) updateShelf(w http.ResponseWriter, req *http.Request) {
	var patch floorplan.ShelfPatch
	if !decode(w, req, &patch) {
		return
	}
	if patch.ShelfType != nil && !patch.ShelfType.Valid() {
		respondError(w, http.StatusBadRequest, "unknown shelf type")
		return
	}
	updated, err := r.svc.UpdateShelf(req.Context(), mux.Vars(req)["id"], patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// moveShelf drops a shelf at the snapped position; shelf moves are not rejected
func (r *Router) moveShelf(w http.ResponseWriter, req *http.Request) {
	var body moveRequest
	if !decode(w, req, &body) {
		return
	}
	shelf, err := r.svc.MoveShelf(req.Context(), mux.Vars(req)["id"], body.X, body.Y)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shelf)
}

func (r *Router) deleteShelf(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.DeleteShelf(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
