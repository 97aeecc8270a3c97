package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Haricane11/OptiWareUi-sub000/internal/export"
	"github.com/Haricane11/OptiWareUi-sub000/internal/services/printer"
)

// zoneLabels renders the QR label sheet of a zone
func (r *Router) zoneLabels(w http.ResponseWriter, req *http.Request) {
	zone, shelves, err := r.svc.ZoneShelves(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	cfg := printer.DefaultLabelConfig()
	if v, err := strconv.Atoi(req.URL.Query().Get("cols")); err == nil && v > 0 {
		cfg.Cols = v
	}
	if v, err := strconv.Atoi(req.URL.Query().Get("rows")); err == nil && v > 0 {
		cfg.Rows = v
	}

	pdfBytes, err := printer.GenerateShelfLabelsPDF(zone, shelves, cfg)
	if errors.Is(err, printer.ErrNoShelves) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	// Set headers for download
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"labels_%s.pdf\"", zone.ID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

// zoneSchedule streams the shelf schedule workbook of a zone
func (r *Router) zoneSchedule(w http.ResponseWriter, req *http.Request) {
	zone, shelves, err := r.svc.ZoneShelves(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	f, err := export.ShelfSchedule(zone, shelves)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build schedule: %v", err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"schedule_%s.xlsx\"", zone.ID))
	f.Write(w)
}

// floorDXF renders the floor as a DXF drawing
func (r *Router) floorDXF(w http.ResponseWriter, req *http.Request) {
	floorID := mux.Vars(req)["id"]
	snap, err := r.svc.Snapshot(req.Context(), floorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	dir, err := os.MkdirTemp("", "floorplan-dxf-")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create temp dir")
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "plan.dxf")
	if err := export.WriteFloorDXF(path, snap); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to draw floor: %v", err))
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read drawing")
		return
	}

	w.Header().Set("Content-Type", "application/dxf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"floor_%s.dxf\"", floorID))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
