package printer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// ErrNoShelves is returned when there is nothing to print.
var ErrNoShelves = errors.New("printer: zone has no shelves")

// LabelConfig holds configuration for PDF generation
type LabelConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
	// Prefix is prepended to the QR payload, e.g. "LOC:".
	Prefix string `json:"prefix"`
}

// DefaultLabelConfig is a 3 x 8 sheet of A4 labels.
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{
		Cols:       3,
		Rows:       8,
		MarginTop:  10,
		MarginLeft: 7,
		GapX:       2.5,
		GapY:       0,
		Prefix:     "LOC:",
	}
}

// LabelContent is the QR payload of one shelf: prefix, zone name and shelf code.
func LabelContent(cfg LabelConfig, zone models.Zone, shelf models.Shelf) string {
	return fmt.Sprintf("%s%s/%s", cfg.Prefix, zone.ZoneName, shelf.ShelfCode)
}

// GenerateShelfLabelsPDF creates an A4 sheet with one QR label per shelf of a
// zone, ordered by aisle, bay and level.
func GenerateShelfLabelsPDF(zone models.Zone, shelves []models.Shelf, cfg LabelConfig) ([]byte, error) {
	if len(shelves) == 0 {
		return nil, ErrNoShelves
	}
	def := DefaultLabelConfig()
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		cfg.Cols, cfg.Rows = def.Cols, def.Rows
	}

	sorted := append([]models.Shelf(nil), shelves...)
	layout.SortShelves(sorted)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("Shelf labels %s", zone.ZoneName), true)
	pdf.SetFont("Arial", "B", 10)

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY
	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)
	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}

	for i, shelf := range sorted {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		// Top-left of the label
		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(LabelContent(cfg, zone, shelf), qrcode.Low, 256)
		if err != nil {
			return nil, fmt.Errorf("qr for %s: %w", shelf.ShelfCode, err)
		}
		imgName := fmt.Sprintf("qr_%d", i)
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR on the left, text on the right
		qrSize := labelH * 0.8
		if qrSize > labelW/2 {
			qrSize = labelW / 2
		}
		pdf.ImageOptions(imgName, x+1, y+(labelH-qrSize)/2, qrSize, qrSize, false, imgOptions, 0, "")

		textX := x + qrSize + 3
		textW := labelW - qrSize - 4
		pdf.SetXY(textX, y+labelH/2-6)
		pdf.SetFontSize(12)
		pdf.CellFormat(textW, 6, shelf.ShelfCode, "", 2, "L", false, 0, "")
		pdf.SetX(textX)
		pdf.SetFontSize(7)
		pdf.CellFormat(textW, 4, zone.ZoneName, "", 2, "L", false, 0, "")
		pdf.SetX(textX)
		pdf.CellFormat(textW, 4, string(shelf.ShelfType), "", 0, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
