package printer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

func TestGenerateShelfLabelsPDF(t *testing.T) {
	zone := models.Zone{ID: "z1", ZoneName: "Bulk A"}
	var shelves []models.Shelf
	for bay := 1; bay <= 30; bay++ {
		shelves = append(shelves, models.Shelf{
			ShelfCode: fmt.Sprintf("A1-B%d-L1", bay),
			AisleNum:  1,
			BayNum:    bay,
			LevelNum:  1,
			ShelfType: models.ShelfTypeStandardRack,
		})
	}

	pdf, err := GenerateShelfLabelsPDF(zone, shelves, DefaultLabelConfig())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	// 30 labels on a 24-label sheet need two pages
	pages := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	assert.Equal(t, 2, pages)
}

func TestGenerateShelfLabelsPDFEmpty(t *testing.T) {
	_, err := GenerateShelfLabelsPDF(models.Zone{}, nil, LabelConfig{})
	assert.ErrorIs(t, err, ErrNoShelves)
}

func TestLabelContent(t *testing.T) {
	cfg := DefaultLabelConfig()
	got := LabelContent(cfg, models.Zone{ZoneName: "Cold"}, models.Shelf{ShelfCode: "A2-B3-L1"})
	assert.Equal(t, "LOC:Cold/A2-B3-L1", got)
}
