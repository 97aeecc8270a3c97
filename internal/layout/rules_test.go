package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

func TestRulesNormalize(t *testing.T) {
	r := Rules{GridStep: 0.25, FallbackAisleGaps: map[string]float64{"drive_in": 4.0}}.Normalize()
	def := DefaultRules()

	assert.Equal(t, 0.25, r.GridStep)
	assert.Equal(t, def.MaxSearchSteps, r.MaxSearchSteps)
	assert.Equal(t, def.WarehouseWidth, r.WarehouseWidth)
	assert.Equal(t, 4.0, r.FallbackGap(models.ShelfTypeDriveIn))
	assert.Equal(t, 1.2, r.FallbackGap(models.ShelfTypeBinShelving), "merged with defaults")
	assert.Equal(t, def.DefaultAisleGap, r.FallbackGap(models.ShelfType("mezzanine")))
	assert.Equal(t, 3.5, def.FallbackGap(models.ShelfTypeDriveIn), "defaults untouched")
}
