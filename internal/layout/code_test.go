package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

func TestShelfCode(t *testing.T) {
	code := FormatShelfCode(2, 11, 3)
	assert.Equal(t, "A2-B11-L3", code)

	a, b, l, err := ParseShelfCode(code)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 11, 3}, []int{a, b, l})

	a, b, l, err = ParseShelfCode(" a1-b2-l3 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{a, b, l})

	for _, bad := range []string{"A1-B2", "X1-B2-L3", "A1-Bx-L3", ""} {
		_, _, _, err := ParseShelfCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestSortShelves(t *testing.T) {
	shelves := []models.Shelf{
		{ShelfCode: "A2-B1-L1", AisleNum: 2, BayNum: 1, LevelNum: 1},
		{ShelfCode: "A1-B2-L1", AisleNum: 1, BayNum: 2, LevelNum: 1},
		{ShelfCode: "A1-B1-L2", AisleNum: 1, BayNum: 1, LevelNum: 2},
		{ShelfCode: "A1-B1-L1", AisleNum: 1, BayNum: 1, LevelNum: 1},
	}
	SortShelves(shelves)

	var codes []string
	for _, s := range shelves {
		codes = append(codes, s.ShelfCode)
	}
	assert.Equal(t, []string{"A1-B1-L1", "A1-B1-L2", "A1-B2-L1", "A2-B1-L1"}, codes)
}
