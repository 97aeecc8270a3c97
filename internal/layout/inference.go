package layout

import (
	"math"
	"sort"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// OrientationSource records how shelves were split into top and bottom rows.
type OrientationSource string

const (
	OrientationFromAngle  OrientationSource = "angle"
	OrientationFromParity OrientationSource = "parity"
	OrientationMixed      OrientationSource = "mixed"
)

// Inference is a best-effort reconstruction of the generator parameters that
// produced a zone's shelves.
type Inference struct {
	Params GeneratorParams `json:"params"`
	// GapMeasured is false when AisleGap is the shelf-type fallback.
	GapMeasured       bool              `json:"gap_measured"`
	OrientationSource OrientationSource `json:"orientation_source,omitempty"`
	// Ambiguous lists shelves whose explicit angle disagrees with the row their
	// bay number's parity implies. The angle wins.
	Ambiguous []string `json:"ambiguous,omitempty"`
}

type shelfIndex struct {
	shelf             models.Shelf
	aisle, bay, level int
}

// InferParams rebuilds generator parameters from an existing shelf set so a
// zone can be re-edited without losing its layout. Bay sizes come from one
// representative shelf; uniform sizing is assumed. ok is false for an empty set.
func InferParams(shelves []models.Shelf, rules Rules) (Inference, bool) {
	if len(shelves) == 0 {
		return Inference{}, false
	}
	rules = rules.Normalize()

	indexed := make([]shelfIndex, 0, len(shelves))
	for _, s := range shelves {
		indexed = append(indexed, indexShelf(s))
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		a, b := indexed[i], indexed[j]
		if a.aisle != b.aisle {
			return a.aisle < b.aisle
		}
		if a.bay != b.bay {
			return a.bay < b.bay
		}
		return a.level < b.level
	})

	aisles := make(map[int][]shelfIndex)
	maxBay, maxLevel := 0, 0
	for _, si := range indexed {
		aisles[si.aisle] = append(aisles[si.aisle], si)
		if si.bay > maxBay {
			maxBay = si.bay
		}
		if si.level > maxLevel {
			maxLevel = si.level
		}
	}

	rep := indexed[0]
	startAisle := rep.aisle
	inf := Inference{
		Params: GeneratorParams{
			StartAisle:   startAisle,
			NumAisles:    len(aisles),
			BaysPerAisle: maxBay,
			LevelsPerBay: maxLevel,
			BayWidth:     rep.shelf.Width,
			BayDepth:     rep.shelf.Depth,
			LevelHeight:  rep.shelf.Height,
			ShelfType:    rep.shelf.ShelfType,
			MaxWeight:    rep.shelf.MaxWeight,
		},
	}

	gap, measured := inferGap(aisles[startAisle], rep.shelf.Depth, &inf)
	if !measured {
		gap = rules.FallbackGap(rep.shelf.ShelfType)
	}
	inf.Params.AisleGap = gap
	inf.GapMeasured = measured
	return inf, true
}

// inferGap measures the aisle gap of one aisle from the front edges of its two
// rows.
func inferGap(aisle []shelfIndex, bayDepth float64, inf *Inference) (float64, bool) {
	topMinY, bottomMinY := math.Inf(1), math.Inf(1)
	usedAngle, usedParity := false, false

	for _, si := range aisle {
		byParity := si.bay%2 == 0
		bottom := byParity
		if si.shelf.OrientationAngle != nil {
			usedAngle = true
			bottom = inBottomRow(*si.shelf.OrientationAngle)
			if si.bay > 0 && bottom != byParity {
				inf.Ambiguous = append(inf.Ambiguous, si.shelf.ShelfCode)
			}
		} else {
			usedParity = true
		}

		if bottom {
			bottomMinY = math.Min(bottomMinY, si.shelf.LocationY)
		} else {
			topMinY = math.Min(topMinY, si.shelf.LocationY)
		}
	}

	switch {
	case usedAngle && usedParity:
		inf.OrientationSource = OrientationMixed
	case usedAngle:
		inf.OrientationSource = OrientationFromAngle
	case usedParity:
		inf.OrientationSource = OrientationFromParity
	}

	if math.IsInf(topMinY, 1) || math.IsInf(bottomMinY, 1) {
		return 0, false
	}
	gap := roundDM((bottomMinY - topMinY) - bayDepth)
	if gap < 0 {
		return 0, false
	}
	return gap, true
}

// inBottomRow reports whether an angle turns a shelf to face towards the front
// of the floor, which is how the bottom row of an aisle is drawn.
func inBottomRow(deg float64) bool {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a >= 90 && a < 270
}

// indexShelf reads aisle, bay and level from the record, falling back to the
// shelf code for any that are unset.
func indexShelf(s models.Shelf) shelfIndex {
	si := shelfIndex{shelf: s, aisle: s.AisleNum, bay: s.BayNum, level: s.LevelNum}
	if si.aisle > 0 && si.bay > 0 && si.level > 0 {
		return si
	}
	a, b, l, err := ParseShelfCode(s.ShelfCode)
	if err != nil {
		return si
	}
	if si.aisle == 0 {
		si.aisle = a
	}
	if si.bay == 0 {
		si.bay = b
	}
	if si.level == 0 {
		si.level = l
	}
	return si
}
