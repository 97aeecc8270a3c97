package layout

import (
	"fmt"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// GeneratorParams are the compact grid parameters a zone's racking is built from.
type GeneratorParams struct {
	StartAisle   int              `json:"start_aisle"`
	NumAisles    int              `json:"num_aisles"`
	BaysPerAisle int              `json:"bays_per_aisle"`
	LevelsPerBay int              `json:"levels_per_bay"`
	BayWidth     float64          `json:"bay_width"`
	BayDepth     float64          `json:"bay_depth"`
	LevelHeight  float64          `json:"level_height"`
	AisleGap     float64          `json:"aisle_gap"`
	ShelfType    models.ShelfType `json:"shelf_type"`
	MaxWeight    float64          `json:"max_weight,omitempty"`
}

// Requested is the number of shelves the parameters ask for.
func (p GeneratorParams) Requested() int {
	if p.NumAisles <= 0 || p.BaysPerAisle <= 0 || p.LevelsPerBay <= 0 {
		return 0
	}
	return p.NumAisles * p.BaysPerAisle * p.LevelsPerBay
}

// SkipReason says why a slot produced no shelf.
type SkipReason string

const (
	SkipOutOfBounds   SkipReason = "out_of_bounds"
	SkipObstacle      SkipReason = "obstacle"
	SkipStagedOverlap SkipReason = "staged_overlap"
)

// SkippedSlot is a slot the generator could not fill.
type SkippedSlot struct {
	Code       string     `json:"code"`
	Aisle      int        `json:"aisle"`
	Bay        int        `json:"bay"`
	Level      int        `json:"level"`
	Reason     SkipReason `json:"reason"`
	ObstacleID string     `json:"obstacle_id,omitempty"`
}

// Result of one generator pass. Skipped slots are not an error: compare
// Produced with Requested to detect a partial layout.
type Result struct {
	ZoneID    string         `json:"zone_id"`
	Shelves   []models.Shelf `json:"shelves"`
	Requested int            `json:"requested"`
	Skipped   []SkippedSlot  `json:"skipped"`
}

// Produced is the number of generated shelves.
func (r Result) Produced() int { return len(r.Shelves) }

// Complete reports whether every requested slot was filled.
func (r Result) Complete() bool { return r.Produced() == r.Requested }

// Target is where a generator pass places shelves. Bounds.X/Y is the anchor;
// Bounds.Height, when set, caps the top of the highest level.
type Target struct {
	ZoneID string
	Bounds Box
}

// Generate lays out back-to-back rows of bays. Each aisle is a top row holding
// the odd bay numbers and a bottom row holding the even ones, separated by the
// aisle gap and facing into it. Slots that leave the target, hit an obstacle or
// hit a shelf staged earlier in the same pass are skipped.
func Generate(target Target, obstacles []Obstacle, params GeneratorParams, rules Rules) Result {
	rules = rules.Normalize()
	res := Result{ZoneID: target.ZoneID, Requested: params.Requested()}
	if res.Requested == 0 {
		return res
	}

	g := &generation{target: target.Bounds, obstacles: obstacles}
	left := target.Bounds.X
	cursor := target.Bounds.Y

	for a := 0; a < params.NumAisles; a++ {
		aisle := params.StartAisle + a
		topRowY := cursor
		bottomRowY := topRowY + params.BayDepth + params.AisleGap

		for bay := 1; bay <= params.BaysPerAisle; bay++ {
			rowY, slot, angle := topRowY, (bay-1)/2, 0.0
			if bay%2 == 0 {
				rowY, slot, angle = bottomRowY, bay/2-1, 180.0
			}
			bayX := left + float64(slot)*params.BayWidth

			for l := 0; l < params.LevelsPerBay; l++ {
				level := l + 1
				code := FormatShelfCode(aisle, bay, level)
				box := Box{
					X:      roundMM(bayX),
					Y:      roundMM(rowY),
					Z:      roundMM(float64(l) * params.LevelHeight),
					Width:  params.BayWidth,
					Depth:  params.BayDepth,
					Height: params.LevelHeight,
				}

				if reason, obstacleID := g.check(box); reason != "" {
					res.Skipped = append(res.Skipped, SkippedSlot{
						Code: code, Aisle: aisle, Bay: bay, Level: level,
						Reason: reason, ObstacleID: obstacleID,
					})
					continue
				}
				g.staged = append(g.staged, box)

				res.Shelves = append(res.Shelves, models.Shelf{
					ZoneID:           target.ZoneID,
					ShelfCode:        code,
					ShelfType:        params.ShelfType,
					AisleNum:         aisle,
					BayNum:           bay,
					LevelNum:         level,
					LocationX:        box.X,
					LocationY:        box.Y,
					LocationZ:        box.Z,
					Width:            box.Width,
					Height:           box.Height,
					Depth:            box.Depth,
					MaxWeight:        params.MaxWeight,
					OrientationAngle: models.Angle(angle),
					Status:           models.ShelfStatusActive,
				})
			}
		}
		cursor = bottomRowY + params.BayDepth + rules.BackToBackClearance
	}
	return res
}

// GenerateForZone runs Generate for an existing zone of the plan as a full
// replace: the zone's current shelves are not obstacles.
func GenerateForZone(p Plan, zoneID string, params GeneratorParams, rules Rules) (Result, error) {
	zone, ok := p.Zone(zoneID)
	if !ok {
		return Result{}, fmt.Errorf("zone %s: %w", zoneID, ErrNotFound)
	}
	bounds := ZoneBox(zone)
	bounds.Height = p.Bounds().Height
	return Generate(Target{ZoneID: zoneID, Bounds: bounds}, ZoneObstacles(p, zoneID, true), params, rules), nil
}

type generation struct {
	target    Box
	obstacles []Obstacle
	staged    []Box
}

func (g *generation) check(b Box) (SkipReason, string) {
	if b.Right() > g.target.Right()+epsilon || b.Bottom() > g.target.Bottom()+epsilon {
		return SkipOutOfBounds, ""
	}
	if g.target.Height > 0 && b.Top() > g.target.Top()+epsilon {
		return SkipOutOfBounds, ""
	}
	if o, hit := firstOverlap3D(b, g.obstacles); hit {
		return SkipObstacle, o.ID
	}
	for _, s := range g.staged {
		if Overlaps3D(b, s) {
			return SkipStagedOverlap, ""
		}
	}
	return "", ""
}
