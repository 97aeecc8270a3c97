package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
)

// DXF layer names.
const (
	LayerFloor     = "FLOOR"
	LayerZones     = "ZONES"
	LayerShelves   = "SHELVES"
	LayerObstacles = "OBSTACLES"
	LayerLanes     = "LANES"
)

// WriteFloorDXF draws a floor plan as outlines on one layer per kind of
// object and saves it to path. The floor y axis points away from the
// viewer, so it is mirrored to the CAD y axis. Stacked shelf levels share a
// footprint and are drawn once.
func WriteFloorDXF(path string, p layout.Plan) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	layers := []struct {
		name string
		cl   color.ColorNumber
		lt   *table.LineType
	}{
		{LayerFloor, dxf.DefaultColor, dxf.DefaultLineType},
		{LayerZones, color.Blue, dxf.DefaultLineType},
		{LayerShelves, color.Green, dxf.DefaultLineType},
		{LayerObstacles, color.Red, dxf.DefaultLineType},
		{LayerLanes, color.Yellow, table.LT_HIDDEN},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, l.lt, false); err != nil {
			return fmt.Errorf("layer %s: %w", l.name, err)
		}
	}

	if err := outline(d, LayerFloor, p.Bounds()); err != nil {
		return err
	}
	for _, z := range p.Zones() {
		if err := outline(d, LayerZones, layout.ZoneBox(z)); err != nil {
			return err
		}
	}
	drawn := make(map[layout.Box]bool)
	for _, s := range p.Shelves() {
		fp := layout.ShelfBox(s).Footprint()
		if drawn[fp] {
			continue
		}
		drawn[fp] = true
		if err := outline(d, LayerShelves, fp); err != nil {
			return err
		}
	}
	for _, a := range p.Areas() {
		layer := LayerObstacles
		if a.IsPassable {
			layer = LayerLanes
		}
		if err := outline(d, layer, layout.AreaBox(a, 0).Footprint()); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

func outline(d *drawing.Drawing, layer string, b layout.Box) error {
	if err := d.ChangeLayer(layer); err != nil {
		return err
	}
	x0, y0 := b.X, -b.Y
	x1, y1 := b.Right(), -b.Bottom()
	edges := [][4]float64{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return err
		}
	}
	return nil
}
