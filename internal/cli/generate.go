package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Haricane11/OptiWareUi-sub000/internal/export"
	"github.com/Haricane11/OptiWareUi-sub000/internal/fixture"
	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
	"github.com/Haricane11/OptiWareUi-sub000/internal/store"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
	formatDXF  = "dxf"
)

type generateOpts struct {
	zone   string
	format string
	output string
}

// zoneReport is the JSON output of one generated zone.
type zoneReport struct {
	Zone string `json:"zone"`
	layout.Result
	Produced int `json:"produced"`
}

func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <fixture.toml>",
		Short: "Fill fixture zones with generated racks",
		Long: `Runs the rack generator for every zone of the fixture that has a [zones.generator]
block, or only for the zone named by --zone.

Formats:
  json  generation results per zone (default, stdout unless -o)
  xlsx  shelf schedule of a single zone
  dxf   the whole floor plan (requires -o)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.zone, "zone", "", "generate only the named zone")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json, xlsx, dxf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	return cmd
}

func runGenerate(ctx context.Context, path string, opts generateOpts, out io.Writer) error {
	logger := loggerFromContext(ctx)
	rules := rulesFromContext(ctx)

	switch opts.format {
	case formatJSON, formatXLSX:
	case formatDXF:
		if opts.output == "" {
			return errors.New("dxf output needs --output")
		}
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	fx, err := fixture.Load(path)
	if err != nil {
		return err
	}
	built := fx.Build(rules)
	snap := store.FromFloor(built.Warehouse, built.Floor, rules)

	prog := newProgress(logger)
	var (
		reports   []zoneReport
		generated []models.Zone
	)
	for _, zone := range built.Floor.Zones {
		if opts.zone != "" && zone.ZoneName != opts.zone {
			continue
		}
		params, ok := built.Generators[zone.ID]
		if !ok {
			logger.Debug("zone has no generator", "zone", zone.ZoneName)
			continue
		}

		res, err := layout.GenerateForZone(snap, zone.ID, params, rules)
		if err != nil {
			return err
		}
		for i := range res.Shelves {
			res.Shelves[i].ID = uuid.New().String()
		}
		if snap, err = snap.WithZoneShelves(zone.ID, res.Shelves); err != nil {
			return err
		}
		if !res.Complete() {
			logger.Warnf("⚠️ Zone %q: %d of %d shelves placed", zone.ZoneName, res.Produced(), res.Requested)
		}
		reports = append(reports, zoneReport{Zone: zone.ZoneName, Result: res, Produced: res.Produced()})
		generated = append(generated, zone)
	}

	if opts.zone != "" && len(generated) == 0 {
		if _, ok := built.ZoneByName(opts.zone); !ok {
			return fmt.Errorf("zone %q not found in %s", opts.zone, path)
		}
		return fmt.Errorf("zone %q has no generator block", opts.zone)
	}
	prog.done(fmt.Sprintf("Generated %d zones", len(generated)))

	switch opts.format {
	case formatXLSX:
		if len(generated) != 1 {
			return fmt.Errorf("xlsx output covers one zone, %d generated; use --zone", len(generated))
		}
		zone := generated[0]
		f, err := export.ShelfSchedule(zone, snap.ShelvesInZone(zone.ID))
		if err != nil {
			return err
		}
		defer f.Close()
		if opts.output != "" {
			return f.SaveAs(opts.output)
		}
		return f.Write(out)
	case formatDXF:
		if err := export.WriteFloorDXF(opts.output, snap); err != nil {
			return err
		}
		logger.Infof("📐 Floor plan written to %s", opts.output)
		return nil
	default:
		return writeJSON(out, opts.output, reports)
	}
}

// writeJSON writes v indented to path, or to out when path is empty.
func writeJSON(out io.Writer, path string, v interface{}) error {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
