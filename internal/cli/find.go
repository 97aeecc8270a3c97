package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Haricane11/OptiWareUi-sub000/internal/fixture"
	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/store"
)

func newFindCmd() *cobra.Command {
	var (
		width, depth float64
		kind         string
	)

	cmd := &cobra.Command{
		Use:   "find <fixture.toml>",
		Short: "Find a free position on a fixture floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := layout.ParseItemKind(kind)
			if err != nil {
				return err
			}
			if width <= 0 || depth <= 0 {
				return fmt.Errorf("width and depth must be positive")
			}
			rules := rulesFromContext(cmd.Context())
			fx, err := fixture.Load(args[0])
			if err != nil {
				return err
			}
			built := fx.Build(rules)
			snap := store.FromFloor(built.Warehouse, built.Floor, rules)

			p := layout.FindPosition(snap, width, depth, k, rules)
			if !p.Found {
				loggerFromContext(cmd.Context()).Warn("⚠️ No free position, returning origin", "x", p.X, "y", p.Y)
			}
			return writeJSON(cmd.OutOrStdout(), "", p)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 1, "footprint width in metres")
	cmd.Flags().Float64Var(&depth, "depth", 1, "footprint depth in metres")
	cmd.Flags().StringVar(&kind, "kind", string(layout.KindShelf), "item kind: shelf or zone")
	return cmd
}
