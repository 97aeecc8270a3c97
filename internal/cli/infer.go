package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

func newInferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer <shelves.json>",
		Short: "Rebuild generator parameters from a shelf dump",
		Long: `Reads a JSON array of shelves (as returned by the zone endpoints or the
generate command) and prints the generator parameters that would reproduce them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var shelves []models.Shelf
			if err := json.Unmarshal(data, &shelves); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			inf, ok := layout.InferParams(shelves, rulesFromContext(cmd.Context()))
			if !ok {
				return errors.New("no shelves to infer from")
			}
			logger := loggerFromContext(cmd.Context())
			for _, id := range inf.Ambiguous {
				logger.Warn("angle disagrees with bay parity", "shelf", id)
			}
			return writeJSON(cmd.OutOrStdout(), "", inf)
		},
	}
}
