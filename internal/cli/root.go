package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Haricane11/OptiWareUi-sub000/internal/buildinfo"
	"github.com/Haricane11/OptiWareUi-sub000/internal/config"
	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
)

// Execute runs the floorplan CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var (
		verbose   bool
		rulesFile string
	)

	root := &cobra.Command{
		Use:          "floorplan",
		Short:        "Warehouse floor-plan layout tools",
		Long:         `floorplan generates rack layouts, searches free floor space and exports plans from TOML floor fixtures.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(logOut, level)
			ctx := withLogger(cmd.Context(), logger)

			rules, err := config.LoadRules(rulesFile)
			if err != nil {
				return err
			}
			logger.Debug("rules loaded", "grid_step", rules.GridStep, "clearance", rules.Clearance)
			cmd.SetContext(withRules(ctx, rules))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("floorplan %s\n", buildinfo.String()))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&rulesFile, "rules", os.Getenv("LAYOUT_RULES_FILE"), "layout rules TOML file")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInferCmd())
	root.AddCommand(newFindCmd())
	root.AddCommand(newRulesCmd())
	return root
}

const rulesKey ctxKey = 1

func withRules(ctx context.Context, r layout.Rules) context.Context {
	return context.WithValue(ctx, rulesKey, r)
}

func rulesFromContext(ctx context.Context) layout.Rules {
	if r, ok := ctx.Value(rulesKey).(layout.Rules); ok {
		return r
	}
	return layout.DefaultRules()
}
