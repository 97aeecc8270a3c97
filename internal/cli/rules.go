package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective layout rules",
		Long:  `Prints the layout rules after defaults and the --rules file are merged. The TOML output is a valid rules file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := rulesFromContext(cmd.Context())
			switch format {
			case "toml":
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(rules)
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), "", rules)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, json")
	return cmd
}
