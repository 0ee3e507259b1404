package cli

import (
	"github.com/mgijax/tabletools/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config FILE [tab|sh|csh]",
		Short: "Print a configuration file, resolved, in the given syntax",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(args[0])
			if err != nil {
				return err
			}
			format := config.FormatTab
			if len(args) == 2 {
				format = args[1]
			}
			return c.Write(a.env.Stdout, format)
		},
	}
}
