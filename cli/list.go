package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the enumerated types and whether each can be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, closer, err := a.load(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()

			names, err := schemagen.Enumerate(cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, n := range names {
				status := "ok"
				if _, err := a.reg.LoadType(n); err != nil {
					status = "missing"
				}
				fmt.Fprintf(tw, "%s\t%s\n", n, status)
			}
			return tw.Flush()
		},
	}
}
