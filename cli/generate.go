package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
)

func (a *app) generateCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one JSON Schema file per enumerated type",
		Long: `Enumerate the exported types of the source tree and write
<output-root>/<output-subdirectory>/<Type>.json for each one that can be
loaded. A type that fails is logged and skipped; the rest of the batch
still runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, closer, err := a.load(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()

			rep, err := schemagen.Run(cfg, a.reg, schemagen.WithLogger(log))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d JSON schema files in %s\n", rep.Count(), cfg.OutputDirectory())
			if strict {
				return rep.Err()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any type fails")
	return cmd
}
