// Package cli is the schemagen command line. Host programs register their
// model types on a Registry and hand it to Execute; the stock binary in
// cmd/schemagen starts from an empty registry and relies on --plugin.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/reoring/schemagen"
	"github.com/reoring/schemagen/config"
	"github.com/reoring/schemagen/internal/logging"
)

type app struct {
	reg     *schemagen.Registry
	v       *viper.Viper
	cfgFile string
	plugins []string
}

// NewRootCommand builds the command tree around reg.
func NewRootCommand(reg *schemagen.Registry) *cobra.Command {
	if reg == nil {
		reg = schemagen.NewRegistry()
	}
	a := &app{reg: reg, v: config.NewViper()}

	root := &cobra.Command{
		Use:   "schemagen",
		Short: "Generate draft-04 JSON Schema files from Go types",
		Long: `schemagen scans a Go source tree for exported type declarations and
writes one JSON Schema (draft-04) file per type, named after the type.

Types are loaded from the registry compiled into the binary and from Go
plugins given with --plugin that export a SchemaTypes symbol.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range a.plugins {
				if err := LoadPlugin(p, a.reg); err != nil {
					return err
				}
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	pf.StringSliceVar(&a.plugins, "plugin", nil, "Go plugin exporting SchemaTypes (repeatable)")
	pf.String(config.KeySourceDirectory, ".", "Go source tree to scan")
	pf.String(config.KeyOutputRoot, ".", "base directory of the output tree")
	pf.String(config.KeyOutputSubdirectory, "json-schema", "subdirectory of output-root receiving the schemas")
	pf.StringSlice(config.KeyIncludePatterns, []string{"**"}, "glob patterns of source files to include")
	pf.StringSlice(config.KeyExcludePatterns, nil, "glob patterns of source files to exclude")
	pf.String(config.KeyMetadataFile, "", "YAML member table overriding struct tags")
	pf.Bool(config.KeyComments, false, "use Go doc comments as descriptions")
	pf.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")
	pf.String(config.KeyLogFile, "", "write logs to a rotating file instead of stderr")
	if err := bindFlags(a.v, pf); err != nil {
		panic(err)
	}

	root.AddCommand(a.generateCommand(), a.listCommand())
	return root
}

// bindFlags binds every config-key flag of fs to v. --config and --plugin
// are command-line only.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "plugin" {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			errs = append(errs, fmt.Errorf("bind flag --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Execute runs the command line against os.Args and returns the exit code.
func Execute(reg *schemagen.Registry) int {
	root := NewRootCommand(reg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

// load resolves the configuration and the logger for one command.
func (a *app) load(cmd *cobra.Command) (config.Config, *slog.Logger, io.Closer, error) {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, closer, nil
}
