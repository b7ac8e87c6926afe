package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/config"
	"github.com/wesleyorama2/harstat/internal/logging"
	"github.com/wesleyorama2/harstat/internal/output"
	"github.com/wesleyorama2/harstat/internal/store"
)

var version = "0.1.0"

// errNoSource is returned by commands that read results when no source
// was configured.
var errNoSource = errors.New("no result source configured: set --source, HARSTAT_SOURCE or source in the config file")

// app carries the state shared by every command of one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings *config.Settings
	log      *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:     "harstat",
		Short:   "Compare and chart stored page performance results",
		Version: version,
		Long: `harstat reads stored page performance results (load times, sizes,
request counts, page speed scores) and summarises them.

Compare several labels or time windows side by side:
  harstat compare --source results.db --step homepage --step checkout --agg Average --agg "95th Percentile"

Chart the distribution of every metric of one label:
  harstat histogram homepage --source results.ndjson --metric full_load_time`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "harstat.yaml", "config file")
	flags.StringP("source", "s", "", "results file (.json, .ndjson) or SQLite database (.db, .sqlite)")
	flags.String("source-type", "", "source kind: file or sqlite (default: from the extension)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("log-file", "", "write logs to this file, rotated")
	flags.Bool("no-color", false, "disable colored output")

	for _, name := range []string{"source", "source-type", "log-level", "log-format", "log-file", "no-color"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newMetricsCmd(a),
		newLabelsCmd(a),
		newDatesCmd(a),
		newCompareCmd(a),
		newHistogramCmd(a),
	)

	return root
}

// setup loads the merged settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}

	settings, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	log, err := logging.New(logging.Config{
		Level:    settings.LogLevel,
		Format:   settings.LogFormat,
		FilePath: settings.LogFile,
		Writer:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("command", cmd.Name()))

	a.log.Debug("settings loaded",
		zap.String("config", a.v.ConfigFileUsed()),
		zap.String("source", settings.Source),
		zap.String("source_type", settings.SourceType))
	return nil
}

// openSource opens the configured result source.
func (a *app) openSource() (store.Source, error) {
	if a.settings.Source == "" {
		return nil, errNoSource
	}
	return store.Open(a.settings.SourceType, a.settings.Source, a.log)
}

// console returns the console for the command's stdout.
func (a *app) console(cmd *cobra.Command) *output.Console {
	return output.NewConsole(output.ConsoleConfig{
		Writer:  cmd.OutOrStdout(),
		NoColor: a.settings.NoColor,
	})
}

// warnings returns a console for notes that must not mix with the report.
func (a *app) warnings(cmd *cobra.Command) *output.Console {
	return output.NewConsole(output.ConsoleConfig{
		Writer:  cmd.ErrOrStderr(),
		NoColor: a.settings.NoColor,
	})
}

// Execute runs the command line and prints a failing command's error once.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "%s %v\n", output.ErrorIcon(true), err)
		return err
	}
	return nil
}
