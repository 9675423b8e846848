package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inovally/diagnostico/internal/config"
	"github.com/inovally/diagnostico/internal/observability"
)

var version = "0.1.0"

// app carries state shared by every subcommand once the root's
// PersistentPreRunE has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagKeys binds command flags to config keys, so a flag given on the
// command line wins over the config file and environment.
var flagKeys = map[string]string{
	"profile": "dashboard.profile",
	"strict":  "server.strict",
	"addr":    "server.addr",
	"scores":  "dashboard.scores_file",
	"watch":   "dashboard.watch",
}

func main() {
	err := newRootCmd().Execute()
	observability.Sync()
	if err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "diagnostico",
		Short:         "Classify digital-maturity scores and render the diagnostic dashboard",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: ./config.yaml)")

	root.AddCommand(
		newCheckCmd(a),
		newServeCmd(a),
		newIndicatorsCmd(),
		newProfilesCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger()
	return nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
