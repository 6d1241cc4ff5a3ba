package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"FilmRiddles/internal/app"
	"FilmRiddles/internal/config"
	"FilmRiddles/internal/logging"
)

const releaseVersion = "0.1.0"

type flags struct {
	configPath string
	sort       string
	count      int
	logLevel   string
}

func main() {
	cobra.CheckErr(newCmd().ExecuteContext(context.Background()))
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FILMRIDDLES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	opts := &flags{}

	cmd := &cobra.Command{
		Use:     "filmriddles",
		Short:   "Crowd-confirmed movie riddles from a subreddit, with best-effort posters.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configPath != "" {
				if err := os.Setenv("FILMRIDDLES_CONFIG", opts.configPath); err != nil {
					return err
				}
			}

			cfg := config.Load()
			if opts.sort != "" {
				cfg.Display.Sort = opts.sort
			}
			if opts.count > 0 {
				cfg.Display.Count = opts.count
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}

			logger := logging.New(os.Stderr, cfg.Logging.Level)
			return app.New(cfg, logger).Run(cmd.Context())
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&opts.configPath, "config", "c", "", "path to yaml config file (env: FILMRIDDLES_CONFIG)")
	fs.StringVarP(&opts.sort, "sort", "s", "", "listing sort mode: all, year, month, new (env: FILMRIDDLES_SORT)")
	fs.IntVarP(&opts.count, "count", "n", 0, "number of riddles to fetch (env: FILMRIDDLES_COUNT)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log verbosity: debug, info, warn, error (env: FILMRIDDLES_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("filmriddles v{{.Version}}\n")
	cmd.SilenceUsage = true

	return cmd
}
