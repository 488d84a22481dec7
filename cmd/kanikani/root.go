package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kingrea/kanikani/internal/config"
	"github.com/kingrea/kanikani/internal/display"
	"github.com/kingrea/kanikani/internal/logbook"
	"github.com/kingrea/kanikani/internal/logging"
	"github.com/kingrea/kanikani/internal/render"
	"github.com/kingrea/kanikani/internal/wanikani"
)

const welcome = "ようこそ！ Welcome to kanikani - the CLI tool for doing your WaniKani reviews!"

// cli carries flag state shared by every subcommand.
type cli struct {
	viper     *viper.Viper
	configDir string
}

func newRootCmd() *cobra.Command {
	c := &cli{viper: config.NewViper()}
	root := &cobra.Command{
		Use:           "kanikani",
		Short:         "Do your WaniKani reviews and lessons from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, true)
			if err != nil {
				return err
			}
			defer a.close()
			return a.menu(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", "", "directory holding config.yaml (default <user config dir>/kanikani)")
	flags.String("display", "", "display mode: plain or tui")
	flags.String("log-level", "", "log level: debug, info, warn, or error")
	flags.String("base-url", "", "WaniKani API root")
	c.bindFlag(config.KeyDisplay, flags.Lookup("display"))
	c.bindFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	c.bindFlag(config.KeyBaseURL, flags.Lookup("base-url"))

	root.AddCommand(
		newReviewCmd(c),
		newLessonsCmd(c),
		newSummaryCmd(c),
		newLoginCmd(c),
	)
	return root
}

func (c *cli) bindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(c.viper.BindPFlag(key, flag))
}

// app bundles the dependencies of one command invocation.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	journal  *logbook.Logbook
	client   *wanikani.Client
	renderer *render.Renderer
	in       io.Reader
	out      io.Writer
	con      *display.Console
}

// open loads settings, starts logging, and, when needToken is set, builds
// an authenticated API client.
func (c *cli) open(cmd *cobra.Command, needToken bool) (*app, error) {
	cfg, err := config.Load(c.configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(c.viper); err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.StateDir(), cfg.Settings.LogLevel)
	if err != nil {
		return nil, err
	}
	journal, err := logbook.Open(cfg.StateDir())
	if err != nil {
		logger.WithError(err).Warn("journal unavailable")
	}

	a := &app{
		cfg:     cfg,
		log:     logger,
		journal: journal,
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
	}
	if needToken {
		token, err := cfg.Token()
		if err != nil {
			a.close()
			return nil, err
		}
		a.client = a.newClient(token)
		a.renderer = render.New(a.client)
	}
	logger.WithField("command", cmd.Name()).Debug("command started")
	return a, nil
}

func (a *app) newClient(token string) *wanikani.Client {
	return wanikani.NewClient(token,
		wanikani.WithBaseURL(a.cfg.Settings.BaseURL),
		wanikani.WithLogger(a.log.WithField("component", "wanikani")),
	)
}

func (a *app) close() {
	if a == nil {
		return
	}
	_ = a.log.Close()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// describe turns a failure into the one-line hint shown in menus.
func describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, wanikani.ErrUnauthorized):
		return "WaniKani rejected the API token; run `kanikani login`"
	case errors.Is(err, context.Canceled):
		return "Cancelled"
	}
	return err.Error()
}
