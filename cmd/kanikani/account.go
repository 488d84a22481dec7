package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kingrea/kanikani/internal/config"
	"github.com/kingrea/kanikani/internal/session"
	"github.com/kingrea/kanikani/internal/wanikani"
)

func newSummaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show how many lessons and reviews are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, true)
			if err != nil {
				return err
			}
			defer a.close()
			return a.showSummary(cmd.Context(), a.console())
		},
	}
}

func (a *app) showSummary(ctx context.Context, disp session.Display) error {
	counts, err := a.counts(ctx)
	if err != nil {
		disp.Show("Summary unavailable: " + describe(err))
		return fmt.Errorf("summary: %w", err)
	}
	disp.Show(fmt.Sprintf("Lessons available: %d", counts.Lessons))
	disp.Show(fmt.Sprintf("Reviews available: %d", counts.Reviews))
	if counts.Reviews == 0 && counts.NextReviewsAt != nil {
		disp.Show("Next reviews at " + counts.NextReviewsAt.Local().Format(time.DateTime))
	}
	return nil
}

func newLoginCmd(c *cli) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify a WaniKani API token and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("login: --token is required")
			}
			a, err := c.open(cmd, false)
			if err != nil {
				return err
			}
			defer a.close()
			return a.login(cmd.Context(), c.configDir, token)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "personal access token from the WaniKani settings page")
	return cmd
}

// login checks token against /user and stores it in the settings file.
// The file is reloaded first so one-off overrides are not persisted.
func (a *app) login(ctx context.Context, configDir, token string) error {
	user, err := a.newClient(token).Authenticate(ctx)
	if err != nil {
		if errors.Is(err, wanikani.ErrUnauthorized) {
			return errors.New("login: WaniKani rejected the token")
		}
		return fmt.Errorf("login: %w", err)
	}
	stored, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if err := stored.SetToken(token); err != nil {
		return err
	}
	a.log.WithField("user", user.Data.Username).Info("token saved")
	a.printf("Logged in as %s (level %d). Token saved to %s\n", user.Data.Username, user.Data.Level, stored.Path())
	return nil
}
