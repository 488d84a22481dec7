package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/kanikani/internal/display"
	"github.com/kingrea/kanikani/internal/session"
	"github.com/kingrea/kanikani/internal/tui"
)

func newReviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Answer the reviews that are due now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, true)
			if err != nil {
				return err
			}
			defer a.close()
			return a.study(cmd.Context(), "Reviews", a.review)
		},
	}
}

func newLessonsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "lessons",
		Aliases: []string{"lesson"},
		Short:   "Walk through newly unlocked subjects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, true)
			if err != nil {
				return err
			}
			defer a.close()
			return a.study(cmd.Context(), "Lessons", a.lessons)
		},
	}
}

type studyFunc func(ctx context.Context, disp session.Display) error

// study runs fn on the configured display. Closing the input ends the
// session without an error.
func (a *app) study(ctx context.Context, title string, fn studyFunc) error {
	if a.cfg.UseTUI() {
		screen := display.NewScreen(title)
		return screen.Run(ctx, func(ctx context.Context) error {
			return fn(ctx, screen)
		})
	}
	err := fn(ctx, a.console())
	if errors.Is(err, display.ErrClosed) {
		return nil
	}
	return err
}

func (a *app) console() *display.Console {
	if a.con == nil {
		a.con = display.NewConsole(a.in, a.out)
	}
	return a.con
}

func (a *app) sessionOptions() []session.Option {
	opts := []session.Option{session.WithLogger(a.log.WithField("component", "session"))}
	if a.journal != nil {
		opts = append(opts, session.WithJournal(a.journal))
	}
	return opts
}

func (a *app) review(ctx context.Context, disp session.Display) error {
	assignments, err := a.client.ReviewAssignments(ctx)
	if err != nil {
		disp.Show(fmt.Sprintf("Error during review session: %v", err))
		return fmt.Errorf("review session: %w", err)
	}
	rev, err := session.NewReview(session.PairsFromAssignments(assignments), session.ReviewDeps{
		Subjects: a.client,
		Results:  a.client,
		Display:  disp,
		Renderer: a.renderer,
	}, a.sessionOptions()...)
	if err != nil {
		return err
	}
	return rev.Run(ctx)
}

func (a *app) lessons(ctx context.Context, disp session.Display) error {
	ids, err := a.client.LessonSubjectIDs(ctx)
	if err != nil {
		disp.Show(fmt.Sprintf("Error during lesson session: %v", err))
		return fmt.Errorf("lesson session: %w", err)
	}
	lesson, err := session.NewLesson(ids, session.LessonDeps{
		Subjects: a.client,
		Display:  disp,
		Renderer: a.renderer,
	}, a.sessionOptions()...)
	if err != nil {
		return err
	}
	return lesson.Run(ctx)
}

func (a *app) menu(ctx context.Context) error {
	if a.cfg.UseTUI() {
		return a.screenMenu(ctx)
	}
	return a.plainMenu(ctx)
}

var menuChoices = []string{"Reviews", "Lessons", "Summary", "Exit"}

// plainMenu is the line-oriented menu loop used with display=plain.
func (a *app) plainMenu(ctx context.Context) error {
	con := a.console()
	con.Show(welcome)
	for ctx.Err() == nil {
		con.Show("\nMain Menu:")
		for i, choice := range menuChoices {
			con.Show(fmt.Sprintf("%d. %s", i+1, choice))
		}
		input, err := con.Prompt("\nEnter your choice:")
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(input) {
		case "1":
			err = a.study(ctx, "Reviews", a.review)
		case "2":
			err = a.study(ctx, "Lessons", a.lessons)
		case "3":
			err = a.showSummary(ctx, con)
		case "4":
			return nil
		default:
			con.Show("Invalid choice. Please try again.")
			continue
		}
		if err != nil {
			a.log.WithError(err).Warn("menu action failed")
		}
	}
	return nil
}

// screenMenu alternates between the full-screen menu and session screens
// until the learner exits.
func (a *app) screenMenu(ctx context.Context) error {
	status := ""
	for ctx.Err() == nil {
		action, err := tui.RunMenu(ctx, []tui.AppOption{
			tui.WithSummary(a.counts),
			tui.WithLogbook(a.journal),
			tui.WithStatus(status),
		})
		if err != nil {
			return err
		}

		switch action {
		case tui.ActionReviews:
			err = a.study(ctx, "Reviews", a.review)
		case tui.ActionLessons:
			err = a.study(ctx, "Lessons", a.lessons)
		default:
			return nil
		}
		status = ""
		if err != nil {
			a.log.WithError(err).Warn("menu action failed")
			status = "Last session failed: " + describe(err)
		}
	}
	return nil
}

func (a *app) counts(ctx context.Context) (tui.Counts, error) {
	summary, err := a.client.FetchSummary(ctx)
	if err != nil {
		return tui.Counts{}, err
	}
	return tui.CountsFromSummary(summary, a.client.Now()), nil
}
