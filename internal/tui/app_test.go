package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/kanikani/internal/logbook"
	"github.com/kingrea/kanikani/internal/wanikani"
)

func TestInitLoadsSummaryCounts(t *testing.T) {
	next := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	app := NewApp(
		WithSummary(func(context.Context) (Counts, error) {
			return Counts{Lessons: 3, Reviews: 0, NextReviewsAt: &next}, nil
		}),
		WithClock(func() time.Time { return next.Add(-2 * time.Hour) }),
	)
	app = runCommands(t, app, app.Init())

	view := app.View()
	if !strings.Contains(view, "Lessons: 3") || !strings.Contains(view, "Reviews: 0") {
		t.Fatalf("counts missing from view:\n%s", view)
	}
	if !strings.Contains(view, "Next reviews in 2h") {
		t.Fatalf("expected countdown in view:\n%s", view)
	}
}

func TestSummaryErrorShownInFooter(t *testing.T) {
	app := NewApp(WithSummary(func(context.Context) (Counts, error) {
		return Counts{}, errors.New("unauthorized")
	}))
	app = runCommands(t, app, app.Init())

	if !strings.Contains(app.View(), "Summary unavailable: unauthorized") {
		t.Fatalf("expected summary error in footer:\n%s", app.View())
	}
}

func TestMenuSelectionQuitsWithChoice(t *testing.T) {
	cases := []struct {
		downs int
		want  Action
	}{
		{0, ActionReviews},
		{1, ActionLessons},
		{3, ActionExit},
	}
	for _, tc := range cases {
		app := NewApp()
		app.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
		for i := 0; i < tc.downs; i++ {
			app.Update(tea.KeyMsg{Type: tea.KeyDown})
		}
		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("downs=%d: expected quit command", tc.downs)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("downs=%d: expected tea.QuitMsg", tc.downs)
		}
		if app.Choice() != tc.want {
			t.Fatalf("downs=%d: choice = %d, want %d", tc.downs, app.Choice(), tc.want)
		}
	}
}

func TestSummaryItemRefreshesInsteadOfQuitting(t *testing.T) {
	calls := 0
	app := NewApp(WithSummary(func(context.Context) (Counts, error) {
		calls++
		return Counts{Reviews: calls}, nil
	}))
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	app = runCommands(t, app, app.Init())
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = runCommands(t, model, cmd)

	if calls != 2 {
		t.Fatalf("summary calls = %d, want 2", calls)
	}
	if app.Choice() != ActionNone {
		t.Fatalf("choice = %d, want none", app.Choice())
	}
	if !strings.Contains(app.View(), "Reviews: 2") {
		t.Fatalf("expected refreshed counts:\n%s", app.View())
	}
}

func TestQuitKeyExits(t *testing.T) {
	app := NewApp()
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || app.Choice() != ActionExit {
		t.Fatalf("expected exit, got choice %d", app.Choice())
	}
}

func TestLogPanelShowsJournalTail(t *testing.T) {
	lb, err := logbook.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	lb.Info("Review abcd1234 · complete, 3 submitted")
	app := NewApp(WithLogbook(lb), WithStatus("Review session complete!"))

	view := app.View()
	if !strings.Contains(view, "LOG · journey.log (1 entries)") {
		t.Fatalf("missing log header:\n%s", view)
	}
	if !strings.Contains(view, "complete, 3 submitted") {
		t.Fatalf("missing journal line:\n%s", view)
	}
	if !strings.Contains(view, "Review session complete!") {
		t.Fatalf("missing status:\n%s", view)
	}
}

func TestCountsFromSummary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	summary := &wanikani.Summary{Data: wanikani.SummaryData{
		Lessons: []wanikani.SummaryBlock{{AvailableAt: now, SubjectIDs: []int{1, 2, 3}}},
		Reviews: []wanikani.SummaryBlock{
			{AvailableAt: now.Add(-time.Hour), SubjectIDs: []int{4}},
			{AvailableAt: now.Add(time.Hour), SubjectIDs: []int{5, 6}},
		},
		NextReviewsAt: &now,
	}}

	got := CountsFromSummary(summary, now)
	if got.Lessons != 3 || got.Reviews != 1 || got.NextReviewsAt == nil {
		t.Fatalf("unexpected counts %+v", got)
	}
	if zero := CountsFromSummary(nil, now); zero != (Counts{}) {
		t.Fatalf("nil summary counts = %+v", zero)
	}
}

func TestHumanizeUntil(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Minute:     "now",
		25 * time.Minute: "in 25m",
		3 * time.Hour:    "in 3h",
		72 * time.Hour:   "in 3d",
	}
	for in, want := range cases {
		if got := humanizeUntil(in); got != want {
			t.Fatalf("humanizeUntil(%s) = %q, want %q", in, got, want)
		}
	}
}

func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		nextModel, nextCmd := app.Update(msg)
		var ok bool
		app, ok = nextModel.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		cmd = nextCmd
	}
	return app
}
