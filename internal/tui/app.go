// internal/tui/app.go
//
// This is the main menu for kanikani. It uses bubbletea, which follows The
// Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The menu does not run study sessions itself. Picking Reviews or Lessons
// quits the menu with that choice; the caller runs the session on its own
// screen and then reopens the menu.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/kanikani/internal/logbook"
	"github.com/kingrea/kanikani/internal/wanikani"
)

// Action is what the learner picked from the menu.
type Action int

const (
	ActionNone Action = iota
	ActionReviews
	ActionLessons
	ActionExit
)

const (
	logTailLines   = 8
	summaryTimeout = 15 * time.Second
)

// Counts is the availability snapshot shown beside the menu.
type Counts struct {
	Lessons       int
	Reviews       int
	NextReviewsAt *time.Time
}

// SummaryFunc loads fresh counts from the service.
type SummaryFunc func(ctx context.Context) (Counts, error)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSummary sets how the menu loads lesson and review counts.
func WithSummary(fn SummaryFunc) AppOption {
	return func(a *App) {
		if fn != nil {
			a.summary = fn
		}
	}
}

// WithLogbook shows the tail of the study journal under the menu.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) { a.logbook = lb }
}

// WithStatus seeds the footer, e.g. with the outcome of the last session.
func WithStatus(status string) AppOption {
	return func(a *App) { a.statusMsg = status }
}

// WithClock overrides "now" for the next-review countdown.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

type summaryMsg struct {
	counts Counts
	err    error
}

// App is the main menu model. In bubbletea, this holds ALL your state.
type App struct {
	mainMenu  list.Model
	logbook   *logbook.Logbook
	summary   SummaryFunc
	now       func() time.Time
	choice    Action
	counts    Counts
	hasCounts bool
	loading   bool
	statusMsg string
	err       error

	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title  string
	desc   string
	action Action
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance
func NewApp(opts ...AppOption) *App {
	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ KANIKANI"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	app := &App{
		mainMenu: mainMenu,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "Reviews", desc: "Answer the items that are due", action: ActionReviews},
		menuItem{title: "Lessons", desc: "Walk through newly unlocked items", action: ActionLessons},
		menuItem{title: "Summary", desc: "Refresh lesson and review counts"},
		menuItem{title: "Exit", desc: "Quit kanikani", action: ActionExit},
	}
}

// Choice is the action picked when the program ended.
func (a *App) Choice() Action {
	return a.choice
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.fetchSummary()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-14))
		return a, nil

	case summaryMsg:
		a.loading = false
		a.err = msg.err
		if msg.err == nil {
			a.counts = msg.counts
			a.hasCounts = true
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			a.choice = ActionExit
			return a, tea.Quit
		case "r":
			return a, a.fetchSummary()
		case "enter":
			return a.handleMainMenuSelection()
		}
	}

	var menuCmd tea.Cmd
	a.mainMenu, menuCmd = a.mainMenu.Update(msg)
	return a, menuCmd
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	if item.action == ActionNone {
		return a, a.fetchSummary()
	}
	a.choice = item.action
	return a, tea.Quit
}

func (a *App) fetchSummary() tea.Cmd {
	if a.summary == nil {
		return nil
	}
	a.loading = true
	fn := a.summary
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()
		counts, err := fn(ctx)
		return summaryMsg{counts: counts, err: err}
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ KANIKANI")
	menuBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-4)).
		Render(lipgloss.JoinVertical(lipgloss.Left, a.renderCounts(), "", a.mainMenu.View()))

	sections := []string{header, menuBox}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.footer())
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) footer() string {
	switch {
	case a.err != nil:
		return fmt.Sprintf("Summary unavailable: %v", a.err)
	case a.statusMsg != "":
		return a.statusMsg
	case a.loading:
		return "Refreshing summary..."
	}
	return "enter: select · r: refresh · q: quit"
}

func (a *App) renderCounts() string {
	if !a.hasCounts {
		return "Lessons: -   Reviews: -"
	}
	line := fmt.Sprintf("Lessons: %d   Reviews: %d", a.counts.Lessons, a.counts.Reviews)
	if a.counts.Reviews == 0 && a.counts.NextReviewsAt != nil {
		line += "   Next reviews " + humanizeUntil(a.counts.NextReviewsAt.Sub(a.now()))
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Render(line)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logTailLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d entries)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func humanizeUntil(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("in %dm", int(d.Round(time.Minute)/time.Minute))
	}
	if d < 48*time.Hour {
		return fmt.Sprintf("in %dh", int(d.Round(time.Hour)/time.Hour))
	}
	return fmt.Sprintf("in %dd", int(d/(24*time.Hour)))
}

// RunMenu shows the menu until the learner picks an action.
func RunMenu(ctx context.Context, opts []AppOption, programOpts ...tea.ProgramOption) (Action, error) {
	app := NewApp(opts...)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	if _, err := tea.NewProgram(app, programOpts...).Run(); err != nil {
		return ActionExit, fmt.Errorf("tui: %w", err)
	}
	if app.Choice() == ActionNone {
		return ActionExit, nil
	}
	return app.Choice(), nil
}

// CountsFromSummary reduces a /summary report to what the menu shows.
func CountsFromSummary(s *wanikani.Summary, now time.Time) Counts {
	if s == nil {
		return Counts{}
	}
	return Counts{
		Lessons:       len(s.AvailableLessons()),
		Reviews:       len(s.AvailableReviews(now)),
		NextReviewsAt: s.Data.NextReviewsAt,
	}
}
