package display

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen is a full-screen display. The study session runs on its own
// goroutine and talks to the bubbletea program through messages; Prompt
// blocks until the learner presses Enter.
type Screen struct {
	title   string
	opts    []tea.ProgramOption
	program *tea.Program
	answers chan string
	closed  chan struct{}
}

// NewScreen prepares a screen; opts are passed to tea.NewProgram.
func NewScreen(title string, opts ...tea.ProgramOption) *Screen {
	return &Screen{
		title:   title,
		opts:    opts,
		answers: make(chan string),
		closed:  make(chan struct{}),
	}
}

// Run starts the terminal UI and calls work, which should use the screen as
// its display. It returns once the learner leaves the screen, reporting the
// error from work, if any.
func (s *Screen) Run(ctx context.Context, work func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newScreenModel(s.title, s.answers, s.closed)
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, s.opts...)
	s.program = tea.NewProgram(model, opts...)

	workErr := make(chan error, 1)
	go func() {
		err := work(ctx)
		s.program.Send(workDoneMsg{})
		workErr <- err
	}()

	_, runErr := s.program.Run()
	close(s.closed)
	cancel()
	// Leaving the screen mid-prompt ends the session quietly.
	if err := <-workErr; err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}

// Show appends text to the transcript.
func (s *Screen) Show(text string) {
	s.program.Send(showMsg(text))
}

// Prompt asks for one line of input.
func (s *Screen) Prompt(message string) (string, error) {
	s.program.Send(promptMsg(message))
	select {
	case answer := <-s.answers:
		return answer, nil
	case <-s.closed:
		return "", ErrClosed
	}
}

type (
	showMsg     string
	promptMsg   string
	answeredMsg struct{}
	workDoneMsg struct{}
)

type screenModel struct {
	title    string
	answers  chan<- string
	closed   <-chan struct{}
	lines    []string
	viewport viewport.Model
	input    textinput.Model
	prompt   string
	awaiting bool
	finished bool
	styles   styles
	header   lipgloss.Style
	hint     lipgloss.Style
}

func newScreenModel(title string, answers chan<- string, closed <-chan struct{}) *screenModel {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 256
	return &screenModel{
		title:    title,
		answers:  answers,
		closed:   closed,
		viewport: viewport.New(80, 20),
		input:    input,
		styles:   newStyles(lipgloss.DefaultRenderer()),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1),
		hint: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

func (m *screenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *screenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(5, msg.Height-6)
		m.input.Width = max(10, msg.Width-4)
		m.refresh()
		return m, nil

	case showMsg:
		m.append(string(msg))
		return m, nil

	case promptMsg:
		m.prompt = string(msg)
		m.awaiting = true
		m.input.Reset()
		return m, m.input.Focus()

	case answeredMsg:
		return m, nil

	case workDoneMsg:
		m.finished = true
		m.awaiting = false
		m.input.Blur()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.finished {
				return m, tea.Quit
			}
			if m.awaiting {
				return m, m.submit()
			}
		case tea.KeyEsc:
			if m.finished {
				return m, tea.Quit
			}
		}
		if m.finished && msg.String() == "q" {
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	if m.awaiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit hands the typed line to the waiting session goroutine.
func (m *screenModel) submit() tea.Cmd {
	value := m.input.Value()
	m.awaiting = false
	m.input.Blur()
	m.append(m.hint.Render(m.prompt) + " " + value)
	answers, closed := m.answers, m.closed
	return func() tea.Msg {
		select {
		case answers <- value:
		case <-closed:
		}
		return answeredMsg{}
	}
}

func (m *screenModel) append(text string) {
	m.lines = append(m.lines, m.styles.line(text))
	m.refresh()
}

func (m *screenModel) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *screenModel) View() string {
	sections := []string{m.header.Render("⬡ " + m.title), m.viewport.View()}
	switch {
	case m.awaiting:
		sections = append(sections, m.styles.prompt.Render(m.prompt), m.input.View())
	case m.finished:
		sections = append(sections, m.hint.Render("Press Enter to return"))
	}
	return strings.Join(sections, "\n")
}
