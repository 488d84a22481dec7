// Package display provides the learner-facing channels a study session
// talks through: a line-oriented console and a full-screen terminal UI.
package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ErrClosed is returned by Prompt once no more input can arrive.
var ErrClosed = errors.New("display: input closed")

// Console reads answers line by line and prints everything else as is.
type Console struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	styles styles
}

// NewConsole wires a console to the given streams, typically stdin/stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Show prints text followed by a newline.
func (c *Console) Show(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.styles.line(text))
}

// Prompt prints message and waits for one line of input. A final line
// without a newline still counts; after that Prompt fails with ErrClosed.
func (c *Console) Prompt(message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s ", c.styles.prompt.Render(message))
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				fmt.Fprintln(c.out)
				return "", ErrClosed
			}
		} else {
			return "", fmt.Errorf("display: read input: %w", err)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type styles struct {
	prompt  lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	heading lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		prompt:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		good:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")),
		bad:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB454")),
	}
}

// line colors session feedback by its leading word.
func (s styles) line(text string) string {
	switch {
	case strings.HasPrefix(text, "Correct"):
		return s.good.Render(text)
	case strings.HasPrefix(text, "Incorrect"), strings.HasPrefix(text, "Error"):
		return s.bad.Render(text)
	case strings.HasPrefix(text, "Starting"), strings.HasSuffix(text, "complete!"):
		return s.heading.Render(text)
	}
	return text
}
