package session

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kingrea/kanikani/internal/wanikani"
)

// SubjectRepository loads subject details.
type SubjectRepository interface {
	FetchSubject(ctx context.Context, id int) (*wanikani.Subject, error)
}

// ResultSink records a finished review item.
type ResultSink interface {
	SubmitReview(ctx context.Context, review wanikani.Review) error
}

// Display is the learner-facing channel. Prompt blocks until the learner
// submits a line; it fails only when no more input can arrive.
type Display interface {
	Show(text string)
	Prompt(message string) (string, error)
}

// Renderer turns a subject's glyphs (or reference image) into printable text.
type Renderer interface {
	Render(ctx context.Context, subject *wanikani.Subject) (string, error)
}

// Journal receives one line per notable session event.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopJournal struct{}

func (nopJournal) Info(string, ...any)  {}
func (nopJournal) Warn(string, ...any)  {}
func (nopJournal) Error(string, ...any) {}

// Option customizes a session.
type Option func(*options)

type options struct {
	journal Journal
	logger  logrus.FieldLogger
}

// WithJournal records session progress to j.
func WithJournal(j Journal) Option {
	return func(o *options) {
		if j != nil {
			o.journal = j
		}
	}
}

// WithLogger routes diagnostic logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	o := options{journal: nopJournal{}, logger: quiet}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
