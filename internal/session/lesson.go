package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kingrea/kanikani/internal/wanikani"
)

const (
	msgNoLessons      = "No lessons available!"
	msgLessonComplete = "Lesson session complete!"
	promptNextLesson  = "Press Enter for next lesson, 'q' to quit"
)

// LessonDeps are the collaborators a lesson borrows for its lifetime.
type LessonDeps struct {
	Subjects SubjectRepository
	Display  Display
	Renderer Renderer
}

func (d LessonDeps) validate() error {
	switch {
	case d.Subjects == nil:
		return errors.New("session: subject repository is required")
	case d.Display == nil:
		return errors.New("session: display is required")
	case d.Renderer == nil:
		return errors.New("session: renderer is required")
	}
	return nil
}

// Lesson walks new subjects in order. Nothing is graded or submitted.
type Lesson struct {
	deps   LessonDeps
	opts   options
	ids    []int
	cursor int
	id     string
}

// NewLesson prepares a walk over subjectIDs in the given order.
func NewLesson(subjectIDs []int, deps LessonDeps, opts ...Option) (*Lesson, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Lesson{
		deps: deps,
		opts: buildOptions(opts),
		ids:  append([]int(nil), subjectIDs...),
	}, nil
}

// Cursor is the zero-based position of the subject being shown.
func (l *Lesson) Cursor() int { return l.cursor }

// Run shows each subject and waits for the learner to move on. Entering
// "q" ends the walk early.
func (l *Lesson) Run(ctx context.Context) error {
	if len(l.ids) == 0 {
		l.deps.Display.Show(msgNoLessons)
		return nil
	}
	l.id = uuid.NewString()
	log := l.opts.logger.WithField("session", l.id)
	log.WithField("items", len(l.ids)).Info("lesson session started")
	l.opts.journal.Info("Lesson %s · started with %d items", shortID(l.id), len(l.ids))
	l.deps.Display.Show(fmt.Sprintf("Starting lessons session with %d items", len(l.ids)))

	for l.cursor < len(l.ids) {
		if err := ctx.Err(); err != nil {
			return l.fail(err)
		}
		if err := l.show(ctx, l.ids[l.cursor]); err != nil {
			return l.fail(err)
		}
		input, err := l.deps.Display.Prompt(promptNextLesson)
		if err != nil {
			return l.fail(fmt.Errorf("read input: %w", err))
		}
		if strings.EqualFold(strings.TrimSpace(input), "q") {
			log.WithField("cursor", l.cursor).Info("lesson session quit")
			l.opts.journal.Warn("Lesson %s · quit at %d of %d", shortID(l.id), l.cursor+1, len(l.ids))
			break
		}
		l.cursor++
	}

	if l.cursor >= len(l.ids) {
		l.opts.journal.Info("Lesson %s · complete", shortID(l.id))
	}
	l.deps.Display.Show(msgLessonComplete)
	return nil
}

func (l *Lesson) show(ctx context.Context, subjectID int) error {
	subject, err := l.deps.Subjects.FetchSubject(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("fetch subject %d: %w", subjectID, err)
	}
	art, err := l.deps.Renderer.Render(ctx, subject)
	if err != nil {
		return fmt.Errorf("render subject %d: %w", subjectID, err)
	}
	l.deps.Display.Show(art)
	l.deps.Display.Show(InfoCard(subject))
	return nil
}

func (l *Lesson) fail(err error) error {
	l.opts.logger.WithField("session", l.id).WithError(err).Error("lesson session aborted")
	l.opts.journal.Error("Lesson %s · aborted: %v", shortID(l.id), err)
	l.deps.Display.Show(fmt.Sprintf("Error during lesson session: %v", err))
	return fmt.Errorf("lesson session: %w", err)
}

// InfoCard formats the study notes for a subject. Radicals and kana
// vocabulary have no reading lines.
func InfoCard(s *wanikani.Subject) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "Meaning: %s\n", s.PrimaryMeaning())
	switch s.Kind {
	case wanikani.KindKanji, wanikani.KindVocabulary:
		fmt.Fprintf(&b, "Reading (hiragana or romaji): %s\n", s.PrimaryReading())
		fmt.Fprintf(&b, "Meaning Mnemonic: %s\n", s.MeaningMnemonic())
		fmt.Fprintf(&b, "Reading Mnemonic: %s\n", s.ReadingMnemonic())
	case wanikani.KindKanaVocabulary:
		fmt.Fprintf(&b, "Meaning Mnemonic: %s\n", s.MeaningMnemonic())
	default:
		fmt.Fprintf(&b, "Mnemonic: %s\n", s.MeaningMnemonic())
	}
	return b.String()
}
