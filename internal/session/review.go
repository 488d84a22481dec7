package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kingrea/kanikani/internal/answer"
	"github.com/kingrea/kanikani/internal/wanikani"
)

// QuitCommand ends a review early when typed at any prompt. Items already
// finished stay submitted; the item in progress is not reported.
const QuitCommand = "/quit"

const (
	msgNoReviews      = "No reviews available!"
	msgReviewComplete = "Review session complete!"
	msgReviewQuit     = "Review session ended early."
	msgCorrect        = "Correct!"
	msgIncorrect      = "Incorrect, try again"
	promptMeaning     = "Enter the meaning:"
	promptReading     = "Enter the reading (in hiragana or romaji):"
)

// ReviewDeps are the collaborators a review borrows for its lifetime.
type ReviewDeps struct {
	Subjects SubjectRepository
	Results  ResultSink
	Display  Display
	Renderer Renderer
}

func (d ReviewDeps) validate() error {
	switch {
	case d.Subjects == nil:
		return errors.New("session: subject repository is required")
	case d.Results == nil:
		return errors.New("session: result sink is required")
	case d.Display == nil:
		return errors.New("session: display is required")
	case d.Renderer == nil:
		return errors.New("session: renderer is required")
	}
	return nil
}

// Review quizzes a fixed set of due items. The front of the queue gets one
// prompt per turn; an item that still needs work goes to the back, a done
// item is submitted and dropped.
type Review struct {
	deps ReviewDeps
	opts options

	queue     []*StudyItem
	bySubject map[int]*StudyItem
	submitted []wanikani.Review

	id     string
	loaded map[int]loadedSubject
}

type loadedSubject struct {
	subject *wanikani.Subject
	art     string
}

// NewReview builds a session from (assignment, subject) pairs. A subject
// listed twice keeps its first assignment.
func NewReview(pairs []Pair, deps ReviewDeps, opts ...Option) (*Review, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	r := &Review{
		deps:      deps,
		opts:      buildOptions(opts),
		bySubject: make(map[int]*StudyItem, len(pairs)),
		loaded:    make(map[int]loadedSubject),
	}
	for _, p := range pairs {
		if _, dup := r.bySubject[p.SubjectID]; dup {
			continue
		}
		item := NewStudyItem(p)
		r.queue = append(r.queue, &item)
		r.bySubject[p.SubjectID] = &item
	}
	return r, nil
}

// ID identifies the session in logs once Run has started.
func (r *Review) ID() string { return r.id }

// Remaining returns copies of the items still in play, in queue order.
func (r *Review) Remaining() []StudyItem {
	out := make([]StudyItem, len(r.queue))
	for i, item := range r.queue {
		out[i] = *item
	}
	return out
}

// Item looks up an item still in play.
func (r *Review) Item(subjectID int) (StudyItem, bool) {
	item, ok := r.bySubject[subjectID]
	if !ok {
		return StudyItem{}, false
	}
	return *item, true
}

// Submitted lists results reported so far, in submission order.
func (r *Review) Submitted() []wanikani.Review {
	return append([]wanikani.Review(nil), r.submitted...)
}

// Run drives the prompt loop until every item is submitted, the learner
// quits, or a collaborator fails. A failure is shown on the display and
// returned; nothing is submitted for the item that was in progress.
func (r *Review) Run(ctx context.Context) error {
	if len(r.queue) == 0 {
		r.deps.Display.Show(msgNoReviews)
		return nil
	}
	r.id = uuid.NewString()
	log := r.logger()
	log.WithField("items", len(r.queue)).Info("review session started")
	r.opts.journal.Info("Review %s · started with %d items", shortID(r.id), len(r.queue))
	r.deps.Display.Show(fmt.Sprintf("Starting review session with %d items", len(r.queue)))

	for len(r.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return r.fail(err)
		}
		quit, err := r.step(ctx)
		if err != nil {
			return r.fail(err)
		}
		if quit {
			log.WithField("remaining", len(r.queue)).Info("review session quit")
			r.opts.journal.Warn("Review %s · quit with %d items left", shortID(r.id), len(r.queue))
			r.deps.Display.Show(msgReviewQuit)
			return nil
		}
	}

	log.WithField("submitted", len(r.submitted)).Info("review session complete")
	r.opts.journal.Info("Review %s · complete, %d submitted", shortID(r.id), len(r.submitted))
	r.deps.Display.Show(msgReviewComplete)
	return nil
}

// step runs one prompt cycle on the front item, then finalizes or rotates it.
func (r *Review) step(ctx context.Context) (bool, error) {
	item := r.queue[0]
	cur, err := r.load(ctx, item)
	if err != nil {
		return false, err
	}

	if phase := item.NextPhase(); phase != PhaseNone {
		r.deps.Display.Show(cur.art)
		r.deps.Display.Show(fmt.Sprintf("%s · %s", cur.subject.Kind.FriendlyName(), phase))
		message := promptMeaning
		if phase == PhaseReading {
			message = promptReading
		}
		input, err := r.deps.Display.Prompt(message)
		if err != nil {
			return false, fmt.Errorf("read answer: %w", err)
		}
		if strings.TrimSpace(input) == QuitCommand {
			return true, nil
		}
		r.grade(item, cur.subject, phase, input)
	}

	if item.Done() {
		return false, r.finalize(ctx, item)
	}
	r.queue = append(r.queue[1:], item)
	return false, nil
}

// load fetches and renders an item's subject once per session.
func (r *Review) load(ctx context.Context, item *StudyItem) (loadedSubject, error) {
	if cur, ok := r.loaded[item.SubjectID]; ok {
		return cur, nil
	}
	subject, err := r.deps.Subjects.FetchSubject(ctx, item.SubjectID)
	if err != nil {
		return loadedSubject{}, fmt.Errorf("fetch subject %d: %w", item.SubjectID, err)
	}
	if !subject.NeedsReading() {
		item.NeedsReading = false
	}
	art, err := r.deps.Renderer.Render(ctx, subject)
	if err != nil {
		return loadedSubject{}, fmt.Errorf("render subject %d: %w", item.SubjectID, err)
	}
	cur := loadedSubject{subject: subject, art: art}
	r.loaded[item.SubjectID] = cur
	return cur, nil
}

func (r *Review) grade(item *StudyItem, subject *wanikani.Subject, phase Phase, input string) {
	var correct bool
	switch phase {
	case PhaseMeaning:
		correct = answer.CheckMeaning(subject, input)
		if correct {
			item.NeedsMeaning = false
		} else {
			item.IncorrectMeaningAnswers++
		}
	case PhaseReading:
		correct = answer.CheckReading(subject, input)
		if correct {
			item.NeedsReading = false
		} else {
			item.IncorrectReadingAnswers++
		}
	}
	r.logger().WithFields(logrus.Fields{
		"subject": item.SubjectID,
		"phase":   phase.String(),
		"correct": correct,
	}).Debug("answer graded")
	if correct {
		r.deps.Display.Show(msgCorrect)
	} else {
		r.deps.Display.Show(msgIncorrect)
	}
}

func (r *Review) finalize(ctx context.Context, item *StudyItem) error {
	result := item.Result()
	if err := r.deps.Results.SubmitReview(ctx, result); err != nil {
		return fmt.Errorf("submit review for subject %d: %w", item.SubjectID, err)
	}
	r.submitted = append(r.submitted, result)
	r.queue = r.queue[1:]
	delete(r.bySubject, item.SubjectID)
	delete(r.loaded, item.SubjectID)
	r.opts.journal.Info("Review %s · subject %d submitted (meaning misses %d, reading misses %d)",
		shortID(r.id), item.SubjectID, result.IncorrectMeaningAnswers, result.IncorrectReadingAnswers)
	return nil
}

func (r *Review) fail(err error) error {
	r.logger().WithError(err).Error("review session aborted")
	r.opts.journal.Error("Review %s · aborted: %v", shortID(r.id), err)
	r.deps.Display.Show(fmt.Sprintf("Error during review session: %v", err))
	return fmt.Errorf("review session: %w", err)
}

func (r *Review) logger() logrus.FieldLogger {
	return r.opts.logger.WithField("session", r.id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
