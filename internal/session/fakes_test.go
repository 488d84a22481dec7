package session

import (
	"context"
	"fmt"
	"io"

	"github.com/kingrea/kanikani/internal/wanikani"
)

type fakeSubjects struct {
	subjects map[int]*wanikani.Subject
	errs     map[int]error
	calls    map[int]int
}

func newFakeSubjects(subjects ...*wanikani.Subject) *fakeSubjects {
	f := &fakeSubjects{
		subjects: make(map[int]*wanikani.Subject),
		errs:     make(map[int]error),
		calls:    make(map[int]int),
	}
	for _, s := range subjects {
		f.subjects[s.ID] = s
	}
	return f
}

func (f *fakeSubjects) FetchSubject(_ context.Context, id int) (*wanikani.Subject, error) {
	f.calls[id]++
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	s, ok := f.subjects[id]
	if !ok {
		return nil, fmt.Errorf("subject %d not found", id)
	}
	return s, nil
}

type fakeSink struct {
	reviews []wanikani.Review
	err     error
}

func (f *fakeSink) SubmitReview(_ context.Context, r wanikani.Review) error {
	if f.err != nil {
		return f.err
	}
	f.reviews = append(f.reviews, r)
	return nil
}

// scriptedDisplay replays answers in order and reports EOF once they run out.
type scriptedDisplay struct {
	answers []string
	shown   []string
	prompts []string
}

func (d *scriptedDisplay) Show(text string) { d.shown = append(d.shown, text) }

func (d *scriptedDisplay) Prompt(message string) (string, error) {
	d.prompts = append(d.prompts, message)
	if len(d.answers) == 0 {
		return "", io.EOF
	}
	next := d.answers[0]
	d.answers = d.answers[1:]
	return next, nil
}

func (d *scriptedDisplay) last() string {
	if len(d.shown) == 0 {
		return ""
	}
	return d.shown[len(d.shown)-1]
}

type fakeRenderer struct {
	errs map[int]error
}

func (f fakeRenderer) Render(_ context.Context, s *wanikani.Subject) (string, error) {
	if err := f.errs[s.ID]; err != nil {
		return "", err
	}
	return fmt.Sprintf("[art %d]", s.ID), nil
}

type recordingJournal struct {
	lines []string
}

func (j *recordingJournal) Info(format string, args ...any) {
	j.lines = append(j.lines, "INFO "+fmt.Sprintf(format, args...))
}

func (j *recordingJournal) Warn(format string, args ...any) {
	j.lines = append(j.lines, "WARN "+fmt.Sprintf(format, args...))
}

func (j *recordingJournal) Error(format string, args ...any) {
	j.lines = append(j.lines, "ERROR "+fmt.Sprintf(format, args...))
}

func kanji(id int, chars, meaning, reading string) *wanikani.Subject {
	return &wanikani.Subject{ID: id, Kind: wanikani.KindKanji, Kanji: &wanikani.KanjiData{
		Common: wanikani.Common{
			Meanings:        []wanikani.Meaning{{Meaning: meaning, Primary: true}},
			MeaningMnemonic: meaning + " mnemonic",
		},
		Characters:      chars,
		Readings:        []wanikani.Reading{{Reading: reading, Primary: true}},
		ReadingMnemonic: reading + " mnemonic",
	}}
}

func vocabulary(id int, chars, meaning, reading string) *wanikani.Subject {
	return &wanikani.Subject{ID: id, Kind: wanikani.KindVocabulary, Vocabulary: &wanikani.VocabularyData{
		Common: wanikani.Common{
			Meanings:        []wanikani.Meaning{{Meaning: meaning, Primary: true}},
			MeaningMnemonic: meaning + " mnemonic",
		},
		Characters:      chars,
		Readings:        []wanikani.Reading{{Reading: reading, Primary: true}},
		ReadingMnemonic: reading + " mnemonic",
	}}
}

func radical(id int, chars, meaning string) *wanikani.Subject {
	return &wanikani.Subject{ID: id, Kind: wanikani.KindRadical, Radical: &wanikani.RadicalData{
		Common: wanikani.Common{
			Meanings:        []wanikani.Meaning{{Meaning: meaning, Primary: true}},
			MeaningMnemonic: meaning + " mnemonic",
		},
		Characters: &chars,
	}}
}

func kanaVocabulary(id int, chars, meaning string) *wanikani.Subject {
	return &wanikani.Subject{ID: id, Kind: wanikani.KindKanaVocabulary, KanaVocabulary: &wanikani.KanaVocabularyData{
		Common: wanikani.Common{
			Meanings:        []wanikani.Meaning{{Meaning: meaning, Primary: true}},
			MeaningMnemonic: meaning + " mnemonic",
		},
		Characters: chars,
	}}
}
