package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLesson(t *testing.T, ids []int, subjects *fakeSubjects, display *scriptedDisplay, opts ...Option) *Lesson {
	t.Helper()
	l, err := NewLesson(ids, LessonDeps{Subjects: subjects, Display: display, Renderer: fakeRenderer{}}, opts...)
	require.NoError(t, err)
	return l
}

func TestLessonWalksEverySubject(t *testing.T) {
	subjects := newFakeSubjects(kanji(1, "一", "One", "いち"), radical(2, "二", "Two"))
	display := &scriptedDisplay{answers: []string{"", "anything"}}
	journal := &recordingJournal{}
	l := newTestLesson(t, []int{1, 2}, subjects, display, WithJournal(journal))

	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, 2, l.Cursor())
	assert.Equal(t, []string{promptNextLesson, promptNextLesson}, display.prompts)
	assert.Equal(t, []string{
		"Starting lessons session with 2 items",
		"[art 1]", InfoCard(subjects.subjects[1]),
		"[art 2]", InfoCard(subjects.subjects[2]),
		msgLessonComplete,
	}, display.shown)
	require.Len(t, journal.lines, 2)
	assert.Contains(t, journal.lines[1], "complete")
}

func TestLessonQuitEndsEarly(t *testing.T) {
	subjects := newFakeSubjects(kanji(1, "一", "One", "いち"), kanji(2, "二", "Two", "に"))
	display := &scriptedDisplay{answers: []string{" Q "}}
	l := newTestLesson(t, []int{1, 2}, subjects, display)

	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, 0, l.Cursor())
	assert.Zero(t, subjects.calls[2])
	assert.Equal(t, msgLessonComplete, display.last())
}

func TestLessonFetchFailure(t *testing.T) {
	subjects := newFakeSubjects(kanji(1, "一", "One", "いち"))
	subjects.errs[2] = errBoom
	display := &scriptedDisplay{answers: []string{"", ""}}
	l := newTestLesson(t, []int{1, 2}, subjects, display)

	err := l.Run(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, l.Cursor())
	assert.Equal(t, "Error during lesson session: fetch subject 2: boom", display.last())
}

func TestLessonEmpty(t *testing.T) {
	display := &scriptedDisplay{}
	l := newTestLesson(t, nil, newFakeSubjects(), display)

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []string{msgNoLessons}, display.shown)
}

func TestInfoCardPerKind(t *testing.T) {
	assert.Equal(t,
		"\nMeaning: One\nReading (hiragana or romaji): いち\nMeaning Mnemonic: One mnemonic\nReading Mnemonic: いち mnemonic\n",
		InfoCard(kanji(1, "一", "One", "いち")))
	assert.Equal(t,
		"\nMeaning: Two People\nReading (hiragana or romaji): ふたり\nMeaning Mnemonic: Two People mnemonic\nReading Mnemonic: ふたり mnemonic\n",
		InfoCard(vocabulary(2, "二人", "Two People", "ふたり")))
	assert.Equal(t, "\nMeaning: Ground\nMnemonic: Ground mnemonic\n", InfoCard(radical(3, "一", "Ground")))
	assert.Equal(t, "\nMeaning: Cat\nMeaning Mnemonic: Cat mnemonic\n", InfoCard(kanaVocabulary(4, "ねこ", "Cat")))
}
