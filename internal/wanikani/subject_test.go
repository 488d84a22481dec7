package wanikani

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kanjiJSON = `{
  "id": 440,
  "object": "kanji",
  "url": "https://api.wanikani.com/v2/subjects/440",
  "data_updated_at": "2024-01-02T03:04:05.000000Z",
  "data": {
    "created_at": "2012-02-27T19:55:19.000000Z",
    "level": 1,
    "slug": "一",
    "hidden_at": null,
    "document_url": "https://www.wanikani.com/kanji/%E4%B8%80",
    "characters": "一",
    "meanings": [
      {"meaning": "One", "primary": true, "accepted_answer": true},
      {"meaning": "Uno", "primary": false, "accepted_answer": false}
    ],
    "auxiliary_meanings": [
      {"type": "whitelist", "meaning": "1"},
      {"type": "blacklist", "meaning": "Won"}
    ],
    "readings": [
      {"type": "onyomi", "primary": true, "reading": "いち", "accepted_answer": true},
      {"type": "kunyomi", "primary": false, "reading": "ひと", "accepted_answer": false}
    ],
    "component_subject_ids": [1],
    "amalgamation_subject_ids": [2467],
    "visually_similar_subject_ids": [],
    "meaning_mnemonic": "Lying on the ground is one line.",
    "meaning_hint": null,
    "reading_mnemonic": "Ichi!",
    "reading_hint": null,
    "lesson_position": 26,
    "spaced_repetition_system_id": 2
  }
}`

const imageRadicalJSON = `{
  "id": 8761,
  "object": "radical",
  "url": "https://api.wanikani.com/v2/subjects/8761",
  "data_updated_at": "2024-01-02T03:04:05.000000Z",
  "data": {
    "created_at": "2019-03-12T00:00:00.000000Z",
    "level": 1,
    "slug": "gun",
    "document_url": "https://www.wanikani.com/radicals/gun",
    "characters": null,
    "character_images": [
      {"url": "https://files.wanikani.com/a.png", "content_type": "image/png", "metadata": {"color": "#000000", "dimensions": "64x64", "style_name": "64px"}},
      {"url": "https://files.wanikani.com/a.svg", "content_type": "image/svg+xml", "metadata": {"inline_styles": true}}
    ],
    "meanings": [{"meaning": "Gun", "primary": true, "accepted_answer": true}],
    "auxiliary_meanings": [],
    "amalgamation_subject_ids": [],
    "meaning_mnemonic": "Bang.",
    "lesson_position": 3,
    "spaced_repetition_system_id": 2
  }
}`

const kanaVocabularyJSON = `{
  "id": 9210,
  "object": "kana_vocabulary",
  "url": "https://api.wanikani.com/v2/subjects/9210",
  "data_updated_at": "2024-01-02T03:04:05.000000Z",
  "data": {
    "created_at": "2023-01-01T00:00:00.000000Z",
    "level": 8,
    "slug": "ねこ",
    "document_url": "https://www.wanikani.com/vocabulary/ねこ",
    "characters": "ねこ",
    "meanings": [{"meaning": "Cat", "primary": true, "accepted_answer": true}],
    "auxiliary_meanings": [],
    "parts_of_speech": ["noun"],
    "meaning_mnemonic": "Meow.",
    "context_sentences": [{"en": "A cat.", "ja": "ねこです。"}],
    "lesson_position": 0,
    "spaced_repetition_system_id": 1
  }
}`

func TestSubjectDecodesKanji(t *testing.T) {
	var s Subject
	require.NoError(t, json.Unmarshal([]byte(kanjiJSON), &s))

	assert.Equal(t, 440, s.ID)
	assert.Equal(t, KindKanji, s.Kind)
	require.NotNil(t, s.Kanji)
	assert.Nil(t, s.Radical)

	chars, ok := s.Characters()
	assert.True(t, ok)
	assert.Equal(t, "一", chars)
	assert.Equal(t, []string{"One", "1"}, s.AcceptedMeanings())
	assert.Equal(t, []string{"いち"}, s.AcceptedReadings())
	assert.Equal(t, "One", s.PrimaryMeaning())
	assert.Equal(t, "いち", s.PrimaryReading())
	assert.Equal(t, "Ichi!", s.ReadingMnemonic())
	assert.Equal(t, 1, s.Level())
	assert.True(t, s.NeedsReading())
}

func TestSubjectDecodesImageRadical(t *testing.T) {
	var s Subject
	require.NoError(t, json.Unmarshal([]byte(imageRadicalJSON), &s))

	assert.Equal(t, KindRadical, s.Kind)
	_, ok := s.Characters()
	assert.False(t, ok)
	img, ok := s.CharacterImage()
	require.True(t, ok)
	assert.Equal(t, "https://files.wanikani.com/a.svg", img.URL)
	assert.Empty(t, s.AcceptedReadings())
	assert.Empty(t, s.PrimaryReading())
	assert.False(t, s.NeedsReading())
}

func TestSubjectDecodesKanaVocabulary(t *testing.T) {
	var s Subject
	require.NoError(t, json.Unmarshal([]byte(kanaVocabularyJSON), &s))

	assert.Equal(t, KindKanaVocabulary, s.Kind)
	assert.Equal(t, []string{"ねこ"}, s.AcceptedReadings())
	assert.Equal(t, "ねこ", s.PrimaryReading())
	assert.Empty(t, s.ReadingMnemonic())
}

func TestSubjectRejectsUnknownKind(t *testing.T) {
	var s Subject
	err := json.Unmarshal([]byte(`{"id": 1, "object": "sentence", "data": {}}`), &s)
	assert.ErrorContains(t, err, "unknown subject object")
}

func TestSubjectRequiresAcceptedMeaning(t *testing.T) {
	raw := `{"id": 2, "object": "kanji", "data": {"characters": "二", "meanings": [{"meaning": "Two", "primary": true, "accepted_answer": false}], "readings": []}}`
	var s Subject
	err := json.Unmarshal([]byte(raw), &s)
	assert.ErrorContains(t, err, "no accepted meanings")
}

func TestSubjectReadingAcceptedUnlessMarkedFalse(t *testing.T) {
	raw := `{"id": 3, "object": "kanji", "data": {"characters": "猫",
		"meanings": [{"meaning": "Cat", "primary": true}],
		"readings": [
			{"reading": "ねこ", "primary": true},
			{"reading": "びょう", "primary": false, "accepted_answer": false}
		]}}`
	var s Subject
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, []string{"Cat"}, s.AcceptedMeanings())
	assert.Equal(t, []string{"ねこ"}, s.AcceptedReadings())
}

func TestSubjectRequiresAcceptedReading(t *testing.T) {
	raw := `{"id": 4, "object": "vocabulary", "data": {"characters": "猫",
		"meanings": [{"meaning": "Cat", "primary": true}],
		"readings": [{"reading": "ねこ", "primary": true, "accepted_answer": false}]}}`
	var s Subject
	err := json.Unmarshal([]byte(raw), &s)
	assert.ErrorContains(t, err, "no accepted readings")
}

func TestSubjectRoundTripsEnvelope(t *testing.T) {
	var s Subject
	require.NoError(t, json.Unmarshal([]byte(kanaVocabularyJSON), &s))
	encoded, err := json.Marshal(s)
	require.NoError(t, err)

	var again Subject
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, s.Kind, again.Kind)
	assert.Equal(t, s.KanaVocabulary.Characters, again.KanaVocabulary.Characters)
}
