package wanikani

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Kind names one of the four subject variants as the API spells it in the
// "object" field.
type Kind string

const (
	KindRadical        Kind = "radical"
	KindKanji          Kind = "kanji"
	KindVocabulary     Kind = "vocabulary"
	KindKanaVocabulary Kind = "kana_vocabulary"
)

// Valid reports whether k is one of the four known variants.
func (k Kind) Valid() bool {
	switch k {
	case KindRadical, KindKanji, KindVocabulary, KindKanaVocabulary:
		return true
	}
	return false
}

// FriendlyName is the label shown to learners.
func (k Kind) FriendlyName() string {
	switch k {
	case KindRadical:
		return "Radical"
	case KindKanji:
		return "Kanji"
	case KindVocabulary:
		return "Vocabulary"
	case KindKanaVocabulary:
		return "Kana Vocabulary"
	}
	return string(k)
}

// Meaning is one gloss attached to a subject.
type Meaning struct {
	Meaning        string `json:"meaning"`
	Primary        bool   `json:"primary"`
	AcceptedAnswer *bool  `json:"accepted_answer,omitempty"`
}

func (m Meaning) accepted() bool {
	return m.AcceptedAnswer == nil || *m.AcceptedAnswer
}

// AuxiliaryMeaning is a user-independent extra gloss. Whitelisted entries are
// accepted as answers, blacklisted ones are not.
type AuxiliaryMeaning struct {
	Meaning string `json:"meaning"`
	Type    string `json:"type"`
}

// Reading is one pronunciation in hiragana.
type Reading struct {
	Reading        string `json:"reading"`
	Primary        bool   `json:"primary"`
	AcceptedAnswer *bool  `json:"accepted_answer,omitempty"`
	Type           string `json:"type,omitempty"`
}

func (r Reading) accepted() bool {
	return r.AcceptedAnswer == nil || *r.AcceptedAnswer
}

// CharacterImage references artwork for radicals without a unicode glyph.
type CharacterImage struct {
	URL         string                 `json:"url"`
	ContentType string                 `json:"content_type"`
	Metadata    CharacterImageMetadata `json:"metadata"`
}

// CharacterImageMetadata describes one rendition of a character image.
type CharacterImageMetadata struct {
	InlineStyles *bool  `json:"inline_styles,omitempty"`
	Color        string `json:"color,omitempty"`
	Dimensions   string `json:"dimensions,omitempty"`
	StyleName    string `json:"style_name,omitempty"`
}

// ContextSentence pairs a Japanese example with its translation.
type ContextSentence struct {
	EN string `json:"en"`
	JA string `json:"ja"`
}

// Common carries the fields every subject variant shares.
type Common struct {
	CreatedAt                time.Time          `json:"created_at"`
	DocumentURL              string             `json:"document_url"`
	HiddenAt                 *time.Time         `json:"hidden_at"`
	LessonPosition           int                `json:"lesson_position"`
	Level                    int                `json:"level"`
	Slug                     string             `json:"slug"`
	Meanings                 []Meaning          `json:"meanings"`
	AuxiliaryMeanings        []AuxiliaryMeaning `json:"auxiliary_meanings"`
	MeaningMnemonic          string             `json:"meaning_mnemonic"`
	SpacedRepetitionSystemID int                `json:"spaced_repetition_system_id"`
}

// RadicalData is the payload of a radical subject.
type RadicalData struct {
	Common
	Characters             *string          `json:"characters"`
	CharacterImages        []CharacterImage `json:"character_images"`
	AmalgamationSubjectIDs []int            `json:"amalgamation_subject_ids"`
}

// KanjiData is the payload of a kanji subject.
type KanjiData struct {
	Common
	Characters                string    `json:"characters"`
	Readings                  []Reading `json:"readings"`
	MeaningHint               string    `json:"meaning_hint"`
	ReadingMnemonic           string    `json:"reading_mnemonic"`
	ReadingHint               string    `json:"reading_hint"`
	ComponentSubjectIDs       []int     `json:"component_subject_ids"`
	AmalgamationSubjectIDs    []int     `json:"amalgamation_subject_ids"`
	VisuallySimilarSubjectIDs []int     `json:"visually_similar_subject_ids"`
}

// VocabularyData is the payload of a vocabulary subject.
type VocabularyData struct {
	Common
	Characters          string            `json:"characters"`
	Readings            []Reading         `json:"readings"`
	ReadingMnemonic     string            `json:"reading_mnemonic"`
	PartsOfSpeech       []string          `json:"parts_of_speech"`
	ContextSentences    []ContextSentence `json:"context_sentences"`
	ComponentSubjectIDs []int             `json:"component_subject_ids"`
}

// KanaVocabularyData is the payload of a kana-only vocabulary subject. Its
// characters double as its only reading.
type KanaVocabularyData struct {
	Common
	Characters       string            `json:"characters"`
	PartsOfSpeech    []string          `json:"parts_of_speech"`
	ContextSentences []ContextSentence `json:"context_sentences"`
}

// Subject is a closed union over the four variants. Exactly one of the
// variant pointers is set, matching Kind.
type Subject struct {
	ID            int
	Kind          Kind
	URL           string
	DataUpdatedAt time.Time

	Radical        *RadicalData
	Kanji          *KanjiData
	Vocabulary     *VocabularyData
	KanaVocabulary *KanaVocabularyData
}

type subjectEnvelope struct {
	ID            int             `json:"id"`
	Object        Kind            `json:"object"`
	URL           string          `json:"url"`
	DataUpdatedAt time.Time       `json:"data_updated_at"`
	Data          json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the {"object": kind, "data": {...}} resource form.
func (s *Subject) UnmarshalJSON(raw []byte) error {
	var env subjectEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	if !env.Object.Valid() {
		return fmt.Errorf("unknown subject object %q", env.Object)
	}
	decoded := Subject{ID: env.ID, Kind: env.Object, URL: env.URL, DataUpdatedAt: env.DataUpdatedAt}
	var target any
	switch env.Object {
	case KindRadical:
		decoded.Radical = &RadicalData{}
		target = decoded.Radical
	case KindKanji:
		decoded.Kanji = &KanjiData{}
		target = decoded.Kanji
	case KindVocabulary:
		decoded.Vocabulary = &VocabularyData{}
		target = decoded.Vocabulary
	case KindKanaVocabulary:
		decoded.KanaVocabulary = &KanaVocabularyData{}
		target = decoded.KanaVocabulary
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("subject %d: missing data", env.ID)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("subject %d: %w", env.ID, err)
	}
	if len(decoded.AcceptedMeanings()) == 0 {
		return fmt.Errorf("subject %d: no accepted meanings", env.ID)
	}
	if decoded.NeedsReading() && len(decoded.AcceptedReadings()) == 0 {
		return fmt.Errorf("subject %d: no accepted readings", env.ID)
	}
	*s = decoded
	return nil
}

// MarshalJSON writes the same envelope UnmarshalJSON reads.
func (s Subject) MarshalJSON() ([]byte, error) {
	var data any
	switch s.Kind {
	case KindRadical:
		data = s.Radical
	case KindKanji:
		data = s.Kanji
	case KindVocabulary:
		data = s.Vocabulary
	case KindKanaVocabulary:
		data = s.KanaVocabulary
	}
	return json.Marshal(struct {
		ID            int       `json:"id"`
		Object        Kind      `json:"object"`
		URL           string    `json:"url,omitempty"`
		DataUpdatedAt time.Time `json:"data_updated_at"`
		Data          any       `json:"data"`
	}{s.ID, s.Kind, s.URL, s.DataUpdatedAt, data})
}

func (s *Subject) common() *Common {
	switch s.Kind {
	case KindRadical:
		return &s.Radical.Common
	case KindKanji:
		return &s.Kanji.Common
	case KindVocabulary:
		return &s.Vocabulary.Common
	case KindKanaVocabulary:
		return &s.KanaVocabulary.Common
	}
	return &Common{}
}

// Characters returns the display glyphs. ok is false for radicals that only
// ship a reference image.
func (s *Subject) Characters() (chars string, ok bool) {
	switch s.Kind {
	case KindRadical:
		if s.Radical.Characters == nil || strings.TrimSpace(*s.Radical.Characters) == "" {
			return "", false
		}
		return *s.Radical.Characters, true
	case KindKanji:
		return s.Kanji.Characters, true
	case KindVocabulary:
		return s.Vocabulary.Characters, true
	case KindKanaVocabulary:
		return s.KanaVocabulary.Characters, true
	}
	return "", false
}

// CharacterImage picks the SVG rendition of a radical's artwork.
func (s *Subject) CharacterImage() (CharacterImage, bool) {
	if s.Kind != KindRadical {
		return CharacterImage{}, false
	}
	images := s.Radical.CharacterImages
	if svg, ok := lo.Find(images, func(img CharacterImage) bool {
		return img.ContentType == "image/svg+xml"
	}); ok {
		return svg, true
	}
	if len(images) > 0 {
		return images[0], true
	}
	return CharacterImage{}, false
}

// AcceptedMeanings lists every gloss that counts as a correct answer, in
// API order, followed by whitelisted auxiliary meanings.
func (s *Subject) AcceptedMeanings() []string {
	c := s.common()
	meanings := lo.FilterMap(c.Meanings, func(m Meaning, _ int) (string, bool) {
		return m.Meaning, m.accepted() && m.Meaning != ""
	})
	aux := lo.FilterMap(c.AuxiliaryMeanings, func(m AuxiliaryMeaning, _ int) (string, bool) {
		return m.Meaning, m.Type == "whitelist" && m.Meaning != ""
	})
	return append(meanings, aux...)
}

// AcceptedReadings lists the readings that count as correct. Radicals have
// none; kana vocabulary is read as written.
func (s *Subject) AcceptedReadings() []string {
	switch s.Kind {
	case KindKanji:
		return acceptedReadings(s.Kanji.Readings)
	case KindVocabulary:
		return acceptedReadings(s.Vocabulary.Readings)
	case KindKanaVocabulary:
		return []string{s.KanaVocabulary.Characters}
	}
	return nil
}

func acceptedReadings(readings []Reading) []string {
	return lo.FilterMap(readings, func(r Reading, _ int) (string, bool) {
		return r.Reading, r.accepted() && r.Reading != ""
	})
}

// NeedsReading reports whether a review of this subject asks for a reading.
func (s *Subject) NeedsReading() bool {
	return s.Kind.NeedsReading()
}

// NeedsReading reports whether subjects of kind k are quizzed on reading.
func (k Kind) NeedsReading() bool {
	return k != KindRadical
}

// PrimaryMeaning returns the primary gloss, falling back to the first one.
func (s *Subject) PrimaryMeaning() string {
	meanings := s.common().Meanings
	if m, ok := lo.Find(meanings, func(m Meaning) bool { return m.Primary }); ok {
		return m.Meaning
	}
	if len(meanings) > 0 {
		return meanings[0].Meaning
	}
	return ""
}

// PrimaryReading returns the primary reading, or "" for radicals.
func (s *Subject) PrimaryReading() string {
	var readings []Reading
	switch s.Kind {
	case KindKanji:
		readings = s.Kanji.Readings
	case KindVocabulary:
		readings = s.Vocabulary.Readings
	case KindKanaVocabulary:
		return s.KanaVocabulary.Characters
	default:
		return ""
	}
	if r, ok := lo.Find(readings, func(r Reading) bool { return r.Primary }); ok {
		return r.Reading
	}
	if len(readings) > 0 {
		return readings[0].Reading
	}
	return ""
}

// MeaningMnemonic returns the meaning mnemonic text.
func (s *Subject) MeaningMnemonic() string {
	return s.common().MeaningMnemonic
}

// ReadingMnemonic returns the reading mnemonic, or "" where there is none.
func (s *Subject) ReadingMnemonic() string {
	switch s.Kind {
	case KindKanji:
		return s.Kanji.ReadingMnemonic
	case KindVocabulary:
		return s.Vocabulary.ReadingMnemonic
	}
	return ""
}

// Level returns the WaniKani level the subject belongs to.
func (s *Subject) Level() int {
	return s.common().Level
}
