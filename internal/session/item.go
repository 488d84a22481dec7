package session

import (
	"github.com/samber/lo"

	"github.com/kingrea/kanikani/internal/wanikani"
)

// Pair names one due review: the assignment to report against and the
// subject to quiz. Kind may be empty when the caller does not know it yet.
type Pair struct {
	AssignmentID int
	SubjectID    int
	Kind         wanikani.Kind
}

// PairsFromAssignments builds review pairs in assignment order.
func PairsFromAssignments(assignments []wanikani.Assignment) []Pair {
	return lo.Map(assignments, func(a wanikani.Assignment, _ int) Pair {
		return Pair{AssignmentID: a.ID, SubjectID: a.Data.SubjectID, Kind: a.Data.SubjectType}
	})
}

// StudyItem tracks one subject's progress within a review session.
type StudyItem struct {
	SubjectID               int
	AssignmentID            int
	IncorrectMeaningAnswers int
	IncorrectReadingAnswers int
	NeedsMeaning            bool
	NeedsReading            bool
}

// NewStudyItem starts an item that still needs both answers, except that
// radicals never need a reading. Pairs built by PairsFromAssignments always
// carry a Kind, so a radical never needs a reading from construction on.
// A Pair with an empty Kind needs a reading until the review fetches the
// subject and clears the flag, which happens before the first prompt.
func NewStudyItem(p Pair) StudyItem {
	return StudyItem{
		SubjectID:    p.SubjectID,
		AssignmentID: p.AssignmentID,
		NeedsMeaning: true,
		NeedsReading: p.Kind == "" || p.Kind.NeedsReading(),
	}
}

// Done reports whether both answers have been given correctly.
func (i StudyItem) Done() bool {
	return !i.NeedsMeaning && !i.NeedsReading
}

// Result is the record submitted once the item is done.
func (i StudyItem) Result() wanikani.Review {
	return wanikani.Review{
		AssignmentID:            i.AssignmentID,
		IncorrectMeaningAnswers: i.IncorrectMeaningAnswers,
		IncorrectReadingAnswers: i.IncorrectReadingAnswers,
	}
}

// Phase is the kind of answer a prompt asks for.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseMeaning
	PhaseReading
)

func (p Phase) String() string {
	switch p {
	case PhaseMeaning:
		return "Meaning"
	case PhaseReading:
		return "Reading"
	}
	return "None"
}

// NextPhase is the prompt the item needs next: meaning before reading.
func (i StudyItem) NextPhase() Phase {
	switch {
	case i.NeedsMeaning:
		return PhaseMeaning
	case i.NeedsReading:
		return PhaseReading
	}
	return PhaseNone
}
