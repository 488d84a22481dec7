// Package answer decides whether a learner's free-text answer matches a
// subject. Checks are total: a wrong answer is a false result, never an
// error.
package answer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kingrea/kanikani/internal/kana"
	"github.com/kingrea/kanikani/internal/wanikani"
)

// Normalize trims surrounding whitespace and case-folds s.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// CheckMeaning reports whether answer equals one of the subject's accepted
// meanings, ignoring case and surrounding whitespace.
func CheckMeaning(subject *wanikani.Subject, answer string) bool {
	return matchAny(Normalize(answer), subject.AcceptedMeanings())
}

// CheckReading reports whether answer is an accepted reading. Radicals have
// no reading, so any answer passes; callers never ask for one.
func CheckReading(subject *wanikani.Subject, answer string) bool {
	if !subject.NeedsReading() {
		return true
	}
	return ValidateReading(answer, subject.AcceptedReadings())
}

// ValidateReading accepts either script: the normalized answer is compared
// verbatim first, then after romaji to hiragana conversion.
func ValidateReading(answer string, accepted []string) bool {
	normalized := Normalize(answer)
	if matchAny(normalized, accepted) {
		return true
	}
	return matchAny(kana.RomajiToHiragana(normalized), accepted)
}

func matchAny(normalized string, accepted []string) bool {
	if normalized == "" {
		return false
	}
	for _, candidate := range accepted {
		if Normalize(candidate) == normalized {
			return true
		}
	}
	return false
}
