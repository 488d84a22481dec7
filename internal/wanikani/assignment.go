package wanikani

import (
	"time"

	"github.com/samber/lo"
)

// Pages carries collection pagination links.
type Pages struct {
	PerPage     int     `json:"per_page"`
	NextURL     *string `json:"next_url"`
	PreviousURL *string `json:"previous_url"`
}

// AssignmentCollection is one page of /assignments.
type AssignmentCollection struct {
	Object        string       `json:"object"`
	URL           string       `json:"url"`
	Pages         Pages        `json:"pages"`
	TotalCount    int          `json:"total_count"`
	DataUpdatedAt *time.Time   `json:"data_updated_at"`
	Data          []Assignment `json:"data"`
}

// Assignment links a user to a subject and records SRS progress.
type Assignment struct {
	ID            int            `json:"id"`
	Object        string         `json:"object"`
	URL           string         `json:"url"`
	DataUpdatedAt time.Time      `json:"data_updated_at"`
	Data          AssignmentData `json:"data"`
}

// AssignmentData holds the assignment's state as the service reports it.
type AssignmentData struct {
	CreatedAt     time.Time  `json:"created_at"`
	SubjectID     int        `json:"subject_id"`
	SubjectType   Kind       `json:"subject_type"`
	SRSStage      int        `json:"srs_stage"`
	UnlockedAt    *time.Time `json:"unlocked_at"`
	StartedAt     *time.Time `json:"started_at"`
	PassedAt      *time.Time `json:"passed_at"`
	BurnedAt      *time.Time `json:"burned_at"`
	AvailableAt   *time.Time `json:"available_at"`
	ResurrectedAt *time.Time `json:"resurrected_at"`
	Hidden        bool       `json:"hidden"`
}

// SubjectIDs lists the subject of each assignment in order.
func SubjectIDs(assignments []Assignment) []int {
	return lo.Map(assignments, func(a Assignment, _ int) int { return a.Data.SubjectID })
}
