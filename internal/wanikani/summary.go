package wanikani

import (
	"time"

	"github.com/samber/lo"
)

// Summary is the /summary report of what is currently available.
type Summary struct {
	Object        string      `json:"object"`
	URL           string      `json:"url"`
	DataUpdatedAt time.Time   `json:"data_updated_at"`
	Data          SummaryData `json:"data"`
}

// SummaryData groups subject ids by the hour they become available.
type SummaryData struct {
	Lessons       []SummaryBlock `json:"lessons"`
	Reviews       []SummaryBlock `json:"reviews"`
	NextReviewsAt *time.Time     `json:"next_reviews_at"`
}

// SummaryBlock lists subjects that became available at AvailableAt.
type SummaryBlock struct {
	AvailableAt time.Time `json:"available_at"`
	SubjectIDs  []int     `json:"subject_ids"`
}

// AvailableLessons flattens every lesson block.
func (s *Summary) AvailableLessons() []int {
	return flattenBlocks(s.Data.Lessons, time.Time{})
}

// AvailableReviews flattens the review blocks already due at now. The
// summary also lists upcoming hours, which are not reviewable yet.
func (s *Summary) AvailableReviews(now time.Time) []int {
	return flattenBlocks(s.Data.Reviews, now)
}

func flattenBlocks(blocks []SummaryBlock, now time.Time) []int {
	due := lo.Filter(blocks, func(b SummaryBlock, _ int) bool {
		return now.IsZero() || !b.AvailableAt.After(now)
	})
	return lo.FlatMap(due, func(b SummaryBlock, _ int) []int { return b.SubjectIDs })
}
