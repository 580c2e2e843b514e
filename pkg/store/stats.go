package store

import (
	"math"
	"time"

	"github.com/nikogura/candidate-scorer/pkg/scoring"
)

// Stats summarizes a set of records for the reviewer dashboard.
type Stats struct {
	Total             int                            `json:"total"`
	ByStatus          map[Status]int                 `json:"by_status"`
	ByRecommendation  map[scoring.Recommendation]int `json:"by_recommendation"`
	Disqualified      int                            `json:"disqualified"`
	AveragePercentage float64                        `json:"average_percentage"`
	ApprovalRate      int                            `json:"approval_rate"`
	CompletedToday    int                            `json:"completed_today"`
	CompletedWeek     int                            `json:"completed_week"`
	CompletedMonth    int                            `json:"completed_month"`
}

// BuildStats computes dashboard statistics as of the current time.
func BuildStats(records []Record) (stats Stats) {
	stats = BuildStatsAt(records, time.Now())
	return stats
}

// BuildStatsAt counts records by status and, for completed ones, by
// recommendation. The average percentage covers completed records with a
// result and is rounded to one decimal. The approval rate is the share of
// those results recommending HIRE or HIRE_WITH_RESERVATIONS, as a whole
// percentage.
//
// Completion windows are measured from now: today starts at midnight in
// now's location, the week is the last seven days and the month starts at
// midnight on the same day of the previous month.
func BuildStatsAt(records []Record, now time.Time) (stats Stats) {
	stats = Stats{
		Total: len(records),
		ByStatus: map[Status]int{
			StatusPending:    0,
			StatusInProgress: 0,
			StatusCompleted:  0,
		},
		ByRecommendation: map[scoring.Recommendation]int{},
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := today.AddDate(0, -1, 0)

	sum := 0
	scored := 0
	approved := 0
	for _, r := range records {
		stats.ByStatus[r.Status]++

		if !r.Completed() {
			continue
		}

		completedAt := r.UpdatedAt
		if r.SubmittedAt != nil {
			completedAt = *r.SubmittedAt
		}
		if !completedAt.Before(today) {
			stats.CompletedToday++
		}
		if !completedAt.Before(weekAgo) {
			stats.CompletedWeek++
		}
		if !completedAt.Before(monthAgo) {
			stats.CompletedMonth++
		}

		if r.Result == nil {
			continue
		}

		stats.ByRecommendation[r.Result.Recommendation]++
		if r.Result.State == scoring.StateDisqualified {
			stats.Disqualified++
		}
		if r.Result.Recommendation == scoring.RecommendationHire ||
			r.Result.Recommendation == scoring.RecommendationHireWithReservations {
			approved++
		}
		sum += r.Result.Percentage
		scored++
	}

	if scored > 0 {
		stats.AveragePercentage = math.Floor(float64(sum)/float64(scored)*10+0.5) / 10
		stats.ApprovalRate = int(math.Floor(float64(approved)/float64(scored)*100 + 0.5))
	}

	return stats
}
