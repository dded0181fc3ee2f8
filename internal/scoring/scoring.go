// Package scoring holds the arithmetic of a grading run: per-task proportional
// scores, the submission timing policy and the final aggregate.
package scoring

import (
	"math"

	"github.com/jslab/labgrade/internal/models"
)

// Round2 rounds n to two decimal places, halves away from zero.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// TaskScore returns marks scaled by the satisfied fraction of checks, rounded
// to two decimals and clamped to [0, marks].
func TaskScore(marks float64, satisfied, total int) float64 {
	if total <= 0 || marks <= 0 {
		return 0
	}
	score := Round2(marks * float64(satisfied) / float64(total))
	return math.Max(0, math.Min(marks, score))
}

// Aggregate sums the task scores and the externally computed timing score
// into a report.
func Aggregate(lab string, results []models.TaskResult, timing models.TimingScore) *models.GradeReport {
	report := &models.GradeReport{
		Lab:    lab,
		Tasks:  results,
		Timing: timing,
	}

	for _, r := range results {
		report.TasksScore += r.Score
		report.TasksMax += r.MaxScore
	}
	report.TasksScore = Round2(report.TasksScore)
	report.TotalScore = Round2(report.TasksScore + timing.Score)
	report.TotalMax = report.TasksMax + timing.Max

	return report
}
