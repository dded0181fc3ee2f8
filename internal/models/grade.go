package models

import (
	"math"
	"time"
)

// TaskResult is the outcome of grading one task against cleaned source text.
type TaskResult struct {
	TaskID    string   `json:"id"`
	Name      string   `json:"name"`
	MaxScore  float64  `json:"max"`
	Score     float64  `json:"score"`
	Satisfied []string `json:"satisfied"`
	Missing   []string `json:"missing"`
	// Notes carries soft failures: missing input, checks that could not run.
	Notes []string `json:"notes,omitempty"`
}

// Checked reports whether any predicate ran for this task. A task failed for
// missing input has no satisfied or missing labels.
func (r TaskResult) Checked() bool {
	return len(r.Satisfied)+len(r.Missing) > 0
}

// TimingScore is the submission-timing addend produced outside the analyzer.
type TimingScore struct {
	Score       float64   `json:"score"`
	Max         float64   `json:"max"`
	Label       string    `json:"label"`
	Late        bool      `json:"late"`
	SubmittedAt time.Time `json:"submittedAt"`
	Deadline    time.Time `json:"deadline"`
}

// GradeReport is the final, read-only result of one grading run.
type GradeReport struct {
	Lab        string       `json:"lab"`
	Tasks      []TaskResult `json:"tasks"`
	Timing     TimingScore  `json:"timing"`
	TasksScore float64      `json:"tasksScore"`
	TasksMax   float64      `json:"tasksMax"`
	TotalScore float64      `json:"totalScore"`
	TotalMax   float64      `json:"totalMax"`
}

// Analytics holds the accept and push timestamps inferred from GitHub.
// Zero times mean the value was not available.
type Analytics struct {
	Accepted   time.Time `json:"accepted,omitzero"`
	FirstPush  time.Time `json:"firstPush,omitzero"`
	SecondPush time.Time `json:"secondPush,omitzero"`
	ThirdPush  time.Time `json:"thirdPush,omitzero"`
	PushCount  int       `json:"pushCount"`
}

// AcceptToFirstPush returns the minutes between acceptance and the first push.
func (a Analytics) AcceptToFirstPush() (float64, bool) {
	return minutesBetween(a.Accepted, a.FirstPush)
}

// SecondToThirdPush returns the minutes between the second and third push.
func (a Analytics) SecondToThirdPush() (float64, bool) {
	return minutesBetween(a.SecondPush, a.ThirdPush)
}

func minutesBetween(from, to time.Time) (float64, bool) {
	if from.IsZero() || to.IsZero() {
		return 0, false
	}
	return math.Round(to.Sub(from).Minutes()*100) / 100, true
}
