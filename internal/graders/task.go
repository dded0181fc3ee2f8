// Package graders turns predicate results into task scores.
package graders

import (
	"fmt"
	"log/slog"

	"github.com/jslab/labgrade/internal/checks"
	"github.com/jslab/labgrade/internal/models"
	"github.com/jslab/labgrade/internal/scoring"
)

// Task is one independently scored checklist item.
type Task struct {
	ID         string
	Name       string
	Marks      float64
	Predicates []checks.Predicate
}

// Validate reports configuration mistakes that would make a task unscorable.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task %q has no id", t.Name)
	}
	if t.Marks <= 0 {
		return fmt.Errorf("task %s: marks must be positive, got %v", t.ID, t.Marks)
	}
	if len(t.Predicates) == 0 {
		return fmt.Errorf("task %s: at least one check is required", t.ID)
	}
	for i, p := range t.Predicates {
		if p.Label == "" || p.Rule == nil {
			return fmt.Errorf("task %s: check #%d needs a label and a rule", t.ID, i+1)
		}
	}
	return nil
}

// Evaluate runs every predicate of task against cleaned text and scores the
// task by proportional deduction. A predicate that panics or returns an error
// counts as not satisfied and leaves a note; it never stops its siblings.
func Evaluate(task Task, text string) models.TaskResult {
	result := models.TaskResult{
		TaskID:    task.ID,
		Name:      task.Name,
		MaxScore:  task.Marks,
		Satisfied: []string{},
		Missing:   []string{},
	}

	for _, p := range task.Predicates {
		ok, err := check(p, text)
		if err != nil {
			slog.Debug("Check could not be evaluated", "task", task.ID, "check", p.Label, "error", err)
			result.Notes = append(result.Notes, fmt.Sprintf("Check could not be evaluated (%s): %v", p.Label, err))
		}
		if ok {
			result.Satisfied = append(result.Satisfied, p.Label)
		} else {
			result.Missing = append(result.Missing, p.Label)
		}
	}

	result.Score = scoring.TaskScore(task.Marks, len(result.Satisfied), len(task.Predicates))
	return result
}

// check runs a single predicate, converting a panic into an error.
func check(p checks.Predicate, text string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("panic: %v", r)
		}
	}()
	ok, err = p.Rule.Match(text)
	if err != nil {
		ok = false
	}
	return ok, err
}

// Fail scores task as zero without running any predicate. reason explains why
// the task could not be checked, e.g. no student file was found.
func Fail(task Task, reason string) models.TaskResult {
	return models.TaskResult{
		TaskID:    task.ID,
		Name:      task.Name,
		MaxScore:  task.Marks,
		Score:     0,
		Satisfied: []string{},
		Missing:   []string{},
		Notes:     []string{reason},
	}
}

// EvaluateAll grades every task against text. When text is nil no source
// could be obtained, so each task fails with missingReason instead.
func EvaluateAll(tasks []Task, text *string, missingReason string) []models.TaskResult {
	results := make([]models.TaskResult, 0, len(tasks))
	for _, task := range tasks {
		if text == nil {
			results = append(results, Fail(task, missingReason))
			continue
		}
		results = append(results, Evaluate(task, *text))
	}
	return results
}
