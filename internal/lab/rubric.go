package lab

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jslab/labgrade/internal/checks"
	"github.com/jslab/labgrade/internal/graders"
	"github.com/jslab/labgrade/internal/validation"
	"gopkg.in/yaml.v3"
)

// Rubric is a named, ordered list of tasks.
type Rubric struct {
	Name  string
	Tasks []graders.Task
}

// MaxMarks is the sum of all task marks.
func (r *Rubric) MaxMarks() float64 {
	total := 0.0
	for _, t := range r.Tasks {
		total += t.Marks
	}
	return total
}

// Validate checks each task and rejects duplicate ids.
func (r *Rubric) Validate() error {
	if len(r.Tasks) == 0 {
		return fmt.Errorf("rubric %q has no tasks", r.Name)
	}
	seen := make(map[string]bool, len(r.Tasks))
	var errs []error
	for _, t := range r.Tasks {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate task id %q", t.ID))
		}
		seen[t.ID] = true
	}
	return errors.Join(errs...)
}

type rubricFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tasks       []struct {
		ID     string           `yaml:"id"`
		Name   string           `yaml:"name"`
		Marks  float64          `yaml:"marks"`
		Checks []map[string]any `yaml:"checks"`
	} `yaml:"tasks"`
}

// LoadRubric reads a rubric YAML file, validates it against the rubric schema
// and compiles every check into a predicate.
func LoadRubric(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rubric: %w", err)
	}
	return ParseRubric(data)
}

// ParseRubric is [LoadRubric] for in-memory YAML.
func ParseRubric(data []byte) (*Rubric, error) {
	if errs := validation.ValidateRubricBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid rubric:\n  %s", strings.Join(errs, "\n  "))
	}

	var f rubricFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rubric: %w", err)
	}

	rubric := &Rubric{Name: f.Name}
	for _, ft := range f.Tasks {
		task := graders.Task{ID: ft.ID, Name: ft.Name, Marks: ft.Marks}
		for i, spec := range ft.Checks {
			rule, err := checks.CreateFromSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("task %s check #%d: %w", ft.ID, i+1, err)
			}
			label, _ := spec["label"].(string)
			task.Predicates = append(task.Predicates, checks.Predicate{Label: label, Rule: rule})
		}
		rubric.Tasks = append(rubric.Tasks, task)
	}

	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	return rubric, nil
}
