// Package projectconfig provides the ProjectConfig struct and loader for
// .labgrade.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/jslab/labgrade/internal/lab"
	"github.com/jslab/labgrade/internal/scoring"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = ".labgrade.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultLab          = lab.JSAdvanceName
	DefaultArtifactsDir = "artifacts"
	DefaultFeedbackDir  = "feedback"

	DefaultDeadline       = lab.JSAdvanceDeadline
	DefaultTimezone       = "Asia/Riyadh"
	DefaultSubmissionMax  = lab.SubmissionMax
	DefaultSubmissionLate = lab.SubmissionLate
	DefaultOnTimeLabel    = lab.OnTimeLabel
	DefaultLateLabel      = lab.LateLabel

	DefaultGitHubAPI     = "https://api.github.com"
	DefaultGitHubTimeout = 20
	DefaultGitHubPerPage = 100
)

// DefaultScriptNames are checked, in order, before any other .js file.
var DefaultScriptNames = []string{"script.js", "app.js", "main.js", "index.js"}

// DefaultIgnoreFiles are grader files that must never be graded as the
// student's script.
var DefaultIgnoreFiles = []string{"grade.cjs", "grade.js"}

// PathsConfig holds output locations.
type PathsConfig struct {
	Artifacts string `yaml:"artifacts,omitempty" validate:"required"`
	Feedback  string `yaml:"feedback,omitempty" validate:"required"`
}

// TierConfig is one late-submission tier.
type TierConfig struct {
	Label  string  `yaml:"label" validate:"required"`
	LateBy string  `yaml:"late_by,omitempty"`
	Marks  float64 `yaml:"marks" validate:"gte=0"`
}

// SubmissionConfig holds the deadline and timing marks.
type SubmissionConfig struct {
	Deadline    string       `yaml:"deadline,omitempty" validate:"required"`
	Timezone    string       `yaml:"timezone,omitempty" validate:"required"`
	Max         *float64     `yaml:"max,omitempty" validate:"omitnil,gte=0"`
	OnTimeLabel string       `yaml:"on_time_label,omitempty"`
	Tiers       []TierConfig `yaml:"tiers,omitempty" validate:"required,min=1,dive"`
}

// GitHubConfig holds timing analytics settings.
type GitHubConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	APIBase string `yaml:"api_base,omitempty" validate:"required,url"`
	Timeout int    `yaml:"timeout,omitempty" validate:"gt=0"`
	PerPage int    `yaml:"per_page,omitempty" validate:"gte=1,lte=100"`
}

// DiscoveryConfig controls how student files are located.
type DiscoveryConfig struct {
	ScriptNames []string `yaml:"script_names,omitempty"`
	IgnoreFiles []string `yaml:"ignore_files,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .labgrade.yaml.
type ProjectConfig struct {
	Lab        string           `yaml:"lab,omitempty" validate:"required"`
	Rubric     string           `yaml:"rubric,omitempty"`
	Paths      PathsConfig      `yaml:"paths,omitempty"`
	Submission SubmissionConfig `yaml:"submission,omitempty"`
	GitHub     GitHubConfig     `yaml:"github,omitempty"`
	Discovery  DiscoveryConfig  `yaml:"discovery,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Lab: DefaultLab,
		Paths: PathsConfig{
			Artifacts: DefaultArtifactsDir,
			Feedback:  DefaultFeedbackDir,
		},
		Submission: SubmissionConfig{
			Deadline:    DefaultDeadline,
			Timezone:    DefaultTimezone,
			Max:         floatPtr(DefaultSubmissionMax),
			OnTimeLabel: DefaultOnTimeLabel,
			Tiers: []TierConfig{
				{Label: DefaultLateLabel, Marks: DefaultSubmissionLate},
			},
		},
		GitHub: GitHubConfig{
			Enabled: boolPtr(true),
			APIBase: DefaultGitHubAPI,
			Timeout: DefaultGitHubTimeout,
			PerPage: DefaultGitHubPerPage,
		},
		Discovery: DiscoveryConfig{
			ScriptNames: append([]string(nil), DefaultScriptNames...),
			IgnoreFiles: append([]string(nil), DefaultIgnoreFiles...),
		},
	}
}

// Load finds .labgrade.yaml by walking up from startDir (max 10 levels),
// unmarshals it, fills in missing fields with defaults and validates the
// result. If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .labgrade.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Lab != "" {
		dst.Lab = src.Lab
	}
	if src.Rubric != "" {
		dst.Rubric = src.Rubric
	}

	// Paths
	if src.Paths.Artifacts != "" {
		dst.Paths.Artifacts = src.Paths.Artifacts
	}
	if src.Paths.Feedback != "" {
		dst.Paths.Feedback = src.Paths.Feedback
	}

	// Submission
	if src.Submission.Deadline != "" {
		dst.Submission.Deadline = src.Submission.Deadline
	}
	if src.Submission.Timezone != "" {
		dst.Submission.Timezone = src.Submission.Timezone
	}
	if src.Submission.Max != nil {
		dst.Submission.Max = src.Submission.Max
	}
	if src.Submission.OnTimeLabel != "" {
		dst.Submission.OnTimeLabel = src.Submission.OnTimeLabel
	}
	if len(src.Submission.Tiers) > 0 {
		dst.Submission.Tiers = src.Submission.Tiers
	}

	// GitHub
	if src.GitHub.Enabled != nil {
		dst.GitHub.Enabled = src.GitHub.Enabled
	}
	if src.GitHub.APIBase != "" {
		dst.GitHub.APIBase = src.GitHub.APIBase
	}
	if src.GitHub.Timeout != 0 {
		dst.GitHub.Timeout = src.GitHub.Timeout
	}
	if src.GitHub.PerPage != 0 {
		dst.GitHub.PerPage = src.GitHub.PerPage
	}

	// Discovery
	if len(src.Discovery.ScriptNames) > 0 {
		dst.Discovery.ScriptNames = src.Discovery.ScriptNames
	}
	if len(src.Discovery.IgnoreFiles) > 0 {
		dst.Discovery.IgnoreFiles = src.Discovery.IgnoreFiles
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and that the submission section builds
// a usable timing policy.
func (c *ProjectConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid %s: %w", FileName, err)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return nil
}

// Location returns the configured time zone. An unknown zone name falls back
// to the fixed offset of the deadline.
func (c *ProjectConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Submission.Timezone); err == nil {
		return loc
	}
	if deadline, err := time.Parse(time.RFC3339, c.Submission.Deadline); err == nil {
		return deadline.Location()
	}
	return time.UTC
}

// GitHubEnabled reports whether timing analytics should be fetched.
func (c *ProjectConfig) GitHubEnabled() bool {
	return c.GitHub.Enabled == nil || *c.GitHub.Enabled
}

// Policy builds the submission timing policy from the config.
func (c *ProjectConfig) Policy() (scoring.Policy, error) {
	deadline, err := time.Parse(time.RFC3339, c.Submission.Deadline)
	if err != nil {
		return scoring.Policy{}, fmt.Errorf("submission.deadline: %w", err)
	}

	p := scoring.Policy{
		Deadline: deadline,
		Max:      c.Submission.MaxMarks(),
		OnTime:   c.Submission.OnTimeLabel,
	}
	for _, t := range c.Submission.Tiers {
		var lateBy time.Duration
		if t.LateBy != "" {
			lateBy, err = time.ParseDuration(t.LateBy)
			if err != nil {
				return scoring.Policy{}, fmt.Errorf("submission tier %q late_by: %w", t.Label, err)
			}
		}
		p.Tiers = append(p.Tiers, scoring.Tier{Label: t.Label, LateBy: lateBy, Marks: t.Marks})
	}

	if err := p.Validate(); err != nil {
		return scoring.Policy{}, err
	}
	return p, nil
}

// MaxMarks returns the on-time submission marks. An explicit 0 turns timing
// marks off.
func (s SubmissionConfig) MaxMarks() float64 {
	if s.Max == nil {
		return DefaultSubmissionMax
	}
	return *s.Max
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}
