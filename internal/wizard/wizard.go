// Package wizard collects the settings for a new .labgrade.yaml, either
// interactively or from defaults.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/jslab/labgrade/internal/projectconfig"
	"golang.org/x/term"
)

// InitSpec holds all fields collected during the init wizard.
type InitSpec struct {
	Lab           string
	Rubric        string
	Deadline      string
	Timezone      string
	SubmissionMax float64
	LateMarks     float64
	Artifacts     string
	GitHub        bool
}

// DefaultSpec returns the settings used by `labgrade init --yes`.
func DefaultSpec() *InitSpec {
	cfg := projectconfig.New()
	late := 0.0
	if n := len(cfg.Submission.Tiers); n > 0 {
		late = cfg.Submission.Tiers[n-1].Marks
	}
	return &InitSpec{
		Lab:           cfg.Lab,
		Deadline:      cfg.Submission.Deadline,
		Timezone:      cfg.Submission.Timezone,
		SubmissionMax: cfg.Submission.MaxMarks(),
		LateMarks:     late,
		Artifacts:     cfg.Paths.Artifacts,
		GitHub:        cfg.GitHubEnabled(),
	}
}

const configTemplate = `# labgrade project configuration
lab: {{ printf "%q" .Lab }}
{{- if .Rubric }}
rubric: {{ printf "%q" .Rubric }}
{{- end }}
paths:
  artifacts: {{ printf "%q" .Artifacts }}
submission:
  deadline: {{ printf "%q" .Deadline }}
  timezone: {{ printf "%q" .Timezone }}
  max: {{ marks .SubmissionMax }}
  tiers:
    - label: "Late submission"
      marks: {{ marks .LateMarks }}
github:
  enabled: {{ .GitHub }}
`

// RunInitWizard runs an interactive huh form seeded with initial.
func RunInitWizard(in io.Reader, out io.Writer, initial *InitSpec) (*InitSpec, error) {
	if initial == nil {
		initial = DefaultSpec()
	}
	var (
		lab       = initial.Lab
		rubric    = initial.Rubric
		deadline  = initial.Deadline
		timezone  = initial.Timezone
		maxRaw    = formatMarks(initial.SubmissionMax)
		lateRaw   = formatMarks(initial.LateMarks)
		artifacts = initial.Artifacts
		github    = initial.GitHub
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Lab name").
				Description("Shown in feedback headings").
				Value(&lab).
				Validate(required("lab name")),
			huh.NewInput().
				Title("Rubric file").
				Description("Path to a YAML rubric; leave empty for the built-in lab").
				Placeholder("rubric.yaml").
				Value(&rubric),
			huh.NewInput().
				Title("Deadline").
				Description("RFC 3339 timestamp with offset").
				Placeholder("2026-02-04T23:59:00+03:00").
				Value(&deadline).
				Validate(ValidateDeadline),
			huh.NewInput().
				Title("Time zone").
				Description("IANA zone used to display times").
				Placeholder("Asia/Riyadh").
				Value(&timezone).
				Validate(ValidateTimezone),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Submission marks").
				Description("Marks for submitting on time").
				Value(&maxRaw).
				Validate(ValidateMarks),
			huh.NewInput().
				Title("Late submission marks").
				Description("Marks for submitting after the deadline").
				Value(&lateRaw).
				Validate(ValidateMarks),
			huh.NewInput().
				Title("Artifacts directory").
				Value(&artifacts).
				Validate(required("artifacts directory")),
			huh.NewConfirm().
				Title("Collect GitHub timing analytics?").
				Value(&github),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec := &InitSpec{
		Lab:       strings.TrimSpace(lab),
		Rubric:    strings.TrimSpace(rubric),
		Deadline:  strings.TrimSpace(deadline),
		Timezone:  strings.TrimSpace(timezone),
		Artifacts: strings.TrimSpace(artifacts),
		GitHub:    github,
	}
	spec.SubmissionMax, _ = parseMarks(maxRaw)
	spec.LateMarks, _ = parseMarks(lateRaw)
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the spec before it is written.
func (s *InitSpec) Validate() error {
	if strings.TrimSpace(s.Lab) == "" {
		return fmt.Errorf("lab name is required")
	}
	if err := ValidateDeadline(s.Deadline); err != nil {
		return err
	}
	if err := ValidateTimezone(s.Timezone); err != nil {
		return err
	}
	if s.SubmissionMax < 0 || s.LateMarks < 0 {
		return fmt.Errorf("marks must not be negative")
	}
	if s.LateMarks > s.SubmissionMax {
		return fmt.Errorf("late submission marks (%v) exceed submission marks (%v)", s.LateMarks, s.SubmissionMax)
	}
	return nil
}

// GenerateConfig renders a .labgrade.yaml from the given spec.
func GenerateConfig(spec *InitSpec) (string, error) {
	tmpl, err := template.New("config").
		Funcs(template.FuncMap{"marks": formatMarks}).
		Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// ValidateDeadline requires an RFC 3339 timestamp.
func ValidateDeadline(s string) error {
	if _, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("deadline must look like 2026-02-04T23:59:00+03:00")
	}
	return nil
}

// ValidateTimezone requires a zone name the time package can load.
func ValidateTimezone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("time zone is required")
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown time zone %q", s)
	}
	return nil
}

// ValidateMarks requires a non-negative number.
func ValidateMarks(s string) error {
	_, err := parseMarks(s)
	return err
}

func parseMarks(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("marks must be a non-negative number")
	}
	return v, nil
}

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
