package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jslab/labgrade/internal/discovery"
	"github.com/jslab/labgrade/internal/graders"
	"github.com/jslab/labgrade/internal/lab"
	"github.com/jslab/labgrade/internal/models"
	"github.com/jslab/labgrade/internal/projectconfig"
	"github.com/jslab/labgrade/internal/reporting"
	"github.com/jslab/labgrade/internal/scoring"
	"github.com/jslab/labgrade/internal/source"
	"github.com/jslab/labgrade/internal/spinner"
	"github.com/jslab/labgrade/internal/timing"
	"github.com/jslab/labgrade/internal/watch"
	"github.com/spf13/cobra"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

const (
	noScriptReason     = "No student .js file found."
	unreadableReason   = "Could not read JS file at: %s"
	missingGitHubNote  = "Missing GITHUB_TOKEN or GITHUB_REPOSITORY."
	disabledTimingNote = "disabled"
)

// now is replaced in tests.
var now = time.Now

var watchExtensions = []string{".js", ".html", ".htm", ".yaml", ".yml"}

type gradeOptions struct {
	dir       string
	artifacts string
	rubric    string
	format    string
	junit     string
	html      bool
	noTiming  bool
	minScore  float64
	watch     bool
}

func newGradeCommand() *cobra.Command {
	var opts gradeOptions

	cmd := &cobra.Command{
		Use:   "grade [directory]",
		Short: "Grade a lab submission",
		Long: `Grade the lab submission in a directory (default: current directory).

Finds the HTML page and the student's script, strips comments, runs every
rubric check and adds the submission timing marks from the last git commit.
Writes grade.csv and feedback/README.md to the artifacts directory, and
appends a summary to $GITHUB_STEP_SUMMARY when it is set.

When GITHUB_TOKEN and GITHUB_REPOSITORY are set, timing analytics
(accept time and push durations) are fetched from the GitHub API. They never
affect the score.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dir = "."
			if len(args) > 0 {
				opts.dir = args[0]
			}
			switch opts.format {
			case formatText, formatJSON, formatMarkdown:
			default:
				return fmt.Errorf("unknown format %q (use text, json or markdown)", opts.format)
			}
			if !cmd.Flags().Changed("min-score") {
				opts.minScore = -1
			}

			if opts.watch {
				return watchAndGrade(cmd, opts)
			}

			run, err := gradeAndPrint(cmd.Context(), opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if opts.minScore >= 0 && run.Report.TotalScore < opts.minScore {
				return &BelowThresholdError{Score: run.Report.TotalScore, Min: opts.minScore}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.artifacts, "artifacts", "", "Artifacts directory (default: paths.artifacts from .labgrade.yaml)")
	cmd.Flags().StringVar(&opts.rubric, "rubric", "", "Rubric YAML file (default: built-in lab)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Console output format: text, json, markdown")
	cmd.Flags().StringVar(&opts.junit, "junit", "", "Write JUnit XML results to this path")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Also render the feedback as feedback/index.html")
	cmd.Flags().BoolVar(&opts.noTiming, "no-timing", false, "Skip GitHub timing analytics")
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 0, "Exit with code 1 when the total score is below this value")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-grade whenever the submission changes")

	return cmd
}

// gradeAndPrint grades once and writes the console output in opts.format.
func gradeAndPrint(ctx context.Context, opts gradeOptions, out io.Writer) (*reporting.Run, error) {
	run, err := grade(ctx, opts)
	if err != nil {
		return nil, err
	}

	switch opts.format {
	case formatJSON:
		return run, reporting.WriteJSON(out, run)
	case formatMarkdown:
		fmt.Fprint(out, reporting.Summary(run)) //nolint:errcheck
	default:
		if err := reporting.WriteText(out, run.Report); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(out, "\n%s\n", reporting.ConsoleLine(run.Report)) //nolint:errcheck
	return run, nil
}

// grade runs the whole pipeline for opts.dir and writes the artifacts.
func grade(ctx context.Context, opts gradeOptions) (*reporting.Run, error) {
	cfg, err := projectconfig.Load(opts.dir)
	if err != nil {
		return nil, err
	}

	rubric, err := loadRubric(opts.dir, opts.rubric, cfg)
	if err != nil {
		return nil, err
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	artifacts := cfg.Paths.Artifacts
	if opts.artifacts != "" {
		artifacts = opts.artifacts
	}

	files, err := discovery.Discover(opts.dir, discovery.Options{
		ScriptNames: cfg.Discovery.ScriptNames,
		IgnoreFiles: cfg.Discovery.IgnoreFiles,
		IgnoreDirs:  []string{filepath.Base(artifacts)},
	})
	if err != nil {
		return nil, fmt.Errorf("finding submission files: %w", err)
	}
	slog.Debug("Discovered submission files", "root", files.Root, "html", files.HTML, "script", files.Script)

	htmlText := ""
	if files.HTML != "" {
		data, err := os.ReadFile(files.HTML)
		if err != nil {
			slog.Warn("Could not read HTML file", "path", files.HTML, "error", err)
		} else {
			htmlText = source.StripHTML(string(data))
		}
	}

	text, reason := readScript(files)
	results := graders.EvaluateAll(rubric.Tasks, text, reason)

	sub := timing.SubmissionTime(ctx, files.Root, now())
	report := scoring.Aggregate(rubric.Name, results, policy.Score(sub.Time, sub.Known))

	run := reporting.NewRun(report)
	run.HTMLFile = files.Rel(files.HTML)
	run.ScriptFile = files.Rel(files.Script)
	run.CommitTime = sub.Raw
	run.Location = cfg.Location()
	if files.HTML != "" && files.Script != "" {
		link := source.InspectScriptLink(htmlText, files.Script)
		run.Link = &link
	}
	run.Analytics, run.AnalyticsNote = collectAnalytics(ctx, cfg, opts.noTiming)

	artifactsDir := resolvePath(files.Root, artifacts)
	run.FeedbackPath = files.Rel(filepath.Join(artifactsDir, cfg.Paths.Feedback, "README.md"))

	junitPath := ""
	if opts.junit != "" {
		junitPath = resolvePath(files.Root, opts.junit)
	}

	written, err := reporting.WriteArtifacts(run, reporting.ArtifactOptions{
		Dir:         artifactsDir,
		FeedbackDir: cfg.Paths.Feedback,
		HTML:        opts.html,
		JUnitPath:   junitPath,
		StepSummary: os.Getenv("GITHUB_STEP_SUMMARY"),
	})
	if err != nil {
		return nil, fmt.Errorf("writing artifacts: %w", err)
	}
	slog.Debug("Wrote artifacts", "csv", written.GradeCSV, "feedback", written.Feedback, "html", written.HTML, "junit", written.JUnit)

	return run, nil
}

// loadRubric picks the rubric from the flag, then the config, then the
// built-in lab. Config paths are relative to dir.
func loadRubric(dir, flagPath string, cfg *projectconfig.ProjectConfig) (*lab.Rubric, error) {
	path := flagPath
	if path == "" && cfg.Rubric != "" {
		path = resolvePath(dir, cfg.Rubric)
	}
	if path == "" {
		rubric := lab.JSAdvance()
		rubric.Name = cfg.Lab
		return rubric, nil
	}

	rubric, err := lab.LoadRubric(path)
	if err != nil {
		return nil, fmt.Errorf("loading rubric %s: %w", path, err)
	}
	if rubric.Name == "" {
		rubric.Name = cfg.Lab
	}
	return rubric, nil
}

// readScript returns the cleaned student script, or nil with the reason every
// task should report.
func readScript(files discovery.Files) (*string, string) {
	if files.Script == "" {
		return nil, noScriptReason
	}
	data, err := os.ReadFile(files.Script)
	if err != nil {
		slog.Warn("Could not read script", "path", files.Script, "error", err)
		return nil, fmt.Sprintf(unreadableReason, files.Script)
	}
	text := source.StripJS(string(data))
	return &text, ""
}

// collectAnalytics fetches GitHub timing analytics. Failures are reported as a
// note, never as an error.
func collectAnalytics(ctx context.Context, cfg *projectconfig.ProjectConfig, skip bool) (*models.Analytics, string) {
	if skip || !cfg.GitHubEnabled() {
		return nil, disabledTimingNote
	}

	token, repo := os.Getenv("GITHUB_TOKEN"), os.Getenv("GITHUB_REPOSITORY")
	if token == "" || repo == "" {
		return nil, analyticsNote(timing.ErrNoRepository)
	}

	timeout := time.Duration(cfg.GitHub.Timeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := timing.NewHTTPClient(cfg.GitHub.APIBase, token,
		timing.WithPerPage(cfg.GitHub.PerPage),
		timing.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	stop := spinner.Start(os.Stderr, "Fetching GitHub timing analytics...")
	a, err := timing.CollectAnalytics(ctx, client, repo)
	stop()
	if err != nil {
		slog.Debug("Timing analytics unavailable", "repo", repo, "error", err)
		return nil, analyticsNote(err)
	}
	return &a, ""
}

func analyticsNote(err error) string {
	if errors.Is(err, timing.ErrNoRepository) {
		return missingGitHubNote
	}
	return err.Error()
}

func watchAndGrade(cmd *cobra.Command, opts gradeOptions) error {
	out := cmd.OutOrStdout()

	cfg, err := projectconfig.Load(opts.dir)
	if err != nil {
		return err
	}
	artifacts := cfg.Paths.Artifacts
	if opts.artifacts != "" {
		artifacts = opts.artifacts
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if _, err := gradeAndPrint(ctx, opts, out); err != nil {
		slog.Error("Grading failed", "error", err)
	}
	fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)\n", opts.dir) //nolint:errcheck

	return watch.Watch(ctx, opts.dir, watch.Options{
		IgnoreDirs: []string{filepath.Base(artifacts)},
		Extensions: watchExtensions,
	}, func(ctx context.Context, changed []string) error {
		names := make([]string, 0, len(changed))
		for _, p := range changed {
			names = append(names, filepath.Base(p))
		}
		fmt.Fprintf(out, "\nChanged: %s\n", strings.Join(names, ", ")) //nolint:errcheck
		_, err := gradeAndPrint(ctx, opts, out)
		return err
	})
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
