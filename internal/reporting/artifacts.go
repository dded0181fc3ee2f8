package reporting

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ArtifactOptions controls which files WriteArtifacts produces.
type ArtifactOptions struct {
	// Dir is the artifacts directory, e.g. "artifacts".
	Dir string
	// FeedbackDir is the feedback subdirectory name inside Dir.
	FeedbackDir string
	// HTML also renders the feedback as index.html.
	HTML bool
	// JUnitPath writes JUnit XML when non-empty.
	JUnitPath string
	// StepSummary is appended with the summary when non-empty.
	StepSummary string
}

// Artifacts lists the files written by WriteArtifacts.
type Artifacts struct {
	GradeCSV string
	Feedback string
	HTML     string
	JUnit    string
}

// WriteArtifacts writes grade.csv, the feedback README and the optional HTML,
// JUnit and step summary outputs for run.
func WriteArtifacts(run *Run, opts ArtifactOptions) (Artifacts, error) {
	var out Artifacts

	feedbackDir := filepath.Join(opts.Dir, opts.FeedbackDir)
	if err := os.MkdirAll(feedbackDir, 0o755); err != nil {
		return out, fmt.Errorf("creating %s: %w", feedbackDir, err)
	}

	if run.FeedbackPath == "" {
		run.FeedbackPath = filepath.ToSlash(filepath.Join(feedbackDir, "README.md"))
	}

	var csvBuf bytes.Buffer
	if err := WriteGradeCSV(&csvBuf, run.Report); err != nil {
		return out, err
	}
	out.GradeCSV = filepath.Join(opts.Dir, "grade.csv")
	if err := os.WriteFile(out.GradeCSV, csvBuf.Bytes(), 0o644); err != nil {
		return out, fmt.Errorf("writing %s: %w", out.GradeCSV, err)
	}

	feedback := Feedback(run)
	out.Feedback = filepath.Join(feedbackDir, "README.md")
	if err := os.WriteFile(out.Feedback, []byte(feedback), 0o644); err != nil {
		return out, fmt.Errorf("writing %s: %w", out.Feedback, err)
	}

	if opts.HTML {
		page, err := RenderHTML(run.Report.Lab+" — Feedback", feedback)
		if err != nil {
			return out, err
		}
		out.HTML = filepath.Join(feedbackDir, "index.html")
		if err := os.WriteFile(out.HTML, page, 0o644); err != nil {
			return out, fmt.Errorf("writing %s: %w", out.HTML, err)
		}
	}

	if opts.JUnitPath != "" {
		if dir := filepath.Dir(opts.JUnitPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return out, fmt.Errorf("creating %s: %w", dir, err)
			}
		}
		if err := WriteJUnitXML(run, opts.JUnitPath); err != nil {
			return out, err
		}
		out.JUnit = opts.JUnitPath
	}

	if opts.StepSummary != "" {
		if err := appendFile(opts.StepSummary, Summary(run)); err != nil {
			return out, err
		}
	}

	slog.Debug("Wrote artifacts", "csv", out.GradeCSV, "feedback", out.Feedback, "html", out.HTML, "junit", out.JUnit)
	return out, nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening step summary %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing step summary %s: %w", path, err)
	}
	return f.Close()
}
