package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jslab/labgrade/internal/models"
	"github.com/mattn/go-runewidth"
)

// InterpretScore returns a plain-language label for a score fraction (0–1).
func InterpretScore(fraction float64) string {
	pct := fraction * 100
	switch {
	case pct >= 90:
		return "Excellent (>=90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretTask explains a single task result in a few words.
func InterpretTask(t models.TaskResult) string {
	switch {
	case !t.Checked():
		if len(t.Notes) > 0 {
			return t.Notes[0]
		}
		return "not graded"
	case len(t.Missing) == 0:
		return "all checks found"
	default:
		return fmt.Sprintf("%d of %d checks missing", len(t.Missing), len(t.Satisfied)+len(t.Missing))
	}
}

// WriteText prints an aligned console table of the report.
func WriteText(w io.Writer, r *models.GradeReport) error {
	rows := [][3]string{{"Component", "Marks", "Notes"}}
	for _, t := range r.Tasks {
		rows = append(rows, [3]string{t.Name, Fraction(t.Score, t.MaxScore), InterpretTask(t)})
	}
	rows = append(rows, [3]string{"Submission (timing)", Fraction(r.Timing.Score, r.Timing.Max), r.Timing.Label})

	var widths [2]int
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.Lab)
	for i, row := range rows {
		fmt.Fprintf(&b, "  %s  %s  %s\n", padRight(row[0], widths[0]), padLeft(row[1], widths[1]), row[2])
		if i == 0 {
			fmt.Fprintf(&b, "  %s\n", strings.Repeat("─", widths[0]+widths[1]+4+runewidth.StringWidth(row[2])))
		}
	}

	fraction := 0.0
	if r.TotalMax > 0 {
		fraction = r.TotalScore / r.TotalMax
	}
	fmt.Fprintf(&b, "\n  Total: %s  %s\n", Fraction(r.TotalScore, r.TotalMax), InterpretScore(fraction))

	_, err := io.WriteString(w, b.String())
	return err
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}
