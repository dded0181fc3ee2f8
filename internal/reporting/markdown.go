package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/jslab/labgrade/internal/models"
	"github.com/jslab/labgrade/internal/timing"
)

const (
	markFound   = "✅"
	markMissing = "❌"
	markNote    = "❗"
	notAvail    = "N/A"
)

var mdEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// mdEscape neutralizes angle brackets so labels such as "<word> matches!"
// are not read as HTML tags.
func mdEscape(s string) string {
	return mdEscaper.Replace(s)
}

// Summary renders the CI step summary: marks table, total and collapsible
// per-task details.
func Summary(run *Run) string {
	r := run.Report
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Autograding Summary\n\n", r.Lab)
	b.WriteString("## Submission\n\n")
	b.WriteString(submissionBlock(run))
	b.WriteString("\n## Files Checked\n\n")
	b.WriteString(filesBlock(run))

	b.WriteString("\n## Marks Breakdown\n\n")
	b.WriteString("| Component | Marks |\n|---|---:|\n")
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "| %s | %s |\n", t.Name, Fraction(t.Score, t.MaxScore))
	}
	fmt.Fprintf(&b, "| Submission (timing) | %s |\n", Fraction(r.Timing.Score, r.Timing.Max))

	b.WriteString("\n## Total Marks\n\n")
	fmt.Fprintf(&b, "**%s / %s**\n\n", formatMarks(r.TotalScore), formatMarks(r.TotalMax))
	b.WriteString("## Detailed Checks (What you did / missed)\n")

	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "\n<details>\n  <summary><strong>%s</strong> — %s</summary>\n\n  <br/>\n\n",
			mdEscape(t.Name), Fraction(t.Score, t.MaxScore))

		fmt.Fprintf(&b, "  <strong>%s Found</strong>\n\n", markFound)
		writeList(&b, t.Satisfied, "(Nothing detected)")

		fmt.Fprintf(&b, "\n  <br/><br/>\n\n  <strong>%s Missing</strong>\n\n", markMissing)
		writeList(&b, t.Missing, "(Nothing missing)")

		fmt.Fprintf(&b, "\n  <br/><br/>\n\n  <strong>%s Deductions / Notes</strong>\n\n", markNote)
		writeList(&b, deductions(t), "No deductions.")

		b.WriteString("\n</details>\n")
	}

	if run.FeedbackPath != "" {
		fmt.Fprintf(&b, "\n> Full feedback is also available in: `%s`\n", run.FeedbackPath)
	}
	return b.String()
}

// Feedback renders the student-facing README with a checklist per task and
// an explanation of the marking rules.
func Feedback(run *Run) string {
	r := run.Report
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Feedback\n\n", r.Lab)
	b.WriteString("## Submission\n\n")
	b.WriteString(submissionBlock(run))
	b.WriteString("\n## Files Checked\n\n")
	b.WriteString(filesBlock(run))
	b.WriteString("\n---\n\n## TODO-by-TODO Feedback\n")

	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "\n### %s — **%s**\n\n", t.Name, Fraction(t.Score, t.MaxScore))

		b.WriteString("**Checklist**\n")
		checklist := Checklist(t)
		if len(checklist) == 0 {
			b.WriteString("- (No checks available)\n")
		}
		for _, line := range checklist {
			fmt.Fprintf(&b, "- %s\n", mdEscape(line))
		}

		b.WriteString("\n**Deductions / Notes**\n")
		notes := deductions(t)
		if len(notes) == 0 {
			fmt.Fprintf(&b, "- %s No deductions. Good job!\n", markFound)
		}
		for _, n := range notes {
			fmt.Fprintf(&b, "- %s %s\n", markNote, mdEscape(n))
		}
	}

	b.WriteString(`
---

## How marks were deducted (rules)

- HTML comments are ignored (so examples in comments do NOT count).
- JS comments are ignored (so examples in comments do NOT count).
- Checks are intentionally light: they look for key constructs and basic structure.
- Code can be in ANY order; repeated code is allowed.
- Common equivalents are accepted, and naming is flexible.
- Missing required items reduce marks proportionally within that TODO.

---

## Timing analytics notes

- "Accepted" time is based on the repository **created_at** timestamp (repo is created when the assignment is accepted).
- "Push" times are inferred from **GitHub Actions workflow runs** triggered by the **push** event.
  - If your workflow does not run on push, or Actions is disabled, timing values may show as N/A.
`)
	return b.String()
}

// Checklist returns one line per check, satisfied first, marked found or
// missing.
func Checklist(t models.TaskResult) []string {
	lines := make([]string, 0, len(t.Satisfied)+len(t.Missing))
	for _, s := range t.Satisfied {
		lines = append(lines, markFound+" "+s)
	}
	for _, m := range t.Missing {
		lines = append(lines, markMissing+" "+m)
	}
	return lines
}

func deductions(t models.TaskResult) []string {
	notes := make([]string, 0, len(t.Missing)+len(t.Notes))
	for _, m := range t.Missing {
		notes = append(notes, "Missing: "+m)
	}
	return append(notes, t.Notes...)
}

func writeList(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", empty)
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", mdEscape(it))
	}
}

func submissionBlock(run *Run) string {
	r := run.Report
	loc := run.Location
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- **Lab:** %s\n", r.Lab)
	if !r.Timing.Deadline.IsZero() {
		deadline := r.Timing.Deadline.In(loc)
		fmt.Fprintf(&b, "- **Deadline (%s / UTC%s):** %s\n",
			timing.ZoneLabel(loc), deadline.Format("-07:00"), deadline.Format(time.RFC3339))
	}
	commit := run.CommitTime
	if commit == "" {
		commit = notAvail
	}
	fmt.Fprintf(&b, "- **Last commit time (from git log):** %s\n", commit)
	fmt.Fprintf(&b, "- **Submission marks:** **%s** (%s)\n", Fraction(r.Timing.Score, r.Timing.Max), r.Timing.Label)
	b.WriteString(analyticsBlock(run, loc))
	return b.String()
}

func analyticsBlock(run *Run, loc *time.Location) string {
	if run.Analytics == nil {
		reason := run.AnalyticsNote
		if reason == "" {
			reason = "not collected"
		}
		return fmt.Sprintf("- **Timing analytics:** %s (%s)\n", notAvail, reason)
	}

	a := run.Analytics
	orNA := func(t time.Time) string {
		if s := timing.Format(t, loc); s != "" {
			return s
		}
		return notAvail
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- **Accepted (repo created):** %s\n", orNA(a.Accepted))

	if minutes, ok := a.AcceptToFirstPush(); ok {
		fmt.Fprintf(&b, "- **First push:** %s (**Accept → First push:** %s min)\n", orNA(a.FirstPush), formatMarks(minutes))
	} else {
		fmt.Fprintf(&b, "- **First push:** %s (Accept → First push: %s)\n", orNA(a.FirstPush), notAvail)
	}

	if minutes, ok := a.SecondToThirdPush(); ok {
		fmt.Fprintf(&b, "- **2nd → 3rd push duration:** %s min (2nd: %s, 3rd: %s)\n",
			formatMarks(minutes), orNA(a.SecondPush), orNA(a.ThirdPush))
	} else {
		fmt.Fprintf(&b, "- **2nd → 3rd push duration:** %s (need at least 3 pushes; detected pushes: %d)\n",
			notAvail, a.PushCount)
	}
	return b.String()
}

func filesBlock(run *Run) string {
	var b strings.Builder
	if run.HTMLFile != "" {
		fmt.Fprintf(&b, "- HTML: %s %s\n", markFound, run.HTMLFile)
	} else {
		fmt.Fprintf(&b, "- HTML: %s No HTML file found\n", markMissing)
	}
	if run.ScriptFile != "" {
		fmt.Fprintf(&b, "- JS: %s %s\n", markFound, run.ScriptFile)
	} else {
		fmt.Fprintf(&b, "- JS: %s No student .js file found\n", markMissing)
	}

	if run.Link != nil {
		b.WriteString("- **HTML script link (not graded):** ")
		if run.Link.HasExternal {
			fmt.Fprintf(&b, "%s Has external &lt;script src=...&gt;", markFound)
			if run.Link.MatchesStudentFile {
				b.WriteString(" (matches your JS filename)")
			} else {
				b.WriteString(" (may not match your JS filename)")
			}
		} else {
			fmt.Fprintf(&b, "%s No external &lt;script src=...&gt; found", markMissing)
		}
		b.WriteString("\n")
	}
	return b.String()
}
