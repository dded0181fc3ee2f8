package timing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ErrNoCommit is returned when the last commit time cannot be read from git.
var ErrNoCommit = errors.New("no git commit found")

// IsInRepo returns true if dir is inside a git repository.
func IsInRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// LastCommitISO returns the strict ISO 8601 committer date of HEAD, exactly
// as git prints it.
func LastCommitISO(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "log", "-1", "--format=%cI")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s", ErrNoCommit, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: %w", ErrNoCommit, err)
	}
	iso := strings.TrimSpace(string(out))
	if iso == "" {
		return "", ErrNoCommit
	}
	return iso, nil
}

// Submission is the submission time used for timing marks.
type Submission struct {
	// Raw is the timestamp as reported, shown verbatim in feedback.
	Raw string
	// Time is the parsed timestamp; zero when Known is false.
	Time  time.Time
	Known bool
	// Fallback is set when git was unavailable and now was used instead.
	Fallback bool
}

// SubmissionTime reads the last commit time in dir. When dir is not a
// repository or git cannot report a commit, the submission is graded as if
// made at now. A timestamp git reports but that cannot be parsed leaves the
// time unknown.
func SubmissionTime(ctx context.Context, dir string, now time.Time) Submission {
	if !IsInRepo(ctx, dir) {
		slog.Debug("Not a git repository, using current time for submission", "dir", dir)
		return fallbackSubmission(now)
	}

	iso, err := LastCommitISO(ctx, dir)
	if err != nil {
		slog.Debug("No commit to read, using current time for submission", "dir", dir, "error", err)
		return fallbackSubmission(now)
	}

	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		slog.Debug("Unparseable commit timestamp", "value", iso, "error", err)
		return Submission{Raw: iso}
	}
	return Submission{Raw: iso, Time: t, Known: true}
}

func fallbackSubmission(now time.Time) Submission {
	return Submission{
		Raw:      now.UTC().Format(time.RFC3339),
		Time:     now,
		Known:    true,
		Fallback: true,
	}
}
