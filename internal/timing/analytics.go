package timing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jslab/labgrade/internal/models"
	"golang.org/x/sync/errgroup"
)

// pushEvent is the workflow run event that marks a student push.
const pushEvent = "push"

// CollectAnalytics infers accept and push times for repo. The repository
// creation time stands in for the moment the assignment was accepted, and
// workflow runs triggered by push stand in for pushes. Both requests run
// concurrently under ctx.
func CollectAnalytics(ctx context.Context, client GitHubClient, repo string) (models.Analytics, error) {
	if client == nil || repo == "" {
		return models.Analytics{}, ErrNoRepository
	}

	var (
		record *Repository
		runs   []WorkflowRun
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := client.Repository(gctx, repo)
		if err != nil {
			return fmt.Errorf("fetching repository %s: %w", repo, err)
		}
		record = r
		return nil
	})
	g.Go(func() error {
		r, err := client.WorkflowRuns(gctx, repo)
		if err != nil {
			return fmt.Errorf("fetching workflow runs for %s: %w", repo, err)
		}
		runs = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Analytics{}, err
	}

	pushes := PushRuns(runs)
	slog.Debug("Collected GitHub analytics", "repo", repo, "runs", len(runs), "pushes", len(pushes))

	a := models.Analytics{PushCount: len(pushes)}
	if record != nil {
		a.Accepted = record.CreatedAt
	}
	for i, dst := range []*time.Time{&a.FirstPush, &a.SecondPush, &a.ThirdPush} {
		if i < len(pushes) {
			*dst = pushes[i].CreatedAt
		}
	}
	return a, nil
}

// PushRuns returns the runs triggered by push, oldest first.
func PushRuns(runs []WorkflowRun) []WorkflowRun {
	var pushes []WorkflowRun
	for _, r := range runs {
		if strings.EqualFold(r.Event, pushEvent) {
			pushes = append(pushes, r)
		}
	}
	slices.SortStableFunc(pushes, func(a, b WorkflowRun) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return pushes
}
