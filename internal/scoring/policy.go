package scoring

import (
	"fmt"
	"time"

	"github.com/jslab/labgrade/internal/models"
)

// Tier awards Marks to a submission that is late by at most LateBy.
// A zero LateBy means "any amount late".
type Tier struct {
	Label  string
	LateBy time.Duration
	Marks  float64
}

// Policy maps a submission time onto a timing score. On or before Deadline a
// submission earns Max; after it, the first tier whose LateBy covers the delay
// applies. Tiers should be ordered by increasing LateBy with the catch-all
// (LateBy == 0) last.
type Policy struct {
	Deadline time.Time
	Max      float64
	OnTime   string
	Tiers    []Tier
}

// Validate checks that every late submission falls into some tier.
func (p Policy) Validate() error {
	if p.Deadline.IsZero() {
		return fmt.Errorf("timing policy: deadline is required")
	}
	if p.Max < 0 {
		return fmt.Errorf("timing policy: max must not be negative")
	}
	if len(p.Tiers) == 0 {
		return fmt.Errorf("timing policy: at least one late tier is required")
	}
	if last := p.Tiers[len(p.Tiers)-1]; last.LateBy != 0 {
		return fmt.Errorf("timing policy: last tier %q must have no late_by limit", last.Label)
	}
	for _, t := range p.Tiers {
		if t.Marks < 0 || t.Marks > p.Max {
			return fmt.Errorf("timing policy: tier %q marks %v outside [0, %v]", t.Label, t.Marks, p.Max)
		}
	}
	return nil
}

// Score returns the timing score for a submission made at submittedAt. When
// known is false the submission time could not be determined and the
// submission is treated as late with the lowest tier.
func (p Policy) Score(submittedAt time.Time, known bool) models.TimingScore {
	score := models.TimingScore{
		Max:         p.Max,
		SubmittedAt: submittedAt,
		Deadline:    p.Deadline,
	}

	if known && !submittedAt.After(p.Deadline) {
		score.Score = p.Max
		score.Label = p.OnTime
		return score
	}

	score.Late = true
	if len(p.Tiers) == 0 {
		return score
	}

	tier := p.Tiers[len(p.Tiers)-1]
	if known {
		delay := submittedAt.Sub(p.Deadline)
		for _, t := range p.Tiers {
			if t.LateBy == 0 || delay <= t.LateBy {
				tier = t
				break
			}
		}
	}
	score.Score = tier.Marks
	score.Label = tier.Label
	return score
}
