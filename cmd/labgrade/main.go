package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // Graded, at or above any --min-score
	ExitBelowThreshold = 1 // Graded, but the total is below --min-score
	ExitError          = 2 // Configuration or runtime error
)

// BelowThresholdError indicates that grading completed but the total score
// is below the requested minimum.
type BelowThresholdError struct {
	Score float64
	Min   float64
}

func (e *BelowThresholdError) Error() string {
	return fmt.Sprintf("total score %s is below the minimum of %s", formatScore(e.Score), formatScore(e.Min))
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var belowErr *BelowThresholdError
		if errors.As(err, &belowErr) {
			os.Exit(ExitBelowThreshold)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
