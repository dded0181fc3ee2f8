package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jslab/labgrade/internal/models"
)

type jsonEnvelope struct {
	RunID         string              `json:"runId"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	HTMLFile      string              `json:"htmlFile,omitempty"`
	ScriptFile    string              `json:"scriptFile,omitempty"`
	CommitTime    string              `json:"commitTime,omitempty"`
	Report        *models.GradeReport `json:"report"`
	Analytics     *models.Analytics   `json:"analytics,omitempty"`
	AnalyticsNote string              `json:"analyticsNote,omitempty"`
}

// WriteJSON writes the run as indented JSON.
func WriteJSON(w io.Writer, run *Run) error {
	env := jsonEnvelope{
		RunID:         run.ID,
		GeneratedAt:   run.GeneratedAt,
		HTMLFile:      run.HTMLFile,
		ScriptFile:    run.ScriptFile,
		CommitTime:    run.CommitTime,
		Report:        run.Report,
		Analytics:     run.Analytics,
		AnalyticsNote: run.AnalyticsNote,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
