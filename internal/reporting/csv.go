package reporting

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jslab/labgrade/internal/models"
)

// GradeCSVStudent is the student column value for the single aggregate row.
const GradeCSVStudent = "all_students"

// WriteGradeCSV writes the classroom grade file: a header and one row with
// the total score.
func WriteGradeCSV(w io.Writer, r *models.GradeReport) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"student", "score", "max_score"},
		{GradeCSVStudent, formatMarks(r.TotalScore), formatMarks(r.TotalMax)},
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("csv: writing grade: %w", err)
	}
	return nil
}
