package reporting

import (
	"time"

	"github.com/jslab/labgrade/internal/models"
	"github.com/jslab/labgrade/internal/source"
)

var riyadh = time.FixedZone("Asia/Riyadh", 3*3600)

func newTestReport() *models.GradeReport {
	return &models.GradeReport{
		Lab: "4-2-js-advance-main",
		Tasks: []models.TaskResult{
			{
				TaskID:    "todo3",
				Name:      "TODO 3: String charAt() & length",
				MaxScore:  8,
				Score:     8,
				Satisfied: []string{"Uses .charAt(index)", "Uses .length"},
			},
			{
				TaskID:    "todo7",
				Name:      "TODO 7: Regex + forEach (match 'ab' using pattern.test)",
				MaxScore:  14,
				Score:     4.67,
				Satisfied: []string{"Loops through words using forEach()"},
				Missing:   []string{"Uses pattern.test(word) (or equivalent .test call)", `Logs "<word> matches!" for matched words (light)`},
			},
		},
		Timing: models.TimingScore{
			Score:    10,
			Max:      20,
			Label:    "Late submission",
			Late:     true,
			Deadline: time.Date(2026, 2, 4, 23, 59, 0, 0, riyadh),
		},
		TasksScore: 12.67,
		TasksMax:   22,
		TotalScore: 22.67,
		TotalMax:   42,
	}
}

func newTestRun() *Run {
	return &Run{
		ID:          "run-1",
		GeneratedAt: time.Date(2026, 2, 5, 8, 0, 0, 0, time.UTC),
		Report:      newTestReport(),
		HTMLFile:    "index.html",
		ScriptFile:  "script.js",
		Link:        &source.ScriptLink{HasExternal: true, MatchesStudentFile: true},
		CommitTime:  "2026-02-05T10:00:00+03:00",
		Analytics: &models.Analytics{
			Accepted:  time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC),
			FirstPush: time.Date(2026, 2, 1, 6, 45, 30, 0, time.UTC),
			PushCount: 1,
		},
		Location:     riyadh,
		FeedbackPath: "artifacts/feedback/README.md",
	}
}
