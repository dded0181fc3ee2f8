package reporting

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jslab/labgrade/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToJUnit(t *testing.T) {
	run := newTestRun()
	run.Report.Tasks = append(run.Report.Tasks, models.TaskResult{
		TaskID:   "todo1",
		Name:     "TODO 1",
		MaxScore: 16,
		Notes:    []string{"No student .js file found."},
	})

	suites := ConvertToJUnit(run)

	require.Len(t, suites.TestSuites, 1)
	suite := suites.TestSuites[0]
	assert.Equal(t, "4-2-js-advance-main", suite.Name)
	assert.Equal(t, "2026-02-05T08:00:00Z", suite.Timestamp)

	// three tasks plus timing
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 2, suite.Failures, "one task with missing checks and the late submission")
	assert.Equal(t, 1, suite.Errors)
	assert.Equal(t, suite.Tests, suites.Tests)

	props := map[string]string{}
	for _, p := range suite.Properties {
		props[p.Name] = p.Value
	}
	assert.Equal(t, "run-1", props["run_id"])
	assert.Equal(t, "22.67/42", props["score"])

	passed := suite.TestCases[0]
	assert.Nil(t, passed.Failure)
	assert.Nil(t, passed.Error)

	failed := suite.TestCases[1]
	require.NotNil(t, failed.Failure)
	assert.Equal(t, "todo7: score=4.67/14", failed.Failure.Message)
	assert.Contains(t, failed.Failure.Body, "[MISSING] Uses pattern.test(word)")

	errored := suite.TestCases[2]
	require.NotNil(t, errored.Error)
	assert.Equal(t, "No student .js file found.", errored.Error.Message)

	timing := suite.TestCases[3]
	assert.Equal(t, "Submission (timing)", timing.Name)
	require.NotNil(t, timing.Failure)
	assert.Equal(t, "LateSubmission", timing.Failure.Type)
}

func TestConvertToJUnit_OnTime(t *testing.T) {
	run := newTestRun()
	run.Report.Timing.Late = false

	suite := ConvertToJUnit(run).TestSuites[0]
	assert.Nil(t, suite.TestCases[len(suite.TestCases)-1].Failure)
	assert.Equal(t, 1, suite.Failures)
}

func TestWriteJUnitXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	require.NoError(t, WriteJUnitXML(newTestRun(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Equal(t, 3, parsed.Tests)
	require.Len(t, parsed.TestSuites, 1)
	assert.Len(t, parsed.TestSuites[0].TestCases, 3)
}
