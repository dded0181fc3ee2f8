package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jslab/labgrade/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one graded lab.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one task, or to the submission timing.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents missing checks in a task.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a task that could not be graded at all.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a test as skipped.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a graded run to JUnit XML format. Each task is a
// test case that fails when any check is missing.
func ConvertToJUnit(run *Run) *JUnitTestSuites {
	r := run.Report

	suite := JUnitTestSuite{
		Name:      r.Lab,
		Timestamp: run.GeneratedAt.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "run_id", Value: run.ID},
			{Name: "lab", Value: r.Lab},
			{Name: "score", Value: Fraction(r.TotalScore, r.TotalMax)},
			{Name: "tasks_score", Value: Fraction(r.TasksScore, r.TasksMax)},
			{Name: "submission_score", Value: Fraction(r.Timing.Score, r.Timing.Max)},
		},
	}

	for _, t := range r.Tasks {
		suite.TestCases = append(suite.TestCases, convertTask(r.Lab, t))
	}
	suite.TestCases = append(suite.TestCases, convertTiming(r.Lab, r.Timing))

	for _, tc := range suite.TestCases {
		suite.Tests++
		switch {
		case tc.Failure != nil:
			suite.Failures++
		case tc.Error != nil:
			suite.Errors++
		}
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertTask(lab string, t models.TaskResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      t.Name,
		Classname: lab,
	}

	switch {
	case !t.Checked():
		msg := "task was not graded"
		if len(t.Notes) > 0 {
			msg = t.Notes[0]
		}
		tc.Error = &JUnitError{
			Message: msg,
			Type:    "MissingInput",
			Body:    strings.Join(t.Notes, "\n"),
		}
	case len(t.Missing) > 0:
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: score=%s", t.TaskID, Fraction(t.Score, t.MaxScore)),
			Type:    "MissingChecks",
			Body:    formatMissing(t),
		}
	}
	return tc
}

func convertTiming(lab string, s models.TimingScore) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      "Submission (timing)",
		Classname: lab,
	}
	if s.Late {
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: score=%s", s.Label, Fraction(s.Score, s.Max)),
			Type:    "LateSubmission",
		}
	}
	return tc
}

func formatMissing(t models.TaskResult) string {
	var b strings.Builder
	for _, m := range t.Missing {
		fmt.Fprintf(&b, "[MISSING] %s\n", m)
	}
	for _, n := range t.Notes {
		fmt.Fprintf(&b, "[NOTE] %s\n", n)
	}
	return b.String()
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(run *Run, path string) error {
	suites := ConvertToJUnit(run)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
