// Package lab defines the rubrics graded by labgrade: the built-in
// "4-2-js-advance-main" lab and custom rubrics loaded from YAML.
package lab

import (
	"time"

	"github.com/jslab/labgrade/internal/checks"
	"github.com/jslab/labgrade/internal/graders"
	"github.com/jslab/labgrade/internal/scoring"
)

const (
	// JSAdvanceName is the identifier of the built-in lab.
	JSAdvanceName = "4-2-js-advance-main"

	// JSAdvanceDeadline is 04 Feb 2026, 11:59 PM Asia/Riyadh.
	JSAdvanceDeadline = "2026-02-04T23:59:00+03:00"

	SubmissionMax  float64 = 20
	SubmissionLate float64 = 10

	OnTimeLabel = "On time"
	LateLabel   = "Late submission"
)

// quote matches any of the three JS string delimiters; inQuote matches the
// text between them.
const (
	quote   = "[\"'`]"
	inQuote = "[^\"'`]*"
)

// consoleLog is shared by every task that asks the student to print results.
var consoleLog = checks.PatternFold(`console\.log\s*\(`)

// JSAdvance returns the built-in rubric: seven TODO tasks worth 80 marks.
func JSAdvance() *Rubric {
	return &Rubric{
		Name: JSAdvanceName,
		Tasks: []graders.Task{
			studentObjectTask(),
			objectMapTask(),
			stringTask(),
			dateTask(),
			arraySpreadTask(),
			exceptionsTask(),
			regexForEachTask(),
		},
	}
}

// JSAdvancePolicy returns the submission timing policy for the built-in lab:
// full marks on or before the deadline, half marks after.
func JSAdvancePolicy() scoring.Policy {
	deadline, err := time.Parse(time.RFC3339, JSAdvanceDeadline)
	if err != nil {
		panic(err)
	}
	return scoring.Policy{
		Deadline: deadline,
		Max:      SubmissionMax,
		OnTime:   OnTimeLabel,
		Tiers: []scoring.Tier{
			{Label: LateLabel, Marks: SubmissionLate},
		},
	}
}

func studentObjectTask() graders.Task {
	return graders.Task{
		ID:    "todo1",
		Name:  "TODO 1: Object with getters & setters (Student)",
		Marks: 16,
		Predicates: []checks.Predicate{
			{
				Label: "Has a Student object or similar (object literal / class / const student)",
				Rule: checks.AnyOf(
					checks.PatternFold(`\b(student)\b`),
					checks.PatternFold(`\bclass\s+Student\b`),
					checks.PatternFold(`\bconst\s+\w+\s*=\s*\{`),
				),
			},
			{Label: "Includes firstName property (or key)", Rule: checks.PatternFold(`\bfirstName\b`)},
			{Label: "Includes lastName property (or key)", Rule: checks.PatternFold(`\blastName\b`)},
			{Label: "Includes gpa property (or key)", Rule: checks.PatternFold(`\bgpa\b`)},
			{
				Label: "Has getter fullName (get fullName()) OR equivalent accessor",
				Rule: checks.AnyOf(
					checks.PatternFold(`\bget\s+fullName\s*\(`),
					checks.PatternFold(`\bfullName\s*:\s*function\b`),
					checks.PatternFold(`\bfullName\s*=\s*\(`),
				),
			},
			{
				Label: "Has a setter for gpa or updateGpa (set gpa(...) or set updateGpa(...) or function updateGpa)",
				Rule: checks.AnyOf(
					checks.PatternFold(`\bset\s+gpa\s*\(`),
					checks.PatternFold(`\bset\s+updateGpa\s*\(`),
					checks.PatternFold(`\bupdateGpa\s*\(\s*newGpa\b`),
					checks.PatternFold(`\bfunction\s+updateGpa\s*\(`),
				),
			},
			{
				Label: "Validation present for GPA range (0..4) (light check)",
				Rule: checks.AllOf(
					checks.Pattern(`>=\s*0(\.0+)?`),
					checks.Pattern(`<=?\s*4(\.0+)?`),
				),
			},
			{Label: "Logs something using getter(s) or object fields (console.log(...))", Rule: consoleLog},
		},
	}
}

func objectMapTask() graders.Task {
	return graders.Task{
		ID:    "todo2",
		Name:  "TODO 2: Object as map + for...in loop",
		Marks: 10,
		Predicates: []checks.Predicate{
			{
				Label: "Creates an object used as a map (key:value pairs)",
				Rule: checks.AnyOf(
					checks.PatternFold(`\b(const|let|var)\s+\w+\s*=\s*\{[\s\S]*?:[\s\S]*?\}`),
					checks.Pattern(`\{[\s\S]*?:[\s\S]*?\}`),
				),
			},
			{
				Label: "Uses a for...in loop",
				Rule:  checks.PatternFold(`for\s*\(\s*(const|let|var)?\s*\w+\s+in\s+\w+\s*\)\s*\{`),
			},
			{
				Label: "Accesses value via obj[key] or similar inside loop (light)",
				Rule: checks.AnyOf(
					checks.Pattern(`\[\s*\w+\s*\]`),
					checks.Pattern(`\.\s*\w+`),
				),
			},
			{
				Label: "Logs key/value in loop using console.log(...)",
				Rule:  checks.PatternFold(`for\s*\([\s\S]*?\)\s*\{[\s\S]*?console\.log\s*\(`),
			},
		},
	}
}

func stringTask() graders.Task {
	return graders.Task{
		ID:    "todo3",
		Name:  "TODO 3: String charAt() & length",
		Marks: 8,
		Predicates: []checks.Predicate{
			{
				Label: "Creates a string (string literal or new String)",
				Rule: checks.AnyOf(
					checks.PatternFold(`\bnew\s+String\s*\(`),
					checks.Pattern(quote+`[\s\S]*?`+quote),
				),
			},
			{Label: "Uses .charAt(index)", Rule: checks.PatternFold(`\.charAt\s*\(`)},
			{Label: "Uses .length", Rule: checks.PatternFold(`\.length\b`)},
			{Label: "Logs outputs using console.log(...)", Rule: consoleLog},
		},
	}
}

func dateTask() graders.Task {
	return graders.Task{
		ID:    "todo4",
		Name:  "TODO 4: Date (getDate/getMonth/getFullYear)",
		Marks: 8,
		Predicates: []checks.Predicate{
			{Label: "Creates a Date using new Date()", Rule: checks.PatternFold(`\bnew\s+Date\s*\(`)},
			{Label: "Uses getDate()", Rule: checks.PatternFold(`\.getDate\s*\(\s*\)`)},
			{Label: "Uses getMonth()", Rule: checks.PatternFold(`\.getMonth\s*\(\s*\)`)},
			{Label: "Uses getFullYear()", Rule: checks.PatternFold(`\.getFullYear\s*\(\s*\)`)},
			{Label: "Logs date parts using console.log(...)", Rule: consoleLog},
		},
	}
}

func arraySpreadTask() graders.Task {
	return graders.Task{
		ID:    "todo5",
		Name:  "TODO 5: Array + spread (Math.min/Math.max from 10 nums)",
		Marks: 12,
		Predicates: []checks.Predicate{
			{Label: "Has an array literal with ~10 numeric values (light count)", Rule: checks.MinArrayNumbers(10)},
			{Label: "Uses Math.min(...arr) with spread syntax", Rule: checks.PatternFold(`Math\.min\s*\(\s*\.\.\.\s*(\w|\[)`)},
			{Label: "Uses Math.max(...arr) with spread syntax", Rule: checks.PatternFold(`Math\.max\s*\(\s*\.\.\.\s*(\w|\[)`)},
			{Label: "Logs min/max using console.log(...)", Rule: consoleLog},
		},
	}
}

func exceptionsTask() graders.Task {
	return graders.Task{
		ID:    "todo6",
		Name:  "TODO 6: Exceptions (try/catch/finally + empty array risky line)",
		Marks: 12,
		Predicates: []checks.Predicate{
			{Label: "Uses try { ... }", Rule: checks.PatternFold(`\btry\s*\{`)},
			{
				Label: "Uses catch (e) { ... } (or catch { ... })",
				Rule: checks.AnyOf(
					checks.PatternFold(`\bcatch\s*\(\s*\w+\s*\)\s*\{`),
					checks.PatternFold(`\bcatch\s*\{`),
				),
			},
			{Label: "Uses finally { ... }", Rule: checks.PatternFold(`\bfinally\s*\{`)},
			{
				Label: "Runs risky line inside try (arr[0].toString()) (light)",
				Rule:  checks.InTryBlock(`(?i)\barr\s*\[\s*0\s*\]\s*\.\s*toString\s*\(\s*\)`),
			},
			{
				Label: `In catch, logs a message containing "Caught"`,
				Rule:  checks.PatternFold(`console\.log\s*\([\s\S]*?` + logMessage(`Caught`)),
			},
			{
				Label: `In finally, logs a message containing "Finally"`,
				Rule:  checks.PatternFold(`console\.log\s*\([\s\S]*?` + logMessage(`Finally`)),
			},
		},
	}
}

// logMessage matches a string literal that contains word.
func logMessage(word string) string {
	return quote + inQuote + word + inQuote + quote
}

func regexForEachTask() graders.Task {
	return graders.Task{
		ID:    "todo7",
		Name:  "TODO 7: Regex + forEach (match 'ab' using pattern.test)",
		Marks: 14,
		Predicates: []checks.Predicate{
			{
				Label: "Defines words array (given list or similar)",
				Rule:  checks.PatternFold(`\bwords\s*=\s*\[`),
			},
			{
				Label: "Creates a RegExp to detect 'ab' ( /ab/ or new RegExp('ab') )",
				Rule: checks.AnyOf(
					checks.PatternFold(`/ab/[gimsuy]*`),
					checks.PatternFold(`\bnew\s+RegExp\s*\(\s*`+quote+`ab`+quote),
				),
			},
			{
				Label: "Loops through words using forEach()",
				Rule: checks.AnyOf(
					checks.PatternFold(`\.forEach\s*\(\s*\(?\s*\w+\s*\)?\s*=>`),
					checks.PatternFold(`\.forEach\s*\(\s*function\s*\(`),
				),
			},
			{
				Label: "Uses pattern.test(word) (or equivalent .test call)",
				Rule: checks.AllOf(
					checks.PatternFold(`\.test\s*\(\s*\w+\s*\)`),
					checks.AnyOf(
						checks.PatternFold(`\bpattern\b`),
						checks.PatternFold(`\bregex\b`),
						checks.PatternFold(`/ab/`),
						checks.PatternFold(`new\s+RegExp`),
					),
				),
			},
			{
				Label: `Logs "<word> matches!" for matched words (light)`,
				Rule:  checks.PatternFold(`console\.log\s*\([\s\S]*?matches!\s*` + quote + `[\s\S]*?\)`),
			},
		},
	}
}
