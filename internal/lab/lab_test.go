package lab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jslab/labgrade/internal/graders"
	"github.com/jslab/labgrade/internal/source"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return source.StripJS(string(data))
}

func TestJSAdvance_Shape(t *testing.T) {
	rubric := JSAdvance()
	require.NoError(t, rubric.Validate())
	require.Equal(t, JSAdvanceName, rubric.Name)
	require.Len(t, rubric.Tasks, 7)
	require.Equal(t, 80.0, rubric.MaxMarks())

	checkCounts := []int{8, 4, 4, 5, 4, 6, 5}
	for i, task := range rubric.Tasks {
		require.Len(t, task.Predicates, checkCounts[i], task.ID)
	}
}

func TestJSAdvance_CompleteSolution(t *testing.T) {
	text := loadFixture(t, "complete.js")

	for _, task := range JSAdvance().Tasks {
		result := graders.Evaluate(task, text)
		require.Empty(t, result.Missing, "%s missing %v", task.ID, result.Missing)
		require.Equal(t, task.Marks, result.Score, task.ID)
	}
}

func TestJSAdvance_CommentedOutCodeDoesNotCount(t *testing.T) {
	text := loadFixture(t, "commented.js")

	for _, task := range JSAdvance().Tasks {
		result := graders.Evaluate(task, text)
		require.Empty(t, result.Satisfied, "%s satisfied %v", task.ID, result.Satisfied)
		require.Zero(t, result.Score)
	}
}

func TestJSAdvance_EmptyText(t *testing.T) {
	for _, task := range JSAdvance().Tasks {
		result := graders.Evaluate(task, "")
		require.Empty(t, result.Satisfied, task.ID)
		require.Zero(t, result.Score)
	}
}

func TestJSAdvance_GetterFlips(t *testing.T) {
	task := JSAdvance().Tasks[0]
	getter := "Has getter fullName (get fullName()) OR equivalent accessor"

	with := `const s = { firstName: "a", get fullName() { return this.firstName; } };`
	require.Contains(t, graders.Evaluate(task, with).Satisfied, getter)

	without := strings.Replace(with, "get fullName() { return this.firstName; }", "", 1)
	require.Contains(t, graders.Evaluate(task, without).Missing, getter)
}

func TestJSAdvance_RiskyLineMustBeInsideTry(t *testing.T) {
	task := JSAdvance().Tasks[5]
	risky := "Runs risky line inside try (arr[0].toString()) (light)"

	inside := graders.Evaluate(task, "try { arr[0].toString(); } catch(e){}")
	require.Contains(t, inside.Satisfied, risky)

	outside := graders.Evaluate(task, "arr[0].toString(); try {} catch(e){}")
	require.Contains(t, outside.Missing, risky)
}

func TestJSAdvance_ArrowAndFunctionCallbacks(t *testing.T) {
	task := JSAdvance().Tasks[6]
	loop := "Loops through words using forEach()"

	for _, text := range []string{
		"words.forEach(w => f(w));",
		"words.forEach((w) => f(w));",
		"words.forEach( function (w) { f(w); });",
	} {
		require.Contains(t, graders.Evaluate(task, text).Satisfied, loop, text)
	}
}

func TestJSAdvancePolicy(t *testing.T) {
	p := JSAdvancePolicy()
	require.NoError(t, p.Validate())

	riyadh := time.FixedZone("AST", 3*3600)
	onTime := p.Score(time.Date(2026, 2, 4, 23, 0, 0, 0, riyadh), true)
	require.Equal(t, 20.0, onTime.Score)

	late := p.Score(time.Date(2026, 2, 5, 0, 0, 0, 0, riyadh), true)
	require.Equal(t, 10.0, late.Score)
	require.True(t, late.Late)
}

const customRubric = `name: mini-lab
tasks:
  - id: json
    name: "Parse JSON safely"
    marks: 10
    checks:
      - label: Parses inside try
        type: in_try_block
        pattern: 'JSON\.parse\s*\('
      - label: Handles errors
        type: any_of
        rules:
          - {type: pattern, pattern: '\bcatch\b', ignore_case: true}
          - {type: pattern, pattern: '\.catch\s*\('}
`

func TestParseRubric(t *testing.T) {
	rubric, err := ParseRubric([]byte(customRubric))
	require.NoError(t, err)
	require.Equal(t, "mini-lab", rubric.Name)
	require.Len(t, rubric.Tasks, 1)
	require.Equal(t, 10.0, rubric.MaxMarks())

	task := rubric.Tasks[0]
	require.Equal(t, "Parses inside try", task.Predicates[0].Label)

	result := graders.Evaluate(task, "try { JSON.parse(s) } CATCH (e) {}")
	require.Equal(t, 10.0, result.Score)

	result = graders.Evaluate(task, "JSON.parse(s)")
	require.Equal(t, 0.0, result.Score)
}

func TestParseRubric_Errors(t *testing.T) {
	t.Run("schema violation", func(t *testing.T) {
		_, err := ParseRubric([]byte("name: x\ntasks: []\n"))
		require.ErrorContains(t, err, "invalid rubric")
	})

	t.Run("bad regular expression", func(t *testing.T) {
		_, err := ParseRubric([]byte(`name: x
tasks:
  - id: a
    name: A
    marks: 1
    checks:
      - {label: broken, type: pattern, pattern: '(unclosed'}
`))
		require.ErrorContains(t, err, "task a check #1")
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := ParseRubric([]byte(`name: x
tasks:
  - {id: a, name: A, marks: 1, checks: [{label: l, type: pattern, pattern: x}]}
  - {id: a, name: B, marks: 1, checks: [{label: l, type: pattern, pattern: y}]}
`))
		require.ErrorContains(t, err, `duplicate task id "a"`)
	})
}

func TestLoadRubric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customRubric), 0644))

	rubric, err := LoadRubric(path)
	require.NoError(t, err)
	require.Equal(t, "mini-lab", rubric.Name)

	_, err = LoadRubric(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
