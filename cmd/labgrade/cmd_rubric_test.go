package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubricCommand_BuiltIn(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRubricCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{t.TempDir()})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "4-2-js-advance-main (80 marks)\n"))
	assert.Contains(t, out, "TODO 3: String charAt() & length")
	assert.Contains(t, out, "14 marks  [todo7]")
	assert.Contains(t, out, "  - Uses .charAt(index)\n")
}

func TestRubricCommand_CustomRubric(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: mini-lab
tasks:
  - id: greet
    name: Greeting
    marks: 4
    checks:
      - label: Logs hello
        type: pattern
        pattern: 'console\.log\(\s*"hello'
`), 0o644))

	var buf bytes.Buffer
	cmd := newRubricCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{dir, "--rubric", path})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "mini-lab (4 marks)\n\nGreeting  4 marks  [greet]\n  - Logs hello\n", buf.String())
}

func TestRubricCommand_BadRubric(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: broken\ntasks: []\n"), 0o644))

	cmd := newRubricCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--rubric", path})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading rubric")
}
