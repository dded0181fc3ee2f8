package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

var defaultOpts = Options{
	ScriptNames: []string{"script.js", "app.js", "main.js", "index.js"},
	IgnoreFiles: []string{"grade.cjs", "grade.js"},
	IgnoreDirs:  []string{"artifacts"},
}

// writeFile creates a file (and its parent directories) under root.
func writeFile(t *testing.T, root, rel string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDiscoverPreferredNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "about.html")
	writeFile(t, root, "index.html")
	writeFile(t, root, "a.js")
	writeFile(t, root, "main.js")
	writeFile(t, root, "index.js")

	files, err := Discover(root, defaultOpts)
	if err != nil {
		t.Fatal(err)
	}

	if got := files.Rel(files.HTML); got != "index.html" {
		t.Errorf("HTML = %q, want index.html", got)
	}
	// main.js comes before index.js in the preference list
	if got := files.Rel(files.Script); got != "main.js" {
		t.Errorf("Script = %q, want main.js", got)
	}
}

func TestDiscoverFallsBackToWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pages/lab.html")
	writeFile(t, root, "src/lab.js")

	files, err := Discover(root, defaultOpts)
	if err != nil {
		t.Fatal(err)
	}

	if got := files.Rel(files.HTML); got != "pages/lab.html" {
		t.Errorf("HTML = %q, want pages/lab.html", got)
	}
	if got := files.Rel(files.Script); got != "src/lab.js" {
		t.Errorf("Script = %q, want src/lab.js", got)
	}
}

func TestDiscoverSkipsGraderAndIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Grade.js")
	writeFile(t, root, "grade.cjs")
	writeFile(t, root, "node_modules/lib/index.js")
	writeFile(t, root, ".git/hooks/pre-commit.js")
	writeFile(t, root, "artifacts/feedback/report.html")
	writeFile(t, root, "artifacts/out.js")

	files, err := Discover(root, defaultOpts)
	if err != nil {
		t.Fatal(err)
	}

	if files.Script != "" {
		t.Errorf("Script = %q, want none", files.Script)
	}
	if files.HTML != "" {
		t.Errorf("HTML = %q, want none", files.HTML)
	}

	writeFile(t, root, "zz/student.js")
	files, err = Discover(root, defaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if got := files.Rel(files.Script); got != "zz/student.js" {
		t.Errorf("Script = %q, want zz/student.js", got)
	}
}

func TestDiscoverIgnoresPreferredDirectory(t *testing.T) {
	root := t.TempDir()
	// A directory named like a preferred file must not be picked.
	if err := os.MkdirAll(filepath.Join(root, "script.js"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "app.js")

	files, err := Discover(root, defaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if got := files.Rel(files.Script); got != "app.js" {
		t.Errorf("Script = %q, want app.js", got)
	}
}

func TestDiscoverNonexistentRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), defaultOpts)
	if err == nil {
		t.Fatal("expected error for nonexistent root")
	}
}

func TestDiscoverRootIsFile(t *testing.T) {
	root := t.TempDir()
	p := writeFile(t, root, "script.js")

	_, err := Discover(p, defaultOpts)
	if err == nil {
		t.Fatal("expected error when root is a file")
	}
}

func TestRel(t *testing.T) {
	files := Files{Root: filepath.FromSlash("/work/lab")}

	if got := files.Rel(""); got != "" {
		t.Errorf("Rel(\"\") = %q", got)
	}
	if got := files.Rel(filepath.FromSlash("/work/lab/src/a.js")); got != "src/a.js" {
		t.Errorf("Rel = %q, want src/a.js", got)
	}
	outside := filepath.FromSlash("/elsewhere/a.js")
	if got := files.Rel(outside); got != outside {
		t.Errorf("Rel = %q, want %q", got, outside)
	}
}
