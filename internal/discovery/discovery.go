// Package discovery locates the student's HTML page and JavaScript file in a
// submission directory.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// errFound stops a directory walk once a match is recorded.
var errFound = errors.New("found")

// Options controls which files are considered.
type Options struct {
	// ScriptNames are checked, in order, at the root before walking.
	ScriptNames []string
	// IgnoreFiles are never returned as the student script (case-insensitive).
	IgnoreFiles []string
	// IgnoreDirs are skipped in addition to hidden directories and node_modules.
	IgnoreDirs []string
}

// Files is the result of discovery. Empty paths mean nothing was found.
type Files struct {
	Root   string // absolute submission directory
	HTML   string // absolute path to the HTML page
	Script string // absolute path to the student JS file
}

// Rel returns path relative to the submission root, or path unchanged when
// it is empty or outside the root.
func (f Files) Rel(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(f.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// Discover finds the HTML page and student script under root.
func Discover(root string, opts Options) (Files, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Files{}, fmt.Errorf("resolving root path: %w", err)
	}

	// Verify root exists before walking
	info, err := os.Stat(absRoot)
	if err != nil {
		return Files{}, fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return Files{}, fmt.Errorf("root path %s is not a directory", absRoot)
	}

	files := Files{Root: absRoot}

	files.HTML, err = FindHTML(absRoot, opts)
	if err != nil {
		return Files{}, err
	}
	files.Script, err = FindScript(absRoot, opts)
	if err != nil {
		return Files{}, err
	}

	slog.Debug("Discovered student files", "root", absRoot, "html", files.HTML, "script", files.Script)
	return files, nil
}

// FindHTML returns root/index.html if present, otherwise the first .html file
// found walking root in lexical order.
func FindHTML(root string, opts Options) (string, error) {
	preferred := filepath.Join(root, "index.html")
	if fileExists(preferred) {
		return preferred, nil
	}
	return walkFirst(root, opts, func(name string) bool {
		return strings.HasSuffix(strings.ToLower(name), ".html")
	})
}

// FindScript returns the first of opts.ScriptNames present at root, otherwise
// the first .js file found walking root that is not in opts.IgnoreFiles.
func FindScript(root string, opts Options) (string, error) {
	for _, name := range opts.ScriptNames {
		p := filepath.Join(root, name)
		if fileExists(p) {
			return p, nil
		}
	}

	return walkFirst(root, opts, func(name string) bool {
		lower := strings.ToLower(name)
		if slices.ContainsFunc(opts.IgnoreFiles, func(f string) bool { return strings.EqualFold(f, lower) }) {
			return false
		}
		return strings.HasSuffix(lower, ".js")
	})
}

func walkFirst(root string, opts Options, match func(name string) bool) (string, error) {
	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		if d.IsDir() {
			if path != root && skipDir(d.Name(), opts.IgnoreDirs) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && match(d.Name()) {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", fmt.Errorf("walking directory %s: %w", root, err)
	}
	return found, nil
}

func skipDir(name string, ignore []string) bool {
	// Skip hidden directories
	if strings.HasPrefix(name, ".") {
		return true
	}
	if name == "node_modules" {
		return true
	}
	return slices.Contains(ignore, name)
}

// fileExists checks if a path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
