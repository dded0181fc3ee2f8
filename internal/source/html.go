package source

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ScriptTag is one <script> element found in an HTML document.
type ScriptTag struct {
	Attrs   string
	Content string
}

var (
	scriptTagRe = regexp.MustCompile(`(?i)<script\b([^>]*)>([\s\S]*?)</script>`)
	scriptSrcRe = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']+)["']`)
)

// ExtractScripts returns every <script> element in html, in document order.
func ExtractScripts(html string) []ScriptTag {
	matches := scriptTagRe.FindAllStringSubmatch(html, -1)
	scripts := make([]ScriptTag, 0, len(matches))
	for _, m := range matches {
		scripts = append(scripts, ScriptTag{Attrs: m[1], Content: m[2]})
	}
	return scripts
}

// Src returns the value of the tag's src attribute, if any.
func (s ScriptTag) Src() (string, bool) {
	m := scriptSrcRe.FindStringSubmatch(s.Attrs)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ScriptLink describes how an HTML page loads external scripts.
type ScriptLink struct {
	// HasExternal is true when at least one <script src=...> exists.
	HasExternal bool
	// MatchesStudentFile is true when one of those src values ends with the
	// student's JS file name.
	MatchesStudentFile bool
}

// InspectScriptLink reports whether html loads an external script and whether
// any of them points at jsPath. Comparison is by base name, case-insensitive.
func InspectScriptLink(html, jsPath string) ScriptLink {
	var link ScriptLink
	if html == "" {
		return link
	}

	base := strings.ToLower(filepath.Base(jsPath))
	for _, s := range ExtractScripts(html) {
		src, ok := s.Src()
		if !ok {
			continue
		}
		link.HasExternal = true
		if jsPath != "" && strings.HasSuffix(strings.ToLower(src), base) {
			link.MatchesStudentFile = true
		}
	}
	return link
}
