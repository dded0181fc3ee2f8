// Package source cleans raw student files before they are checked: it removes
// JavaScript and HTML comments so that examples left in comments do not count.
package source

import (
	"regexp"
	"strings"
)

// scanState is the lexical context of the JS comment scanner.
type scanState int

const (
	stateCode scanState = iota
	stateSingle
	stateDouble
	stateTemplate
)

// quoteState maps an opening quote character to the state it starts.
func quoteState(ch byte) (scanState, bool) {
	switch ch {
	case '\'':
		return stateSingle, true
	case '"':
		return stateDouble, true
	case '`':
		return stateTemplate, true
	}
	return stateCode, false
}

// closes reports whether ch terminates a string opened in state s.
func (s scanState) closes(ch byte) bool {
	switch s {
	case stateSingle:
		return ch == '\''
	case stateDouble:
		return ch == '"'
	case stateTemplate:
		return ch == '`'
	}
	return false
}

// StripJS removes // line comments and /* */ block comments from code while
// leaving single-quoted, double-quoted and template literals untouched.
//
// A quote preceded by an odd number of backslashes is escaped and does not
// close its literal. Unterminated literals and block comments run to the end
// of the input. Template interpolations (${...}) are not parsed; a quote
// inside one is treated as part of the template.
func StripJS(code string) string {
	if code == "" {
		return code
	}

	var out strings.Builder
	out.Grow(len(code))

	state := stateCode
	n := len(code)

	for i := 0; i < n; {
		ch := code[i]

		if state != stateCode {
			if state.closes(ch) && !escaped(code, i) {
				state = stateCode
			}
			out.WriteByte(ch)
			i++
			continue
		}

		if next, ok := quoteState(ch); ok {
			state = next
			out.WriteByte(ch)
			i++
			continue
		}

		if ch == '/' && i+1 < n {
			switch code[i+1] {
			case '/':
				i += 2
				for i < n && code[i] != '\n' {
					i++
				}
				continue
			case '*':
				end := strings.Index(code[i+2:], "*/")
				if end < 0 {
					i = n
				} else {
					i += 2 + end + 2
				}
				continue
			}
		}

		out.WriteByte(ch)
		i++
	}

	return out.String()
}

// escaped reports whether the byte at i is preceded by an odd run of backslashes.
func escaped(code string, i int) bool {
	backslashes := 0
	for k := i - 1; k >= 0 && code[k] == '\\'; k-- {
		backslashes++
	}
	return backslashes%2 == 1
}

var htmlCommentRe = regexp.MustCompile(`<!--[\s\S]*?-->`)

// StripHTML removes <!-- ... --> comments from an HTML document.
func StripHTML(html string) string {
	return htmlCommentRe.ReplaceAllString(html, "")
}
