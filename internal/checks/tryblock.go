package checks

import (
	"fmt"
	"regexp"
)

var tryBlockRe = regexp.MustCompile(`(?i)\btry\s*\{([\s\S]*?)\}\s*(?:catch\b|finally\b)`)

// TryBlock returns the body of the first try { ... } block, ending at the
// first '}' that is followed by catch or finally.
func TryBlock(text string) (string, bool) {
	m := tryBlockRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type inTryBlockRule struct {
	re *regexp.Regexp
}

// InTryBlock matches when expr is found inside the first try block. The same
// expression elsewhere in the file does not count.
func InTryBlock(expr string) Rule {
	return inTryBlockRule{re: regexp.MustCompile(expr)}
}

func compileInTryBlock(expr string, ignoreCase bool) (Rule, error) {
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid try-block pattern %q: %w", expr, err)
	}
	return inTryBlockRule{re: re}, nil
}

func (r inTryBlockRule) Match(text string) (bool, error) {
	body, ok := TryBlock(text)
	if !ok {
		return false, nil
	}
	return r.re.MatchString(body), nil
}
