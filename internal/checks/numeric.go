package checks

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// arrayLiteralRe finds the smallest bracketed span that holds at least one
// comma. Object literals and single-index accesses like arr[0] are skipped.
var arrayLiteralRe = regexp.MustCompile(`\[\s*([^\]]*?,[^\]]*?)\s*\]`)

// numericLiteralRe matches integers, decimals, .5 style fractions, signed
// values and exponents that are not part of an identifier. RE2 has no
// lookbehind, hence regexp2.
var numericLiteralRe = func() *regexp2.Regexp {
	re := regexp2.MustCompile(
		`(?<![A-Za-z0-9_$])[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?(?![A-Za-z0-9_$])`,
		regexp2.None,
	)
	re.MatchTimeout = 2 * time.Second
	return re
}()

// MaxNumericCount returns the largest number of numeric literals found inside
// any single comma-separated bracketed list in text.
//
// This is an approximation: nested arrays end at the first ']' and a list
// split across lines still counts as one span.
func MaxNumericCount(text string) (int, error) {
	best := 0
	for _, m := range arrayLiteralRe.FindAllStringSubmatch(text, -1) {
		n, err := countNumericLiterals(m[1])
		if err != nil {
			return best, err
		}
		best = max(best, n)
	}
	return best, nil
}

func countNumericLiterals(s string) (int, error) {
	count := 0
	m, err := numericLiteralRe.FindStringMatch(s)
	for m != nil && err == nil {
		count++
		m, err = numericLiteralRe.FindNextMatch(m)
	}
	if err != nil {
		return count, fmt.Errorf("counting numeric literals: %w", err)
	}
	return count, nil
}

type minArrayNumbersRule int

// MinArrayNumbers matches when some array literal holds at least n numbers.
func MinArrayNumbers(n int) Rule {
	return minArrayNumbersRule(n)
}

func (n minArrayNumbersRule) Match(text string) (bool, error) {
	best, err := MaxNumericCount(text)
	if err != nil {
		return false, err
	}
	return best >= int(n), nil
}
