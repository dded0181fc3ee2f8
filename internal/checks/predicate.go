// Package checks provides the predicate library used to detect language
// constructs in comment-stripped JavaScript. Every predicate is a label plus a
// stored text-matching rule; predicates never depend on one another or on
// where in the file a construct appears.
package checks

import (
	"fmt"
	"regexp"
)

// Rule tests cleaned source text for the presence of one construct.
type Rule interface {
	Match(text string) (bool, error)
}

// Predicate pairs a human-readable label with the rule that decides it.
type Predicate struct {
	Label string
	Rule  Rule
}

// RuleFunc adapts a plain function to [Rule].
type RuleFunc func(text string) (bool, error)

func (f RuleFunc) Match(text string) (bool, error) { return f(text) }

type patternRule struct {
	re *regexp.Regexp
}

// Pattern returns a rule that matches when expr is found anywhere in the text.
// It panics if expr does not compile; use [CompilePattern] for untrusted input.
func Pattern(expr string) Rule {
	return patternRule{re: regexp.MustCompile(expr)}
}

// PatternFold is [Pattern] with case-insensitive matching.
func PatternFold(expr string) Rule {
	return Pattern("(?i)" + expr)
}

// CompilePattern is the error-returning form of [Pattern].
func CompilePattern(expr string, ignoreCase bool) (Rule, error) {
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return patternRule{re: re}, nil
}

func (r patternRule) Match(text string) (bool, error) {
	return r.re.MatchString(text), nil
}

func (r patternRule) String() string { return r.re.String() }

type anyOfRule []Rule

// AnyOf matches when at least one of rules matches. A rule that errors is
// skipped; its error is only returned if no other rule matched.
func AnyOf(rules ...Rule) Rule {
	return anyOfRule(rules)
}

func (rules anyOfRule) Match(text string) (bool, error) {
	var firstErr error
	for _, r := range rules {
		ok, err := r.Match(text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, firstErr
}

type allOfRule []Rule

// AllOf matches when every one of rules matches.
func AllOf(rules ...Rule) Rule {
	return allOfRule(rules)
}

func (rules allOfRule) Match(text string) (bool, error) {
	if len(rules) == 0 {
		return false, nil
	}
	for _, r := range rules {
		ok, err := r.Match(text)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
