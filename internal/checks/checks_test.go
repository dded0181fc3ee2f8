package checks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func match(t *testing.T, r Rule, text string) bool {
	t.Helper()
	ok, err := r.Match(text)
	require.NoError(t, err)
	return ok
}

func TestPattern(t *testing.T) {
	getter := PatternFold(`\bget\s+fullName\s*\(`)

	require.True(t, match(t, getter, "get fullName() { return this.firstName; }"))
	require.True(t, match(t, getter, "GET   FullName ()"))
	require.False(t, match(t, getter, "getfullName()"))
	require.False(t, match(t, getter, ""))

	exact := Pattern(`Math\.max`)
	require.True(t, match(t, exact, "Math.max(...a)"))
	require.False(t, match(t, exact, "math.MAX(...a)"))
}

func TestCompilePattern(t *testing.T) {
	r, err := CompilePattern(`try\s*\{`, true)
	require.NoError(t, err)
	require.True(t, match(t, r, "TRY {"))

	_, err = CompilePattern(`(unclosed`, false)
	require.Error(t, err)
}

func TestAnyOf(t *testing.T) {
	failing := RuleFunc(func(string) (bool, error) { return false, errors.New("boom") })

	t.Run("one match is enough", func(t *testing.T) {
		r := AnyOf(Pattern("a"), Pattern("b"))
		require.True(t, match(t, r, "b"))
		require.False(t, match(t, r, "c"))
	})

	t.Run("error is skipped when another rule matches", func(t *testing.T) {
		ok, err := AnyOf(failing, Pattern("x")).Match("x")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("error is returned when nothing matches", func(t *testing.T) {
		ok, err := AnyOf(failing, Pattern("x")).Match("y")
		require.EqualError(t, err, "boom")
		require.False(t, ok)
	})
}

func TestAllOf(t *testing.T) {
	r := AllOf(Pattern(`>=\s*0`), Pattern(`<=\s*4`))
	require.True(t, match(t, r, "if (g >= 0 && g <= 4)"))
	require.False(t, match(t, r, "if (g >= 0)"))
	require.False(t, match(t, AllOf(), "anything"))

	_, err := AllOf(RuleFunc(func(string) (bool, error) { return true, errors.New("boom") })).Match("x")
	require.Error(t, err)
}

func TestMaxNumericCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ten mixed literals", "const nums = [5, 12, -3, 8.5, 1e3, .5, +7, 0, 42, 19];", 10},
		{"best of several arrays", "a = [1, 2]; b = [1,2,3];", 3},
		{"exponent upper case", "x = [1E-3, 2.5e+2]", 2},
		{"object literal has no brackets", "const o = {a: 1, b: 2, c: 3};", 0},
		{"index access has no comma", "arr[0].toString(); arr[1]", 0},
		{"identifier digits do not count", "[x1, y2, 3]", 1},
		{"strings only", `["ban", "babble"]`, 0},
		{"multi-line list", "[\n  1,\n  2,\n  3,\n]", 3},
		{"nested arrays end at first bracket", "[[1, 2], [3, 4]]", 2},
		{"only ASCII digits are numbers", "[١, ٢, ٣]", 0},
		{"mixed scripts", "[1, ٢, 3]", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxNumericCount(tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMinArrayNumbers(t *testing.T) {
	r := MinArrayNumbers(10)
	require.True(t, match(t, r, "let a = [1,2,3,4,5,6,7,8,9,10];"))
	require.False(t, match(t, r, "let a = [1,2,3,4,5,6,7,8,9];"))
}

func TestTryBlock(t *testing.T) {
	body, ok := TryBlock("try { arr[0].toString(); } catch(e){}")
	require.True(t, ok)
	require.Equal(t, " arr[0].toString(); ", body)

	body, ok = TryBlock("TRY{ a(); }\n  finally { b(); }")
	require.True(t, ok)
	require.Equal(t, " a(); ", body)

	_, ok = TryBlock("try { a(); }")
	require.False(t, ok)
}

func TestInTryBlock(t *testing.T) {
	risky := InTryBlock(`(?i)\barr\s*\[\s*0\s*\]\s*\.\s*toString\s*\(\s*\)`)

	require.True(t, match(t, risky, "try { arr[0].toString(); } catch(e){}"))
	require.False(t, match(t, risky, "arr[0].toString(); try {} catch(e){}"))
	require.False(t, match(t, risky, "arr[0].toString();"))
	require.False(t, match(t, risky, ""))
}

func TestCreate(t *testing.T) {
	t.Run("pattern", func(t *testing.T) {
		r, err := Create(RuleTypePattern, map[string]any{"pattern": `\.forEach\s*\(`, "ignore_case": true})
		require.NoError(t, err)
		require.True(t, match(t, r, "words.FOREACH(w => w)"))
	})

	t.Run("nested any_of", func(t *testing.T) {
		r, err := CreateFromSpec(map[string]any{
			"type": "any_of",
			"rules": []any{
				map[string]any{"type": "pattern", "pattern": "/ab/"},
				map[string]any{"type": "min_array_numbers", "min": 2},
			},
		})
		require.NoError(t, err)
		require.True(t, match(t, r, "[1, 2]"))
		require.True(t, match(t, r, "const p = /ab/;"))
		require.False(t, match(t, r, "nothing"))
	})

	t.Run("in_try_block", func(t *testing.T) {
		r, err := Create(RuleTypeInTryBlock, map[string]any{"pattern": `JSON\.parse`})
		require.NoError(t, err)
		require.True(t, match(t, r, "try { JSON.parse(s) } catch (e) {}"))
		require.False(t, match(t, r, "JSON.parse(s); try {} catch (e) {}"))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Create(RuleTypePattern, map[string]any{})
		require.ErrorContains(t, err, "pattern is required")

		_, err = Create(RuleTypeMinArrayNumbers, map[string]any{"min": 0})
		require.ErrorContains(t, err, "min must be positive")

		_, err = Create(RuleTypeAllOf, map[string]any{"rules": []any{}})
		require.ErrorContains(t, err, "at least one nested rule")

		_, err = Create("ast", nil)
		require.ErrorContains(t, err, "not a valid rule type")

		_, err = CreateFromSpec(map[string]any{"pattern": "x"})
		require.ErrorContains(t, err, "missing a 'type'")

		_, err = Create(RuleTypePattern, map[string]any{"pattern": "(bad"})
		require.ErrorContains(t, err, "invalid pattern")
	})
}
