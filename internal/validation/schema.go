// Package validation checks rubric files against the embedded JSON schema.
package validation

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed rubric.schema.json
var rubricSchemaJSON string

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// rubricSchema is the compiled JSON Schema for rubric YAML files.
var rubricSchema = func() *jsonschema.Schema {
	sch, err := compileRubricSchema(rubricSchemaJSON)
	if err != nil {
		panic(err)
	}
	return sch
}()

// compileRubricSchema compiles the embedded rubric schema document.
func compileRubricSchema(raw string) (*jsonschema.Schema, error) {
	const resource = "rubric.schema.json"

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", resource, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resource, doc); err != nil {
		return nil, fmt.Errorf("adding %s: %w", resource, err)
	}
	return c.Compile(resource)
}

// ValidateRubricFile validates the rubric YAML file at path.
func ValidateRubricFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rubric file: %w", err)
	}
	return ValidateRubricBytes(data), nil
}

// ValidateRubricBytes validates raw YAML bytes against the rubric schema and
// returns one message per violation, prefixed with its instance location.
func ValidateRubricBytes(data []byte) []string {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}

	err := rubricSchema.Validate(normalizeNumbers(doc))
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	msgs := rubricViolations(ve)
	sort.Strings(msgs)
	return msgs
}

// rubricViolations flattens a validation error tree into "location: message"
// lines, one per leaf.
func rubricViolations(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) > 0 {
		var out []string
		for _, c := range ve.Causes {
			out = append(out, rubricViolations(c)...)
		}
		return out
	}
	loc := "/" + strings.Join(ve.InstanceLocation, "/")
	return []string{loc + ": " + ve.ErrorKind.LocalizedString(defaultPrinter)}
}

// normalizeNumbers rewrites a decoded rubric so that marks, minimums and other
// integers are float64 and mapping keys are strings, which is what the schema
// validator expects from a JSON document.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeNumbers(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return val
	}
}
