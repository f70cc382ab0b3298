package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	schema, err := compileSchema(schemaMap)
	if err != nil {
		return err
	}
	return validateCompiled(schema, data)
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func validateCompiled(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

var recordsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return compileSchema(BuildRecordsJSONSchema())
})

// ValidationReport describes how well model output matches the record shape.
// It is informational; the response body is never rewritten from it.
type ValidationReport struct {
	Valid        bool
	Records      int
	Error        string
	NonCanonical []string
}

// ValidateStructured checks model output against the records schema.
func ValidateStructured(content string) ValidationReport {
	raw, err := RecordsJSON(content)
	if err != nil {
		return ValidationReport{Error: err.Error()}
	}
	schema, err := recordsSchema()
	if err != nil {
		return ValidationReport{Error: err.Error()}
	}
	recs, nonCanonical, err := ParseRecords(content)
	if err != nil {
		return ValidationReport{Error: err.Error()}
	}
	rep := ValidationReport{Records: len(recs), NonCanonical: nonCanonical}
	if err := validateCompiled(schema, raw); err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Valid = true
	return rep
}
