package llm

import "github.com/joseph-ayodele/ecoscan/constants"

// BuildRecordsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map
// describing the array of product records ExtractionPrompt asks for.
// Extra keys are tolerated; the seven prompt fields must be strings.
func BuildRecordsJSONSchema() map[string]any {
	props := make(map[string]any, len(RecordFields))
	for _, f := range RecordFields {
		props[f] = map[string]any{"type": "string"}
	}
	props[FieldProductName] = map[string]any{"type": "string", "minLength": 1}
	props[FieldRecyclable] = map[string]any{
		"type": "string",
		"enum": constants.RecyclableValues(),
	}

	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":       "object",
			"properties": props,
			"required":   []string{FieldProductName, FieldPackagingType, FieldRecyclable},
		},
	}
}
