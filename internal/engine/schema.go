package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// extractResponseSchema is the strict boundary contract for extraction
// payloads. The engine's response is validated once, here; nothing past the
// gateway trusts its shape.
const extractResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["skills", "matches"],
  "properties": {
    "skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "matches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["skill"],
        "properties": {
          "skill": {"type": "string"},
          "canonical": {"type": "string"},
          "weight": {"type": "number"}
        }
      }
    },
    "count": {"type": "integer", "minimum": 0},
    "stats": {"type": "object"},
    "important_skills": {"type": "array", "items": {"type": "string"}},
    "less_important_skills": {"type": "array", "items": {"type": "string"}},
    "non_technical_skills": {"type": "array", "items": {"type": "string"}},
    "classifier_available": {"type": "boolean"}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// validateExtractPayload checks a raw extraction payload against the
// boundary schema and returns a field-by-field description on violation.
func validateExtractPayload(body []byte) error {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(extractResponseSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("failed to compile extraction response schema: %w", schemaErr)
	}

	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("extraction response is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("extraction response schema violation: %s", sb.String())
}
