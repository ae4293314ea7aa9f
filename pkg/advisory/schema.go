package advisory

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema describes the JSON the model must return. Every key is
// optional and may be null; absent or null groups become empty slices.
const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "terms": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "surface": {"type": ["string", "null"]},
          "note": {"type": ["string", "null"]}
        }
      }
    },
    "inconsistencies": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": ["string", "null"]},
          "a": {"type": ["string", "null"]},
          "b": {"type": ["string", "null"]},
          "note": {"type": ["string", "null"]}
        }
      }
    },
    "suggestions": {
      "type": ["array", "null"],
      "items": {"type": ["string", "null"]}
    }
  }
}`

// SchemaError lists the places where content did not match resultSchema.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Fields, "; ")
}

//nolint:gochecknoglobals // Compiled once; the schema is a constant.
var compiledSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchema))
	if err != nil {
		panic(fmt.Sprintf("advisory: invalid result schema: %v", err))
	}
	return schema
}

// validateContent checks a JSON document against the result schema.
func validateContent(content string) error {
	result, err := compiledSchema.Validate(gojsonschema.NewStringLoader(content))
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Fields: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Fields = append(schemaErr.Fields, field+": "+desc.Description())
	}
	return schemaErr
}
