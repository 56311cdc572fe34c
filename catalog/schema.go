package catalog

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// overrideSchema validates catalog override files before they are
// decoded. Unknown keys are rejected here and again by the strict
// YAML decoder.
const overrideSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "data_epoch": {"type": "integer", "minimum": 0},
    "candle_limit": {"type": "integer", "minimum": 1},
    "chains": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "name": {"type": "string", "minLength": 1}
        }
      }
    },
    "resolutions": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "seconds": {"type": "integer", "minimum": 1},
          "window": {"type": "integer", "minimum": 1},
          "strict_window": {"type": "integer", "minimum": 1}
        }
      }
    },
    "sort_columns": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "listing_sort_columns": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "swap_sort_columns": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "limit": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min": {"type": "integer", "minimum": 1},
        "max": {"type": "integer", "minimum": 1}
      }
    },
    "page": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min": {"type": "integer", "minimum": 1},
        "max": {"type": "integer", "minimum": 1}
      }
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.json", strings.NewReader(overrideSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("catalog.json")
}
