package repository

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// applicationsSchema guards loads of the persisted application list. A value
// written by an older build or mangled by hand fails the check and the reader
// falls back to an empty list instead of erroring.
const applicationsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "posting_id", "status", "created_at"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "posting_id": {"type": "string", "minLength": 1},
      "course_title": {"type": "string"},
      "status": {
        "type": "string",
        "enum": ["submitted", "reviewed", "interview", "accepted", "rejected", "withdrawn"]
      },
      "resume": {"$ref": "#/$defs/document"},
      "transcript": {"$ref": "#/$defs/document"},
      "note": {"type": "string"},
      "next_step": {"type": "string"},
      "created_at": {"type": "string"}
    }
  },
  "$defs": {
    "document": {
      "type": "object",
      "required": ["name", "media_type"],
      "properties": {
        "name": {"type": "string"},
        "media_type": {"type": "string"}
      }
    }
  }
}`

var applicationsValidator = jsonschema.MustCompileString("apps.schema.json", applicationsSchema)

func validApplicationsPayload(data []byte) bool {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	return applicationsValidator.Validate(doc) == nil
}
