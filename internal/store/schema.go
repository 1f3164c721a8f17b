package store

import (
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchemaURL = "tasks.schema.json"

// tasksSchema describes the persisted "tasks" slot value.
const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "tags", "deadline", "completed", "createdAt"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "text": {"type": "string", "minLength": 1},
      "tags": {
        "type": "array",
        "items": {"type": "string", "minLength": 1},
        "uniqueItems": true
      },
      "deadline": {
        "oneOf": [
          {"type": "null"},
          {"type": "string", "format": "date"}
        ]
      },
      "completed": {"type": "boolean"},
      "createdAt": {"type": "string", "format": "date-time"}
    }
  }
}`

const tagsSchemaURL = "tags.schema.json"

const tagsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"type": "string", "minLength": 1},
  "uniqueItems": true
}`

var (
	compiledTasks = mustCompile(tasksSchemaURL, tasksSchema)
	compiledTags  = mustCompile(tagsSchemaURL, tagsSchema)
)

func mustCompile(url, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(url)
}
