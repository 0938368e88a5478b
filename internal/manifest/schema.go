package manifest

import (
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema is the structural contract for lockstep.yaml. Validation
// runs on the untyped YAML tree so typos (an unknown kind, a missing expect)
// are reported before any resolution work happens.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "checks"],
  "properties": {
    "version": {"type": "integer", "const": 1},
    "xml_path": {"type": "string"},
    "checks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "kind", "expect"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "kind": {"enum": ["signal", "method_args", "method_return", "property"]},
          "interface": {"type": "string"},
          "member": {"type": "string"},
          "arg": {"type": "string"},
          "expect": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func validateAgainstSchema(v any) error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("lockstep-manifest.schema.json", strings.NewReader(manifestSchema)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("lockstep-manifest.schema.json")
	})
	if compileErr != nil {
		return compileErr
	}
	return compiledSchema.Validate(v)
}
