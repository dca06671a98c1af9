package events

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledByType map[Type]*jschema.Schema
)

// GenerateSchema reflects the JSON schema of the payload for t
func GenerateSchema(t Type) ([]byte, error) {
	shape, ok := payloadShapes()[t]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", t)
	}

	r := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
		Anonymous:                 true,
	}
	schema := r.Reflect(shape)
	schema.Title = string(t) + " payload"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema for %s: %w", t, err)
	}
	return data, nil
}

func compileSchemas() {
	compiledByType = make(map[Type]*jschema.Schema, len(knownTypes))
	c := jschema.NewCompiler()

	for _, t := range Types() {
		data, err := GenerateSchema(t)
		if err != nil {
			schemaErr = err
			return
		}

		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			schemaErr = fmt.Errorf("failed to parse schema for %s: %w", t, err)
			return
		}

		url := fmt.Sprintf("%s.json", t)
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("failed to add schema for %s: %w", t, err)
			return
		}

		sch, err := c.Compile(url)
		if err != nil {
			schemaErr = fmt.Errorf("failed to compile schema for %s: %w", t, err)
			return
		}
		compiledByType[t] = sch
	}
}

// ValidatePayload checks p against the schema of t. Unknown types have no schema and always fail.
func ValidatePayload(t Type, p Payload) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}

	sch, ok := compiledByType[t]
	if !ok {
		return fmt.Errorf("unknown event type %q", t)
	}

	// validate the JSON view so typed values (ints, nested structs) are checked the way they are stored
	doc, err := ToPayload(map[string]any(p))
	if err != nil {
		return err
	}

	if err := sch.Validate(map[string]any(doc)); err != nil {
		return fmt.Errorf("invalid %s payload: %w", t, err)
	}
	return nil
}
