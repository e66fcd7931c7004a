package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the compiled descriptor schema.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("schema.json")
	})
	return compiledSchema, schemaErr
}

func checkSchema(config map[string]any) error {
	schema, err := Schema()
	if err != nil {
		return &Error{Kind: KindSchemaViolation, Cause: err}
	}

	// Round-trip through JSON so the validator sees JSON types only.
	raw, err := json.Marshal(normalize(config))
	if err != nil {
		return &Error{Kind: KindSchemaViolation, Cause: err}
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &Error{Kind: KindSchemaViolation, Cause: err}
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Error{Kind: KindSchemaViolation, Cause: err}
	}
	leaf := firstLeaf(verr)
	return &Error{
		Kind:  KindSchemaViolation,
		Field: fieldFromPointer(leaf.InstanceLocation),
		Cause: errors.New(leaf.Message),
	}
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// fieldFromPointer turns a JSON Pointer such as /resources/0/path into
// resources.0.path.
func fieldFromPointer(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}

// normalize converts nested map[any]any values so encoding/json accepts them.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
