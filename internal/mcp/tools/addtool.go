package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of Out passes
// the output schema the SDK infers for it. Tool outputs are built from zero
// values and filled in, so a zero value that fails validation means some call
// will fail at runtime.
//
// Panics if the check fails.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T would fail the SDK's
// output validation. Two mistakes are caught:
//
//   - slice fields without omitzero or omitempty, which marshal as null while
//     the inferred schema expects an array;
//   - json.RawMessage fields, which marshal as arbitrary JSON while the
//     inferred schema expects an array of integers.
//
// The untyped any output is skipped. Schema inference failures are left to
// the SDK, which reports them itself.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s contains json.RawMessage at %s\n"+
				"  json.RawMessage serializes as transparent JSON but schema generator infers []byte (array of ints)\n"+
				"  Fix: change the field type to a concrete struct, or to any after unmarshaling the raw JSON",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	data, err := zeroValueProblem(rt)
	if err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add `omitzero` to nil-defaulting slice fields, or initialize them to empty slices",
			toolName, rt, err, data,
		))
	}
}

// zeroValueProblem validates the marshaled zero value of rt against its
// inferred schema. It returns the marshaled JSON with any validation error.
func zeroValueProblem(rt reflect.Type) ([]byte, error) {
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil, nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil, nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, nil
	}
	return data, resolved.Validate(&v)
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths returns the dotted paths of json.RawMessage values reachable
// from t. Slices add "[]" and maps "[value]" to the path.
func rawMessagePaths(t reflect.Type, path []string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, append(path, f.Name), visiting)...)
		}
	case reflect.Slice, reflect.Array:
		found = rawMessagePaths(t.Elem(), append(path, "[]"), visiting)
	case reflect.Map:
		found = rawMessagePaths(t.Elem(), append(path, "[value]"), visiting)
	}
	return found
}
