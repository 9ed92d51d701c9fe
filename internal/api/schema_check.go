package api

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Schemas maps every swagger definition name to the Go type it must match.
// Adding a wire type without registering it here makes the consistency check
// fail, which is the point.
var Schemas = map[string]reflect.Type{
	"api.User":              reflect.TypeOf(User{}),
	"api.CreateUserRequest": reflect.TypeOf(CreateUserRequest{}),
	"api.UpdateUserRequest": reflect.TypeOf(UpdateUserRequest{}),
	"api.PaginationInfo":    reflect.TypeOf(PaginationInfo{}),
	"api.UserResponse":      reflect.TypeOf(UserResponse{}),
	"api.UsersResponse":     reflect.TypeOf(UsersResponse{}),
	"api.ErrorDetail":       reflect.TypeOf(ErrorDetail{}),
	"api.ErrorResponse":     reflect.TypeOf(ErrorResponse{}),
	"api.HealthResponse":    reflect.TypeOf(HealthResponse{}),
}

type swaggerDoc struct {
	Definitions map[string]swaggerSchema `json:"definitions"`
}

type swaggerSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// CheckSchemas structurally diffs the swagger document against the registered
// Go types: property sets must match in both directions and the schema's
// required list must equal the set of fields without omitempty. It returns one
// human-readable line per drift; an empty result means the contract and the
// code agree.
func CheckSchemas(doc []byte) ([]string, error) {
	var spec swaggerDoc
	if err := json.Unmarshal(doc, &spec); err != nil {
		return nil, fmt.Errorf("parse swagger document: %w", err)
	}

	var drifts []string

	for name, typ := range Schemas {
		schema, ok := spec.Definitions[name]
		if !ok {
			drifts = append(drifts, fmt.Sprintf("%s: declared in Go but missing from the swagger document", name))
			continue
		}
		drifts = append(drifts, diffSchema(name, schema, typ)...)
	}

	// Definitions with no Go counterpart are drift too.
	for name := range spec.Definitions {
		if _, ok := Schemas[name]; !ok {
			drifts = append(drifts, fmt.Sprintf("%s: defined in the swagger document but not declared in Go", name))
		}
	}

	sort.Strings(drifts)
	return drifts, nil
}

func diffSchema(name string, schema swaggerSchema, typ reflect.Type) []string {
	var drifts []string

	fields, required := jsonFields(typ)

	for prop := range schema.Properties {
		if _, ok := fields[prop]; !ok {
			drifts = append(drifts, fmt.Sprintf("%s: property %q in swagger but not in Go type %s", name, prop, typ.Name()))
		}
	}
	for field := range fields {
		if _, ok := schema.Properties[field]; !ok {
			drifts = append(drifts, fmt.Sprintf("%s: field %q in Go type %s but not in swagger", name, field, typ.Name()))
		}
	}

	wantRequired := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		wantRequired[r] = true
	}
	for field := range required {
		if _, inSchema := schema.Properties[field]; inSchema && !wantRequired[field] {
			drifts = append(drifts, fmt.Sprintf("%s: field %q is required in Go but optional in swagger", name, field))
		}
	}
	for _, r := range schema.Required {
		if _, ok := fields[r]; !ok {
			continue // already reported as a missing property
		}
		if _, ok := required[r]; !ok {
			drifts = append(drifts, fmt.Sprintf("%s: field %q is required in swagger but optional in Go", name, r))
		}
	}

	return drifts
}

// jsonFields returns the json property names of a struct type and the subset
// that serializes unconditionally (no omitempty).
func jsonFields(typ reflect.Type) (fields, required map[string]struct{}) {
	fields = make(map[string]struct{})
	required = make(map[string]struct{})

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields[name] = struct{}{}
		if !strings.Contains(opts, "omitempty") {
			required[name] = struct{}{}
		}
	}
	return fields, required
}
