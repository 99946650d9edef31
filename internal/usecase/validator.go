package usecase

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tracekit/jirabridge/internal/domain"
)

// Validators holds one compiled JSON Schema per tool. Compilation happens
// once at startup; a malformed schema aborts the process rather than
// running with a broken validator. Validation itself is pure.
type Validators struct {
	byName map[string]*jsonschema.Schema
}

// CompileValidators compiles the input schema of every spec.
func CompileValidators(specs []domain.ToolSpec) (*Validators, error) {
	v := &Validators{byName: make(map[string]*jsonschema.Schema, len(specs))}
	for _, spec := range specs {
		s, err := jsonschema.CompileString(spec.Name+".json", string(spec.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("invalid input schema for tool %s: %w", spec.Name, err)
		}
		v.byName[spec.Name] = s
	}
	return v, nil
}

// Validate checks args against the tool's schema and returns the collected
// violation messages. An empty slice means the arguments are valid. Tools
// without a compiled schema accept anything.
func (v *Validators) Validate(name string, args map[string]any) []string {
	s, ok := v.byName[name]
	if !ok {
		return nil
	}
	// jsonschema validates decoded JSON values; tool arguments arrive
	// exactly in that shape.
	err := s.Validate(normalizeArgs(args))
	if err == nil {
		return nil
	}
	if ve, ok := err.(*jsonschema.ValidationError); ok {
		return leafMessages(ve)
	}
	return []string{err.Error()}
}

// normalizeArgs guards against a nil map, which the schema layer treats
// as JSON null instead of an empty object.
func normalizeArgs(args map[string]any) any {
	if args == nil {
		return map[string]any{}
	}
	return args
}

// leafMessages walks the validation error tree and collects the leaf
// causes, which carry the specific violations.
func leafMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, err.Message)}
	}
	var msgs []string
	for _, c := range err.Causes {
		msgs = append(msgs, leafMessages(c)...)
	}
	return msgs
}
