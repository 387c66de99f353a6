// Package validation evaluates declarative request schemas.
//
// A Schema is an ordered list of fields, each carrying a chain of rules.
// Evaluation walks fields in declaration order and each field's rules left to
// right, stopping at the first violation. Rules may also transform the value
// (Trim), and later rules see the transformed value.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"

	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

// Mode decides what happens to keys a schema does not declare.
type Mode int

const (
	// Strict rejects undeclared keys.
	Strict Mode = iota
	// Passthrough copies undeclared keys into the result unexamined.
	Passthrough
)

// Kind is the primitive type a field must hold.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Field declares one key of a schema.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	// Default is used when the key is absent or null. It runs through Rules.
	Default any
	// Message replaces the default message for a missing or mistyped value.
	Message string
	Rules   []Rule
}

// Schema is a declarative contract for one input.
type Schema struct {
	Mode   Mode
	Fields []Field
}

// Values is the validated, normalized input.
type Values map[string]any

// String returns a string field or "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Float returns a numeric field or 0 when absent.
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Has reports whether name is present in the result.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Validate checks input against schema and returns the normalized values.
// The error, if any, is a validation DomainError for the first violation.
func Validate(schema Schema, input map[string]any) (Values, error) {
	out := make(Values, len(schema.Fields))
	declared := make(map[string]struct{}, len(schema.Fields))

	for _, field := range schema.Fields {
		declared[field.Name] = struct{}{}

		raw, present := input[field.Name]
		if !present || raw == nil {
			if field.Default == nil {
				if field.Optional {
					continue
				}
				return nil, apperrors.NewValidationError(field.Name, field.missingMessage())
			}
			raw = field.Default
		}

		value, ok := normalize(field.Kind, raw)
		if !ok {
			return nil, apperrors.NewValidationError(field.Name, field.typeMessage())
		}

		for _, rule := range field.Rules {
			next, err := rule.Apply(value)
			if err != nil {
				return nil, apperrors.NewValidationError(field.Name, err.Error())
			}
			value = next
		}
		out[field.Name] = value
	}

	extra := make([]string, 0)
	for key := range input {
		if _, ok := declared[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return out, nil
	}

	if schema.Mode == Strict {
		sort.Strings(extra)
		return nil, apperrors.NewValidationError(extra[0], fmt.Sprintf("Campo não permitido: %s", extra[0]))
	}
	for _, key := range extra {
		out[key] = input[key]
	}
	return out, nil
}

func (f Field) missingMessage() string {
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("%s é obrigatório", f.Name)
}

func (f Field) typeMessage() string {
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("%s possui tipo inválido", f.Name)
}

func normalize(kind Kind, raw any) (any, bool) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindNumber:
		return toFloat(raw)
	default:
		return nil, false
	}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
