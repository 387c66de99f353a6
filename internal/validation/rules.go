package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Rule is one constraint (or transform) in a field's chain.
// Apply returns the possibly transformed value, or an error whose text is the
// client-facing message.
type Rule interface {
	Apply(value any) (any, error)
}

// Trim strips surrounding whitespace from a string.
type Trim struct{}

func (Trim) Apply(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	return strings.TrimSpace(s), nil
}

// MinLength requires at least N characters.
type MinLength struct {
	N       int
	Message string
}

func (r MinLength) Apply(value any) (any, error) {
	s, ok := value.(string)
	if !ok || utf8.RuneCountInString(s) < r.N {
		return nil, violation(r.Message, fmt.Sprintf("Deve conter no mínimo %d caracteres", r.N))
	}
	return value, nil
}

// Email requires an address-shaped string.
type Email struct {
	Message string
}

func (r Email) Apply(value any) (any, error) {
	s, ok := value.(string)
	if !ok || len(s) > 254 || !emailRegex.MatchString(s) {
		return nil, violation(r.Message, "Email inválido")
	}
	return value, nil
}

// Positive requires a number strictly greater than zero.
type Positive struct {
	Message string
}

func (r Positive) Apply(value any) (any, error) {
	n, ok := value.(float64)
	if !ok || n <= 0 {
		return nil, violation(r.Message, "Deve ser um número positivo")
	}
	return value, nil
}

// Min requires a number no smaller than Limit.
type Min struct {
	Limit   float64
	Message string
}

func (r Min) Apply(value any) (any, error) {
	n, ok := value.(float64)
	if !ok || n < r.Limit {
		return nil, violation(r.Message, fmt.Sprintf("Deve ser no mínimo %v", r.Limit))
	}
	return value, nil
}

// Max requires a number no greater than Limit.
type Max struct {
	Limit   float64
	Message string
}

func (r Max) Apply(value any) (any, error) {
	n, ok := value.(float64)
	if !ok || n > r.Limit {
		return nil, violation(r.Message, fmt.Sprintf("Deve ser no máximo %v", r.Limit))
	}
	return value, nil
}

// OneOf requires a string from a fixed set.
type OneOf struct {
	Values  []string
	Message string
}

func (r OneOf) Apply(value any) (any, error) {
	s, ok := value.(string)
	if ok {
		for _, allowed := range r.Values {
			if s == allowed {
				return value, nil
			}
		}
	}
	return nil, violation(r.Message, fmt.Sprintf("Valor inválido. Opções: %s", strings.Join(r.Values, ", ")))
}

// Refine runs an arbitrary predicate, typically one closing over configuration.
type Refine struct {
	Check   func(value any) bool
	Message string
}

func (r Refine) Apply(value any) (any, error) {
	if r.Check == nil || !r.Check(value) {
		return nil, violation(r.Message, "Valor inválido")
	}
	return value, nil
}

func violation(custom, fallback string) error {
	if custom != "" {
		return errors.New(custom)
	}
	return errors.New(fallback)
}
