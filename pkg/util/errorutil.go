package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeInternal     = "INTERNAL_ERROR"
)

// Client-facing messages shared by every layer.
const (
	MsgUnauthorized = "Não autorizado"
	MsgForbidden    = "Acesso negado"
	MsgInternal     = "Erro interno do servidor"
)

// Postgres SQLSTATEs translated to client errors.
const (
	uniqueViolation      = "23505"
	checkViolation       = "23514"
	numericOutOfRange    = "22003"
	invalidTextRepresent = "22P02"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Field      string
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports the first violated constraint of a request.
func NewValidationError(field, message string) error {
	return &DomainError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s não encontrado", resource), http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err carries the given DomainError code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("Registro").(*DomainError)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return &DomainError{
				Code:       CodeConflict,
				Message:    "Registro já existe",
				HTTPStatus: http.StatusConflict,
				Err:        err,
			}
		case checkViolation, numericOutOfRange, invalidTextRepresent:
			return &DomainError{
				Code:       CodeValidation,
				Message:    "Valor inválido",
				HTTPStatus: http.StatusBadRequest,
				Field:      pgErr.ColumnName,
				Err:        err,
			}
		}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch err.Code {
	case fiber.StatusNotFound:
		return NewDomainError(CodeNotFound, "Rota não encontrada", http.StatusNotFound, nil)
	case fiber.StatusMethodNotAllowed:
		return NewDomainError(CodeNotFound, "Rota não encontrada", http.StatusMethodNotAllowed, nil)
	case fiber.StatusRequestEntityTooLarge:
		return NewDomainError(CodeTooLarge, "Arquivo excede o tamanho permitido", http.StatusRequestEntityTooLarge, nil)
	case fiber.StatusUnauthorized:
		return NewUnauthorized(MsgUnauthorized).(*DomainError)
	case fiber.StatusForbidden:
		return NewForbidden(MsgForbidden).(*DomainError)
	}
	if err.Code >= 400 && err.Code < 500 {
		return &DomainError{Code: CodeValidation, Message: err.Message, HTTPStatus: err.Code, Err: err}
	}
	return NewInternalError(err).(*DomainError)
}
