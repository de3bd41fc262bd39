// Package domain contains the core business entities and rules.
// These types have no knowledge of databases, HTTP, or any infrastructure concerns.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported by storage adapters. The service layer translates them
// into the typed taxonomy below before they reach a transport.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// Kind classifies an Error. Every kind except KindSystem is an expected,
// caller-recoverable outcome.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindBusinessLogic
	KindNotFound
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindBusinessLogic:
		return "business_logic"
	case KindNotFound:
		return "not_found"
	case KindSystem:
		return "system"
	}
	return "unknown"
}

// Error is the single error value raised by validation and mutation paths.
// Code is stable across releases; Params name the offending fields (or carry
// contextual values such as a date layout) in order.
type Error struct {
	Kind   Kind
	Code   string
	Params []string

	cause error
}

func (e *Error) Error() string {
	if len(e.Params) == 0 {
		return fmt.Sprintf("%s error %s", e.Kind, e.Code)
	}
	return fmt.Sprintf("%s error %s: %s", e.Kind, e.Code, strings.Join(e.Params, ", "))
}

// Unwrap exposes the underlying failure of a system error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by kind and code, so callers can compare against
// a template such as &Error{Kind: KindValidation, Code: CodeRequired}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func newError(kind Kind, code string, params []string) *Error {
	if params == nil {
		params = []string{}
	}
	return &Error{Kind: kind, Code: code, Params: params}
}

func NewValidationError(code string, params ...string) *Error {
	return newError(KindValidation, code, params)
}

func NewDuplicateError(code string, params ...string) *Error {
	return newError(KindDuplicate, code, params)
}

func NewBusinessLogicError(code string, params ...string) *Error {
	return newError(KindBusinessLogic, code, params)
}

func NewNotFoundError(code string, params ...string) *Error {
	return newError(KindNotFound, code, params)
}

// NewSystemError wraps an unexpected failure. The cause is kept for logging
// and is never shown to callers.
func NewSystemError(code string, cause error) *Error {
	e := newError(KindSystem, code, nil)
	e.cause = cause
	return e
}

// AsError extracts the typed error from err. Untyped errors are reported as
// system failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return NewSystemError(CodeSystemError, err)
}

// KindOf returns the kind of err, KindSystem for untyped errors.
func KindOf(err error) Kind {
	return AsError(err).Kind
}
