package roster

import (
	"errors"
	"sort"
	"strings"

	"github.com/idilsaglam/roster/internal/model"
)

// Code is the category of a controller failure.
type Code string

const (
	// CodeValidation is a local rejection; nothing was sent to the store.
	CodeValidation Code = "validation_failed"
	// CodeRequestFailed covers transport errors and any non-2xx reply.
	CodeRequestFailed Code = "request_failed"
)

// Sentinels for errors.Is.
var (
	ErrValidation    = &Error{Code: CodeValidation}
	ErrRequestFailed = &Error{Code: CodeRequestFailed}
)

// Error wraps a failure with a stable code and a user-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates an Error around err.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if err carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FieldKind says how a field failed validation.
type FieldKind string

const (
	MissingField FieldKind = "missing_field"
	InvalidField FieldKind = "invalid_field"
)

// FieldError is the failure reported for one field.
type FieldError struct {
	Kind    FieldKind
	Message string
}

// ValidationErrors maps a field name to its failure. Empty means valid.
type ValidationErrors map[string]FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, name := range v.Fields() {
		msgs = append(msgs, v[name].Message)
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the failed field names in form order; unknown names sort last.
func (v ValidationErrors) Fields() []string {
	rank := make(map[string]int, len(model.FieldOrder))
	for i, name := range model.FieldOrder {
		rank[name] = i
	}
	out := make([]string, 0, len(v))
	for name := range v {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i]]
		rj, jok := rank[out[j]]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// ValidationErrorsOf extracts per-field errors from err, if any.
func ValidationErrorsOf(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
