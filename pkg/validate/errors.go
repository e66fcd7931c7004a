package validate

import (
	"fmt"

	"github.com/getmockd/soapmock/pkg/descriptor"
)

// Kind classifies a validation failure.
type Kind string

// Validation failure kinds, in the order the checks run.
const (
	KindConfigNotFound       Kind = "ConfigNotFound"
	KindMalformedConfig      Kind = "MalformedConfig"
	KindInvalidShape         Kind = "InvalidShape"
	KindMissingField         Kind = "MissingField"
	KindMissingWSDL          Kind = "MissingWsdl"
	KindInvalidResourcesType Kind = "InvalidResourcesType"
	KindInvalidResource      Kind = "InvalidResource"
	KindMissingScript        Kind = "MissingScript"
	KindSchemaViolation      Kind = "SchemaViolation"
)

// Error is returned by Validate. Field, Index, and File are set when they
// apply to the Kind; Index is 1-based.
type Error struct {
	Kind  Kind   `json:"kind"`
	Field string `json:"field,omitempty"`
	Index int    `json:"index,omitempty"`
	File  string `json:"file,omitempty"`
	Cause error  `json:"-"`
}

// Sentinels for errors.Is. Matching compares only the Kind.
var (
	ErrConfigNotFound       = &Error{Kind: KindConfigNotFound}
	ErrMalformedConfig      = &Error{Kind: KindMalformedConfig}
	ErrInvalidShape         = &Error{Kind: KindInvalidShape}
	ErrMissingField         = &Error{Kind: KindMissingField}
	ErrMissingWSDL          = &Error{Kind: KindMissingWSDL}
	ErrInvalidResourcesType = &Error{Kind: KindInvalidResourcesType}
	ErrInvalidResource      = &Error{Kind: KindInvalidResource}
	ErrMissingScript        = &Error{Kind: KindMissingScript}
	ErrSchemaViolation      = &Error{Kind: KindSchemaViolation}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindConfigNotFound:
		msg = fmt.Sprintf("%s not found", descriptor.FileName)
		if e.File != "" {
			msg = fmt.Sprintf("%s not found: %s", descriptor.FileName, e.File)
		}
	case KindMalformedConfig:
		msg = fmt.Sprintf("%s is not valid YAML", descriptor.FileName)
	case KindInvalidShape:
		msg = fmt.Sprintf("%s must contain a mapping", descriptor.FileName)
	case KindMissingField:
		msg = "missing required field: " + e.Field
	case KindMissingWSDL:
		msg = "WSDL file not found in project: " + e.File
	case KindInvalidResourcesType:
		msg = "'resources' must be a list"
	case KindInvalidResource:
		msg = fmt.Sprintf("resource #%d is invalid (path/response missing)", e.Index)
	case KindMissingScript:
		msg = fmt.Sprintf("resource #%d: scriptFile not found: %s", e.Index, e.File)
	case KindSchemaViolation:
		msg = "descriptor does not match schema"
		if e.Field != "" {
			msg += " at " + e.Field
		}
	default:
		msg = "invalid descriptor: " + string(e.Kind)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
