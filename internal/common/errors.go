package common

import "errors"

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// Kind classifies an Error so handlers can map it to an HTTP status
// without ever inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindRateLimited
)

// FieldError describes a single violated constraint on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the structured error passed from services up to the API layer.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation error", Fields: fields}
}

func RateLimited(msg string) *Error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
