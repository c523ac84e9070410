package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "amount", "error": "amount must be greater than zero" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type surfaced to callers of the module.
//
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "ORDER_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status a serving layer should answer with.
//   - Override: whether Message is safe to show to end users as-is.
//   - Errors: per-field validation errors.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`

	// cause is the underlying error, kept for errors.As/Unwrap and logs.
	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any *HTTPError.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

// WithMessage returns a copy with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithCause returns a copy that wraps cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	clone := *e
	clone.cause = cause
	return &clone
}

// Field returns the message of the first error reported for field.
func (e *HTTPError) Field(field string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Error, true
		}
	}
	return "", false
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
