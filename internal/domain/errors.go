package domain

import "errors"

var (
	// Fetch failures.
	ErrTransport = errors.New("transport failure")
	ErrBadStatus = errors.New("bad status")

	// Extraction failures.
	ErrInvalidPayload = errors.New("invalid payload")
	ErrMissingField   = errors.New("missing field")
	ErrNotNumeric     = errors.New("not numeric")

	// Configuration failures.
	ErrInvalidInterval = errors.New("invalid interval")
	ErrInvalidRequest  = errors.New("invalid quote request")
)

// ErrorKind maps an error onto a short label suitable for logs and metric labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrBadStatus):
		return "bad_status"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrNotNumeric):
		return "not_numeric"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "unknown"
	}
}

// IsFetchError reports whether err belongs to the fetch class.
func IsFetchError(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrBadStatus)
}

// IsExtractError reports whether err belongs to the extraction class.
func IsExtractError(err error) bool {
	return errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrMissingField) || errors.Is(err, ErrNotNumeric)
}
