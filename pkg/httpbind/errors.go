package httpbind

import "errors"

var (
	// ErrMissingContentType is returned when a body-carrying request
	// declares no content type.
	ErrMissingContentType = errors.New("httpbind: missing content type")

	// ErrUnsupportedMediaType is returned when the request's media type
	// does not match the binder.
	ErrUnsupportedMediaType = errors.New("httpbind: unsupported media type")

	// ErrMalformedBody is returned when the request body cannot be parsed
	// at all, before any value reaches the tree.
	ErrMalformedBody = errors.New("httpbind: malformed request body")

	// ErrBadValue is returned when a submitted value cannot be converted to
	// the type its control holds. The joined error names the field.
	ErrBadValue = errors.New("httpbind: value does not fit the control")
)
