package messages

import "errors"

var (
	// ErrInvalidLocale is returned by Add when the locale string is not a
	// well-formed BCP 47 tag.
	ErrInvalidLocale = errors.New("messages: invalid locale")
)
