package schema

import "errors"

var (
	// ErrInvalidDocument is returned when a YAML or OpenAPI document cannot
	// be parsed into a form definition.
	ErrInvalidDocument = errors.New("schema: invalid document")

	// ErrUnknownType is returned when a field declares a type the builder
	// does not recognize.
	ErrUnknownType = errors.New("schema: unknown field type")

	// ErrUnknownRule is returned when a rule name has no factory registered
	// for the declaring field's type.
	ErrUnknownRule = errors.New("schema: unknown rule")

	// ErrBadRuleArgs is returned when a rule's arguments do not match what
	// its factory expects.
	ErrBadRuleArgs = errors.New("schema: bad rule arguments")

	// ErrBadDefault is returned when a declared default value does not fit
	// the field's type.
	ErrBadDefault = errors.New("schema: default value does not match field type")

	// ErrNoOperation is returned when an OpenAPI document has no operation
	// with the requested id.
	ErrNoOperation = errors.New("schema: operation not found")

	// ErrNoRequestBody is returned when the selected operation carries no
	// usable request body schema.
	ErrNoRequestBody = errors.New("schema: operation has no request body schema")
)
