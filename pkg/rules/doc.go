// Package rules provides ready-made validators for formkit controls: string
// shape and format checks, numeric bounds, membership, HTML safety, and
// cross-field constraints for composites.
//
// Every factory returns a formkit rule reporting under a canonical error key
// (Key* constants) with a typed detail payload, so consumers can project
// errors to messages or wire formats without parsing strings:
//
//	field := formkit.NewField("",
//	    rules.Required(),
//	    rules.MinLength(3),
//	    rules.Email(),
//	)
//
// Length rules fire on the empty string like on any other value. Format
// rules (Email, URL, Phone, UUID, IP, Alpha, pattern matching) treat the
// empty string as passing: whether a value may be empty is Required's
// decision, which keeps optional-but-well-formed fields a simple
// composition.
//
// Cross-field constraints are composite rules resolving their operands by
// path:
//
//	form := formkit.MustGroup(map[string]formkit.Control{
//	    "password": formkit.NewField(""),
//	    "confirm":  formkit.NewField(""),
//	}, rules.FieldsEqual("password", "confirm", "confirmMismatch"))
package rules
