// Package schema compiles declarative form definitions into formkit control
// trees. Definitions come from YAML documents written for this package or
// from the request body schemas of OpenAPI 3 documents, so a form can be
// derived from the same contract the API publishes.
//
// # Architecture
//
// A definition is a FormSpec: named FieldSpec entries plus cross-field
// rules. Rule names resolve through a Registry of factories exactly once,
// at Build time; the resulting tree carries plain closures and pays no
// lookup cost during validation. DefaultRegistry covers the built-in rule
// catalog; custom and async rules register alongside it.
//
// # Usage
//
//	reg := schema.DefaultRegistry()
//	reg.RegisterAsync("unique", func(args []any) (formkit.AsyncRule[string], error) {
//	    return remotecheck.Unique(emails), nil
//	})
//
//	form, err := schema.FromYAML(definition, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = form.SetValue(map[string]any{"email": "a@b.co", "password": "hunter22"})
//
// Build returns a fresh, unshared tree; build one per form instance and
// reuse the registry across builds.
//
// # Error Handling
//
// Malformed documents return ErrInvalidDocument. Resolution failures return
// ErrUnknownType, ErrUnknownRule, ErrBadRuleArgs or ErrBadDefault joined
// with the field path. The OpenAPI entry points add ErrNoOperation and
// ErrNoRequestBody. All errors surface at parse or build time; a built tree
// never fails for definition reasons.
package schema
