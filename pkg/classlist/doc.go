// Package classlist projects formkit control state onto CSS class names so
// server-rendered markup can style inputs the way client-side form libraries
// do.
//
// The projection is a pure read of the control: one status class plus the
// dirty and touched axes, prefixed with "fk" by default.
//
//	<input class="{{ classlist.String(email) }}" ...>
//	// e.g. class="fk-invalid fk-dirty fk-untouched"
//
// Use WithPrefix to match an existing stylesheet:
//
//	classlist.String(email, classlist.WithPrefix("form"))
//	// "form-invalid form-dirty form-untouched"
//
// The package holds no state and performs no mutation; call it as often as
// the template needs.
package classlist
