// Package messages turns formkit error keys into human-readable text with
// locale negotiation.
//
// A Catalog holds message templates per BCP 47 locale. Lookups match the
// requested locale against the registered ones, so "de-AT" finds "de", and a
// full Accept-Language header works directly:
//
//	catalog := messages.Default() // English built-ins
//	_ = catalog.Add("de", map[string]string{
//	    "required":  "Pflichtfeld.",
//	    "minlength": "Mindestens %{requiredLength} Zeichen.",
//	})
//
//	msgs := catalog.Localize(r.Header.Get("Accept-Language"), field.Errors())
//
// Templates interpolate the rule's detail payload through %{name}
// placeholders, where names are the payload's JSON field names. The first
// registered locale is the fallback for unmatched locales and untranslated
// keys; a key missing everywhere renders as itself.
//
// # Error Handling
//
// Add returns ErrInvalidLocale for a malformed tag. Render paths never
// fail: they degrade to the fallback locale and finally to the key string.
package messages
