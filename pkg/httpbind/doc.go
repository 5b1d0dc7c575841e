// Package httpbind connects formkit trees to net/http: it feeds request
// data into a tree and serializes the tree's verdict back out.
//
// # Architecture
//
// Three binders cover the ways a form reaches a server. BindForm and
// BindQuery take url-encoded key/value pairs, resolve each key as a dotted
// control path and convert the strings to the types the controls hold.
// BindJSON (and its partial-update sibling PatchJSON) mirrors a JSON object
// onto the tree through the tree's strict setters. The response side is
// Snapshot, a pure projection of the tree into a Report, and WriteJSON.
//
// # Usage
//
//	func signup(w http.ResponseWriter, r *http.Request) {
//	    form := newSignupForm()
//	    if err := httpbind.BindForm(r, form); err != nil {
//	        http.Error(w, err.Error(), http.StatusBadRequest)
//	        return
//	    }
//	    if status, _ := formkit.Wait(r.Context(), form); status != formkit.StatusValid {
//	        _ = httpbind.WriteJSON(w, http.StatusUnprocessableEntity, httpbind.Snapshot(form))
//	        return
//	    }
//	    // persist form.Value() ...
//	}
//
// # Error Handling
//
// Transport-level problems return ErrMissingContentType,
// ErrUnsupportedMediaType or ErrMalformedBody before the tree is touched.
// A value that cannot be converted returns ErrBadValue naming the field.
// Shape and type violations raised by the tree's strict setters pass
// through as formkit sentinels. Validation failures are never Go errors;
// they live in the Report.
package httpbind
