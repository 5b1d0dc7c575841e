package httpbind

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/formkit"
)

// Report is the JSON projection of a tree's validation state, shaped for
// API clients rendering field-level feedback.
type Report struct {
	Status formkit.Status `json:"status"`
	Valid  bool           `json:"valid"`

	// Errors holds each control's own errors keyed by dotted path.
	Errors map[string]formkit.Errors `json:"errors,omitempty"`

	// FormErrors holds the root group's cross-field errors.
	FormErrors formkit.Errors `json:"formErrors,omitempty"`
}

// Snapshot collects the validation state of the whole tree. Disabled
// controls appear with their status but contribute no errors, matching how
// the engine excludes them from aggregation.
func Snapshot(form *formkit.Group) Report {
	report := Report{
		Status:     form.Status(),
		Valid:      form.Valid(),
		FormErrors: form.Errors(),
	}
	errs := make(map[string]formkit.Errors)
	collectErrors(form, "", errs)
	if len(errs) > 0 {
		report.Errors = errs
	}
	return report
}

func collectErrors(c formkit.Control, path string, out map[string]formkit.Errors) {
	switch t := c.(type) {
	case *formkit.Group:
		for _, name := range t.Names() {
			child, ok := t.Child(name)
			if !ok {
				continue
			}
			collectErrors(child, joinPath(path, name), out)
		}
	case *formkit.Array:
		for i, el := range t.Controls() {
			collectErrors(el, joinPath(path, strconv.Itoa(i)), out)
		}
	}
	// The root's own errors are reported as FormErrors, not under a path.
	if path == "" {
		return
	}
	if errs := c.Errors(); len(errs) > 0 {
		out[path] = errs
	}
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// WriteJSON renders a report. Use http.StatusUnprocessableEntity for failed
// validations and http.StatusOK for clean ones; the report itself carries
// the verdict either way.
func WriteJSON(w http.ResponseWriter, code int, report Report) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(report)
}
