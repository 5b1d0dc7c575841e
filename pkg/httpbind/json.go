package httpbind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/formkit"
)

// BindJSON replaces the tree's values from a JSON object body. The document
// must mirror the tree exactly: every enabled control present, no extra
// keys. Shape violations surface as the tree's own sentinel errors
// (formkit.ErrShapeMismatch, formkit.ErrTypeMismatch), so API handlers can
// distinguish a bad payload from a failed validation.
func BindJSON(r *http.Request, form *formkit.Group) error {
	payload, err := objectBody(r)
	if err != nil {
		return err
	}
	return form.SetValue(alignMap(payload, form))
}

// PatchJSON updates only the controls named by the JSON object body,
// leaving the rest untouched. The partial-update counterpart of BindJSON.
func PatchJSON(r *http.Request, form *formkit.Group) error {
	payload, err := objectBody(r)
	if err != nil {
		return err
	}
	return form.PatchValue(alignMap(payload, form))
}

func objectBody(r *http.Request) (map[string]any, error) {
	mediaType, err := mediaTypeOf(r)
	if err != nil {
		return nil, err
	}
	if mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrMalformedBody, errors.New("empty body"))
		}
		return nil, errors.Join(ErrMalformedBody, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrMalformedBody, errors.New("unexpected data after JSON value"))
	}

	m, ok := payload.(map[string]any)
	if !ok {
		return nil, errors.Join(ErrMalformedBody, fmt.Errorf("body must be a JSON object, got %T", payload))
	}
	return m, nil
}

// align walks the payload and the tree together, resolving each json.Number
// to the numeric type its control holds. Values with no matching control
// pass through untouched for the tree's strict setter to report.
func align(v any, c formkit.Control) any {
	switch t := v.(type) {
	case map[string]any:
		g, ok := c.(*formkit.Group)
		if !ok {
			return v
		}
		return alignMap(t, g)
	case []any:
		a, ok := c.(*formkit.Array)
		if !ok {
			return v
		}
		out := make([]any, len(t))
		for i, val := range t {
			el, ok := a.At(i)
			if !ok {
				out[i] = val
				continue
			}
			out[i] = align(val, el)
		}
		return out
	case json.Number:
		return alignNumber(t, c)
	default:
		return v
	}
}

func alignMap(m map[string]any, g *formkit.Group) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		child, ok := g.Child(k)
		if !ok {
			out[k] = val
			continue
		}
		out[k] = align(val, child)
	}
	return out
}

func alignNumber(n json.Number, c formkit.Control) any {
	switch c.RawValue().(type) {
	case int:
		if v, err := n.Int64(); err == nil {
			return int(v)
		}
	case int64:
		if v, err := n.Int64(); err == nil {
			return v
		}
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
