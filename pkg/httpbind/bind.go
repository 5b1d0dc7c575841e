package httpbind

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formkit"
)

// Multipart bodies above this stay on disk rather than in memory.
const maxMultipartMemory = 10 << 20

// BindForm feeds an HTML form submission into the tree. Keys are dotted
// control paths ("email", "address.street", "tags.0"); a key repeated for an
// array control fills its elements in order. Binding patches: controls
// without a submitted key keep their value, and unknown keys are skipped,
// which lets CSRF tokens and submit buttons ride along.
//
// Accepts application/x-www-form-urlencoded and multipart/form-data.
func BindForm(r *http.Request, form *formkit.Group) error {
	mediaType, err := mediaTypeOf(r)
	if err != nil {
		return err
	}
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return errors.Join(ErrMalformedBody, err)
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return errors.Join(ErrMalformedBody, err)
		}
	default:
		return fmt.Errorf("%w: got %s, expected a form encoding", ErrUnsupportedMediaType, mediaType)
	}
	return bindValues(r.PostForm, form)
}

// BindQuery binds URL query parameters with the same path and patch
// semantics as BindForm. Meant for search and filter forms carried by GET.
func BindQuery(r *http.Request, form *formkit.Group) error {
	return bindValues(r.URL.Query(), form)
}

func bindValues(values url.Values, form *formkit.Group) error {
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		target, ok := form.Lookup(key)
		if !ok {
			continue
		}
		if arr, ok := target.(*formkit.Array); ok {
			if err := bindArray(key, arr, vals); err != nil {
				return err
			}
			continue
		}
		if err := setString(key, target, vals[0]); err != nil {
			return err
		}
	}
	return nil
}

func bindArray(key string, arr *formkit.Array, vals []string) error {
	if len(vals) > arr.Len() {
		return errors.Join(ErrBadValue,
			fmt.Errorf("field %q: %d values for %d elements", key, len(vals), arr.Len()))
	}
	for i, raw := range vals {
		el, ok := arr.At(i)
		if !ok {
			return errors.Join(ErrBadValue, fmt.Errorf("field %q: no element %d", key, i))
		}
		if err := setString(fmt.Sprintf("%s.%d", key, i), el, raw); err != nil {
			return err
		}
	}
	return nil
}

func setString(path string, c formkit.Control, raw string) error {
	v, err := coerce(path, c, raw)
	if err != nil {
		return err
	}
	if err := c.SetAny(v); err != nil {
		return errors.Join(ErrBadValue, fmt.Errorf("field %q", path), err)
	}
	return nil
}

// coerce converts a submitted string to the dynamic type the control holds.
func coerce(path string, c formkit.Control, raw string) (any, error) {
	switch c.RawValue().(type) {
	case string:
		return raw, nil
	case bool:
		b, err := parseBool(raw)
		if err != nil {
			return nil, errors.Join(ErrBadValue, fmt.Errorf("field %q: %w", path, err))
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Join(ErrBadValue, fmt.Errorf("field %q: invalid int value %q", path, raw))
		}
		return n, nil
	case int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Join(ErrBadValue, fmt.Errorf("field %q: invalid int value %q", path, raw))
		}
		return n, nil
	case float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Join(ErrBadValue, fmt.Errorf("field %q: invalid float value %q", path, raw))
		}
		return f, nil
	default:
		return nil, errors.Join(ErrBadValue,
			fmt.Errorf("field %q holds %T, which form binding does not support", path, c.RawValue()))
	}
}

// parseBool accepts strconv's forms plus the values HTML checkboxes and
// selects actually send.
func parseBool(raw string) (bool, error) {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b, nil
	}
	switch strings.ToLower(raw) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", raw)
}

func mediaTypeOf(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", ErrMissingContentType
	}
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct)), nil
}
