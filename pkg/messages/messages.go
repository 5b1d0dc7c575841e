package messages

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formkit"
)

// Catalog resolves error keys to human-readable message templates per
// locale. Locale resolution uses BCP 47 matching, so a catalog holding "en"
// and "de" serves "de-AT" requests with the German messages and everything
// else with the fallback.
//
// The first locale added is the fallback: it answers when no registered
// locale matches, and fills gaps when a matched locale lacks a key.
type Catalog struct {
	mu      sync.RWMutex
	tags    []language.Tag
	byTag   map[language.Tag]map[string]string
	matcher language.Matcher
}

// New returns an empty catalog. Most callers want Default, which preloads
// English templates for the built-in rule keys.
func New() *Catalog {
	return &Catalog{byTag: make(map[language.Tag]map[string]string)}
}

// Default returns a catalog preloaded with English messages for the keys the
// built-in rule catalog reports (required, minlength, email, ...). Add more
// locales or override individual keys afterwards.
func Default() *Catalog {
	c := New()
	// The key set is fixed at build time, Parse cannot fail on "en".
	_ = c.Add("en", english)
	return c
}

// Add registers message templates for a locale, merging over any templates
// the locale already has. Templates interpolate detail payload fields with
// %{name} placeholders, e.g. "at least %{requiredLength} characters".
func (c *Catalog) Add(locale string, msgs map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return errors.Join(ErrInvalidLocale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.byTag[tag]
	if !ok {
		existing = make(map[string]string, len(msgs))
		c.byTag[tag] = existing
		c.tags = append(c.tags, tag)
		c.matcher = language.NewMatcher(c.tags)
	}
	for key, tmpl := range msgs {
		existing[key] = tmpl
	}
	return nil
}

// Locales returns the registered locales in registration order. The first
// entry is the fallback.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

// Message renders the template for one error key. locale accepts a plain tag
// ("de") or a full Accept-Language header ("de-CH,de;q=0.9,en;q=0.5"). A key
// with no template in the matched locale falls back to the fallback locale's
// template, then to the key itself, so a missing translation never hides
// which rule failed.
func (c *Catalog) Message(locale, key string, detail any) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if tmpl, ok := c.lookup(locale, key); ok {
		return interpolate(tmpl, params(detail))
	}
	return key
}

// Localize renders every key of a control's errors, keyed as in the input.
// Returns nil when errs is empty.
func (c *Catalog) Localize(locale string, errs formkit.Errors) map[string]string {
	if len(errs) == 0 {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(errs))
	for key, detail := range errs {
		if tmpl, ok := c.lookup(locale, key); ok {
			out[key] = interpolate(tmpl, params(detail))
		} else {
			out[key] = key
		}
	}
	return out
}

// First renders the message for the first error key in sorted order, or ""
// when errs is empty. Handy when the UI shows a single message per field.
func (c *Catalog) First(locale string, errs formkit.Errors) string {
	keys := errs.Keys()
	if len(keys) == 0 {
		return ""
	}
	detail, _ := errs.Get(keys[0])
	return c.Message(locale, keys[0], detail)
}

// lookup must be called with at least a read lock held.
func (c *Catalog) lookup(locale, key string) (string, bool) {
	if len(c.tags) == 0 {
		return "", false
	}
	_, idx := language.MatchStrings(c.matcher, locale)
	if tmpl, ok := c.byTag[c.tags[idx]][key]; ok {
		return tmpl, true
	}
	if tmpl, ok := c.byTag[c.tags[0]][key]; ok {
		return tmpl, true
	}
	return "", false
}

var placeholderRe = regexp.MustCompile(`%\{([^}]+)\}`)

// interpolate substitutes %{name} placeholders from the params map, leaving
// unknown placeholders intact.
func interpolate(tmpl string, p map[string]string) string {
	if len(p) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := p[name]; ok {
			return val
		}
		return match
	})
}

// params flattens a rule's detail payload into placeholder values. Struct
// payloads expose their JSON field names (LengthDetail{RequiredLength: 3}
// yields requiredLength=3); scalar payloads expose a single "value".
func params(detail any) map[string]string {
	switch v := detail.(type) {
	case nil, bool:
		return nil
	case string:
		return map[string]string{"value": v}
	case map[string]string:
		return v
	default:
		raw, err := json.Marshal(detail)
		if err != nil || len(raw) == 0 || raw[0] != '{' {
			return map[string]string{"value": fmt.Sprint(v)}
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return map[string]string{"value": fmt.Sprint(v)}
		}
		out := make(map[string]string, len(fields))
		for name, val := range fields {
			out[name] = formatParam(val)
		}
		return out
	}
}

func formatParam(v any) string {
	if items, ok := v.([]any); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
