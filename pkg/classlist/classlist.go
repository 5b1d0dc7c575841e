package classlist

import (
	"strings"

	"github.com/dmitrymomot/formkit"
)

// DefaultPrefix is prepended to every class name unless WithPrefix overrides
// it.
const DefaultPrefix = "fk"

type config struct {
	prefix string
}

// Option adjusts how class names are derived.
type Option func(*config)

// WithPrefix replaces the default "fk" class prefix. An empty prefix yields
// bare class names ("valid", "dirty", ...).
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// Classes projects a control's state onto CSS class names. The result always
// holds exactly three entries in stable order: the status class
// (valid/invalid/pending/disabled), the dirty axis (dirty/pristine), and the
// touched axis (touched/untouched).
func Classes(c formkit.Control, opts ...Option) []string {
	cfg := config{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}

	classes := make([]string, 0, 3)
	classes = append(classes, cfg.class(c.Status().String()))
	if c.Dirty() {
		classes = append(classes, cfg.class("dirty"))
	} else {
		classes = append(classes, cfg.class("pristine"))
	}
	if c.Touched() {
		classes = append(classes, cfg.class("touched"))
	} else {
		classes = append(classes, cfg.class("untouched"))
	}
	return classes
}

// String renders the projection ready for a class attribute.
func String(c formkit.Control, opts ...Option) string {
	return strings.Join(Classes(c, opts...), " ")
}

func (c config) class(name string) string {
	if c.prefix == "" {
		return name
	}
	return c.prefix + "-" + name
}
