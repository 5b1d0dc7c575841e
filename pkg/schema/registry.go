package schema

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Factory signatures for each control type a rule name can bind to. A
// factory validates its arguments once; the returned rule runs with no
// argument handling left to do.
type (
	StringRuleFactory    func(args []any) (formkit.Rule[string], error)
	IntRuleFactory       func(args []any) (formkit.Rule[int64], error)
	FloatRuleFactory     func(args []any) (formkit.Rule[float64], error)
	BoolRuleFactory      func(args []any) (formkit.Rule[bool], error)
	CompositeRuleFactory func(args []any) (formkit.CompositeRule, error)
	AsyncRuleFactory     func(args []any) (formkit.AsyncRule[string], error)
)

// Registry maps rule names to factories, separately per control type so the
// same name can mean different rules for different types ("min" for integer
// and number fields, "enum" for all leaf families). Names are matched
// case-insensitively.
//
// A Registry is not safe for concurrent mutation. Register everything up
// front, then share it across Build calls freely.
type Registry struct {
	strings    map[string]StringRuleFactory
	ints       map[string]IntRuleFactory
	floats     map[string]FloatRuleFactory
	bools      map[string]BoolRuleFactory
	composites map[string]CompositeRuleFactory
	asyncs     map[string]AsyncRuleFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strings:    make(map[string]StringRuleFactory),
		ints:       make(map[string]IntRuleFactory),
		floats:     make(map[string]FloatRuleFactory),
		bools:      make(map[string]BoolRuleFactory),
		composites: make(map[string]CompositeRuleFactory),
		asyncs:     make(map[string]AsyncRuleFactory),
	}
}

// RegisterString binds name to a string-rule factory, replacing any
// previous binding.
func (r *Registry) RegisterString(name string, f StringRuleFactory) {
	r.strings[strings.ToLower(name)] = f
}

// RegisterInt binds name to an integer-rule factory.
func (r *Registry) RegisterInt(name string, f IntRuleFactory) {
	r.ints[strings.ToLower(name)] = f
}

// RegisterFloat binds name to a number-rule factory.
func (r *Registry) RegisterFloat(name string, f FloatRuleFactory) {
	r.floats[strings.ToLower(name)] = f
}

// RegisterBool binds name to a boolean-rule factory.
func (r *Registry) RegisterBool(name string, f BoolRuleFactory) {
	r.bools[strings.ToLower(name)] = f
}

// RegisterComposite binds name to a cross-field rule factory, usable in the
// rules list of the form root and of object and array fields.
func (r *Registry) RegisterComposite(name string, f CompositeRuleFactory) {
	r.composites[strings.ToLower(name)] = f
}

// RegisterAsync binds name to an async string-rule factory. Async rules are
// declared under a field's "async" list and are supported on string fields,
// which covers the remote existence and uniqueness checks they exist for.
func (r *Registry) RegisterAsync(name string, f AsyncRuleFactory) {
	r.asyncs[strings.ToLower(name)] = f
}

func (r *Registry) stringRule(spec RuleSpec) (formkit.Rule[string], error) {
	f, ok := r.strings[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Join(ErrUnknownRule, fmt.Errorf("no string rule %q", spec.Name))
	}
	return f(spec.Args)
}

func (r *Registry) intRule(spec RuleSpec) (formkit.Rule[int64], error) {
	f, ok := r.ints[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Join(ErrUnknownRule, fmt.Errorf("no integer rule %q", spec.Name))
	}
	return f(spec.Args)
}

func (r *Registry) floatRule(spec RuleSpec) (formkit.Rule[float64], error) {
	f, ok := r.floats[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Join(ErrUnknownRule, fmt.Errorf("no number rule %q", spec.Name))
	}
	return f(spec.Args)
}

func (r *Registry) boolRule(spec RuleSpec) (formkit.Rule[bool], error) {
	f, ok := r.bools[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Join(ErrUnknownRule, fmt.Errorf("no boolean rule %q", spec.Name))
	}
	return f(spec.Args)
}

func (r *Registry) compositeRule(spec RuleSpec) (formkit.CompositeRule, error) {
	f, ok := r.composites[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Join(ErrUnknownRule, fmt.Errorf("no composite rule %q", spec.Name))
	}
	return f(spec.Args)
}

func (r *Registry) asyncRule(spec RuleSpec) (formkit.AsyncRule[string], error) {
	f, ok := r.asyncs[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Join(ErrUnknownRule, fmt.Errorf("no async rule %q", spec.Name))
	}
	return f(spec.Args)
}

// DefaultRegistry returns a registry preloaded with the built-in rule
// catalog. Async rules are not preloaded: they need live collaborators
// (database pools, API clients), so callers register them explicitly.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.RegisterString("required", noArgFactory(rules.Required))
	r.RegisterString("nonblank", noArgFactory(rules.NonBlank))
	r.RegisterString("alpha", noArgFactory(rules.Alpha))
	r.RegisterString("alphanumeric", noArgFactory(rules.Alphanumeric))
	r.RegisterString("numeric", noArgFactory(rules.NumericString))
	r.RegisterString("email", noArgFactory(rules.Email))
	r.RegisterString("url", noArgFactory(rules.URL))
	r.RegisterString("phone", noArgFactory(rules.Phone))
	r.RegisterString("uuid", noArgFactory(rules.UUID))
	r.RegisterString("ip", noArgFactory(rules.IP))
	r.RegisterString("plaintext", noArgFactory(rules.PlainText))
	r.RegisterString("minlength", lengthFactory("minlength", rules.MinLength))
	r.RegisterString("maxlength", lengthFactory("maxlength", rules.MaxLength))
	r.RegisterString("length", lengthFactory("length", rules.Length))
	r.RegisterString("pattern", func(args []any) (formkit.Rule[string], error) {
		if err := argCount("pattern", args, 1); err != nil {
			return nil, err
		}
		expr, err := stringArg("pattern", args, 0)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Join(ErrBadRuleArgs, err)
		}
		return rules.Pattern(re), nil
	})
	r.RegisterString("enum", func(args []any) (formkit.Rule[string], error) {
		allowed, err := stringArgs("enum", args)
		if err != nil {
			return nil, err
		}
		return rules.Enum(allowed...), nil
	})

	r.RegisterInt("notzero", noArgFactory(rules.NotZero[int64]))
	r.RegisterInt("nonnegative", noArgFactory(rules.NonNegative[int64]))
	r.RegisterInt("min", boundFactory("min", rules.Min[int64], int64Arg))
	r.RegisterInt("max", boundFactory("max", rules.Max[int64], int64Arg))
	r.RegisterInt("between", rangeFactory("between", rules.Between[int64], int64Arg))
	r.RegisterInt("enum", func(args []any) (formkit.Rule[int64], error) {
		allowed, err := numArgs("enum", args, int64Arg)
		if err != nil {
			return nil, err
		}
		return rules.Enum(allowed...), nil
	})

	r.RegisterFloat("notzero", noArgFactory(rules.NotZero[float64]))
	r.RegisterFloat("nonnegative", noArgFactory(rules.NonNegative[float64]))
	r.RegisterFloat("min", boundFactory("min", rules.Min[float64], floatArg))
	r.RegisterFloat("max", boundFactory("max", rules.Max[float64], floatArg))
	r.RegisterFloat("between", rangeFactory("between", rules.Between[float64], floatArg))
	r.RegisterFloat("enum", func(args []any) (formkit.Rule[float64], error) {
		allowed, err := numArgs("enum", args, floatArg)
		if err != nil {
			return nil, err
		}
		return rules.Enum(allowed...), nil
	})

	r.RegisterBool("requiredtrue", noArgFactory(rules.RequiredTrue))

	r.RegisterComposite("equal", pairFactory("equal", rules.FieldsEqual))
	r.RegisterComposite("differ", pairFactory("differ", rules.FieldsDiffer))
	r.RegisterComposite("requiredtogether", func(args []any) (formkit.CompositeRule, error) {
		ss, err := stringArgs("requiredtogether", args)
		if err != nil {
			return nil, err
		}
		if len(ss) < 2 {
			return nil, errors.Join(ErrBadRuleArgs,
				errors.New("requiredtogether takes a key and at least one path"))
		}
		return rules.RequiredTogether(ss[0], ss[1:]...), nil
	})

	return r
}

func noArgFactory[T any](rule func() formkit.Rule[T]) func(args []any) (formkit.Rule[T], error) {
	return func(args []any) (formkit.Rule[T], error) {
		if len(args) != 0 {
			return nil, errors.Join(ErrBadRuleArgs,
				fmt.Errorf("rule takes no arguments, got %d", len(args)))
		}
		return rule(), nil
	}
}

func lengthFactory(name string, rule func(int) formkit.Rule[string]) StringRuleFactory {
	return func(args []any) (formkit.Rule[string], error) {
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		n, err := intArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return rule(n), nil
	}
}

func boundFactory[T rules.Numeric](name string, rule func(T) formkit.Rule[T], arg func(string, []any, int) (T, error)) func(args []any) (formkit.Rule[T], error) {
	return func(args []any) (formkit.Rule[T], error) {
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		bound, err := arg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return rule(bound), nil
	}
}

func rangeFactory[T rules.Numeric](name string, rule func(T, T) formkit.Rule[T], arg func(string, []any, int) (T, error)) func(args []any) (formkit.Rule[T], error) {
	return func(args []any) (formkit.Rule[T], error) {
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		lo, err := arg(name, args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := arg(name, args, 1)
		if err != nil {
			return nil, err
		}
		return rule(lo, hi), nil
	}
}

func pairFactory(name string, rule func(a, b, key string) formkit.CompositeRule) CompositeRuleFactory {
	return func(args []any) (formkit.CompositeRule, error) {
		if err := argCount(name, args, 3); err != nil {
			return nil, err
		}
		ss, err := stringArgs(name, args)
		if err != nil {
			return nil, err
		}
		return rule(ss[0], ss[1], ss[2]), nil
	}
}

func argCount(name string, args []any, n int) error {
	if len(args) != n {
		return errors.Join(ErrBadRuleArgs,
			fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(args)))
	}
	return nil
}

// intArg accepts YAML integers and integral JSON numbers. OpenAPI documents
// decode all numbers as float64, so integral floats must pass.
func intArg(name string, args []any, i int) (int, error) {
	n, err := int64Arg(name, args, i)
	return int(n), err
}

func int64Arg(name string, args []any, i int) (int64, error) {
	switch v := args[i].(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Join(ErrBadRuleArgs,
				fmt.Errorf("%s: argument %d must be an integer, got %v", name, i, v))
		}
		return int64(v), nil
	default:
		return 0, errors.Join(ErrBadRuleArgs,
			fmt.Errorf("%s: argument %d must be an integer, got %T", name, i, args[i]))
	}
}

func floatArg(name string, args []any, i int) (float64, error) {
	switch v := args[i].(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, errors.Join(ErrBadRuleArgs,
			fmt.Errorf("%s: argument %d must be a number, got %T", name, i, args[i]))
	}
}

func stringArg(name string, args []any, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", errors.Join(ErrBadRuleArgs,
			fmt.Errorf("%s: argument %d must be a string, got %T", name, i, args[i]))
	}
	return s, nil
}

func stringArgs(name string, args []any) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.Join(ErrBadRuleArgs, fmt.Errorf("%s takes at least one argument", name))
	}
	out := make([]string, len(args))
	for i := range args {
		s, err := stringArg(name, args, i)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func numArgs[T rules.Numeric](name string, args []any, arg func(string, []any, int) (T, error)) ([]T, error) {
	if len(args) == 0 {
		return nil, errors.Join(ErrBadRuleArgs, fmt.Errorf("%s takes at least one argument", name))
	}
	out := make([]T, len(args))
	for i := range args {
		v, err := arg(name, args, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
