package schema

import (
	"errors"
	"fmt"
	"math"

	"github.com/dmitrymomot/formkit"
)

// Build compiles a form definition into a control tree, resolving every
// rule name through the registry exactly once. The returned group is fresh
// and unshared: build one tree per form instance. A nil registry means
// DefaultRegistry.
func Build(spec FormSpec, reg *Registry) (*formkit.Group, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if len(spec.Fields) == 0 {
		return nil, errors.Join(ErrInvalidDocument, errors.New("form defines no fields"))
	}

	children := make(map[string]formkit.Control, len(spec.Fields))
	for name, fs := range spec.Fields {
		c, err := buildControl(name, fs, reg)
		if err != nil {
			return nil, err
		}
		children[name] = c
	}

	rules, err := compositeRules(spec.Rules, "", reg)
	if err != nil {
		return nil, err
	}
	return formkit.NewGroup(children, rules...)
}

func buildControl(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	switch fs.Type {
	case "", "string":
		return buildString(path, fs, reg)
	case "integer":
		return buildInt(path, fs, reg)
	case "number":
		return buildFloat(path, fs, reg)
	case "boolean":
		return buildBool(path, fs, reg)
	case "object":
		return buildObject(path, fs, reg)
	case "array":
		return buildArray(path, fs, reg)
	default:
		return nil, errors.Join(ErrUnknownType, fmt.Errorf("field %q declares type %q", path, fs.Type))
	}
}

func buildString(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	initial, err := stringDefault(path, fs.Default)
	if err != nil {
		return nil, err
	}
	ruleSet := make([]formkit.Rule[string], 0, len(fs.Rules))
	for _, rs := range fs.Rules {
		rule, err := reg.stringRule(rs)
		if err != nil {
			return nil, at(path, err)
		}
		ruleSet = append(ruleSet, rule)
	}
	field := formkit.NewField(initial, ruleSet...)
	if len(fs.Async) == 0 {
		return field, nil
	}
	asyncSet := make([]formkit.AsyncRule[string], 0, len(fs.Async))
	for _, rs := range fs.Async {
		rule, err := reg.asyncRule(rs)
		if err != nil {
			return nil, at(path, err)
		}
		asyncSet = append(asyncSet, rule)
	}
	return field.WithAsync(asyncSet...), nil
}

func buildInt(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	if err := noAsync(path, fs); err != nil {
		return nil, err
	}
	initial, err := intDefault(path, fs.Default)
	if err != nil {
		return nil, err
	}
	ruleSet := make([]formkit.Rule[int64], 0, len(fs.Rules))
	for _, rs := range fs.Rules {
		rule, err := reg.intRule(rs)
		if err != nil {
			return nil, at(path, err)
		}
		ruleSet = append(ruleSet, rule)
	}
	return formkit.NewField(initial, ruleSet...), nil
}

func buildFloat(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	if err := noAsync(path, fs); err != nil {
		return nil, err
	}
	initial, err := floatDefault(path, fs.Default)
	if err != nil {
		return nil, err
	}
	ruleSet := make([]formkit.Rule[float64], 0, len(fs.Rules))
	for _, rs := range fs.Rules {
		rule, err := reg.floatRule(rs)
		if err != nil {
			return nil, at(path, err)
		}
		ruleSet = append(ruleSet, rule)
	}
	return formkit.NewField(initial, ruleSet...), nil
}

func buildBool(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	if err := noAsync(path, fs); err != nil {
		return nil, err
	}
	initial, err := boolDefault(path, fs.Default)
	if err != nil {
		return nil, err
	}
	ruleSet := make([]formkit.Rule[bool], 0, len(fs.Rules))
	for _, rs := range fs.Rules {
		rule, err := reg.boolRule(rs)
		if err != nil {
			return nil, at(path, err)
		}
		ruleSet = append(ruleSet, rule)
	}
	return formkit.NewField(initial, ruleSet...), nil
}

func buildObject(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	if err := noAsync(path, fs); err != nil {
		return nil, err
	}
	if len(fs.Fields) == 0 {
		return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("object field %q defines no fields", path))
	}
	children := make(map[string]formkit.Control, len(fs.Fields))
	for name, child := range fs.Fields {
		c, err := buildControl(path+"."+name, child, reg)
		if err != nil {
			return nil, err
		}
		children[name] = c
	}
	rules, err := compositeRules(fs.Rules, path, reg)
	if err != nil {
		return nil, err
	}
	return formkit.NewGroup(children, rules...)
}

func buildArray(path string, fs FieldSpec, reg *Registry) (formkit.Control, error) {
	if err := noAsync(path, fs); err != nil {
		return nil, err
	}
	if fs.Items == nil {
		return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("array field %q defines no items", path))
	}
	if fs.Count < 0 {
		return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("array field %q declares count %d", path, fs.Count))
	}
	items := make([]formkit.Control, 0, fs.Count)
	for i := range fs.Count {
		c, err := buildControl(fmt.Sprintf("%s.%d", path, i), *fs.Items, reg)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	rules, err := compositeRules(fs.Rules, path, reg)
	if err != nil {
		return nil, err
	}
	return formkit.NewArray(items, rules...)
}

func compositeRules(specs []RuleSpec, path string, reg *Registry) ([]formkit.CompositeRule, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]formkit.CompositeRule, 0, len(specs))
	for _, rs := range specs {
		rule, err := reg.compositeRule(rs)
		if err != nil {
			return nil, at(path, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

func noAsync(path string, fs FieldSpec) error {
	if len(fs.Async) > 0 {
		return errors.Join(ErrUnknownRule,
			fmt.Errorf("field %q: async rules require a string field, not %q", path, fs.Type))
	}
	return nil
}

// at attaches the field path to a resolution error. Root-level composite
// rules carry no path.
func at(path string, err error) error {
	if path == "" {
		return err
	}
	return errors.Join(fmt.Errorf("field %q", path), err)
}

func stringDefault(path string, v any) (string, error) {
	switch d := v.(type) {
	case nil:
		return "", nil
	case string:
		return d, nil
	default:
		return "", errors.Join(ErrBadDefault, fmt.Errorf("field %q: got %T", path, v))
	}
}

func intDefault(path string, v any) (int64, error) {
	switch d := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(d), nil
	case int64:
		return d, nil
	case float64:
		if d != math.Trunc(d) {
			return 0, errors.Join(ErrBadDefault, fmt.Errorf("field %q: got %v", path, v))
		}
		return int64(d), nil
	default:
		return 0, errors.Join(ErrBadDefault, fmt.Errorf("field %q: got %T", path, v))
	}
}

func floatDefault(path string, v any) (float64, error) {
	switch d := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(d), nil
	case int64:
		return float64(d), nil
	case float64:
		return d, nil
	default:
		return 0, errors.Join(ErrBadDefault, fmt.Errorf("field %q: got %T", path, v))
	}
}

func boolDefault(path string, v any) (bool, error) {
	switch d := v.(type) {
	case nil:
		return false, nil
	case bool:
		return d, nil
	default:
		return false, errors.Join(ErrBadDefault, fmt.Errorf("field %q: got %T", path, v))
	}
}
