package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit"
)

// FormSpec is a declarative form definition: a named set of field
// definitions plus cross-field rules applied to the root group.
type FormSpec struct {
	Title  string               `yaml:"title"`
	Fields map[string]FieldSpec `yaml:"fields"`
	Rules  []RuleSpec           `yaml:"rules"`
}

// FieldSpec describes one control. Type selects the control built for it:
// "string" (the default), "integer", "number" and "boolean" become typed
// leaf fields, "object" becomes a group over Fields, "array" becomes an
// array holding Count copies of the Items prototype.
type FieldSpec struct {
	Type    string               `yaml:"type"`
	Default any                  `yaml:"default"`
	Rules   []RuleSpec           `yaml:"rules"`
	Async   []RuleSpec           `yaml:"async"`
	Fields  map[string]FieldSpec `yaml:"fields"`
	Items   *FieldSpec           `yaml:"items"`
	Count   int                  `yaml:"count"`
}

// RuleSpec names a registered rule factory and carries its arguments. In
// YAML a rule is either a bare name or a single-entry mapping whose value
// supplies the arguments:
//
//	rules:
//	  - required
//	  - minlength: 8
//	  - enum: [free, pro, business]
//	  - equal: [password, confirm, passwordMismatch]
type RuleSpec struct {
	Name string
	Args []any
}

// UnmarshalYAML accepts the scalar and single-entry mapping rule forms. A
// mapping value that is a sequence spreads into positional arguments; any
// other value becomes the single argument.
func (r *RuleSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if err := value.Decode(&r.Name); err != nil {
			return errors.Join(ErrInvalidDocument, err)
		}
		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return errors.Join(ErrInvalidDocument,
				fmt.Errorf("rule mapping must hold exactly one entry, got %d", len(value.Content)/2))
		}
		if err := value.Content[0].Decode(&r.Name); err != nil {
			return errors.Join(ErrInvalidDocument, err)
		}
		arg := value.Content[1]
		if arg.Kind == yaml.SequenceNode {
			if err := arg.Decode(&r.Args); err != nil {
				return errors.Join(ErrInvalidDocument, err)
			}
			return nil
		}
		var single any
		if err := arg.Decode(&single); err != nil {
			return errors.Join(ErrInvalidDocument, err)
		}
		r.Args = []any{single}
		return nil
	default:
		return errors.Join(ErrInvalidDocument,
			fmt.Errorf("rule must be a name or a single-entry mapping, got %v node", value.Kind))
	}
}

// ParseYAML decodes a YAML form definition. The document is validated
// structurally here; rule names and arguments are resolved later by Build.
func ParseYAML(data []byte) (FormSpec, error) {
	var spec FormSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return FormSpec{}, errors.Join(ErrInvalidDocument, err)
	}
	return spec, nil
}

// FromYAML parses a YAML form definition and builds its control tree in one
// step. A nil registry means DefaultRegistry.
func FromYAML(data []byte, reg *Registry) (*formkit.Group, error) {
	spec, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return Build(spec, reg)
}
