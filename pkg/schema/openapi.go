package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dmitrymomot/formkit"
)

// String formats with a matching built-in rule.
var formatRules = map[string]string{
	"email": "email",
	"uuid":  "uuid",
	"uri":   "url",
	"ipv4":  "ip",
	"ipv6":  "ip",
}

// ParseOpenAPI extracts the request body schema of the operation with the
// given id from an OpenAPI 3 document (JSON or YAML) and converts it into a
// form definition. Schema constraints map onto built-in rules: required
// membership, minLength/maxLength, pattern, minimum/maximum, enum, and the
// email/uuid/uri/ipv4/ipv6 string formats. minItems sets the initial
// element count of array fields.
func ParseOpenAPI(ctx context.Context, data []byte, operationID string) (FormSpec, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return FormSpec{}, errors.Join(ErrInvalidDocument, err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return FormSpec{}, errors.Join(ErrNoOperation, fmt.Errorf("operation %q", operationID))
	}
	body := requestSchema(op)
	if body == nil {
		return FormSpec{}, errors.Join(ErrNoRequestBody, fmt.Errorf("operation %q", operationID))
	}
	if t := firstType(body.Type); t != "object" && (t != "" || len(body.Properties) == 0) {
		return FormSpec{}, errors.Join(ErrInvalidDocument,
			fmt.Errorf("operation %q: request body schema is not an object", operationID))
	}

	title := op.Summary
	if title == "" {
		title = operationID
	}
	return FormSpec{Title: title, Fields: fieldsOf(body)}, nil
}

// FromOpenAPI parses an OpenAPI 3 document and builds the control tree for
// the named operation's request body in one step. A nil registry means
// DefaultRegistry.
func FromOpenAPI(ctx context.Context, data []byte, operationID string, reg *Registry) (*formkit.Group, error) {
	spec, err := ParseOpenAPI(ctx, data, operationID)
	if err != nil {
		return nil, err
	}
	return Build(spec, reg)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

// requestSchema prefers the structured media types a form can be submitted
// as, then falls back to whatever the operation declares.
func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldsOf(src *openapi3.Schema) map[string]FieldSpec {
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}
	fields := make(map[string]FieldSpec, len(src.Properties))
	for name, ref := range src.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		fields[name] = fieldOf(ref.Value, required[name])
	}
	return fields
}

func fieldOf(src *openapi3.Schema, required bool) FieldSpec {
	fs := FieldSpec{Type: firstType(src.Type), Default: src.Default}
	switch fs.Type {
	case "", "string":
		fs.Type = "string"
		if required {
			fs.Rules = append(fs.Rules, RuleSpec{Name: "required"})
		}
		if src.MinLength > 0 {
			fs.Rules = append(fs.Rules, RuleSpec{Name: "minlength", Args: []any{int(src.MinLength)}})
		}
		if src.MaxLength != nil {
			fs.Rules = append(fs.Rules, RuleSpec{Name: "maxlength", Args: []any{int(*src.MaxLength)}})
		}
		if src.Pattern != "" {
			fs.Rules = append(fs.Rules, RuleSpec{Name: "pattern", Args: []any{src.Pattern}})
		}
		if name, ok := formatRules[src.Format]; ok {
			fs.Rules = append(fs.Rules, RuleSpec{Name: name})
		}
		fs.Rules = appendEnum(fs.Rules, src.Enum)
	case "integer", "number":
		if src.Min != nil {
			fs.Rules = append(fs.Rules, RuleSpec{Name: "min", Args: []any{*src.Min}})
		}
		if src.Max != nil {
			fs.Rules = append(fs.Rules, RuleSpec{Name: "max", Args: []any{*src.Max}})
		}
		fs.Rules = appendEnum(fs.Rules, src.Enum)
	case "boolean":
	case "object":
		fs.Fields = fieldsOf(src)
	case "array":
		if src.Items != nil && src.Items.Value != nil {
			item := fieldOf(src.Items.Value, false)
			fs.Items = &item
		}
		fs.Count = int(src.MinItems)
	}
	return fs
}

func appendEnum(ruleSet []RuleSpec, enum []any) []RuleSpec {
	if len(enum) == 0 {
		return ruleSet
	}
	return append(ruleSet, RuleSpec{Name: "enum", Args: append([]any(nil), enum...)})
}

// firstType returns the first non-null type of a schema, so nullable unions
// like ["string", "null"] map to their value type.
func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}
