package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

const schemaURLPrefix = "https://schemas.prepagent.local/tools/"

func compileSchema(name string, raw json.RawMessage) (*jsonschema.Schema, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("contract %q has no input schema", name)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := schemaURLPrefix + name + ".schema.json"
	if err := c.AddResource(url, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("load schema for %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %q: %w", name, err)
	}
	return compiled, nil
}

// validationDetails flattens a schema validation failure into field-level
// entries a calling LLM or client can self-correct from.
func validationDetails(err error) []map[string]string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []map[string]string{{"field": "", "message": err.Error()}}
	}

	var details []map[string]string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			details = append(details, map[string]string{
				"field":   strings.TrimPrefix(e.InstanceLocation, "/"),
				"message": e.Message,
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return details
}

// summarizeSchema derives the field-name -> {type, required} view used for
// introspection. Derivation is best effort: an unusual schema degrades to a
// generic object summary instead of failing the listing.
func summarizeSchema(raw json.RawMessage) map[string]contractx.FieldSummary {
	generic := map[string]contractx.FieldSummary{}

	var doc struct {
		Properties map[string]struct {
			Type any `json:"type"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || len(doc.Properties) == 0 {
		return generic
	}

	required := make(map[string]bool, len(doc.Required))
	for _, field := range doc.Required {
		required[field] = true
	}

	fields := make(map[string]contractx.FieldSummary, len(doc.Properties))
	for name, prop := range doc.Properties {
		typeName := "object"
		switch t := prop.Type.(type) {
		case string:
			typeName = t
		case []any:
			if len(t) > 0 {
				if s, ok := t[0].(string); ok {
					typeName = s
				}
			}
		}
		fields[name] = contractx.FieldSummary{Type: typeName, Required: required[name]}
	}
	return fields
}
