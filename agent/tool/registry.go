package tool

import (
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

// Registered pairs a contract with its compiled input schema. The pairing is
// immutable once the registry is built.
type Registered struct {
	Contract *contractx.Contract
	schema   *jsonschema.Schema
}

// ValidateArgs checks raw arguments against the contract's schema and
// reports field-level details on failure.
func (r *Registered) ValidateArgs(args map[string]any) *contractx.Error {
	if args == nil {
		args = map[string]any{}
	}
	if err := r.schema.Validate(any(args)); err != nil {
		return contractx.BadRequest(
			fmt.Sprintf("arguments for %q failed schema validation", r.Contract.Name),
			validationDetails(err),
		)
	}
	return nil
}

// Registry indexes contracts by name. It is populated once at startup and
// read-only afterwards, so concurrent lookups need no locking.
type Registry struct {
	byName map[string]*Registered
}

// NewRegistry compiles and indexes the given contracts. A duplicate name or
// an uncompilable schema is a startup-time configuration error, never a
// silent overwrite.
func NewRegistry(contracts ...*contractx.Contract) (*Registry, error) {
	byName := make(map[string]*Registered, len(contracts))
	for _, c := range contracts {
		if c == nil || c.Name == "" {
			return nil, fmt.Errorf("registry: contract without a name")
		}
		if c.Handler == nil {
			return nil, fmt.Errorf("registry: contract %q has no handler", c.Name)
		}
		if _, exists := byName[c.Name]; exists {
			return nil, fmt.Errorf("registry: duplicate contract name %q", c.Name)
		}
		schema, err := compileSchema(c.Name, c.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		byName[c.Name] = &Registered{Contract: c, schema: schema}
	}
	return &Registry{byName: byName}, nil
}

// Resolve looks up a contract by name. Unknown names are a caller error, not
// a system fault; the second return distinguishes them from validation
// failures downstream.
func (r *Registry) Resolve(name string) (*Registered, bool) {
	reg, ok := r.byName[name]
	return reg, ok
}

// List returns the introspection summaries sorted by name. Summary
// derivation is best effort per entry.
func (r *Registry) List() []contractx.Summary {
	out := make([]contractx.Summary, 0, len(r.byName))
	for _, reg := range r.byName {
		out = append(out, contractx.Summary{
			Name:        reg.Contract.Name,
			Version:     reg.Contract.Version,
			Description: reg.Contract.Description,
			Fields:      summarizeSchema(reg.Contract.InputSchema),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
