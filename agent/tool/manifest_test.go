package tool

import (
	"testing"
)

func TestOpenAIToolsCoversEveryContract(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(Builtins()...)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	tools := registry.OpenAITools()
	if len(tools) != len(Builtins()) {
		t.Fatalf("expected %d manifest entries, got %d", len(Builtins()), len(tools))
	}

	seen := map[string]bool{}
	for _, tc := range tools {
		seen[tc.Function.Name] = true
		if tc.Function.Parameters == nil {
			t.Fatalf("tool %s has no parameters schema", tc.Function.Name)
		}
	}
	for _, c := range Builtins() {
		if !seen[c.Name] {
			t.Fatalf("contract %s missing from manifest", c.Name)
		}
	}
}
