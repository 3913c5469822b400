package translation

import "testing"

func TestRegistryResolvesDefaultProvider(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("stub")
	provider := &stubProvider{name: "stub"}
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register: %v", err)
	}

	resolved, err := registry.Provider("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Name() != "stub" {
		t.Fatalf("unexpected provider: %s", resolved.Name())
	}
}

func TestRegistryFallsBackWhenDefaultMissing(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("remote")
	if err := registry.Register(&stubProvider{name: "llm"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resolved, err := registry.Provider("")
	if err != nil {
		t.Fatalf("expected fallback to the only registered provider, got %v", err)
	}
	if resolved.Name() != "llm" {
		t.Fatalf("unexpected provider: %s", resolved.Name())
	}
}

func TestRegistryUnknownProviderIsAnError(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("")
	if err := registry.Register(&stubProvider{name: "stub"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := registry.Provider("google"); err == nil {
		t.Fatalf("expected error for unknown provider name")
	}
}

func TestRegistryEmptyIsAnError(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("")
	if _, err := registry.Provider(""); err == nil {
		t.Fatalf("expected error when no providers are registered")
	}
}
