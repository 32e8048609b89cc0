package providers

import "testing"

func TestRegistry_Reload(t *testing.T) {
	reg := NewRegistry()

	if reg.Generator() != nil {
		t.Fatal("new registry should have no generator")
	}

	reg.Reload(GeneratorConfig{Type: "mock", RateLimit: 30})
	gen := reg.Generator()
	if gen == nil {
		t.Fatal("Generator() = nil after reload")
	}
	if gen.Name() != MockGeneratorName {
		t.Errorf("Name() = %q, want %q", gen.Name(), MockGeneratorName)
	}
	if reg.Limiter() == nil {
		t.Error("Limiter() = nil after reload")
	}
}

func TestRegistry_ReloadKeepsPreviousOnError(t *testing.T) {
	reg := NewRegistry()
	reg.Reload(GeneratorConfig{Type: "mock"})

	// Gemini without an API key cannot be constructed.
	reg.Reload(GeneratorConfig{Type: "gemini"})

	gen := reg.Generator()
	if gen == nil || gen.Name() != MockGeneratorName {
		t.Errorf("generator after failed reload = %v, want previous mock", gen)
	}
}

func TestRegistry_ReloadUnknownType(t *testing.T) {
	reg := NewRegistry()
	reg.Reload(GeneratorConfig{Type: "carrier-pigeon"})
	if reg.Generator() != nil {
		t.Error("unknown type should not install a generator")
	}
}
