package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wireprobe/wireprobe/v1/schema/schematest"
)

func newTestRegistry(t *testing.T) *DescriptorRegistry {
	t.Helper()
	reg, err := NewRegistry(Config{DescriptorSet: schematest.DescriptorSetBytes()})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestResolve_FullyQualifiedName(t *testing.T) {
	reg := newTestRegistry(t)

	md, err := reg.Resolve("company.project.v1.Pong")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := string(md.FullName()); got != "company.project.v1.Pong" {
		t.Errorf("expected company.project.v1.Pong, got %s", got)
	}
}

func TestResolve_ShortName(t *testing.T) {
	reg := newTestRegistry(t)

	md, err := reg.Resolve("Pong")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := string(md.FullName()); got != "company.project.v1.Pong" {
		t.Errorf("expected company.project.v1.Pong, got %s", got)
	}
}

func TestResolve_ShortNameAmbiguityPicksLexicographicFirst(t *testing.T) {
	reg := newTestRegistry(t)

	// Both company.project.v1.Ping and other.project.v1.Ping exist;
	// "company..." sorts first.
	md, err := reg.Resolve("Ping")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := string(md.FullName()); got != "company.project.v1.Ping" {
		t.Errorf("expected company.project.v1.Ping, got %s", got)
	}
}

func TestResolve_NotFound(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Resolve("Bogus")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_NestedTypesIndexed(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Resolve("Meta"); err != nil {
		t.Errorf("expected Meta to resolve, got %v", err)
	}
	// Synthetic map entries are not addressable types.
	if _, err := reg.Resolve("LabelsEntry"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for map entry, got %v", err)
	}
}

func TestNewRegistry_NoSource(t *testing.T) {
	_, err := NewRegistry(Config{})
	if !errors.Is(err, ErrNoDescriptorSource) {
		t.Errorf("expected ErrNoDescriptorSource, got %v", err)
	}
}

func TestNewRegistry_MalformedSet(t *testing.T) {
	_, err := NewRegistry(Config{DescriptorSet: []byte{0xff, 0xff, 0xff}})
	if err == nil {
		t.Error("expected error for malformed descriptor set")
	}
}

func TestNewRegistry_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "descriptor.bin")
	if err := os.WriteFile(path, schematest.DescriptorSetBytes(), 0o600); err != nil {
		t.Fatalf("write descriptor set: %v", err)
	}

	reg, err := NewRegistry(Config{DescriptorSetPath: path})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := reg.Resolve("Ping"); err != nil {
		t.Errorf("Resolve after path load: %v", err)
	}
}

func TestTypeNames_SortedAndComplete(t *testing.T) {
	reg := newTestRegistry(t)

	names := reg.TypeNames()
	expected := []string{
		"company.project.v1.Meta",
		"company.project.v1.Ping",
		"company.project.v1.Pong",
		"other.project.v1.Ping",
	}
	if len(names) != len(expected) {
		t.Fatalf("expected %d type names, got %d: %v", len(expected), len(names), names)
	}
	for i, want := range expected {
		if names[i] != want {
			t.Errorf("TypeNames[%d]: expected %s, got %s", i, want, names[i])
		}
	}
}
