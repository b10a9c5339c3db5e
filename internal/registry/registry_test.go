package registry

import (
	"strings"
	"testing"

	"github.com/lineflow/runtime/internal/modules/transform"
	"github.com/lineflow/runtime/pkg/stream"
)

func TestBuiltinsAreRegistered(t *testing.T) {
	for _, typ := range []string{"file", "inline"} {
		if GetSourceConstructor(typ) == nil {
			t.Errorf("expected source type %q to be registered", typ)
		}
	}
	for _, typ := range []string{"case", "replace", "template", "script", "expr"} {
		if GetTransformConstructor(typ) == nil {
			t.Errorf("expected transform type %q to be registered", typ)
		}
	}
	for _, typ := range []string{"file", "capture", "discard"} {
		if GetSinkConstructor(typ) == nil {
			t.Errorf("expected sink type %q to be registered", typ)
		}
	}
}

func TestUnknownTypesReturnNil(t *testing.T) {
	if GetSourceConstructor("kafka") != nil {
		t.Error("expected nil constructor for unregistered source type")
	}
	if GetTransformConstructor("rot13") != nil {
		t.Error("expected nil constructor for unregistered transform type")
	}
	if GetSinkConstructor("s3") != nil {
		t.Error("expected nil constructor for unregistered sink type")
	}
}

func TestRegisterTransform_Overwrites(t *testing.T) {
	marker := func(stream.ModuleConfig, int, *stream.Pipeline) (transform.Module, error) {
		return nil, nil
	}
	RegisterTransform("test-overwrite", marker)
	defer func() {
		transformMu.Lock()
		delete(transformRegistry, "test-overwrite")
		transformMu.Unlock()
	}()

	if GetTransformConstructor("test-overwrite") == nil {
		t.Fatal("expected constructor to be registered")
	}

	RegisterTransform("test-overwrite", marker)
	if GetTransformConstructor("test-overwrite") == nil {
		t.Error("expected constructor to survive re-registration")
	}
}

func TestTransformConstructor_BuildsModule(t *testing.T) {
	constructor := GetTransformConstructor("case")
	if constructor == nil {
		t.Fatal("case transform not registered")
	}

	module, err := constructor(stream.ModuleConfig{
		Type:   "case",
		Config: map[string]interface{}{"mode": "upper"},
	}, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := module.Apply("ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "OK" {
		t.Errorf("expected %q, got %q", "OK", got)
	}
}

func TestTransformConstructor_InvalidConfigCarriesIndex(t *testing.T) {
	constructor := GetTransformConstructor("replace")
	if constructor == nil {
		t.Fatal("replace transform not registered")
	}

	_, err := constructor(stream.ModuleConfig{Type: "replace", Config: map[string]interface{}{}}, 3, nil)
	if err == nil {
		t.Fatal("expected error for missing pattern, got nil")
	}
	if want := "index 3"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected error to mention %q, got %q", want, err.Error())
	}
}
