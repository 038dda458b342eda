package htmlbalance

import (
	"testing"

	"github.com/corvidwiki/htmlbalance/errors"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	if cfg.strict {
		t.Fatalf("strict should default to false")
	}
	if cfg.allowed != nil {
		t.Fatalf("allowed should default to nil (no restriction)")
	}
	if cfg.normalizeAttrs != nil {
		t.Fatalf("normalizeAttrs should default to nil")
	}
	if cfg.processingCallback != nil {
		t.Fatalf("processingCallback should default to nil")
	}
}

func TestWithStrictModeSetsFlag(t *testing.T) {
	cfg := newConfig(WithStrictMode())
	if !cfg.strict {
		t.Fatalf("expected strict to be true")
	}
}

func TestWithAllowedElementsLowercasesNames(t *testing.T) {
	cfg := newConfig(WithAllowedElements("P", "DIV", "b"))
	for _, name := range []string{"p", "div", "b"} {
		if !cfg.allowed[name] {
			t.Fatalf("expected %q to be in allowed set: %+v", name, cfg.allowed)
		}
	}
	if len(cfg.allowed) != 3 {
		t.Fatalf("expected exactly 3 allowed names, got %+v", cfg.allowed)
	}
}

func TestValidateAcceptsEmptyAllowList(t *testing.T) {
	cfg := newConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error for a nil allow-list: %v", err)
	}
}

func TestValidateAcceptsSupportedAllowList(t *testing.T) {
	cfg := newConfig(WithAllowedElements("p", "b", "i", "table"))
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsUnsupportedElement(t *testing.T) {
	cfg := newConfig(WithAllowedElements("p", "script", "iframe"))
	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected an error for an allow-list containing unsupported elements")
	}
	cfgErr, ok := err.(*errors.ConfigError)
	if !ok {
		t.Fatalf("got error of type %T, want *errors.ConfigError", err)
	}
	if cfgErr.Code != errors.CodeDisallowedElement {
		t.Fatalf("got code %q, want %q", cfgErr.Code, errors.CodeDisallowedElement)
	}
}

func TestWithAttrNormalizerInstallsFunc(t *testing.T) {
	called := false
	cfg := newConfig(WithAttrNormalizer(func(s string) string {
		called = true
		return s
	}))
	if cfg.normalizeAttrs == nil {
		t.Fatalf("expected normalizeAttrs to be set")
	}
	cfg.normalizeAttrs("x")
	if !called {
		t.Fatalf("expected installed normalizer to be invoked")
	}
}

func TestWithProcessingCallbackInstallsFunc(t *testing.T) {
	var gotArgs any
	cfg := newConfig(WithProcessingCallback(func(attrs *string, args any) {
		gotArgs = args
	}))
	if cfg.processingCallback == nil {
		t.Fatalf("expected processingCallback to be set")
	}
	attrs := ""
	cfg.processingCallback(&attrs, "payload")
	if gotArgs != "payload" {
		t.Fatalf("got args %v, want %q", gotArgs, "payload")
	}
}
