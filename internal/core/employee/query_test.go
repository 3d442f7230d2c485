package employee

import (
	"errors"
	"testing"
)

func TestParseQueryForm(t *testing.T) {
	t.Parallel()

	cases := map[string]QueryForm{
		"":                      DefaultQueryForm,
		"structured-positional": QueryStructuredPositional,
		" Structured-Named ":    QueryStructuredNamed,
		"native-positional":     QueryNativePositional,
		"NATIVE-NAMED":          QueryNativeNamed,
	}

	for raw, want := range cases {
		got, err := ParseQueryForm(raw)
		if err != nil {
			t.Fatalf("ParseQueryForm(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseQueryForm(%q) = %s, want %s", raw, got, want)
		}
	}

	if _, err := ParseQueryForm("jpql"); !errors.Is(err, ErrInvalidQueryForm) {
		t.Fatalf("expected ErrInvalidQueryForm, got %v", err)
	}
}

func TestQueryForm_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, form := range QueryForms() {
		if !form.Valid() {
			t.Fatalf("expected %d to be valid", form)
		}
		parsed, err := ParseQueryForm(form.String())
		if err != nil || parsed != form {
			t.Fatalf("round trip of %s failed: %v, %v", form, parsed, err)
		}
	}

	if QueryForm(0).Valid() || QueryForm(0).String() != "unknown" {
		t.Fatalf("zero value must be invalid")
	}
	if !QueryNativeNamed.IsNative() || QueryStructuredNamed.IsNative() {
		t.Fatalf("unexpected IsNative classification")
	}
}
