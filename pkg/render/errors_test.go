package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/render"
)

func TestMapValidationError_FieldError(t *testing.T) {
	_, err := numerology.ParseBirthdate("1990-02-30")
	if err == nil {
		t.Fatalf("expected parse error")
	}

	mapped := render.MapValidationError(err)
	want := map[string][]string{
		"birthdate": {"Enter a valid birthdate in the format YYYY-MM-DD."},
	}
	if diff := cmp.Diff(want, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if len(mapped.Form) != 0 {
		t.Fatalf("expected no form errors, got %v", mapped.Form)
	}
}

func TestMapValidationError_UnscopedFallsBackToForm(t *testing.T) {
	mapped := render.MapValidationError(errors.New("  upstream exploded  "))
	if diff := cmp.Diff([]string{"upstream exploded"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if mapped.Fields != nil {
		t.Fatalf("expected nil field map, got %v", mapped.Fields)
	}
}

func TestMapValidationError_Nil(t *testing.T) {
	mapped := render.MapValidationError(nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestErrorMapping_OptionsMergesWithBase(t *testing.T) {
	base := render.RenderOptions{
		Errors:     map[string][]string{"name": {"Too long"}},
		FormErrors: []string{"Try again"},
		Action:     "/result",
	}
	mapping := render.ErrorMapping{
		Fields: map[string][]string{"birthdate": {"Bad date"}, "name": {"Too long", "Odd"}},
		Form:   []string{"Try again", "Second"},
	}

	got := mapping.Options(base)
	wantErrors := map[string][]string{
		"name":      {"Too long", "Odd"},
		"birthdate": {"Bad date"},
	}
	if diff := cmp.Diff(wantErrors, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again", "Second"}, got.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if got.Action != "/result" || !got.HasErrors() {
		t.Fatalf("unexpected options %+v", got)
	}
	if len(base.Errors["name"]) != 1 {
		t.Fatalf("base options mutated: %v", base.Errors)
	}
}

func TestMergeFormErrors_DedupesAndTrims(t *testing.T) {
	got := render.MergeFormErrors([]string{" a ", "b"}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMapValidationError_GridLabels(t *testing.T) {
	err := &numerology.OpError{
		Op:    "webform.update_grid",
		Kind:  numerology.KindInvalidGridPayload,
		Field: "antardasha",
		Err:   errors.New("not a number"),
	}

	mapped := render.MapValidationError(err)
	want := map[string][]string{
		"antardasha": {"Mahadasha and antardasha labels must be whole numbers."},
	}
	if diff := cmp.Diff(want, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}
