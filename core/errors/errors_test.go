package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  *NotFoundError
		want string
	}{
		{
			name: "with ID",
			err:  NewNotFound("text", "dhammapada"),
			want: "text not found: dhammapada",
		},
		{
			name: "without ID",
			err:  &NotFoundError{Resource: "passage"},
			want: "passage not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Error("NotFoundError should unwrap to ErrNotFound")
			}
		})
	}
}

func TestNotFoundError_UnwrapCustom(t *testing.T) {
	inner := errors.New("index cold")
	err := &NotFoundError{Resource: "text", ID: "kjv", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("should unwrap to wrapped error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("custom wrapped error should take precedence over sentinel")
	}
}

func TestFetchError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewFetch("upanishads", "https://example.org/23455.txt", inner)
	want := "failed to fetch upanishads from https://example.org/23455.txt: connection refused"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrFetch) {
		t.Error("FetchError should unwrap to ErrFetch when inner error is set")
	}
	if !errors.Is(err, inner) {
		t.Error("FetchError should unwrap to inner error")
	}
}

func TestFetchError_Status(t *testing.T) {
	err := NewFetchStatus("bible", "https://bible-api.com/Genesis", 503)
	want := "failed to fetch bible from https://bible-api.com/Genesis: HTTP 503"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrFetch) {
		t.Error("status-only FetchError should unwrap to ErrFetch")
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("quran", "JSON", "missing ayahs array")
	want := "failed to parse quran as JSON: missing ayahs array"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrParse) {
		t.Error("ParseError should unwrap to ErrParse")
	}

	noFormat := &ParseError{Text: "gita", Message: "no passages"}
	want = "failed to parse gita: no passages"
	if got := noFormat.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("url", "must be http or https")
	want := "validation failed for url: must be http or https"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	inner := errors.New("boom")
	err := Wrap(inner, "loading text")
	if err.Error() != "loading text: boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("wrapped error should match inner")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	inner := errors.New("boom")
	err := Wrapf(inner, "loading text %q", "kjv")
	want := `loading text "kjv": boom`
	if err.Error() != want {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIsAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewNotFound("text", "tanakh"))
	if !Is(err, ErrNotFound) {
		t.Error("Is should see through wrapping")
	}
	var nf *NotFoundError
	if !As(err, &nf) {
		t.Fatal("As should find NotFoundError")
	}
	if nf.ID != "tanakh" {
		t.Errorf("ID = %q, want tanakh", nf.ID)
	}
}
