package arbor

import (
	"errors"
	"testing"
)

func TestFieldError(t *testing.T) {
	err := newFieldError("breed", "testing.Dog", "", nil)

	if !errors.Is(err, ErrFieldLookupFailed) {
		t.Error("FieldError should match ErrFieldLookupFailed")
	}

	want := `field lookup failed: no field "breed" on testing.Dog`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = withPath(err, "/dogs/1")
	want += " at /dogs/1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFieldError_Cause(t *testing.T) {
	cause := errors.New("getter failed")
	err := newFieldError("total", "Order", "/", cause)

	want := `field lookup failed: no field "total" on Order at /: getter failed`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Cause != cause {
		t.Error("errors.As should expose the cause")
	}
}

func TestConvertError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		notIterable bool
		wantMessage string
	}{
		{
			name:        "map",
			err:         newConvertError(ErrNotConvertible, CapabilityMap, "int"),
			wantMessage: "not convertible: int does not provide map conversion, supply a rule with appropriate fields",
		},
		{
			name:        "sequence",
			err:         newConvertError(ErrNotIterable, CapabilitySequence, "string"),
			notIterable: true,
			wantMessage: "not iterable: string does not provide sequence conversion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrNotConvertible) {
				t.Error("ConvertError should match ErrNotConvertible")
			}
			if got := errors.Is(tt.err, ErrNotIterable); got != tt.notIterable {
				t.Errorf("errors.Is(ErrNotIterable) = %v, want %v", got, tt.notIterable)
			}
			if tt.err.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestWithPath_KeepsInnermost(t *testing.T) {
	err := withPath(newConvertError(ErrNotIterable, CapabilitySequence, "int"), "/a/b")
	err = withPath(err, "/a")

	var ce *ConvertError
	if !errors.As(err, &ce) || ce.Path != "/a/b" {
		t.Errorf("Path = %q, want /a/b", ce.Path)
	}
}

func TestWithPath_OtherErrors(t *testing.T) {
	plain := errors.New("plain")
	if got := withPath(plain, "/x"); got != plain {
		t.Error("withPath should return unrelated errors unchanged")
	}
}

func TestTransformError(t *testing.T) {
	cause := errors.New("bad input")
	err := newTransformError("hash", "password", cause)

	if !errors.Is(err, ErrTransform) {
		t.Error("TransformError should match ErrTransform")
	}

	want := "hash field password: bad input"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noCause := &TransformError{Err: ErrTransform, Field: "email", Operation: "mask"}
	if noCause.Error() != "mask field email" {
		t.Errorf("Error() = %q", noCause.Error())
	}
}

func TestCodecError(t *testing.T) {
	cause := errors.New("unsupported type")
	err := newCodecError(cause)

	if !errors.Is(err, ErrMarshal) {
		t.Error("CodecError should match ErrMarshal")
	}

	want := "marshal failed: unsupported type"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noCause := &CodecError{Err: ErrMarshal}
	if noCause.Error() != "marshal failed" {
		t.Errorf("Error() = %q", noCause.Error())
	}
}
