package arbor

import (
	"errors"
	"testing"
)

func TestHashAlgo_Transform(t *testing.T) {
	tests := []struct {
		algo  HashAlgo
		valid bool
	}{
		{HashArgon2, true},
		{HashBcrypt, true},
		{HashSHA256, true},
		{HashSHA512, true},
		{"md5", false},
		{"", false},
		{"SHA256", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			if got := IsValidHashAlgo(tt.algo); got != tt.valid {
				t.Fatalf("IsValidHashAlgo(%q) = %v, want %v", tt.algo, got, tt.valid)
			}
			if _, ok := HasherFor(tt.algo); ok != tt.valid {
				t.Errorf("HasherFor(%q) ok = %v, want %v", tt.algo, ok, tt.valid)
			}
			if tt.valid {
				return
			}

			// Unknown algorithms only fail once a value reaches the transform.
			_, err := Hash(tt.algo)("secret")
			if !errors.Is(err, ErrTransform) {
				t.Errorf("Hash(%q) error = %v, want ErrTransform", tt.algo, err)
			}
		})
	}
}

func TestMaskType_Transform(t *testing.T) {
	tests := []struct {
		mt    MaskType
		input string
		want  string
	}{
		{MaskSSN, "123-45-6789", "***-**-6789"},
		{MaskEmail, "alice@example.com", "a***@example.com"},
		{MaskCard, "4111111111111111", "************1111"},
		{MaskIBAN, "GB82WEST12345698765432", "GB82**************5432"},
		{MaskName, "John Smith", "J*** S****"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mt), func(t *testing.T) {
			if !IsValidMaskType(tt.mt) {
				t.Fatalf("IsValidMaskType(%q) = false", tt.mt)
			}
			got, err := Mask(tt.mt)(tt.input)
			if err != nil {
				t.Fatalf("Mask(%q) error: %v", tt.mt, err)
			}
			if got != tt.want {
				t.Errorf("Mask(%q)(%q) = %q, want %q", tt.mt, tt.input, got, tt.want)
			}
		})
	}

	for _, mt := range []MaskType{"", "SSN", " ssn", "zip"} {
		if IsValidMaskType(mt) {
			t.Errorf("IsValidMaskType(%q) = true", mt)
		}
		var te *TransformError
		if _, err := Mask(mt)("value"); !errors.As(err, &te) || te.Operation != "mask" {
			t.Errorf("Mask(%q) error = %v, want mask TransformError", mt, err)
		}
	}
}
