package arbor

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashers(t *testing.T) {
	tests := []struct {
		name   string
		hasher Hasher
		prefix string
	}{
		{"argon2", Argon2(), "$argon2id$v=19$m=65536,t=1,p=4$"},
		{"argon2 params", Argon2WithParams(Argon2Params{Time: 2, Memory: 32 * 1024, Threads: 2, KeyLen: 16, SaltLen: 8}), "$argon2id$v=19$m=32768,t=2,p=2$"},
		{"bcrypt", BcryptWithCost(BcryptMinCost), "$2a$04$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1, err := tt.hasher.Hash([]byte("password123"))
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if !strings.HasPrefix(h1, tt.prefix) {
				t.Errorf("Hash() = %q, want prefix %q", h1, tt.prefix)
			}

			h2, _ := tt.hasher.Hash([]byte("password123"))
			if h1 == h2 {
				t.Error("same plaintext should produce different hashes (random salt)")
			}
		})
	}
}

func TestBcrypt_Verifies(t *testing.T) {
	h := BcryptWithCost(BcryptMinCost)

	hash, err := h.Hash([]byte("secret"))
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")); err != nil {
		t.Errorf("CompareHashAndPassword() error: %v", err)
	}
}

func TestBcrypt_InvalidCost(t *testing.T) {
	h := BcryptWithCost(BcryptMaxCost + 1)
	if _, err := h.Hash([]byte("secret")); err == nil {
		t.Error("expected error for cost above maximum")
	}
}

func TestDigestHashers(t *testing.T) {
	tests := []struct {
		algo HashAlgo
		want string
	}{
		{HashSHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{HashSHA512, "9b71d224bd62f3785d96d46ad3ea3d73319bfbc2890caadae2dff72519673ca72323c3d99ba5c11d7c7acc6e14b8c5da0c4663475c2e5c3adef46f73bcdec043"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			h, ok := HasherFor(tt.algo)
			if !ok {
				t.Fatalf("HasherFor(%q) not found", tt.algo)
			}
			got, err := h.Hash([]byte("hello"))
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Hash(hello) = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHasherFor(t *testing.T) {
	for _, algo := range []HashAlgo{HashArgon2, HashBcrypt, HashSHA256, HashSHA512} {
		if _, ok := HasherFor(algo); !ok {
			t.Errorf("HasherFor(%q) not found", algo)
		}
	}
	if _, ok := HasherFor("md5"); ok {
		t.Error("HasherFor(md5) should not be found")
	}
}

func TestHasherFunc(t *testing.T) {
	h := HasherFunc(func(p []byte) (string, error) { return strings.ToUpper(string(p)), nil })

	got, err := HashWith(h)([]string{"a", "b"})
	if err != nil {
		t.Fatalf("HashWith() error: %v", err)
	}
	if s := got.([]string); s[0] != "A" || s[1] != "B" {
		t.Errorf("HashWith() = %v, want [A B]", s)
	}
}
