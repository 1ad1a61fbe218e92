package arbor

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way hashing. Password hashers embed their salt and
// parameters in the result.
type Hasher interface {
	Hash(plaintext []byte) (string, error)
}

// HasherFunc adapts a function to the Hasher interface.
type HasherFunc func(plaintext []byte) (string, error)

func (f HasherFunc) Hash(plaintext []byte) (string, error) { return f(plaintext) }

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2Params returns the OWASP recommended Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

// Argon2 returns an Argon2id hasher with default parameters.
func Argon2() Hasher {
	return Argon2WithParams(DefaultArgon2Params())
}

// Argon2WithParams returns an Argon2id hasher producing PHC strings of the
// form $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
func Argon2WithParams(p Argon2Params) Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		salt := make([]byte, p.SaltLen)
		if _, err := rand.Read(salt); err != nil {
			return "", fmt.Errorf("argon2 salt: %w", err)
		}
		key := argon2.IDKey(plaintext, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
		b64 := base64.RawStdEncoding
		return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2.Version, p.Memory, p.Time, p.Threads,
			b64.EncodeToString(salt), b64.EncodeToString(key)), nil
	})
}

// BcryptCost is a bcrypt work factor.
type BcryptCost int

const (
	BcryptMinCost     = BcryptCost(bcrypt.MinCost)
	BcryptDefaultCost = BcryptCost(bcrypt.DefaultCost)
	BcryptMaxCost     = BcryptCost(bcrypt.MaxCost)
)

// Bcrypt returns a bcrypt hasher with the default cost.
func Bcrypt() Hasher {
	return BcryptWithCost(BcryptDefaultCost)
}

// BcryptWithCost returns a bcrypt hasher. Costs outside the valid range
// fail when hashing.
func BcryptWithCost(cost BcryptCost) Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		out, err := bcrypt.GenerateFromPassword(plaintext, int(cost))
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(out), nil
	})
}

func digest(newHash func() hash.Hash) Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		h := newHash()
		h.Write(plaintext)
		return hex.EncodeToString(h.Sum(nil)), nil
	})
}

// SHA256Hasher returns an unsalted hasher producing 64 hex characters.
// Suitable for fingerprints, not passwords.
func SHA256Hasher() Hasher { return digest(sha256.New) }

// SHA512Hasher returns an unsalted hasher producing 128 hex characters.
func SHA512Hasher() Hasher { return digest(sha512.New) }

var builtinHashers = map[HashAlgo]Hasher{
	HashArgon2: Argon2(),
	HashBcrypt: Bcrypt(),
	HashSHA256: SHA256Hasher(),
	HashSHA512: SHA512Hasher(),
}

// HasherFor returns the builtin hasher for algo.
func HasherFor(algo HashAlgo) (Hasher, bool) {
	h, ok := builtinHashers[algo]
	return h, ok
}
