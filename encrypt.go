package arbor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
)

// Encryption errors.
var (
	ErrInvalidKeySize   = errors.New("invalid key size")
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrMissingKey       = errors.New("missing key")
)

// Encryptor seals values for the Encrypt transform. Decrypt is provided so
// consumers of an encoded tree can recover the plaintext.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// gcm seals with AES-GCM and stores the nonce in front of the ciphertext.
type gcm struct {
	aead cipher.AEAD
}

func newGCM(key []byte) (*gcm, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &gcm{aead: aead}, nil
}

func (g *gcm) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, g.aead.NonceSize(), g.aead.NonceSize()+len(plaintext)+g.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return g.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (g *gcm) Decrypt(ciphertext []byte) ([]byte, error) {
	n := g.aead.NonceSize()
	if len(ciphertext) < n {
		return nil, ErrCiphertextShort
	}
	out, err := g.aead.Open(nil, ciphertext[:n], ciphertext[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return out, nil
}

// AES returns an AES-GCM encryptor. The key length picks AES-128, AES-192
// or AES-256.
func AES(key []byte) (Encryptor, error) {
	g, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return g, nil
}

type rsaOAEP struct {
	pub  *rsa.PublicKey
	priv *rsa.PrivateKey
}

// RSA returns an RSA-OAEP encryptor using SHA-256. Either key may be nil
// when only one direction is needed.
func RSA(pub *rsa.PublicKey, priv *rsa.PrivateKey) Encryptor {
	return &rsaOAEP{pub: pub, priv: priv}
}

func (e *rsaOAEP) Encrypt(plaintext []byte) ([]byte, error) {
	if e.pub == nil {
		return nil, fmt.Errorf("%w: rsa public key", ErrMissingKey)
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, e.pub, plaintext, nil)
}

func (e *rsaOAEP) Decrypt(ciphertext []byte) ([]byte, error) {
	if e.priv == nil {
		return nil, fmt.Errorf("%w: rsa private key", ErrMissingKey)
	}
	out, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, e.priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return out, nil
}

type envelope struct {
	master *gcm
}

// Envelope returns an encryptor that seals each value with a fresh AES-256
// data key and stores that key, sealed with masterKey, in front of the
// ciphertext. masterKey must be 16, 24, or 32 bytes.
func Envelope(masterKey []byte) (Encryptor, error) {
	master, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}
	return &envelope{master: master}, nil
}

// Encrypt lays out the output as a 2-byte big-endian length, the wrapped
// data key and the sealed plaintext.
func (e *envelope) Encrypt(plaintext []byte) ([]byte, error) {
	dataKey := make([]byte, 32)
	if _, err := rand.Read(dataKey); err != nil {
		return nil, err
	}
	wrapped, err := e.master.Encrypt(dataKey)
	if err != nil {
		return nil, err
	}

	data, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	sealed, err := data.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	out := binary.BigEndian.AppendUint16(make([]byte, 0, 2+len(wrapped)+len(sealed)), uint16(len(wrapped)))
	out = append(out, wrapped...)
	return append(out, sealed...), nil
}

func (e *envelope) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, ErrCiphertextShort
	}
	n := int(binary.BigEndian.Uint16(ciphertext))
	if len(ciphertext) < 2+n {
		return nil, ErrCiphertextShort
	}

	dataKey, err := e.master.Decrypt(ciphertext[2 : 2+n])
	if err != nil {
		return nil, err
	}
	data, err := newGCM(dataKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return data.Decrypt(ciphertext[2+n:])
}
