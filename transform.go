package arbor

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// TransformFunc derives the stored value from a resolved one.
type TransformFunc func(v any) (any, error)

// Arg customises how a DSL call resolves and stores its value.
type Arg func(*args)

type args struct {
	value      any
	hasValue   bool
	key        string
	transforms []TransformFunc
}

func collectArgs(name string, opts []Arg) args {
	a := args{key: name}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Value supplies the value explicitly instead of looking up the field.
func Value(v any) Arg {
	return func(a *args) {
		a.value = v
		a.hasValue = true
	}
}

// As stores the result under key while the field is still looked up by name.
func As(key string) Arg {
	return func(a *args) {
		a.key = key
	}
}

// Transform applies fn to the resolved value. Several transforms run in order.
func Transform(fn TransformFunc) Arg {
	return func(a *args) {
		if fn != nil {
			a.transforms = append(a.transforms, fn)
		}
	}
}

// Mask masks string values with the builtin masker for mt.
func Mask(mt MaskType) TransformFunc {
	return func(v any) (any, error) {
		m, ok := MaskerFor(mt)
		if !ok {
			return nil, &TransformError{Err: ErrTransform, Operation: "mask", Cause: fmt.Errorf("unknown mask type %q", mt)}
		}
		return mapStrings("mask", v, func(s string) (string, error) {
			return m.Mask(s), nil
		})
	}
}

// MaskWith masks string values with m.
func MaskWith(m Masker) TransformFunc {
	return func(v any) (any, error) {
		return mapStrings("mask", v, func(s string) (string, error) {
			return m.Mask(s), nil
		})
	}
}

// Redact replaces string values with replacement.
func Redact(replacement string) TransformFunc {
	return func(v any) (any, error) {
		return mapStrings("redact", v, func(string) (string, error) {
			return replacement, nil
		})
	}
}

// Hash hashes string values with the builtin hasher for algo.
func Hash(algo HashAlgo) TransformFunc {
	return func(v any) (any, error) {
		h, ok := HasherFor(algo)
		if !ok {
			return nil, &TransformError{Err: ErrTransform, Operation: "hash", Cause: fmt.Errorf("unknown hash algorithm %q", algo)}
		}
		return HashWith(h)(v)
	}
}

// HashWith hashes string values with h.
func HashWith(h Hasher) TransformFunc {
	return func(v any) (any, error) {
		return mapStrings("hash", v, func(s string) (string, error) {
			return h.Hash([]byte(s))
		})
	}
}

// Encrypt encrypts string values with enc and base64-encodes the ciphertext.
func Encrypt(enc Encryptor) TransformFunc {
	return func(v any) (any, error) {
		return mapStrings("encrypt", v, func(s string) (string, error) {
			ct, err := enc.Encrypt([]byte(s))
			if err != nil {
				return "", err
			}
			return base64.StdEncoding.EncodeToString(ct), nil
		})
	}
}

// mapStrings applies fn to a string, a []byte or each element of a []string.
func mapStrings(op string, v any, fn func(string) (string, error)) (any, error) {
	switch s := v.(type) {
	case string:
		out, err := fn(s)
		if err != nil {
			return nil, &TransformError{Err: ErrTransform, Operation: op, Cause: err}
		}
		return out, nil
	case []byte:
		out, err := fn(string(s))
		if err != nil {
			return nil, &TransformError{Err: ErrTransform, Operation: op, Cause: err}
		}
		return []byte(out), nil
	case []string:
		out := make([]string, len(s))
		for i, e := range s {
			r, err := fn(e)
			if err != nil {
				return nil, &TransformError{Err: ErrTransform, Operation: op, Cause: fmt.Errorf("element %d: %w", i, err)}
			}
			out[i] = r
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, &TransformError{Err: ErrTransform, Operation: op, Cause: fmt.Errorf("unsupported value type %T", v)}
	}
}

// applyTransforms runs each transform in order, attributing failures to key.
func applyTransforms(key string, v any, transforms []TransformFunc) (any, error) {
	for _, fn := range transforms {
		out, err := fn(v)
		if err != nil {
			var te *TransformError
			if errors.As(err, &te) {
				te.Field = key
				return nil, err
			}
			return nil, newTransformError("transform", key, err)
		}
		v = out
	}
	return v, nil
}
