package arbor

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNoRootDefined indicates Serialize was called before a root rule was registered.
	ErrNoRootDefined = errors.New("no root rule defined")

	// ErrRootAlreadyDefined indicates a second root rule registration on one definition.
	ErrRootAlreadyDefined = errors.New("root rule is already defined")

	// ErrNotConvertible indicates a subject lacks the structural capability a
	// fallback conversion needs.
	ErrNotConvertible = errors.New("not convertible")

	// ErrNotIterable indicates a collection or list was built from a non-sequence subject.
	ErrNotIterable = errors.New("not iterable")

	// ErrFieldLookupFailed indicates the subject exposes no field with the requested name.
	ErrFieldLookupFailed = errors.New("field lookup failed")

	// ErrAppendTarget indicates CollectionAdd found no sequence to append to.
	ErrAppendTarget = errors.New("append target is not a sequence")

	// ErrInvalidResult indicates a list rule returned a builder context.
	ErrInvalidResult = errors.New("invalid rule result")

	// ErrSubjectType indicates a typed rule received a subject of another type.
	ErrSubjectType = errors.New("unexpected subject type")

	// ErrTransform indicates a value transform failed.
	ErrTransform = errors.New("transform failed")

	// ErrMaxDepth indicates the configured nesting limit was exceeded.
	ErrMaxDepth = errors.New("max depth exceeded")

	// ErrNoCodec indicates Encode was called on a definition without a codec.
	ErrNoCodec = errors.New("no codec configured")

	// ErrMarshal indicates the codec failed to marshal the tree.
	ErrMarshal = errors.New("marshal failed")

	// ErrDuplicateDefinition indicates a definition name is already registered.
	ErrDuplicateDefinition = errors.New("definition already registered")

	// ErrUnknownDefinition indicates no definition is registered under a name.
	ErrUnknownDefinition = errors.New("unknown definition")
)

// Capability names a structural conversion a fallback path relies on.
type Capability string

const (
	CapabilityMap      Capability = "map"
	CapabilitySequence Capability = "sequence"
)

// FieldError reports a failed structural field lookup.
type FieldError struct {
	Err   error  // Underlying sentinel error (ErrFieldLookupFailed)
	Field string // Requested field name
	Type  string // Subject type
	Path  string // Location in the output tree
	Cause error  // Error returned by a getter method, if any
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: no field %q on %s", e.Err.Error(), e.Field, e.Type)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConvertError reports a subject that cannot be converted by a fallback path.
type ConvertError struct {
	Err        error      // Underlying sentinel error (ErrNotConvertible, ErrNotIterable)
	Capability Capability // Capability the subject lacks
	Type       string     // Subject type
	Path       string     // Location in the output tree
}

func (e *ConvertError) Error() string {
	msg := fmt.Sprintf("%s: %s does not provide %s conversion", e.Err.Error(), e.Type, e.Capability)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Capability == CapabilityMap {
		msg += ", supply a rule with appropriate fields"
	}
	return msg
}

// Unwrap exposes ErrNotConvertible alongside ErrNotIterable so both match.
func (e *ConvertError) Unwrap() []error {
	if e.Err == ErrNotConvertible {
		return []error{e.Err}
	}
	return []error{e.Err, ErrNotConvertible}
}

// TransformError reports a failed value transform.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrTransform)
	Field     string // Output key being assigned
	Operation string // Transform that failed (mask, hash, encrypt, redact, func)
	Cause     error  // Original error from the transform
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newFieldError(field, typ, path string, cause error) error {
	return &FieldError{
		Err:   ErrFieldLookupFailed,
		Field: field,
		Type:  typ,
		Path:  path,
		Cause: cause,
	}
}

func newConvertError(sentinel error, capability Capability, typ string) error {
	return &ConvertError{
		Err:        sentinel,
		Capability: capability,
		Type:       typ,
	}
}

func newTransformError(operation, field string, cause error) error {
	return &TransformError{
		Err:       ErrTransform,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

func newCodecError(cause error) error {
	return &CodecError{
		Err:   ErrMarshal,
		Cause: cause,
	}
}
