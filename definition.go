package arbor

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RootKind identifies the builder a Definition starts from.
type RootKind int

const (
	RootUndefined RootKind = iota
	RootResource
	RootCollection
	RootList
)

func (k RootKind) String() string {
	switch k {
	case RootResource:
		return "resource"
	case RootCollection:
		return "collection"
	case RootList:
		return "list"
	default:
		return "undefined"
	}
}

// Option configures a Definition.
type Option func(*Definition)

// WithAccessor replaces the reflection accessor used for field lookup and
// fallback conversion.
func WithAccessor(a Accessor) Option {
	return func(d *Definition) {
		if a != nil {
			d.accessor = a
		}
	}
}

// WithCodec sets the codec used by Encode.
func WithCodec(c Codec) Option {
	return func(d *Definition) {
		d.codec = c
	}
}

// WithMaxDepth fails serialization nested deeper than n builders.
// Zero, the default, leaves depth unbounded.
func WithMaxDepth(n int) Option {
	return func(d *Definition) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// Definition holds one root rule and turns subjects into trees with it.
//
// Exactly one of Resource, Collection or List may be called. After that the
// definition is read-only and safe for concurrent use.
type Definition struct {
	name     string
	accessor Accessor
	codec    Codec
	maxDepth int

	mu       sync.RWMutex
	kind     RootKind
	mapRule  MapRule
	listRule ListRule
}

// New creates a definition without a root rule.
func New(name string, opts ...Option) *Definition {
	d := &Definition{
		name:     name,
		accessor: Reflect(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the definition name.
func (d *Definition) Name() string { return d.name }

// Kind returns the registered root kind.
func (d *Definition) Kind() RootKind {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.kind
}

// Resource makes the root a map built by rule. A nil rule converts the
// subject structurally.
func (d *Definition) Resource(rule MapRule) error {
	return d.define(RootResource, rule, nil)
}

// Collection makes the root a sequence of maps, one per subject element.
func (d *Definition) Collection(rule MapRule) error {
	return d.define(RootCollection, rule, nil)
}

// List makes the root a sequence of whatever rule returns per subject element.
func (d *Definition) List(rule ListRule) error {
	return d.define(RootList, nil, rule)
}

func (d *Definition) define(kind RootKind, mr MapRule, lr ListRule) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.kind != RootUndefined {
		return d.errorf(ErrRootAlreadyDefined)
	}
	d.kind = kind
	d.mapRule = mr
	d.listRule = lr

	emitDefinitionRegistered(context.Background(), d.name, kind.String())
	return nil
}

// Serialize converts subject into a tree using the root rule.
func (d *Definition) Serialize(ctx context.Context, subject any) (Node, error) {
	kind := d.Kind()
	if kind == RootUndefined {
		return nil, d.errorf(ErrNoRootDefined)
	}

	start := time.Now()
	emitSerializeStart(ctx, d.name, kind.String(), typeName(subject))

	node, err := d.walk(ctx, subject, "", 0, 0)
	emitSerializeComplete(ctx, d.name, kind.String(), typeName(subject), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Encode serializes subject and marshals the tree with the configured codec.
func (d *Definition) Encode(ctx context.Context, subject any) ([]byte, error) {
	if d.codec == nil {
		return nil, d.errorf(ErrNoCodec)
	}

	node, err := d.Serialize(ctx, subject)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := d.codec.Marshal(node.Interface())
	if err != nil {
		err = newCodecError(err)
		data = nil
	}
	emitEncodeComplete(ctx, d.name, d.codec.ContentType(), len(data), time.Since(start), err)
	return data, err
}

// walk runs the root builder with this definition's accessor. limit is an
// outer depth limit carried in by Nest; zero means none.
func (d *Definition) walk(ctx context.Context, subject any, path string, depth, limit int) (Node, error) {
	d.mu.RLock()
	kind, mr, lr := d.kind, d.mapRule, d.listRule
	d.mu.RUnlock()

	w := &walker{ctx: ctx, accessor: d.accessor, maxDepth: tighter(d.maxDepth, limit)}

	switch kind {
	case RootResource:
		m, err := w.resource(subject, mr, path, depth)
		if err != nil {
			return nil, err
		}
		return m, nil
	case RootCollection:
		s, err := w.collection(subject, mr, path, depth)
		if err != nil {
			return nil, err
		}
		return s, nil
	case RootList:
		s, err := w.list(subject, lr, path, depth)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, d.errorf(ErrNoRootDefined)
	}
}

// tighter returns the smaller positive depth limit, or zero if neither is set.
func tighter(a, b int) int {
	switch {
	case a <= 0:
		return b
	case b <= 0 || a < b:
		return a
	default:
		return b
	}
}

func (d *Definition) errorf(sentinel error) error {
	if d.name == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, d.name)
}
