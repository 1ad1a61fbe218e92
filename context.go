package arbor

import (
	"fmt"
	"reflect"
)

// MapRule describes the fields of a map built from subject.
type MapRule func(c *MapContext, subject any) error

// ListRule derives one output element from item. parts holds the
// components of item when it is a Tuple, such as the key and value of a Pair.
type ListRule func(c *ListContext, item any, parts ...any) (any, error)

// TypedRule adapts a rule written against a concrete subject type. Struct
// types are registered with RegisterType.
func TypedRule[T any](fn func(c *MapContext, subject T) error) MapRule {
	RegisterType[T]()
	return func(c *MapContext, subject any) error {
		s, ok := subject.(T)
		if !ok {
			return fmt.Errorf("%w: want %s, got %s at %s",
				ErrSubjectType, reflect.TypeFor[T](), typeName(subject), displayPath(c.path))
		}
		return fn(c, s)
	}
}

// TypedListRule adapts a list rule written against a concrete element type.
func TypedListRule[T any](fn func(c *ListContext, item T, parts ...any) (any, error)) ListRule {
	RegisterType[T]()
	return func(c *ListContext, item any, parts ...any) (any, error) {
		s, ok := item.(T)
		if !ok {
			return nil, fmt.Errorf("%w: want %s, got %s at %s",
				ErrSubjectType, reflect.TypeFor[T](), typeName(item), displayPath(c.path))
		}
		return fn(c, s, parts...)
	}
}

// MapContext accumulates one map for one subject while its rule runs.
//
// Keys appear in the order of the calls that set them. The first failing
// call is recorded and every later call becomes a no-op; the failure aborts
// the whole serialization once the rule returns.
type MapContext struct {
	w       *walker
	subject any
	path    string
	depth   int
	out     *Map
	err     error
}

// Subject returns the value the rule is describing.
func (c *MapContext) Subject() any { return c.subject }

// Path returns the location of the map being built, e.g. "/owner/dogs/0".
func (c *MapContext) Path() string { return displayPath(c.path) }

// Err returns the first failure recorded by a DSL call.
func (c *MapContext) Err() error { return c.err }

// Field looks up name on the subject.
func (c *MapContext) Field(name string) (any, error) {
	v, err := c.w.accessor.Field(c.subject, name)
	if err != nil {
		return nil, withPath(err, c.path)
	}
	return v, nil
}

// Attr stores the subject's field name, or the Value arg, after applying
// any Transform args.
func (c *MapContext) Attr(name string, opts ...Arg) *MapContext {
	a := collectArgs(name, opts)
	if v, ok := c.resolve(name, a); ok {
		c.out.Set(a.key, v)
	}
	return c
}

// Attrs calls Attr for each name in order.
func (c *MapContext) Attrs(names ...string) *MapContext {
	for _, name := range names {
		c.Attr(name)
	}
	return c
}

// Resource stores a map built from the resolved value. A nil rule converts
// the value structurally.
func (c *MapContext) Resource(name string, rule MapRule, opts ...Arg) *MapContext {
	a := collectArgs(name, opts)
	v, ok := c.resolve(name, a)
	if !ok {
		return c
	}
	m, err := c.w.resource(v, rule, keyPath(c.path, a.key), c.depth+1)
	if err != nil {
		return c.fail(err)
	}
	c.out.Set(a.key, m)
	return c
}

// Namespace stores a map built by rule from the same subject under name.
func (c *MapContext) Namespace(name string, rule MapRule) *MapContext {
	if c.err != nil {
		return c
	}
	m, err := c.w.resource(c.subject, rule, keyPath(c.path, name), c.depth+1)
	if err != nil {
		return c.fail(err)
	}
	c.out.Set(name, m)
	return c
}

// Collection stores one map per element of the resolved value.
func (c *MapContext) Collection(name string, rule MapRule, opts ...Arg) *MapContext {
	a := collectArgs(name, opts)
	v, ok := c.resolve(name, a)
	if !ok {
		return c
	}
	s, err := c.w.collection(v, rule, keyPath(c.path, a.key), c.depth+1)
	if err != nil {
		return c.fail(err)
	}
	c.out.Set(a.key, s)
	return c
}

// CollectionAdd appends one map per element of the resolved value to the
// sequence already stored under the output key.
func (c *MapContext) CollectionAdd(name string, rule MapRule, opts ...Arg) *MapContext {
	a := collectArgs(name, opts)
	if c.err != nil {
		return c
	}
	prev, _ := c.out.Get(a.key)
	existing, isSeq := prev.(Seq)
	if !isSeq {
		return c.fail(fmt.Errorf("%w: %q holds %s at %s", ErrAppendTarget, a.key, typeName(prev), displayPath(c.path)))
	}

	v, ok := c.resolve(name, a)
	if !ok {
		return c
	}
	s, err := c.w.collection(v, rule, keyPath(c.path, a.key), c.depth+1)
	if err != nil {
		return c.fail(err)
	}
	merged := make(Seq, 0, len(existing)+len(s))
	c.out.Set(a.key, append(append(merged, existing...), s...))
	return c
}

// CollectionOf looks up each source field, builds a collection from it and
// stores the concatenation of the results under name. Only the per-source
// sequences are merged; sequences nested inside elements are kept.
func (c *MapContext) CollectionOf(name string, sources []string, rule MapRule) *MapContext {
	if c.err != nil {
		return c
	}
	merged := Seq{}
	for _, src := range sources {
		v, err := c.Field(src)
		if err != nil {
			return c.fail(err)
		}
		s, err := c.w.collection(v, rule, keyPath(c.path, name), c.depth+1)
		if err != nil {
			return c.fail(err)
		}
		merged = append(merged, s...)
	}
	c.out.Set(name, merged)
	return c
}

// List stores the result of mapping the resolved value through rule.
func (c *MapContext) List(name string, rule ListRule, opts ...Arg) *MapContext {
	a := collectArgs(name, opts)
	v, ok := c.resolve(name, a)
	if !ok {
		return c
	}
	s, err := c.w.list(v, rule, keyPath(c.path, a.key), c.depth+1)
	if err != nil {
		return c.fail(err)
	}
	c.out.Set(a.key, s)
	return c
}

// Nest stores the output of another definition applied to the resolved value.
// The nested definition's rules and accessor apply. Depth keeps counting from
// this map, bounded by the tighter of the two depth limits. A nil def fails
// with ErrUnknownDefinition.
func (c *MapContext) Nest(name string, def *Definition, opts ...Arg) *MapContext {
	if c.err != nil {
		return c
	}
	if def == nil {
		return c.fail(fmt.Errorf("%w: nil definition for %s", ErrUnknownDefinition, name))
	}
	a := collectArgs(name, opts)
	v, ok := c.resolve(name, a)
	if !ok {
		return c
	}
	n, err := def.walk(c.w.ctx, v, keyPath(c.path, a.key), c.depth+1, c.w.maxDepth)
	if err != nil {
		return c.fail(err)
	}
	c.out.Set(a.key, n.Interface())
	return c
}

// resolve returns the explicit value or the subject's field, transformed.
func (c *MapContext) resolve(name string, a args) (any, bool) {
	if c.err != nil {
		return nil, false
	}
	v := a.value
	if !a.hasValue {
		fv, err := c.Field(name)
		if err != nil {
			c.fail(err)
			return nil, false
		}
		v = fv
	}
	v, err := applyTransforms(a.key, v, a.transforms)
	if err != nil {
		c.fail(err)
		return nil, false
	}
	return v, true
}

func (c *MapContext) fail(err error) *MapContext {
	if c.err == nil {
		c.err = err
	}
	return c
}

// ListContext is bound to one element while a list rule runs. Its builders
// default their subject to that element.
type ListContext struct {
	w       *walker
	current any
	parts   []any
	index   int
	path    string
	depth   int
}

// Current returns the element being converted.
func (c *ListContext) Current() any { return c.current }

// Parts returns the components of the element when it is a Tuple.
func (c *ListContext) Parts() []any { return c.parts }

// Index returns the position of the element in the source sequence.
func (c *ListContext) Index() int { return c.index }

// Path returns the location of the element, e.g. "/pets/2".
func (c *ListContext) Path() string { return displayPath(c.path) }

// Field looks up name on the current element.
func (c *ListContext) Field(name string) (any, error) {
	v, err := c.w.accessor.Field(c.current, name)
	if err != nil {
		return nil, withPath(err, c.path)
	}
	return v, nil
}

// Resource builds a map from the current element.
func (c *ListContext) Resource(rule MapRule) (*Map, error) {
	return c.w.resource(c.current, rule, c.path, c.depth)
}

// Collection builds one map per element of the current element.
func (c *ListContext) Collection(rule MapRule) (Seq, error) {
	return c.w.collection(c.current, rule, c.path, c.depth)
}

// List maps the current element through rule.
func (c *ListContext) List(rule ListRule) (Seq, error) {
	return c.w.list(c.current, rule, c.path, c.depth)
}
