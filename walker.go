package arbor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// walker carries the per-call state shared by every builder invocation of
// one Serialize call.
type walker struct {
	ctx      context.Context
	accessor Accessor
	maxDepth int
}

func (w *walker) enter(path string, depth int) error {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return fmt.Errorf("%w: depth %d at %s", ErrMaxDepth, depth, displayPath(path))
	}
	return nil
}

// resource builds a map from subject, through rule if given or through the
// accessor's map conversion otherwise.
func (w *walker) resource(subject any, rule MapRule, path string, depth int) (*Map, error) {
	if err := w.enter(path, depth); err != nil {
		return nil, err
	}

	if rule == nil {
		m, err := w.accessor.ToMap(subject)
		if err != nil {
			return nil, withPath(err, path)
		}
		return m, nil
	}

	c := &MapContext{
		w:       w,
		subject: subject,
		path:    path,
		depth:   depth,
		out:     NewMap(),
	}
	err := rule(c, subject)
	if c.err != nil {
		return nil, c.err
	}
	if err != nil {
		return nil, err
	}
	return c.out, nil
}

// collection builds one map per element of subject.
func (w *walker) collection(subject any, rule MapRule, path string, depth int) (Seq, error) {
	items, err := w.iterate(subject, path, depth)
	if err != nil {
		return nil, err
	}

	out := make(Seq, 0, len(items))
	for i, item := range items {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}
		m, err := w.resource(item, rule, elemPath(path, i), depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// list maps each element of subject through rule, collecting what the rule
// returns. Without a rule the elements are returned unconverted.
func (w *walker) list(subject any, rule ListRule, path string, depth int) (Seq, error) {
	items, err := w.iterate(subject, path, depth)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return items, nil
	}

	out := make(Seq, 0, len(items))
	for i, item := range items {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}

		c := &ListContext{
			w:       w,
			current: item,
			index:   i,
			path:    elemPath(path, i),
			depth:   depth + 1,
		}
		if t, ok := item.(Tuple); ok {
			c.parts = t.Parts()
		}

		v, err := rule(c, item, c.parts...)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case *MapContext, *ListContext:
			return nil, fmt.Errorf("%w: %T at %s", ErrInvalidResult, v, displayPath(c.path))
		}
		out = append(out, v)
	}
	return out, nil
}

func (w *walker) iterate(subject any, path string, depth int) (Seq, error) {
	if err := w.enter(path, depth); err != nil {
		return nil, err
	}
	items, err := w.accessor.ToSeq(subject)
	if err != nil {
		return nil, withPath(err, path)
	}
	return items, nil
}

// withPath records where a lookup or conversion failed.
func withPath(err error, path string) error {
	var fe *FieldError
	if errors.As(err, &fe) && fe.Path == "" {
		fe.Path = displayPath(path)
		return err
	}
	var ce *ConvertError
	if errors.As(err, &ce) && ce.Path == "" {
		ce.Path = displayPath(path)
	}
	return err
}

func keyPath(path, key string) string { return path + "/" + key }

func elemPath(path string, i int) string { return path + "/" + strconv.Itoa(i) }

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
