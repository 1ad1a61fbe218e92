// Package arbor builds ordered trees of maps, sequences and leaves from
// arbitrary Go values using declarative rules.
//
// A Definition holds exactly one root rule. The root is a Resource (one
// map), a Collection (one map per element) or a List (one arbitrary value
// per element). Rules read fields from the subject through an Accessor and
// write keys into the tree in call order.
//
// # Resources
//
//	d := arbor.New("person")
//	err := d.Resource(func(c *arbor.MapContext, _ any) error {
//	    c.Attr("name").
//	        Attr("age", arbor.As("years")).
//	        Collection("dogs", func(c *arbor.MapContext, _ any) error {
//	            c.Attrs("name", "age")
//	            return nil
//	        })
//	    return nil
//	})
//
//	node, err := d.Serialize(ctx, person)
//	// {"name": ..., "years": ..., "dogs": [{"name": ..., "age": ...}]}
//
// MapContext methods chain. The first failure is recorded and every later
// call on the same context is skipped; Err returns it. A nested rule with
// nil as its rule falls back to converting the field with Accessor.ToMap
// (resources) or Accessor.ToSeq (lists).
//
// Keys written by Namespace land in the current map under a nested map
// built from the same subject. CollectionOf concatenates several fields
// into one collection. CollectionAdd appends to a collection written
// earlier under the same key.
//
// # Lists
//
// A list rule returns the value to place at each position. From inside a
// list rule the ListContext helpers rebuild the current element as a
// resource, a collection or another list:
//
//	d.List(func(c *arbor.ListContext, item any, parts ...any) (any, error) {
//	    return c.Collection(nil)
//	})
//
// When the element implements Tuple, as map entries do, its parts are
// passed to the rule after the element.
//
// # Field Access
//
// The default accessor, Reflect, resolves names against "tree" and "json"
// tags and exported field names (matched case-insensitively, ignoring
// underscores), then string map keys, then zero-argument methods. Types
// can take over with the FieldLookup, Mappable and Sequenceable interfaces.
// RegisterType scans a struct type with sentinel and builds its lookup
// plan from that metadata.
//
// # Transforms
//
// Attr accepts transforms that run on the resolved value before it is
// written:
//
//	c.Attr("email", arbor.Transform(arbor.Mask(arbor.MaskEmail))).
//	    Attr("password", arbor.Transform(arbor.Redact("***"))).
//	    Attr("token", arbor.Transform(arbor.Hash(arbor.HashSHA256))).
//	    Attr("ssn", arbor.Transform(arbor.Encrypt(enc)))
//
// # Codecs
//
// Encode serializes and then marshals the tree with the definition's codec.
// The json, yaml, msgpack, bson and xml subpackages provide codecs that keep
// map keys in insertion order.
//
//	d := arbor.New("person", arbor.WithCodec(json.New()))
//	data, err := d.Encode(ctx, person)
//
// # Registry
//
// Register a definition to look it up by name from other packages, and use
// MapContext.Nest to embed its output:
//
//	_ = arbor.Register(d)
//	owner, _ := arbor.Use("person")
//	c.Nest("owner", owner)
//
// # Signals
//
// Definitions emit capitan signals when a root rule is registered and when
// Serialize and Encode run. See SignalDefinitionRegistered and the related
// keys.
//
// # Errors
//
// Failures wrap one of the sentinel errors so they can be matched with
// errors.Is:
//
//	ErrNoRootDefined        Serialize before any root rule was set
//	ErrRootAlreadyDefined   a second root rule on the same definition
//	ErrNotConvertible       a value cannot become a map or sequence
//	ErrNotIterable          a value cannot become a sequence
//	ErrFieldLookupFailed    the accessor found no value for a name
//
// FieldError, ConvertError, TransformError and CodecError carry the path
// of the failing node, rendered as "/" for the root and "/dogs/0/name" below
// it.
package arbor
