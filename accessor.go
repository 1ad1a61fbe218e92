package arbor

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("tree")
}

// Accessor provides the structural capabilities the builders consume:
// named field lookup and the two fallback conversions.
type Accessor interface {
	// Field returns the subject's value for name.
	Field(subject any, name string) (any, error)

	// ToMap converts the subject into a key-value structure.
	ToMap(subject any) (*Map, error)

	// ToSeq converts the subject into an ordered sequence.
	ToSeq(subject any) (Seq, error)
}

// Override interfaces let subject types bypass reflection.

// FieldLookup resolves named fields without reflection.
type FieldLookup interface {
	LookupField(name string) (any, bool)
}

// Mappable converts itself into a key-value structure.
type Mappable interface {
	AsMap() (*Map, error)
}

// Sequenceable converts itself into an ordered sequence.
type Sequenceable interface {
	AsSeq() (Seq, error)
}

// Reflect returns the default Accessor. It honours the override interfaces,
// then falls back to reflection over structs, string-keyed maps, slices and
// arrays. Struct fields match the tree tag, the json tag or the Go name,
// ignoring case and underscores. Exported methods taking no arguments and
// returning a value (optionally with an error) resolve like fields.
//
// A nil subject converts to an empty map or sequence.
func Reflect() Accessor {
	return reflectAccessor{}
}

type reflectAccessor struct{}

func (reflectAccessor) Field(subject any, name string) (any, error) {
	switch s := subject.(type) {
	case FieldLookup:
		if v, ok := s.LookupField(name); ok {
			return v, nil
		}
		return nil, newFieldError(name, typeName(subject), "", nil)
	case *Map:
		if v, ok := s.Get(name); ok {
			return v, nil
		}
		return nil, newFieldError(name, typeName(subject), "", nil)
	}

	orig := reflect.ValueOf(subject)
	rv, ok := indirect(orig)
	if !ok {
		return nil, newFieldError(name, typeName(subject), "", nil)
	}

	switch rv.Kind() {
	case reflect.Struct:
		plan := planFor(rv.Type())
		if fp, ok := plan.field(name); ok {
			fv, err := rv.FieldByIndexErr(fp.index)
			if err != nil {
				return nil, nil
			}
			return fv.Interface(), nil
		}
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() == reflect.String {
			if v := rv.MapIndex(reflect.ValueOf(name).Convert(kt)); v.IsValid() {
				return v.Interface(), nil
			}
		}
	}

	// Pointer method sets include value methods, so look on the original.
	if v, found, err := callMethod(orig, name); found {
		if err != nil {
			return nil, newFieldError(name, typeName(subject), "", err)
		}
		return v, nil
	}

	return nil, newFieldError(name, typeName(subject), "", nil)
}

func (reflectAccessor) ToMap(subject any) (*Map, error) {
	switch s := subject.(type) {
	case nil:
		return NewMap(), nil
	case Mappable:
		return s.AsMap()
	case *Map:
		return s.Clone(), nil
	}

	rv, ok := indirect(reflect.ValueOf(subject))
	if !ok {
		return NewMap(), nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		plan := planFor(rv.Type())
		out := NewMap()
		for _, fp := range plan.fields {
			fv, err := rv.FieldByIndexErr(fp.index)
			if err != nil {
				out.Set(fp.key, nil)
				continue
			}
			out.Set(fp.key, fv.Interface())
		}
		return out, nil
	case reflect.Map:
		out := NewMap()
		for _, e := range sortedEntries(rv) {
			out.Set(e.Key, e.Value)
		}
		return out, nil
	}

	return nil, newConvertError(ErrNotConvertible, CapabilityMap, typeName(subject))
}

func (reflectAccessor) ToSeq(subject any) (Seq, error) {
	switch s := subject.(type) {
	case nil:
		return Seq{}, nil
	case Sequenceable:
		return s.AsSeq()
	case Seq:
		return append(Seq{}, s...), nil
	case []any:
		return append(Seq{}, s...), nil
	case iter.Seq[any]:
		out := Seq{}
		for v := range s {
			out = append(out, v)
		}
		return out, nil
	case *Map:
		out := make(Seq, 0, s.Len())
		s.Range(func(k string, v any) bool {
			out = append(out, Pair{Key: k, Value: v})
			return true
		})
		return out, nil
	case string, []byte:
		return nil, newConvertError(ErrNotIterable, CapabilitySequence, typeName(subject))
	}

	rv, ok := indirect(reflect.ValueOf(subject))
	if !ok {
		return Seq{}, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		out := make(Seq, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Struct:
		plan := planFor(rv.Type())
		out := make(Seq, 0, len(plan.fields))
		for _, fp := range plan.fields {
			fv, err := rv.FieldByIndexErr(fp.index)
			if err != nil {
				out = append(out, nil)
				continue
			}
			out = append(out, fv.Interface())
		}
		return out, nil
	case reflect.Map:
		entries := sortedEntries(rv)
		out := make(Seq, len(entries))
		for i, e := range entries {
			out[i] = e
		}
		return out, nil
	}

	return nil, newConvertError(ErrNotIterable, CapabilitySequence, typeName(subject))
}

// RegisterType scans T with sentinel and rebuilds its field plan from that
// metadata, so lookups on T resolve through the scanned tags. Non-struct
// types are ignored.
func RegisterType[T any]() {
	rt := indirectType(reflect.TypeFor[T]())
	if rt.Kind() != reflect.Struct {
		return
	}
	if _, err := sentinel.TryScan[T](); err != nil {
		return
	}

	plan := buildPlan(rt)
	planCacheMu.Lock()
	planCache[rt] = plan
	planCacheMu.Unlock()
}

// fieldPlan describes how to reach one struct field.
type fieldPlan struct {
	index []int  // reflect.Value.FieldByIndex access path
	name  string // Go field name
	key   string // output key (tag name or Go name)
}

// typePlan caches the resolvable fields of a struct type.
type typePlan struct {
	fields       []fieldPlan
	byKey        map[string]int
	byNorm       map[string]int
	fromSentinel bool
}

func (p *typePlan) field(name string) (fieldPlan, bool) {
	if i, ok := p.byKey[name]; ok {
		return p.fields[i], true
	}
	if i, ok := p.byNorm[normalize(name)]; ok {
		return p.fields[i], true
	}
	return fieldPlan{}, false
}

var (
	planCache   = make(map[reflect.Type]*typePlan)
	planCacheMu sync.RWMutex
)

// planFor returns a cached plan or builds a new one.
func planFor(rt reflect.Type) *typePlan {
	planCacheMu.RLock()
	if cached, ok := planCache[rt]; ok {
		planCacheMu.RUnlock()
		return cached
	}
	planCacheMu.RUnlock()

	planCacheMu.Lock()
	defer planCacheMu.Unlock()

	if cached, ok := planCache[rt]; ok {
		return cached
	}

	plan := buildPlan(rt)
	planCache[rt] = plan
	return plan
}

// sentinelMetadata returns the metadata sentinel cached for rt. sentinel
// keys its cache by bare type name, so the entry is only trusted when its
// package and every field line up with rt.
func sentinelMetadata(rt reflect.Type) (sentinel.Metadata, bool) {
	if rt.Name() == "" {
		return sentinel.Metadata{}, false
	}
	meta, ok := sentinel.Lookup(rt.Name())
	if !ok || meta.PackageName != rt.PkgPath() {
		return sentinel.Metadata{}, false
	}
	for _, field := range meta.Fields {
		if len(field.Index) != 1 || field.Index[0] >= rt.NumField() {
			return sentinel.Metadata{}, false
		}
		sf := rt.Field(field.Index[0])
		if sf.Name != field.Name || sf.Type != field.ReflectType {
			return sentinel.Metadata{}, false
		}
	}
	return meta, true
}

// plannedField is a field reachable from the planned type. depth counts the
// embedded structs crossed to reach it.
type plannedField struct {
	meta  sentinel.FieldMetadata
	depth int
}

// collectFields gathers the exported fields of rt, descending into embedded
// structs. Fields sentinel has scanned keep sentinel's metadata; the rest
// are described from their struct field.
func collectFields(rt reflect.Type, prefix []int, depth int, path map[reflect.Type]bool) ([]plannedField, bool) {
	meta, scanned := sentinelMetadata(rt)
	byIndex := make(map[int]sentinel.FieldMetadata, len(meta.Fields))
	for _, field := range meta.Fields {
		byIndex[field.Index[0]] = field
	}

	path[rt] = true
	defer delete(path, rt)

	var out []plannedField
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		index := append(append([]int{}, prefix...), i)

		if sf.Anonymous {
			if et := indirectType(sf.Type); et.Kind() == reflect.Struct {
				if !path[et] {
					nested, _ := collectFields(et, index, depth+1, path)
					out = append(out, nested...)
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		field, ok := byIndex[i]
		if !ok {
			field = sentinel.FieldMetadata{
				Name:        sf.Name,
				Type:        sf.Type.String(),
				ReflectType: sf.Type,
				Tags:        structTags(sf),
			}
		}
		field.Index = index
		out = append(out, plannedField{meta: field, depth: depth})
	}
	return out, scanned
}

// visibleFields drops fields shadowed by a shallower field of the same name
// and names that are ambiguous at their shallowest depth.
func visibleFields(fields []plannedField) []sentinel.FieldMetadata {
	type seen struct{ depth, n int }
	names := make(map[string]seen, len(fields))
	for _, f := range fields {
		s, ok := names[f.meta.Name]
		switch {
		case !ok || f.depth < s.depth:
			names[f.meta.Name] = seen{depth: f.depth, n: 1}
		case f.depth == s.depth:
			s.n++
			names[f.meta.Name] = s
		}
	}

	out := make([]sentinel.FieldMetadata, 0, len(fields))
	for _, f := range fields {
		if s := names[f.meta.Name]; s.depth == f.depth && s.n == 1 {
			out = append(out, f.meta)
		}
	}
	return out
}

// structTags collects the tags that name output keys, as sentinel does for
// the tags it extracts.
func structTags(sf reflect.StructField) map[string]string {
	tags := make(map[string]string)
	for _, key := range []string{"tree", "json"} {
		if val := sf.Tag.Get(key); val != "" {
			tags[key] = val
		}
	}
	return tags
}

func buildPlan(rt reflect.Type) *typePlan {
	fields, scanned := collectFields(rt, nil, 0, make(map[reflect.Type]bool))
	plan := &typePlan{
		byKey:        make(map[string]int),
		byNorm:       make(map[string]int),
		fromSentinel: scanned,
	}

	for _, field := range visibleFields(fields) {
		key, skip := tagName(field.Tags)
		if skip {
			continue
		}
		if key == "" {
			key = field.Name
		}

		i := len(plan.fields)
		plan.fields = append(plan.fields, fieldPlan{
			index: field.Index,
			name:  field.Name,
			key:   key,
		})

		if _, ok := plan.byKey[key]; !ok {
			plan.byKey[key] = i
		}
		for _, n := range []string{normalize(key), normalize(field.Name)} {
			if _, ok := plan.byNorm[n]; !ok {
				plan.byNorm[n] = i
			}
		}
	}

	return plan
}

// tagName picks the output key from the tree tag, then the json tag.
func tagName(tags map[string]string) (string, bool) {
	for _, key := range []string{"tree", "json"} {
		val, ok := tags[key]
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(val, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return "", false
}

// callMethod invokes an exported getter whose normalized name matches.
func callMethod(rv reflect.Value, name string) (any, bool, error) {
	if !rv.IsValid() {
		return nil, false, nil
	}
	want := normalize(name)
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if normalize(m.Name) != want {
			continue
		}
		mt := m.Type
		// Receiver counts as the first input.
		if mt.NumIn() != 1 {
			continue
		}
		switch {
		case mt.NumOut() == 1:
			return rv.Method(i).Call(nil)[0].Interface(), true, nil
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
			out := rv.Method(i).Call(nil)
			if err, _ := out[1].Interface().(error); err != nil {
				return nil, true, err
			}
			return out[0].Interface(), true, nil
		}
	}
	return nil, false, nil
}

var errorType = reflect.TypeFor[error]()

// indirect follows pointers and interfaces. It reports false for nil.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

func indirectType(rt reflect.Type) reflect.Type {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt
}

func sortedEntries(rv reflect.Value) []Pair {
	out := make([]Pair, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out = append(out, Pair{Key: fmt.Sprint(it.Key().Interface()), Value: it.Value().Interface()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
