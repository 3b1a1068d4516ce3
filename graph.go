package gremlex

import (
	"fmt"
	"reflect"

	"github.com/iancoleman/strcase"
)

// Vertex is a decoded (or synthetically built) graph vertex.
type Vertex struct {
	ID         interface{}
	Label      string
	Properties map[string][]interface{}
}

// Edge is a decoded graph edge. InV and OutV carry only id and label; their
// Properties are always left empty.
type Edge struct {
	ID         interface{}
	Label      string
	InV        Vertex
	OutV       Vertex
	Properties map[string]interface{}
}

// VertexProperty is a decoded vertex property, including its own meta-properties.
type VertexProperty struct {
	ID         interface{}
	Value      interface{}
	Vertex     *Vertex
	Label      string
	Properties map[string]interface{}
}

// Path is a decoded traversal path: Labels[i] is the set of step labels that
// produced Objects[i].
type Path struct {
	Labels  []Set
	Objects []interface{}
}

// Set is a GraphSON g:Set decode target. Go has no ordered/unordered
// distinction at the type level, so Set is kept as a defined slice type —
// ordered in memory, but callers should not depend on that order.
type Set []interface{}

// GMap is a GraphSON g:Map decode target. Gremlin map keys are not always
// strings (they may be numbers, UUIDs, or other decoded graph values), so
// GMap keys are interface{}.
type GMap map[interface{}]interface{}

// PropertiesFromStruct walks the exported fields of v (a struct or pointer
// to struct) and returns an addV(label) traversal with one .property(key,
// value) step per field, using strcase.ToLowerCamel to derive the property
// key from the field name, returning a deferred Traversal rather than an
// eagerly-formatted request string.
func PropertiesFromStruct(label string, v interface{}) (Traversal, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Traversal{}, ErrNotAStruct
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Traversal{}, ErrNotAStruct
	}

	t := Root().AddV(label)
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		key := strcase.ToLowerCamel(field.Name)
		val := rv.Field(i).Interface()
		switch val.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			t = t.Property(key, val)
		case fmt.Stringer:
			t = t.Property(key, val.(fmt.Stringer).String())
		default:
			return Traversal{}, fmt.Errorf("%w: field %s has type %T", ErrUnsupportedFieldType, field.Name, val)
		}
	}
	return t, nil
}
