package gremlex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Encode compiles a traversal into Gremlin-Groovy source suitable for server
// evaluation. A rooted traversal always produces a string starting with "g";
// encoding an anonymous traversal at top level is a programmer error.
func Encode(t Traversal) (string, error) {
	if t.kind == KindAnonymous {
		return "", ErrAnonymousAtTopLevel
	}
	return encodeSteps(t.kind, t.steps)
}

// encodeSteps is the recursive core shared by top-level Encode and by
// argument rendering for nested traversals: it dispatches its initial
// accumulator on the traversal's own kind tag, regardless of nesting depth.
func encodeSteps(kind Kind, steps []Step) (string, error) {
	acc := ""
	if kind == KindRooted {
		acc = "g"
	}
	for _, step := range steps {
		rendered, err := renderArgs(step.Args)
		if err != nil {
			return "", err
		}
		argStr := strings.Join(rendered, ", ")
		switch {
		case acc == "" && step.Op == "__":
			acc = "__"
		case acc != "" && step.Op == "__":
			return "", ErrInvalidAnonymousPlacement
		case acc == "":
			acc = fmt.Sprintf("%s(%s)", step.Op, argStr)
		default:
			acc = fmt.Sprintf("%s.%s(%s)", acc, step.Op, argStr)
		}
	}
	return acc, nil
}

// renderArgs renders a step's argument list to source fragments, flattening
// any slice-typed argument (e.g. project([]string{"a","b"})) into individual
// fragments rather than a bracketed literal.
func renderArgs(args []interface{}) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		fragments, err := renderArg(a)
		if err != nil {
			return nil, err
		}
		out = append(out, fragments...)
	}
	return out, nil
}

func renderArg(a interface{}) ([]string, error) {
	switch v := a.(type) {
	case nil:
		return []string{"none"}, nil
	case Traversal:
		s, err := encodeSteps(v.kind, v.steps)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	case Token:
		return []string{string(v)}, nil
	case Rng:
		return []string{fmt.Sprintf("%d..%d", v.From, v.To)}, nil
	case Predicate:
		inner, err := renderArgs(v.Args)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s(%s)", v.Op, strings.Join(inner, ", "))}, nil
	case Vertex:
		return []string{renderVertexRef(v)}, nil
	case string:
		return []string{quoteGroovyString(v)}, nil
	case bool:
		return []string{strconv.FormatBool(v)}, nil
	case float32:
		return []string{strconv.FormatFloat(float64(v), 'g', -1, 32)}, nil
	case float64:
		return []string{strconv.FormatFloat(v, 'g', -1, 64)}, nil
	}

	if s, ok := renderIntLike(a); ok {
		return []string{s}, nil
	}

	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte: treat as a string literal.
			return []string{quoteGroovyString(string(a.([]byte)))}, nil
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			fragments, err := renderArg(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, fragments...)
		}
		return out, nil
	}

	return nil, fmt.Errorf("gremlex: unsupported argument type %T", a)
}

func renderIntLike(a interface{}) (string, bool) {
	switch v := a.(type) {
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	}
	return "", false
}

// renderVertexRef renders a Vertex used as a step argument as the server's
// shorthand V(<id>) reference, quoting string ids.
func renderVertexRef(v Vertex) string {
	fragments, err := renderArg(v.ID)
	if err != nil {
		// v.ID is always a primitive produced by the codec or caller; fall
		// back to the null form rather than propagating an encoder error
		// from a shape the codec never actually produces.
		return "V(none)"
	}
	return fmt.Sprintf("V(%s)", strings.Join(fragments, ", "))
}

// quoteGroovyString single-quotes s, escaping any unescaped single quote. A
// quote is considered already escaped when preceded by an odd number of
// backslashes.
func quoteGroovyString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	backslashes := 0
	for _, r := range s {
		if r == '\\' {
			backslashes++
			b.WriteRune(r)
			continue
		}
		if r == '\'' && backslashes%2 == 0 {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		backslashes = 0
	}
	b.WriteByte('\'')
	return b.String()
}
