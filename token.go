package gremlex

import "fmt"

// Token is a bare Groovy identifier such as a cardinality marker or a sort
// order, rendered verbatim (unquoted) by the encoder.
type Token string

// Cardinality markers accepted by the property step.
const (
	CardinalitySingle Token = "single"
	CardinalityList   Token = "list"
	CardinalitySet    Token = "set"
)

// Sort order markers accepted by the order step's by() modulator.
const (
	Asc  Token = "asc"
	Desc Token = "desc"
)

// Rng is an integer range literal, rendered as "a..b", used by within/without.
type Rng struct {
	From int
	To   int
}

// Range_ builds an Rng argument.
func Range_(from, to int) Rng {
	return Rng{From: from, To: to}
}

// Predicate is a comparison or membership predicate such as gt(100) or
// within(1, 2, 3). It renders as "op(args...)" wherever it appears as a step
// argument.
type Predicate struct {
	Op   string
	Args []interface{}
}

func predicate(op string, args ...interface{}) Predicate {
	return Predicate{Op: op, Args: args}
}

// Eq builds an eq(value) predicate.
func Eq(v interface{}) Predicate { return predicate("eq", v) }

// Neq builds a neq(value) predicate.
func Neq(v interface{}) Predicate { return predicate("neq", v) }

// Gt builds a gt(value) predicate.
func Gt(v interface{}) Predicate { return predicate("gt", v) }

// Gte builds a gte(value) predicate.
func Gte(v interface{}) Predicate { return predicate("gte", v) }

// Lt builds a lt(value) predicate.
func Lt(v interface{}) Predicate { return predicate("lt", v) }

// Lte builds a lte(value) predicate.
func Lte(v interface{}) Predicate { return predicate("lte", v) }

// Within builds a within(values...) predicate.
func Within(values ...interface{}) Predicate { return predicate("within", values...) }

// Without builds a without(values...) predicate.
func Without(values ...interface{}) Predicate { return predicate("without", values...) }

func (p Predicate) String() string {
	return fmt.Sprintf("%s(%v)", p.Op, p.Args)
}
