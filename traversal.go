package gremlex

// Kind distinguishes a rooted traversal (emits source beginning with "g")
// from an anonymous one (emits source beginning with "__", valid only as a
// nested argument).
type Kind int

const (
	KindRooted Kind = iota
	KindAnonymous
)

// Step is a single recorded operation: a Gremlin method name paired with its
// ordered, heterogeneous argument list.
type Step struct {
	Op   string
	Args []interface{}
}

// Traversal is an ordered, append-only sequence of Steps. It is an immutable
// value: every builder method returns a new Traversal with one step appended,
// leaving the receiver untouched, so traversal values may be shared freely
// across goroutines and compose without aliasing surprises.
type Traversal struct {
	kind  Kind
	steps []Step
}

// Root returns an empty rooted traversal, the starting point for any
// traversal submitted to the server ("g").
func Root() Traversal {
	return Traversal{kind: KindRooted}
}

// Anonymous returns a traversal pre-seeded with the "__" pseudo-step. It is
// only valid nested as an argument inside another traversal; encoding it at
// top level returns ErrAnonymousAtTopLevel.
func Anonymous() Traversal {
	return Traversal{kind: KindAnonymous, steps: []Step{{Op: "__"}}}
}

// IsRooted reports whether t is a rooted ("g") traversal.
func (t Traversal) IsRooted() bool { return t.kind == KindRooted }

// Steps returns a copy of t's recorded steps.
func (t Traversal) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// append returns a new Traversal with one more step recorded; it never
// mutates t, even when t's backing array has spare capacity, so sibling
// traversals built from a shared prefix never observe each other's steps.
func (t Traversal) append(op string, args ...interface{}) Traversal {
	steps := make([]Step, len(t.steps)+1)
	copy(steps, t.steps)
	steps[len(t.steps)] = Step{Op: op, Args: args}
	return Traversal{kind: t.kind, steps: steps}
}

// --- vertex/edge selection and creation ---

func (t Traversal) V(ids ...interface{}) Traversal  { return t.append("V", ids...) }
func (t Traversal) E(ids ...interface{}) Traversal  { return t.append("E", ids...) }
func (t Traversal) AddV(label string) Traversal     { return t.append("addV", label) }
func (t Traversal) AddE(label string) Traversal     { return t.append("addE", label) }
func (t Traversal) To(target interface{}) Traversal { return t.append("to", target) }
func (t Traversal) From(target interface{}) Traversal {
	return t.append("from", target)
}

// --- property mutation ---

// Property records a property step. An optional leading Cardinality token
// (CardinalitySingle/List/Set) may precede key and value.
func (t Traversal) Property(args ...interface{}) Traversal {
	return t.append("property", args...)
}

// --- filtering ---

func (t Traversal) Has(args ...interface{}) Traversal       { return t.append("has", args...) }
func (t Traversal) HasLabel(labels ...interface{}) Traversal { return t.append("hasLabel", labels...) }
func (t Traversal) HasID(ids ...interface{}) Traversal       { return t.append("hasId", ids...) }
func (t Traversal) HasKey(keys ...interface{}) Traversal     { return t.append("hasKey", keys...) }
func (t Traversal) HasNot(key string) Traversal              { return t.append("hasNot", key) }
func (t Traversal) Where(args ...interface{}) Traversal      { return t.append("where", args...) }
func (t Traversal) Is(args ...interface{}) Traversal         { return t.append("is", args...) }
func (t Traversal) Not(sub Traversal) Traversal              { return t.append("not", sub) }

// --- traversal steps ---

func (t Traversal) Out(labels ...interface{}) Traversal    { return t.append("out", labels...) }
func (t Traversal) In(labels ...interface{}) Traversal      { return t.append("in", labels...) }
func (t Traversal) Both(labels ...interface{}) Traversal    { return t.append("both", labels...) }
func (t Traversal) OutE(labels ...interface{}) Traversal    { return t.append("outE", labels...) }
func (t Traversal) InE(labels ...interface{}) Traversal     { return t.append("inE", labels...) }
func (t Traversal) BothE(labels ...interface{}) Traversal   { return t.append("bothE", labels...) }
func (t Traversal) OutV() Traversal                         { return t.append("outV") }
func (t Traversal) InV() Traversal                          { return t.append("inV") }
func (t Traversal) BothV() Traversal                        { return t.append("bothV") }
func (t Traversal) OtherV() Traversal                        { return t.append("otherV") }

// --- composition ---

func (t Traversal) And(others ...Traversal) Traversal { return t.append("and", travArgs(others)...) }
func (t Traversal) Or(others ...Traversal) Traversal   { return t.append("or", travArgs(others)...) }
func (t Traversal) Coalesce(options ...Traversal) Traversal {
	return t.append("coalesce", travArgs(options)...)
}
func (t Traversal) Union(options ...Traversal) Traversal {
	return t.append("union", travArgs(options)...)
}
func (t Traversal) Choose(args ...interface{}) Traversal { return t.append("choose", args...) }

func travArgs(ts []Traversal) []interface{} {
	args := make([]interface{}, len(ts))
	for i, tr := range ts {
		args[i] = tr
	}
	return args
}

// --- reshaping ---

func (t Traversal) Fold() Traversal                     { return t.append("fold") }
func (t Traversal) Unfold() Traversal                   { return t.append("unfold") }
func (t Traversal) Project(keys ...interface{}) Traversal { return t.append("project", keys...) }
func (t Traversal) By(args ...interface{}) Traversal    { return t.append("by", args...) }
func (t Traversal) Select(args ...interface{}) Traversal { return t.append("select", args...) }
func (t Traversal) As(label string) Traversal           { return t.append("as", label) }
func (t Traversal) Group() Traversal                    { return t.append("group") }
func (t Traversal) GroupCount() Traversal               { return t.append("groupCount") }
func (t Traversal) Aggregate(name string) Traversal     { return t.append("aggregate", name) }
func (t Traversal) Store(name string) Traversal         { return t.append("store", name) }
func (t Traversal) Cap(names ...interface{}) Traversal  { return t.append("cap", names...) }

// --- paging ---

func (t Traversal) Limit(n interface{}) Traversal        { return t.append("limit", n) }
func (t Traversal) Range(args ...interface{}) Traversal  { return t.append("range", args...) }
func (t Traversal) Tail(args ...interface{}) Traversal   { return t.append("tail", args...) }
func (t Traversal) Dedup(args ...interface{}) Traversal  { return t.append("dedup", args...) }

// --- flow control ---

func (t Traversal) Repeat(sub Traversal) Traversal { return t.append("repeat", sub) }
func (t Traversal) Until(sub Traversal) Traversal  { return t.append("until", sub) }
func (t Traversal) Emit() Traversal                { return t.append("emit") }
func (t Traversal) Times(n int) Traversal          { return t.append("times", n) }
func (t Traversal) Loops() Traversal                { return t.append("loops") }
func (t Traversal) SideEffect(sub Traversal) Traversal { return t.append("sideEffect", sub) }
func (t Traversal) Local(sub Traversal) Traversal  { return t.append("local", sub) }
func (t Traversal) Barrier() Traversal             { return t.append("barrier") }

// --- terminals and misc ---

func (t Traversal) ToList() Traversal                 { return t.append("toList") }
func (t Traversal) ToSet() Traversal                  { return t.append("toSet") }
func (t Traversal) ToBulkSet() Traversal              { return t.append("toBulkSet") }
func (t Traversal) Next(args ...interface{}) Traversal { return t.append("next", args...) }
func (t Traversal) HasNext() Traversal                { return t.append("hasNext") }
func (t Traversal) Drop() Traversal                   { return t.append("drop") }
func (t Traversal) Iterate() Traversal                { return t.append("iterate") }
func (t Traversal) Count() Traversal                  { return t.append("count") }
func (t Traversal) Sum() Traversal                    { return t.append("sum") }
func (t Traversal) Min() Traversal                    { return t.append("min") }
func (t Traversal) Max() Traversal                    { return t.append("max") }
func (t Traversal) Label() Traversal                  { return t.append("label") }
func (t Traversal) ID() Traversal                     { return t.append("id") }
func (t Traversal) Key() Traversal                    { return t.append("key") }
func (t Traversal) Values(keys ...interface{}) Traversal { return t.append("values", keys...) }
func (t Traversal) ValueMap(keys ...interface{}) Traversal {
	return t.append("valueMap", keys...)
}
func (t Traversal) ElementMap(keys ...interface{}) Traversal {
	return t.append("elementMap", keys...)
}
func (t Traversal) Path() Traversal       { return t.append("path") }
func (t Traversal) SimplePath() Traversal { return t.append("simplePath") }
func (t Traversal) CyclicPath() Traversal { return t.append("cyclicPath") }
func (t Traversal) Datetime(v interface{}) Traversal { return t.append("datetime", v) }
func (t Traversal) Constant(v interface{}) Traversal { return t.append("constant", v) }
func (t Traversal) Identity() Traversal   { return t.append("identity") }
func (t Traversal) Order() Traversal      { return t.append("order") }

// --- namespace sugar ---

// DefaultNamespaceProperty is the property key used by AddNamespace/HasNamespace;
// AddNamespaceKey/HasNamespaceKey take an alternate key instead.
const DefaultNamespaceProperty = "namespace"

// DefaultNamespace is the namespace value used by AddNamespace/HasNamespace
// when the caller doesn't supply one.
const DefaultNamespace = "default"

// AddNamespace is sugar over property(namespaceProperty, ns), defaulting the
// property key to DefaultNamespaceProperty and the value to DefaultNamespace.
func (t Traversal) AddNamespace(ns ...string) Traversal {
	return t.Property(DefaultNamespaceProperty, namespaceOrDefault(ns))
}

// AddNamespaceKey is AddNamespace with a configurable property key.
func (t Traversal) AddNamespaceKey(key string, ns ...string) Traversal {
	return t.Property(key, namespaceOrDefault(ns))
}

// HasNamespace is sugar over has(namespaceProperty, ns), defaulting the
// property key to DefaultNamespaceProperty and the value to DefaultNamespace.
func (t Traversal) HasNamespace(ns ...string) Traversal {
	return t.Has(DefaultNamespaceProperty, namespaceOrDefault(ns))
}

// HasNamespaceKey is HasNamespace with a configurable property key.
func (t Traversal) HasNamespaceKey(key string, ns ...string) Traversal {
	return t.Has(key, namespaceOrDefault(ns))
}

func namespaceOrDefault(ns []string) string {
	if len(ns) > 0 {
		return ns[0]
	}
	return DefaultNamespace
}
