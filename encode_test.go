package gremlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSimple(t *testing.T) {
	tr := Root().V().HasLabel("person").Has("name", "marko")
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().hasLabel('person').has('name', 'marko')`, src)
}

func TestEncodeAnonymousAtTopLevelFails(t *testing.T) {
	_, err := Encode(Anonymous().Out())
	assert.ErrorIs(t, err, ErrAnonymousAtTopLevel)
}

func TestEncodeRejectsMidSequenceAnonymousMarker(t *testing.T) {
	bad := Traversal{kind: KindRooted, steps: []Step{{Op: "V"}, {Op: "__"}}}
	_, err := Encode(bad)
	assert.ErrorIs(t, err, ErrInvalidAnonymousPlacement)
}

func TestEncodeComplexNestedExample(t *testing.T) {
	tr := Root().V().
		Has("price", Gt(100)).
		SideEffect(Anonymous().Property("discounted", "true")).
		Fold().
		As("discounted").
		Project("count", "products").
		By(Anonymous().Unfold().Count()).
		By(Anonymous().Unfold().Fold()).
		ToList()

	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t,
		`g.V().has('price', gt(100)).sideEffect(__.property('discounted', 'true')).fold().as('discounted').project('count', 'products').by(__.unfold().count()).by(__.unfold().fold()).toList()`,
		src)
}

func TestEncodeEscapesSingleQuote(t *testing.T) {
	tr := Root().V().Has("name", "O'Brien").Values("name")
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().has('name', 'O\'Brien').values('name')`, src)
}

func TestEncodeEscapesAlreadyEscapedQuote(t *testing.T) {
	// A literal backslash followed by a quote: the quote is preceded by one
	// (odd) backslash, so it is already escaped and must not be doubled.
	tr := Root().V().Has("name", `O\'Brien`)
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().has('name', 'O\'Brien')`, src)
}

func TestEncodeNilArgument(t *testing.T) {
	tr := Root().V().Property("parent", nil)
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().property('parent', none)`, src)
}

func TestEncodeRangeLiteral(t *testing.T) {
	tr := Root().V().Has("age", Within(Range_(20, 30)))
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().has('age', within(20..30))`, src)
}

func TestEncodeCardinalityToken(t *testing.T) {
	tr := Root().V().Property(CardinalitySingle, "name", "marko")
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().property(single, 'name', 'marko')`, src)
}

func TestEncodeFlattensSliceArgument(t *testing.T) {
	tr := Root().V().Project([]interface{}{"a", "b"}...)
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().project('a', 'b')`, src)
}

func TestEncodeFlattensUnspreadSliceArgument(t *testing.T) {
	tr := Root().V().Project([]string{"a", "b"})
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().project('a', 'b')`, src)
}

func TestEncodeVertexRefShorthand(t *testing.T) {
	tr := Root().V().To(Vertex{ID: int64(7)})
	src, err := Encode(tr)
	assert.NoError(t, err)
	assert.Equal(t, `g.V().to(V(7))`, src)
}
