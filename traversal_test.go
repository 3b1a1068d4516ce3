package gremlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraversalImmutability(t *testing.T) {
	base := Root().V().HasLabel("person")
	a := base.Has("name", "marko")
	b := base.Has("name", "vadas")

	assert.Len(t, base.Steps(), 2)
	assert.Len(t, a.Steps(), 3)
	assert.Len(t, b.Steps(), 3)
	assert.Equal(t, "marko", a.Steps()[2].Args[1])
	assert.Equal(t, "vadas", b.Steps()[2].Args[1])
}

func TestTraversalSharedPrefixNoAliasing(t *testing.T) {
	base := Root().V()
	siblings := make([]Traversal, 5)
	for i := range siblings {
		siblings[i] = base.HasLabel("person").Property("idx", i)
	}
	for i, s := range siblings {
		assert.Equal(t, i, s.Steps()[2].Args[1])
	}
}

func TestAnonymousSeeded(t *testing.T) {
	anon := Anonymous()
	assert.False(t, anon.IsRooted())
	assert.Equal(t, "__", anon.Steps()[0].Op)
}

func TestNamespaceSugarDefaults(t *testing.T) {
	t1 := Root().AddV("widget").AddNamespace()
	steps := t1.Steps()
	assert.Equal(t, "property", steps[1].Op)
	assert.Equal(t, []interface{}{DefaultNamespaceProperty, DefaultNamespace}, steps[1].Args)
}
