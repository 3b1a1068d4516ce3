package gremlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name     string
	Quantity int
	InStock  bool
	unlisted string
}

func TestPropertiesFromStruct(t *testing.T) {
	w := widget{Name: "bolt", Quantity: 12, InStock: true, unlisted: "ignored"}
	tr, err := PropertiesFromStruct("widget", w)
	require.NoError(t, err)

	src, err := Encode(tr)
	require.NoError(t, err)
	assert.Equal(t, `g.addV('widget').property('name', 'bolt').property('quantity', 12).property('inStock', true)`, src)
}

func TestPropertiesFromStructAcceptsPointer(t *testing.T) {
	w := &widget{Name: "nut", Quantity: 1, InStock: false}
	tr, err := PropertiesFromStruct("widget", w)
	require.NoError(t, err)
	assert.Len(t, tr.Steps(), 4)
}

func TestPropertiesFromStructRejectsNonStruct(t *testing.T) {
	_, err := PropertiesFromStruct("widget", 42)
	assert.ErrorIs(t, err, ErrNotAStruct)
}

func TestPropertiesFromStructRejectsNilPointer(t *testing.T) {
	var w *widget
	_, err := PropertiesFromStruct("widget", w)
	assert.ErrorIs(t, err, ErrNotAStruct)
}

type unsupportedField struct {
	Data map[string]string
}

func TestPropertiesFromStructRejectsUnsupportedFieldType(t *testing.T) {
	_, err := PropertiesFromStruct("x", unsupportedField{Data: map[string]string{"a": "b"}})
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)
}
