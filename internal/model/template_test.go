package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeTemplate_CopiesShapes(t *testing.T) {
	shapes := []ShapeRequest{{Label: "Crate", Width: 4, Height: 3, Quantity: 2}}
	tmpl := NewShapeTemplate("Weekly", "Monday run", shapes, DefaultSettings())

	shapes[0].Width = 99
	assert.Equal(t, 4, tmpl.Shapes[0].Width)
	assert.Len(t, tmpl.ID, 8)
	assert.NotEmpty(t, tmpl.CreatedAt)

	p := tmpl.ToProject("From template")
	assert.Equal(t, "From template", p.Name)
	p.Shapes[0].Width = 1
	assert.Equal(t, 4, tmpl.Shapes[0].Width)
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	a := NewShapeTemplate("A", "", nil, DefaultSettings())
	store.Put(a)
	store.Put(NewShapeTemplate("B", "", nil, DefaultSettings()))

	replacement := NewShapeTemplate("A", "updated", []ShapeRequest{{Width: 1, Height: 1, Quantity: 1}}, DefaultSettings())
	store.Put(replacement)

	require.Len(t, store.Templates, 2)
	assert.Equal(t, []string{"A", "B"}, store.Names())
	found := store.FindByName("A")
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.ID, "replacing keeps the original ID")
	assert.Equal(t, "updated", found.Description)

	assert.True(t, store.Remove(a.ID))
	assert.False(t, store.Remove(a.ID))
	assert.Nil(t, store.FindByName("A"))
}
