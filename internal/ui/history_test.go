package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletpack/internal/model"
)

func shapeList(n int) []model.ShapeRequest {
	shapes := make([]model.ShapeRequest, n)
	for i := range shapes {
		shapes[i] = model.ShapeRequest{Label: fmt.Sprintf("S%d", i+1), Width: i + 1, Height: i + 1, Quantity: 1}
	}
	return shapes
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, defaultMaxDepth, h.maxDepth)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()
	settings := model.DefaultSettings()

	h.Push(MakeSnapshot(nil, settings, "empty"))
	h.Push(MakeSnapshot(shapeList(1), settings, "one shape"))
	current := MakeSnapshot(shapeList(2), settings, "two shapes")

	restored, ok := h.Undo(current)
	require.True(t, ok)
	assert.Len(t, restored.Shapes, 1)
	assert.Equal(t, "one shape", restored.Label)

	require.True(t, h.CanRedo())
	redone, ok := h.Redo(restored)
	require.True(t, ok)
	assert.Len(t, redone.Shapes, 2)
	assert.True(t, h.CanUndo())
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Undo(Snapshot{})
	assert.False(t, ok)
	_, ok = h.Redo(Snapshot{})
	assert.False(t, ok)
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	settings := model.DefaultSettings()
	h.Push(MakeSnapshot(nil, settings, "a"))
	_, _ = h.Undo(MakeSnapshot(shapeList(1), settings, "b"))
	require.True(t, h.CanRedo())

	h.Push(MakeSnapshot(shapeList(3), settings, "c"))
	assert.False(t, h.CanRedo())
}

func TestMaxDepth(t *testing.T) {
	h := NewHistory()
	settings := model.DefaultSettings()
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(MakeSnapshot(shapeList(1), settings, fmt.Sprintf("s%d", i)))
	}
	assert.Len(t, h.undoStack, defaultMaxDepth)
	assert.Equal(t, "s10", h.undoStack[0].Label)
}

func TestSnapshotIsolation(t *testing.T) {
	shapes := shapeList(2)
	snap := MakeSnapshot(shapes, model.DefaultSettings(), "x")
	shapes[0].Width = 999
	assert.Equal(t, 1, snap.Shapes[0].Width)
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "a"))
	_, _ = h.Undo(Snapshot{})
	h.Push(MakeSnapshot(nil, model.DefaultSettings(), "b"))
	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
