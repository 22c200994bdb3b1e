package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletpack/internal/model"
)

func TestParseShapeList(t *testing.T) {
	result := ParseShapeList("10x20, 15X15; 5*5\n3×4\n7-2")

	assert.Empty(t, result.Errors)
	require.Len(t, result.Shapes, 5)
	assert.Equal(t, model.ShapeRequest{Label: "10x20", Width: 10, Height: 20, Quantity: 1}, result.Shapes[0])
	assert.Equal(t, 15, result.Shapes[1].Height)
	assert.Equal(t, 5, result.Shapes[2].Width)
	assert.Equal(t, 3, result.Shapes[3].Width)
	assert.Equal(t, 4, result.Shapes[3].Height)
	assert.Equal(t, 2, result.Shapes[4].Height)
}

func TestParseShapeList_LabelsAndQuantities(t *testing.T) {
	result := ParseShapeList("crate=12x8:3, 4x4@2, # comment\n2.5x1")

	assert.Empty(t, result.Errors)
	require.Len(t, result.Shapes, 3)
	assert.Equal(t, model.ShapeRequest{Label: "crate", Width: 12, Height: 8, Quantity: 3}, result.Shapes[0])
	assert.Equal(t, 2, result.Shapes[1].Quantity)
	assert.Equal(t, 3, result.Shapes[2].Width)
}

func TestParseShapeList_Errors(t *testing.T) {
	result := ParseShapeList("10x20, banana, 0x5, 4x4:0")

	assert.Len(t, result.Shapes, 1)
	assert.Len(t, result.Errors, 3)

	result = ParseShapeList("  ")
	assert.Equal(t, []string{"No shapes found"}, result.Errors)
}

func TestParseShapeList_RejectsOutOfRangeNumbers(t *testing.T) {
	result := ParseShapeList("1x1:99999999999999999999, 99999999999x2, 3x3:2")

	require.Len(t, result.Shapes, 1)
	assert.Equal(t, 2, result.Shapes[0].Quantity)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Invalid quantity")
	assert.Contains(t, result.Errors[1], "out of range")
}

func TestImport_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.txt")
	require.NoError(t, os.WriteFile(path, []byte("6x4\n4x6\n5x5\n"), 0644))

	result := Import(path)
	assert.Len(t, result.Shapes, 3)
}
