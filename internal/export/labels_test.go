package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletpack/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, buildTestResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	assert.Error(t, ExportLabels(path, model.PackResult{}))
}

func TestExportLabels_MultiplePages(t *testing.T) {
	shape := model.Shape{ID: "x", Label: "Carton with a rather long descriptive name", Width: 2, Height: 3}
	pallet := model.PalletResult{Index: 1, Width: 100, Height: 100}
	for i := 0; i < 45; i++ {
		pallet.Placements = append(pallet.Placements, model.Placement{ShapeIndex: i, Shape: shape, X: i * 2})
	}
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, model.PackResult{Pallets: []model.PalletResult{pallet}}))
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResult())

	require.Len(t, labels, 4)
	assert.Equal(t, LabelInfo{
		ShapeID: "s1", ShapeLabel: "Crate", Width: 40, Height: 30,
		PalletIndex: 1, Position: 1, X: 0, Y: 0,
	}, labels[0])
	assert.Equal(t, "10x50", labels[2].ShapeLabel, "unlabeled shapes use their size")
	assert.True(t, labels[2].Rotated)
	assert.Equal(t, 2, labels[3].PalletIndex)
	assert.Equal(t, 1, labels[3].Position)
}

func TestLabelInfo_JSON(t *testing.T) {
	data, err := json.Marshal(CollectLabelInfos(buildTestResult())[1])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"id", "label", "width", "height", "pallet", "position", "rotated", "x", "y"} {
		assert.Contains(t, decoded, key)
	}
}
