package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletpack/internal/model"
)

func TestRenderPNG(t *testing.T) {
	pallet := buildTestResult().Pallets[0]
	var buf bytes.Buffer

	require.NoError(t, RenderPNG(&buf, pallet, 2, 4))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120*4+2*pngMargin, img.Bounds().Dx())
	assert.Equal(t, 80*4+2*pngMargin, img.Bounds().Dy())

	// Inside the first placement, away from the centered number
	r, g, b, _ := img.At(pngMargin+4, pngMargin+4).RGBA()
	want := PlacementColor(0)
	assert.Equal(t, uint32(want.R), r>>8)
	assert.Equal(t, uint32(want.G), g>>8)
	assert.Equal(t, uint32(want.B), b>>8)
}

func TestSavePNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := SavePNGs(dir, "layout", buildTestResult(), 2)

	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "layout_2.png"), paths[1])
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	_, err = SavePNGs(dir, "x", model.PackResult{}, 1)
	assert.Error(t, err)
}

func TestDefaultScale(t *testing.T) {
	assert.InDelta(t, 5.0, DefaultScale(120, 80, 600), 1e-9)
	assert.InDelta(t, 1.0, DefaultScale(2000, 10, 600), 1e-9)
	assert.InDelta(t, 1.0, DefaultScale(0, 0, 600), 1e-9)
}

func TestRenderCharts(t *testing.T) {
	history := []model.GenerationStats{
		{Generation: 0, Best: 40, Mean: 30.5, StdDev: 4},
		{Generation: 1, Best: 44, Mean: 35, StdDev: 3},
	}
	var buf bytes.Buffer

	require.NoError(t, RenderCharts(&buf, buildTestResult(), history))

	html := buf.String()
	assert.True(t, strings.Contains(html, "Pallet Utilization"))
	assert.True(t, strings.Contains(html, "Fitness per Generation"))
}

func TestExportUtilizationChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")

	require.NoError(t, ExportUtilizationChart(path, buildTestResult(), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Pallet 2")

	assert.Error(t, ExportUtilizationChart(path, model.PackResult{}, nil))
}

func TestPlotFitnessHistory(t *testing.T) {
	history := []model.GenerationStats{
		{Generation: 0, Best: 40, Mean: 30, StdDev: 5},
		{Generation: 1, Best: 45, Mean: 36, StdDev: 4},
		{Generation: 2, Best: 47, Mean: 41, StdDev: 2},
	}
	path := filepath.Join(t.TempDir(), "fitness.png")

	require.NoError(t, PlotFitnessHistory(path, history))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	var buf bytes.Buffer
	require.NoError(t, WriteFitnessPlot(&buf, history))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)

	assert.Error(t, PlotFitnessHistory(path, nil))
}
