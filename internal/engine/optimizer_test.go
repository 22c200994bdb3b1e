package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletpack/internal/model"
)

func geneticTestSettings(w, h int) model.PackSettings {
	s := testSettings(w, h)
	s.Algorithm = model.AlgorithmGenetic
	s.Genetic.PopulationSize = 10
	s.Genetic.Generations = 5
	s.Genetic.TournamentSize = 3
	return s
}

func TestOptimize_Greedy(t *testing.T) {
	opt := New(testSettings(10, 10), nil)
	res, err := opt.Optimize(context.Background(), shapesOf([2]int{6, 4}, [2]int{4, 6}, [2]int{5, 5}))

	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmGreedy, res.Algorithm)
	assert.Len(t, res.Pallets, 1)
	assert.Equal(t, 3, res.PlacedCount())
}

func TestOptimize_Genetic(t *testing.T) {
	opt := New(geneticTestSettings(10, 10), nil)
	shapes := shapesOf([2]int{3, 3}, [2]int{2, 2})
	res, err := opt.Optimize(context.Background(), shapes)

	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmGenetic, res.Algorithm)
	assert.LessOrEqual(t, len(res.Pallets), 1)
	assert.Equal(t, len(shapes), res.PlacedCount()+len(res.Unplaced))
}

func TestOptimize_RejectsOversizedShape(t *testing.T) {
	for _, s := range []model.PackSettings{testSettings(10, 10), geneticTestSettings(10, 10)} {
		opt := New(s, nil)
		_, err := opt.Optimize(context.Background(), shapesOf([2]int{20, 20}))
		assert.ErrorIs(t, err, model.ErrShapeTooLarge, string(s.Algorithm))
	}
}

func TestOptimize_RejectsInvalidPallet(t *testing.T) {
	_, err := New(testSettings(0, 10), nil).Optimize(context.Background(), shapesOf([2]int{1, 1}))
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
}

func TestOptimize_InvalidGeneticConfig(t *testing.T) {
	s := geneticTestSettings(10, 10)
	s.Genetic.TournamentSize = 50
	_, err := New(s, nil).Optimize(context.Background(), shapesOf([2]int{1, 1}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOptimize_EmptyInput(t *testing.T) {
	for _, s := range []model.PackSettings{testSettings(10, 10), geneticTestSettings(10, 10)} {
		res, err := New(s, nil).Optimize(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Pallets)
		assert.Empty(t, res.Unplaced)
	}
}

func TestCompareStrategies(t *testing.T) {
	base := testSettings(10, 10)
	base.Padding = 1
	base.Genetic = geneticTestSettings(10, 10).Genetic
	shapes := shapesOf([2]int{4, 4}, [2]int{3, 3}, [2]int{2, 2})

	results := CompareStrategies(context.Background(), base, shapes, nil)

	require.Len(t, results, 4)
	assert.Equal(t, "Current Settings", results[0].Scenario.Name)
	assert.Equal(t, model.AlgorithmGenetic, results[1].Scenario.Settings.Algorithm)
	assert.Equal(t, model.WasteNeighborhood, results[2].Scenario.Settings.Waste)
	assert.Equal(t, 0, results[3].Scenario.Settings.Padding)
	for _, r := range results {
		require.NoError(t, r.Err, r.Scenario.Name)
		assert.Equal(t, len(shapes), r.PlacedCount+r.UnplacedCount, r.Scenario.Name)
		assert.GreaterOrEqual(t, r.WastePercent, 0.0)
	}
	assert.Equal(t, 1, results[0].PalletsUsed)
}

func TestCompareScenarios_ReportsErrors(t *testing.T) {
	scenarios := []ComparisonScenario{{Name: "bad", Settings: testSettings(-1, 5)}}
	results := CompareScenarios(context.Background(), scenarios, shapesOf([2]int{1, 1}), nil)

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, model.ErrInvalidDimensions)
}
