package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	PalletsUsed   int
	PlacedCount   int
	WastePercent  float64
	UnplacedCount int
	Err           error
}

// CompareScenarios packs the same shapes under each scenario and returns the
// results in scenario order.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, shapes []model.Shape, logger *zap.Logger) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings, logger)
		result, err := opt.Optimize(ctx, shapes)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		// Genetic layouts never spill, so shapes it leaves out count as unplaced
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PalletsUsed:   len(result.Pallets),
			PlacedCount:   result.PlacedCount(),
			WastePercent:  100.0 - result.TotalEfficiency(),
			UnplacedCount: len(result.Unplaced),
		})
	}

	return results
}

// CompareStrategies runs the greedy packer and the genetic search on the same
// input.
func CompareStrategies(ctx context.Context, base model.PackSettings, shapes []model.Shape, logger *zap.Logger) []ComparisonResult {
	return CompareScenarios(ctx, BuildDefaultScenarios(base), shapes, logger)
}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings.
func BuildDefaultScenarios(base model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	alt := base
	if base.Algorithm == model.AlgorithmGenetic {
		alt.Algorithm = model.AlgorithmGreedy
		scenarios = append(scenarios, ComparisonScenario{Name: "Greedy", Settings: alt})
	} else {
		alt.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{Name: "Genetic", Settings: alt})
	}

	if base.Algorithm != model.AlgorithmGenetic && base.Waste != model.WasteNeighborhood {
		tight := base
		tight.Waste = model.WasteNeighborhood
		scenarios = append(scenarios, ComparisonScenario{Name: "Greedy (neighborhood waste)", Settings: tight})
	}

	if base.Padding > 0 {
		noPad := base
		noPad.Padding = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("No Padding (was %d)", base.Padding),
			Settings: noPad,
		})
	}

	return scenarios
}
