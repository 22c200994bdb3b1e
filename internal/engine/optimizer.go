package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/model"
)

// Optimizer runs the configured packing strategy.
type Optimizer struct {
	Settings model.PackSettings
	logger   *zap.Logger
}

func New(settings model.PackSettings, logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{Settings: settings, logger: logger}
}

// Optimize validates the input and packs it with the configured algorithm.
// The genetic strategy fills a single pallet; its result is presented as a
// one-pallet PackResult. An empty shape list yields an empty result.
func (o *Optimizer) Optimize(ctx context.Context, shapes []model.Shape) (model.PackResult, error) {
	if err := model.ValidateSettings(o.Settings, shapes); err != nil {
		return model.PackResult{}, fmt.Errorf("validate input: %w", err)
	}

	switch o.Settings.Algorithm {
	case model.AlgorithmGenetic:
		res, err := o.Evolve(ctx, shapes)
		if err != nil {
			return model.PackResult{}, err
		}
		return res.AsPackResult(), nil
	default:
		return o.Pack(shapes), nil
	}
}

// Pack runs the greedy packer without validating input.
func (o *Optimizer) Pack(shapes []model.Shape) model.PackResult {
	if len(shapes) == 0 {
		return model.PackResult{Algorithm: model.AlgorithmGreedy}
	}
	res := NewPacker(o.Settings, o.logger).Pack(shapes)
	o.logger.Info("greedy packing finished",
		zap.Int("shapes", len(shapes)),
		zap.Int("pallets", len(res.Pallets)),
		zap.Int("unplaced", len(res.Unplaced)),
		zap.Float64("efficiency", res.TotalEfficiency()),
	)
	return res
}

// Evolve runs the genetic search without validating input. A cancelled
// context still returns the best layout found so far.
func (o *Optimizer) Evolve(ctx context.Context, shapes []model.Shape) (model.GeneticResult, error) {
	res, err := OptimizeGenetic(ctx, o.Settings, shapes, o.logger)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return model.GeneticResult{}, fmt.Errorf("genetic search: %w", err)
	}
	o.logger.Info("genetic search finished",
		zap.Int("shapes", len(shapes)),
		zap.Int("generations", res.Generations),
		zap.Int("fitness", res.Fitness),
		zap.Int("unplaced", len(res.Unplaced)),
	)
	return res, nil
}
