package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/piwi3910/palletpack/internal/model"
)

// ErrInvalidConfig is returned for genetic parameters that cannot run.
var ErrInvalidConfig = errors.New("invalid genetic configuration")

// GeneticConfig holds parameters for the genetic search.
type GeneticConfig struct {
	PopulationSize    int
	Generations       int
	TournamentSize    int
	EliteCount        int
	PlacementAttempts int
	RepairAttempts    int
	Mutator           Mutator
}

// DefaultGeneticConfig returns the base design parameters: no elitism and a
// mutation hook that does nothing.
func DefaultGeneticConfig() GeneticConfig {
	return NewGeneticConfig(model.DefaultGeneticSettings())
}

// NewGeneticConfig converts persisted settings into a runnable config.
func NewGeneticConfig(s model.GeneticSettings) GeneticConfig {
	return GeneticConfig{
		PopulationSize:    s.PopulationSize,
		Generations:       s.Generations,
		TournamentSize:    s.TournamentSize,
		EliteCount:        s.EliteCount,
		PlacementAttempts: s.PlacementAttempts,
		RepairAttempts:    s.RepairAttempts,
		Mutator:           NewMutator(s),
	}
}

// Validate rejects configurations the search cannot run with.
func (c GeneticConfig) Validate() error {
	switch {
	case c.PopulationSize <= 0:
		return fmt.Errorf("%w: population size %d must be positive", ErrInvalidConfig, c.PopulationSize)
	case c.TournamentSize <= 0 || c.TournamentSize > c.PopulationSize:
		return fmt.Errorf("%w: tournament size %d must be in [1, %d]", ErrInvalidConfig, c.TournamentSize, c.PopulationSize)
	case c.Generations < 0:
		return fmt.Errorf("%w: generations %d must not be negative", ErrInvalidConfig, c.Generations)
	case c.EliteCount < 0 || c.EliteCount > c.PopulationSize:
		return fmt.Errorf("%w: elite count %d must be in [0, %d]", ErrInvalidConfig, c.EliteCount, c.PopulationSize)
	case c.PlacementAttempts < 0 || c.RepairAttempts < 0:
		return fmt.Errorf("%w: attempt budgets must not be negative", ErrInvalidConfig)
	}
	return nil
}

// State is the lifecycle phase of a GeneticOptimizer.
type State int

const (
	StateUninitialized State = iota
	StatePopulated
	StateEvaluated
	StateSelected
	StateRecombined
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StatePopulated:
		return "Populated"
	case StateEvaluated:
		return "Evaluated"
	case StateSelected:
		return "Selected"
	case StateRecombined:
		return "Recombined"
	case StateTerminated:
		return "Terminated"
	default:
		return "Uninitialized"
	}
}

// GeneticOptimizer evolves a population of layouts for a single pallet.
// All randomness comes from the rng passed in, so a fixed seed reproduces
// a run exactly.
type GeneticOptimizer struct {
	width      int
	height     int
	shapes     []model.Shape
	config     GeneticConfig
	rng        *rand.Rand
	logger     *zap.Logger
	state      State
	generation int
	population []*Layout
	fitness    []int
	history    []model.GenerationStats
}

// NewGeneticOptimizer creates an optimizer. It fails with ErrInvalidConfig for
// unusable parameters or a nil random source.
func NewGeneticOptimizer(width, height int, shapes []model.Shape, config GeneticConfig, rng *rand.Rand, logger *zap.Logger) (*GeneticOptimizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	if config.Mutator == nil {
		config.Mutator = NoopMutator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeneticOptimizer{
		width:  width,
		height: height,
		shapes: shapes,
		config: config,
		rng:    rng,
		logger: logger,
	}, nil
}

// State returns the current lifecycle phase.
func (g *GeneticOptimizer) State() State { return g.state }

// Generation returns how many generations have been completed.
func (g *GeneticOptimizer) Generation() int { return g.generation }

// Initialize creates the initial random population.
func (g *GeneticOptimizer) Initialize() {
	g.population = make([]*Layout, g.config.PopulationSize)
	for i := range g.population {
		l := NewLayout(g.width, g.height, g.shapes)
		l.RandomPlacement(g.rng, g.config.PlacementAttempts)
		g.population[i] = l
	}
	g.fitness = nil
	g.generation = 0
	g.history = nil
	g.state = StatePopulated
}

// evaluate scores the whole population and records its statistics.
func (g *GeneticOptimizer) evaluate() {
	g.fitness = make([]int, len(g.population))
	values := make([]float64, len(g.population))
	best := 0
	for i, l := range g.population {
		f := l.Fitness()
		g.fitness[i] = f
		values[i] = float64(f)
		if f > best {
			best = f
		}
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) < 2 || math.IsNaN(std) {
		std = 0
	}
	stats := model.GenerationStats{
		Generation: g.generation,
		Best:       best,
		Mean:       mean,
		StdDev:     std,
	}
	g.history = append(g.history, stats)
	g.state = StateEvaluated

	g.logger.Debug("generation evaluated",
		zap.Int("generation", stats.Generation),
		zap.Int("best", stats.Best),
		zap.Float64("mean", stats.Mean),
		zap.Float64("stddev", stats.StdDev),
	)
}

// tournamentSelect samples TournamentSize distinct individuals and returns
// the fittest. The earliest sampled individual wins ties.
func (g *GeneticOptimizer) tournamentSelect() *Layout {
	sample := g.rng.Perm(len(g.population))[:g.config.TournamentSize]
	best := sample[0]
	for _, idx := range sample[1:] {
		if g.fitness[idx] > g.fitness[best] {
			best = idx
		}
	}
	return g.population[best]
}

// splice builds an offspring from a copy of parent1 whose slots from a random
// point in [1, n-1] onward are replaced by parent2's. The offspring has the
// same number of slots as its parents and a freshly rebuilt grid.
func (g *GeneticOptimizer) splice(parent1, parent2 *Layout) *Layout {
	child := parent1.clone()
	n := len(child.slots)
	if n < 2 {
		return child
	}
	point := g.rng.Intn(n-1) + 1
	copy(child.slots[point:], parent2.slots[point:])
	child.rebuild()
	return child
}

// crossover splices two parents and repairs the offspring.
func (g *GeneticOptimizer) crossover(parent1, parent2 *Layout) *Layout {
	child := g.splice(parent1, parent2)
	child.Repair(g.rng, g.config.RepairAttempts)
	return child
}

// step replaces the population with one generation of offspring.
func (g *GeneticOptimizer) step() {
	next := make([]*Layout, 0, g.config.PopulationSize)

	if g.config.EliteCount > 0 {
		order := make([]int, len(g.population))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return g.fitness[order[i]] > g.fitness[order[j]]
		})
		for _, idx := range order[:g.config.EliteCount] {
			next = append(next, g.population[idx].clone())
		}
	}

	for len(next) < g.config.PopulationSize {
		parent1 := g.tournamentSelect()
		parent2 := g.tournamentSelect()
		g.state = StateSelected

		child := g.crossover(parent1, parent2)
		g.config.Mutator.Mutate(child, g.rng)
		g.state = StateRecombined

		next = append(next, child)
	}

	g.population = next
	g.generation++
}

// Run evolves the population for the configured number of generations and
// returns the best layout of the final population. The context is checked
// between generations; when it is done, Run returns the best layout so far
// together with the context's error. An empty shape list returns an empty
// result without evolving.
func (g *GeneticOptimizer) Run(ctx context.Context) (model.GeneticResult, error) {
	if len(g.shapes) == 0 {
		g.state = StateTerminated
		return model.GeneticResult{Width: g.width, Height: g.height}, nil
	}

	g.Initialize()
	g.evaluate()

	var err error
	for g.generation < g.config.Generations {
		if err = ctx.Err(); err != nil {
			g.logger.Info("genetic search stopped early",
				zap.Int("generation", g.generation),
				zap.Error(err),
			)
			break
		}
		g.step()
		g.evaluate()
	}

	g.state = StateTerminated
	res := g.result()
	res.Interrupted = err != nil
	return res, err
}

// Best returns the fittest layout of the current population and its fitness.
// The first individual wins ties.
func (g *GeneticOptimizer) Best() (*Layout, int) {
	if len(g.population) == 0 {
		return nil, 0
	}
	if len(g.fitness) != len(g.population) {
		g.evaluate()
	}
	best := 0
	for i, f := range g.fitness {
		if f > g.fitness[best] {
			best = i
		}
	}
	return g.population[best], g.fitness[best]
}

func (g *GeneticOptimizer) result() model.GeneticResult {
	best, fitness := g.Best()
	res := model.GeneticResult{
		Width:       g.width,
		Height:      g.height,
		Fitness:     fitness,
		Generations: g.generation,
		History:     g.history,
	}
	if best != nil {
		res.Placements = best.Placements()
		res.Unplaced = best.Unplaced()
	}
	return res
}

// OptimizeGenetic runs the genetic search for the pallet in settings, seeding
// the random source from settings.Seed.
func OptimizeGenetic(ctx context.Context, settings model.PackSettings, shapes []model.Shape, logger *zap.Logger) (model.GeneticResult, error) {
	rng := rand.New(rand.NewSource(settings.Seed))
	ga, err := NewGeneticOptimizer(settings.PalletWidth, settings.PalletHeight, shapes, NewGeneticConfig(settings.Genetic), rng, logger)
	if err != nil {
		return model.GeneticResult{}, err
	}
	return ga.Run(ctx)
}
