package model

// Algorithm represents the packing strategy to use.
type Algorithm string

const (
	AlgorithmGreedy  Algorithm = "greedy"  // Deterministic best-fit decreasing (fast)
	AlgorithmGenetic Algorithm = "genetic" // Population search over whole layouts (stochastic)
)

// WasteMetric selects how the greedy packer scores candidate positions.
type WasteMetric string

const (
	// WasteFootprint counts free cells inside the padded footprint. Every valid
	// candidate scores the same, so the packer behaves as first-fit in scan order.
	WasteFootprint WasteMetric = "footprint"
	// WasteNeighborhood counts free cells in a one-cell ring around the footprint,
	// favoring positions that touch walls and other shapes.
	WasteNeighborhood WasteMetric = "neighborhood"
)

// MutationKind selects the genetic search's mutation operator.
type MutationKind string

const (
	MutationNone   MutationKind = "none"
	MutationJitter MutationKind = "jitter"
)

// GeneticSettings holds the tunable parameters of the genetic search.
type GeneticSettings struct {
	PopulationSize    int          `json:"population_size"`
	Generations       int          `json:"generations"`
	TournamentSize    int          `json:"tournament_size"`
	EliteCount        int          `json:"elite_count"`        // 0 disables elitism
	PlacementAttempts int          `json:"placement_attempts"` // Random draws per shape at init
	RepairAttempts    int          `json:"repair_attempts"`    // Random draws per invalid placement
	Mutation          MutationKind `json:"mutation"`
	MutationRate      float64      `json:"mutation_rate"`  // Per-placement probability (jitter)
	MutationShift     int          `json:"mutation_shift"` // Max cells moved per axis (jitter)
}

// DefaultGeneticSettings returns the base design parameters.
func DefaultGeneticSettings() GeneticSettings {
	return GeneticSettings{
		PopulationSize:    50,
		Generations:       100,
		TournamentSize:    5,
		EliteCount:        0,
		PlacementAttempts: 100,
		RepairAttempts:    100,
		Mutation:          MutationNone,
		MutationRate:      0.1,
		MutationShift:     2,
	}
}

// PackSettings holds pallet and optimizer configuration.
type PackSettings struct {
	PalletWidth  int             `json:"pallet_width"`
	PalletHeight int             `json:"pallet_height"`
	Padding      int             `json:"padding"` // Extra cells reserved right and below each shape
	Algorithm    Algorithm       `json:"algorithm"`
	Waste        WasteMetric     `json:"waste"`
	Seed         int64           `json:"seed"`
	Genetic      GeneticSettings `json:"genetic"`
}

func DefaultSettings() PackSettings {
	return PackSettings{
		PalletWidth:  100,
		PalletHeight: 100,
		Padding:      0,
		Algorithm:    AlgorithmGreedy,
		Waste:        WasteFootprint,
		Seed:         42,
		Genetic:      DefaultGeneticSettings(),
	}
}
