package engine

import (
	"math/rand"

	"github.com/piwi3910/palletpack/internal/model"
)

// Mutator perturbs an offspring layout in place after crossover.
type Mutator interface {
	Mutate(l *Layout, rng *rand.Rand)
}

// NoopMutator leaves layouts untouched. It is the default operator.
type NoopMutator struct{}

func (NoopMutator) Mutate(*Layout, *rand.Rand) {}

// JitterMutator nudges placed slots. Each placed slot is picked with
// probability Rate, shifted by up to Shift cells on each axis, and flipped
// to the other orientation half of the time. A move is kept only when the
// new rectangle is in bounds and free; otherwise the slot stays put.
type JitterMutator struct {
	Rate  float64
	Shift int
}

func (m JitterMutator) Mutate(l *Layout, rng *rand.Rand) {
	if m.Rate <= 0 {
		return
	}
	for i := range l.slots {
		if !l.slots[i].placed || rng.Float64() >= m.Rate {
			continue
		}

		x, y, w, h := l.rect(i)
		nx, ny := x, y
		if m.Shift > 0 {
			nx += rng.Intn(2*m.Shift+1) - m.Shift
			ny += rng.Intn(2*m.Shift+1) - m.Shift
		}
		rotated := l.slots[i].placement.Rotated
		if rng.Intn(2) == 1 {
			rotated = !rotated
		}
		nw, nh := l.shapes[i].Dimensions(rotated)

		l.grid.Unmark(x, y, w, h)
		if l.grid.IsFree(nx, ny, nw, nh) {
			l.commit(i, nx, ny, rotated)
		} else {
			l.grid.Mark(x, y, w, h)
		}
	}
}

// NewMutator maps configured settings to a Mutator.
func NewMutator(s model.GeneticSettings) Mutator {
	if s.Mutation == model.MutationJitter {
		return JitterMutator{Rate: s.MutationRate, Shift: s.MutationShift}
	}
	return NoopMutator{}
}
