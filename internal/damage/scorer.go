// Package damage combines the DPA and NIEL engines into a single per-step
// scorer handed to the transport host
package damage

import (
	"github.com/ngamma/glassdamage/internal/damage/dpa"
	"github.com/ngamma/glassdamage/internal/damage/lindhard"
	"github.com/ngamma/glassdamage/internal/damage/niel"
	"github.com/ngamma/glassdamage/internal/damage/stopping"
	"github.com/ngamma/glassdamage/internal/damage/threshold"
	"github.com/ngamma/glassdamage/pkg/transport"
)

// Contribution is what one step adds to the event sums
type Contribution struct {
	Edep float64
	DPA  float64
	NIEL float64
}

// Add returns c + o
func (c Contribution) Add(o Contribution) Contribution {
	return Contribution{Edep: c.Edep + o.Edep, DPA: c.DPA + o.DPA, NIEL: c.NIEL + o.NIEL}
}

// ScorerConfig is the resolved configuration of a Scorer. Zero values select
// NRT, an empty threshold table, the built-in policies, band stopping powers
// and the default Lindhard partition.
type ScorerConfig struct {
	Model      dpa.Model
	Table      threshold.Table
	NRTPolicy  *threshold.Policy
	SRIMPolicy *threshold.Policy
	Stopping   stopping.Model
	Partition  *lindhard.Partition
}

// Scorer is immutable and safe for concurrent use
type Scorer struct {
	dpa  *dpa.Engine
	niel *niel.Engine
}

// NewScorer builds both engines from cfg
func NewScorer(cfg ScorerConfig) *Scorer {
	partition := lindhard.Default()
	if cfg.Partition != nil {
		partition = *cfg.Partition
	}

	return &Scorer{
		dpa: dpa.NewEngine(cfg.Model, dpa.Deps{
			Table:      cfg.Table,
			NRTPolicy:  cfg.NRTPolicy,
			SRIMPolicy: cfg.SRIMPolicy,
			Stopping:   cfg.Stopping,
		}),
		niel: niel.NewEngine(cfg.Stopping, partition),
	}
}

// Model returns the DPA model in use
func (s *Scorer) Model() dpa.Model {
	return s.dpa.Model()
}

// DPA returns the underlying DPA engine
func (s *Scorer) DPA() *dpa.Engine {
	return s.dpa
}

// NIEL returns the underlying NIEL engine
func (s *Scorer) NIEL() *niel.Engine {
	return s.niel
}

// Score returns the damage contribution of step. The energy deposit always
// passes through; steps that cannot be scored carry no damage.
func (s *Scorer) Score(step transport.Step) Contribution {
	if !step.Scorable() {
		return Contribution{Edep: step.EnergyDeposit}
	}
	return Contribution{
		Edep: step.EnergyDeposit,
		DPA:  s.dpa.Compute(step),
		NIEL: s.niel.Compute(step),
	}
}
