// Package transport holds the per-step data handed over by an external
// Monte Carlo transport engine
package transport

import (
	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/particle"
)

// Step is one transport step inside the scoring region. All quantities are
// in internal units (see package units).
type Step struct {
	EventID              int64
	Length               float64
	EnergyDeposit        float64
	PreStepKineticEnergy float64
	Particle             particle.Kind
	Material             *material.Material
}

// Scorable reports whether the step can carry a non-zero damage
// contribution at all. Steps failing this contribute exactly zero.
func (s Step) Scorable() bool {
	return s.Length > 0 && s.EnergyDeposit >= 0 && s.Material != nil
}
