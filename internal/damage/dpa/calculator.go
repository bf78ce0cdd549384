// Package dpa computes displacements-per-atom increments for single
// transport steps. Two estimators are available (NRT and SRIM-style); the
// Engine dispatches to the one selected at construction time.
package dpa

import (
	"github.com/ngamma/glassdamage/internal/damage/recoil"
	"github.com/ngamma/glassdamage/internal/damage/stopping"
	"github.com/ngamma/glassdamage/internal/damage/threshold"
	"github.com/ngamma/glassdamage/pkg/transport"
	"github.com/ngamma/glassdamage/pkg/units"
)

// EffectiveThresholdFactor converts Ed into the NRT effective threshold Td
const EffectiveThresholdFactor = 0.8

// NRTEfficiency is the displacement efficiency κ in ν = κ·T/(2·Ed)
const NRTEfficiency = 0.8

// ElectronicWeight scales the electronic stopping contribution of the
// SRIM-style estimate
const ElectronicWeight = 0.1

// CrossSection is the fixed tube cross-section that turns a step length into
// the scored volume of the NRT estimate
const CrossSection = 1 * units.Centimeter2

// Result carries the intermediate quantities of one DPA computation. Fields
// that a model does not use are left zero.
type Result struct {
	Ed  float64 // material-average displacement threshold
	Td  float64 // effective threshold, NRT only
	T   float64 // recoil energy, NRT only
	Nu  float64 // displacement count, NRT only
	N   float64 // atom number density
	V   float64 // scored volume, NRT only
	Sn  float64 // nuclear stopping, SRIM only
	Se  float64 // electronic stopping, SRIM only
	DPA float64
}

// Calculator computes the DPA increment of a step
type Calculator interface {
	Compute(step transport.Step) Result
}

// NRTCalculator implements the NRT estimate
type NRTCalculator struct {
	resolver *threshold.Resolver
}

// NewNRTCalculator uses resolver for the material-average Ed
func NewNRTCalculator(resolver *threshold.Resolver) *NRTCalculator {
	return &NRTCalculator{resolver: resolver}
}

// Compute returns ν·edep/(2·Ed·N·V), or a zero Result when the step has no
// length, no deposit or no material
func (c *NRTCalculator) Compute(step transport.Step) Result {
	if step.EnergyDeposit <= 0 || step.Length <= 0 || step.Material == nil {
		return Result{}
	}

	var r Result
	m := step.Material
	r.Ed = c.resolver.MaterialAverageEd(m)
	r.Td = EffectiveThresholdFactor * r.Ed
	r.N = m.AtomDensity()
	if r.Ed <= 0 || r.N <= 0 {
		return r
	}

	r.T = recoil.Energy(step.PreStepKineticEnergy, step.Particle, m.AverageA())
	r.Nu = NRTEfficiency * r.T / (2 * r.Ed)
	r.V = step.Length * CrossSection
	r.DPA = r.Nu * step.EnergyDeposit / (2 * r.Ed * r.N * r.V)
	return r
}

// SRIMCalculator implements the stopping-power based estimate
type SRIMCalculator struct {
	resolver *threshold.Resolver
	stopping stopping.Model
}

// NewSRIMCalculator uses resolver for Ed and model for stopping powers
func NewSRIMCalculator(resolver *threshold.Resolver, model stopping.Model) *SRIMCalculator {
	return &SRIMCalculator{resolver: resolver, stopping: model}
}

// Compute returns Sn·L/(2·Ed·N) + 0.1·Se·L/(2·Ed·N)
func (c *SRIMCalculator) Compute(step transport.Step) Result {
	if step.EnergyDeposit <= 0 || step.Length <= 0 || step.Material == nil {
		return Result{}
	}

	var r Result
	m := step.Material
	r.Ed = c.resolver.MaterialAverageEd(m)
	r.N = m.AtomDensity()
	if r.Ed <= 0 || r.N <= 0 {
		return r
	}

	e := step.PreStepKineticEnergy
	r.Sn = c.stopping.Nuclear(e, step.Particle, m)
	r.Se = c.stopping.Electronic(e, step.Particle, m)

	nuclear := r.Sn * step.Length / (2 * r.Ed * r.N)
	electronic := ElectronicWeight * r.Se * step.Length / (2 * r.Ed * r.N)
	r.DPA = nuclear + electronic
	return r
}
