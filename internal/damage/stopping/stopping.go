// Package stopping provides mass stopping-power estimates used by the
// SRIM-style DPA model and the charged-particle NIEL branch.
//
// The Band model is a coarse proxy (energy bands for neutrons, a logarithmic
// law for protons, constants elsewhere), not a Bethe-Bloch or evaluated
// nuclear-data calculation. Its band edges and coefficients are kept fixed
// so results reproduce earlier runs; a better model can be plugged in
// through the Model interface.
//
// The proton log law is clamped at 0 at or below 1 MeV, where the reference
// numerics go negative; this departure keeps stopping powers and NIEL
// non-negative.
package stopping

import (
	"math"

	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/units"
)

// Model computes mass stopping powers in MeV/(g/cm2) expressed in internal
// units (multiply by density and length to get an energy)
type Model interface {
	Nuclear(energy float64, kind particle.Kind, m *material.Material) float64
	Electronic(energy float64, kind particle.Kind, m *material.Material) float64
}

// Neutron energy band edges
const (
	ThermalEdge = 1 * units.KeV
	FastEdge    = 1 * units.MeV
)

// Band is the default piecewise approximation. It ignores the material.
type Band struct{}

var _ Model = Band{}

// Nuclear returns the nuclear (elastic) stopping power
func (Band) Nuclear(energy float64, kind particle.Kind, _ *material.Material) float64 {
	switch kind {
	case particle.Neutron:
		switch {
		case energy < ThermalEdge:
			return 1.0e-3 * units.MeVPerArealDensity
		case energy < FastEdge:
			return 1.0e-2 * units.MeVPerArealDensity
		default:
			return 1.0e-1 * units.MeVPerArealDensity
		}
	case particle.Proton:
		return logLaw(0.1, energy)
	case particle.Photon:
		return 1.0e-4 * units.MeVPerArealDensity
	default:
		return 1.0e-2 * units.MeVPerArealDensity
	}
}

// Electronic returns the electronic (ionising) stopping power
func (Band) Electronic(energy float64, kind particle.Kind, _ *material.Material) float64 {
	switch kind {
	case particle.Neutron:
		return 1.0e-4 * units.MeVPerArealDensity
	case particle.Proton:
		return logLaw(1.0, energy)
	case particle.Photon:
		return 1.0e-2 * units.MeVPerArealDensity
	default:
		return 1.0e-1 * units.MeVPerArealDensity
	}
}

// logLaw returns coeff * ln(E / 1 MeV) MeV/(g/cm2), clamped at zero. The
// logarithm goes negative below 1 MeV and diverges at E = 0.
func logLaw(coeff, energy float64) float64 {
	if energy <= FastEdge {
		return 0
	}
	return coeff * units.MeVPerArealDensity * math.Log(energy/units.MeV)
}
