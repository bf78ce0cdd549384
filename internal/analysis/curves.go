// Package analysis holds the downstream shielding-glass models: damage
// curves swept over energy, gamma and neutron attenuation, composition
// regression, constrained composition search and uncertainty propagation.
//
// Energies in this package are plain MeV and lengths plain cm unless a
// function says otherwise; the damage curves are the exception and use the
// internal unit system of the damage engines.
package analysis

import (
	"errors"
	"math"
	"sort"

	"github.com/ngamma/glassdamage/internal/damage/dpa"
	"github.com/ngamma/glassdamage/internal/damage/niel"
	"github.com/ngamma/glassdamage/internal/spectrum"
	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/transport"
	"github.com/ngamma/glassdamage/pkg/units"
	"gonum.org/v1/gonum/floats"
)

// ErrEmptyCurve is returned when a curve has no points
var ErrEmptyCurve = errors.New("curve has no points")

// Probe is the fixed step geometry used when sweeping the engines over
// energy
type Probe struct {
	Length        float64
	EnergyDeposit float64
}

// DefaultProbe is a 100 µm step depositing 0.05 MeV
var DefaultProbe = Probe{Length: 100 * units.Micrometer, EnergyDeposit: 0.05 * units.MeV}

// Point is one sample of a curve
type Point struct {
	Energy float64
	Value  float64
}

// Curve is a set of points ordered by energy
type Curve []Point

// LogGrid returns n energies spaced evenly in log10 between lo and hi
func LogGrid(lo, hi float64, n int) []float64 {
	if n < 2 || lo <= 0 || hi <= lo {
		return []float64{lo}
	}
	exps := floats.Span(make([]float64, n), math.Log10(lo), math.Log10(hi))
	for i, x := range exps {
		exps[i] = math.Pow(10, x)
	}
	return exps
}

func (p Probe) step(m *material.Material, kind particle.Kind, e float64) transport.Step {
	return transport.Step{
		Length:               p.Length,
		EnergyDeposit:        p.EnergyDeposit,
		PreStepKineticEnergy: e,
		Particle:             kind,
		Material:             m,
	}
}

// NIELCurve evaluates the NIEL engine at each energy
func NIELCurve(e *niel.Engine, m *material.Material, kind particle.Kind, energies []float64, probe Probe) Curve {
	c := make(Curve, len(energies))
	for i, en := range energies {
		c[i] = Point{Energy: en, Value: e.Compute(probe.step(m, kind, en))}
	}
	return c
}

// DPACurve evaluates the DPA engine at each energy
func DPACurve(e *dpa.Engine, m *material.Material, kind particle.Kind, energies []float64, probe Probe) Curve {
	c := make(Curve, len(energies))
	for i, en := range energies {
		c[i] = Point{Energy: en, Value: e.Compute(probe.step(m, kind, en))}
	}
	return c
}

// At interpolates the curve linearly at energy e, clamping outside the
// sampled range
func (c Curve) At(e float64) float64 {
	if len(c) == 0 {
		return 0
	}
	idx := sort.Search(len(c), func(i int) bool { return c[i].Energy >= e })
	switch {
	case idx == 0:
		return c[0].Value
	case idx == len(c):
		return c[len(c)-1].Value
	}
	lo, hi := c[idx-1], c[idx]
	if hi.Energy == lo.Energy {
		return hi.Value
	}
	t := (e - lo.Energy) / (hi.Energy - lo.Energy)
	return lo.Value + t*(hi.Value-lo.Value)
}

// SpectrumAverage folds the curve with the sampler's spectrum
func SpectrumAverage(c Curve, s *spectrum.Sampler) (float64, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCurve
	}
	return s.Average(c.At), nil
}

// FluencePoint is one run's position on the DPA-fluence plane
type FluencePoint struct {
	Fluence float64 // particles per cm2
	DPA     float64 // mean DPA per event
}

// DPAvsFluence converts an incident particle count into fluence over
// areaCM2. A non-positive area leaves the count as a relative fluence.
func DPAvsFluence(meanDPA float64, incident int64, areaCM2 float64) FluencePoint {
	f := float64(incident)
	if areaCM2 > 0 {
		f /= areaCM2
	}
	return FluencePoint{Fluence: f, DPA: meanDPA}
}
