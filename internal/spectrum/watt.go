// Package spectrum provides neutron source spectra for spectrum-averaged
// damage estimates
package spectrum

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/ngamma/glassdamage/pkg/units"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// FallbackEnergy is returned by a sampler without a usable grid
const FallbackEnergy = 2.1 * units.MeV

// Default sampling grid, avoiding the singular point at E = 0
const (
	GridMin  = 1e-6 * units.MeV
	GridMax  = 12 * units.MeV
	GridStep = 0.05 * units.MeV
)

// Watt is the fission spectrum exp(-E/A)·sinh(sqrt(B·E)) with A in MeV and
// B in 1/MeV
type Watt struct {
	A float64
	B float64
}

// Cf252 returns the Watt parameters of spontaneous Cf-252 fission
func Cf252() Watt {
	return Watt{A: 1.025, B: 2.926}
}

// PDF returns the unnormalised density at energy e
func (w Watt) PDF(e float64) float64 {
	mev := e / units.MeV
	return math.Exp(-mev/w.A) * math.Sinh(math.Sqrt(math.Max(0, w.B*mev)))
}

// Sampler inverts the tabulated CDF of a spectrum
type Sampler struct {
	watt     Watt
	energies []float64
	cdf      []float64
}

// NewSampler tabulates w on [emin, emax] with spacing de. The last grid
// point may exceed emax by less than de/2.
func NewSampler(w Watt, emin, emax, de float64) *Sampler {
	if de <= 0 || emax < emin {
		return &Sampler{watt: w}
	}

	n := int(math.Floor((emax-emin)/de+0.5)) + 1
	energies := make([]float64, n)
	for i := range energies {
		energies[i] = emin + float64(i)*de
	}

	pdf := make([]float64, n)
	for i, e := range energies {
		pdf[i] = w.PDF(e)
	}
	cdf := floats.CumSum(make([]float64, n), pdf)
	if norm := cdf[n-1]; norm > 0 {
		floats.Scale(1/norm, cdf)
	}

	return &Sampler{watt: w, energies: energies, cdf: cdf}
}

// NewCf252Sampler returns a sampler on the default grid
func NewCf252Sampler() *Sampler {
	return NewSampler(Cf252(), GridMin, GridMax, GridStep)
}

// Sample maps a uniform variate u in [0,1) to an energy by linear
// interpolation of the CDF
func (s *Sampler) Sample(u float64) float64 {
	if len(s.energies) == 0 {
		return FallbackEnergy
	}

	idx := sort.SearchFloat64s(s.cdf, u)
	switch {
	case idx == 0:
		return s.energies[0]
	case idx == len(s.cdf):
		return s.energies[len(s.energies)-1]
	}

	c1, c2 := s.cdf[idx-1], s.cdf[idx]
	e1, e2 := s.energies[idx-1], s.energies[idx]
	var t float64
	if c2 > c1 {
		t = (u - c1) / (c2 - c1)
	}
	return e1 + t*(e2-e1)
}

// Draw returns n energies sampled with a deterministic generator
func (s *Sampler) Draw(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Sample(rng.Float64())
	}
	return out
}

// Grid returns copies of the tabulated energies and normalised CDF
func (s *Sampler) Grid() (energies, cdf []float64) {
	return append([]float64(nil), s.energies...), append([]float64(nil), s.cdf...)
}

// Mean returns the spectrum-weighted mean energy over the grid
func (s *Sampler) Mean() float64 {
	return s.Average(func(e float64) float64 { return e })
}

// Average folds f with the spectrum over the grid:
// ∫f(E)·w(E)dE / ∫w(E)dE. A sampler without a grid evaluates f at
// FallbackEnergy.
func (s *Sampler) Average(f func(e float64) float64) float64 {
	if len(s.energies) < 2 {
		return f(FallbackEnergy)
	}
	pdf := make([]float64, len(s.energies))
	fpdf := make([]float64, len(s.energies))
	for i, e := range s.energies {
		pdf[i] = s.watt.PDF(e)
		fpdf[i] = f(e) * pdf[i]
	}
	norm := integrate.Trapezoidal(s.energies, pdf)
	if norm <= 0 {
		return 0
	}
	return integrate.Trapezoidal(s.energies, fpdf) / norm
}
