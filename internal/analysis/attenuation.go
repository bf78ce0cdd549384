package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Neutron absorber number density of the reference glass, per cm3
const AbsorberDensity = 2e22

// Barn in cm2
const Barn = 1e-24

// Weights of the composite transmission
const (
	GammaWeight   = 0.6
	NeutronWeight = 0.4
)

// Buildup coefficients of B = 1 + α·μx·exp(β·μx)
const (
	BuildupAlpha = 0.5
	BuildupBeta  = 0.1
)

// ErrLengthMismatch is returned when paired inputs differ in length
var ErrLengthMismatch = errors.New("input lengths differ")

// PowerSum is μ(E) = A·E^B + C·E^D
type PowerSum struct {
	A, B, C, D float64
}

// Eval returns the model value at e
func (p PowerSum) Eval(e float64) float64 {
	return p.A*math.Pow(e, p.B) + p.C*math.Pow(e, p.D)
}

// ReferenceGammaMu is the reference glass attenuation model
var ReferenceGammaMu = PowerSum{A: 0.15, B: -0.7, C: 0.02, D: -0.1}

// GammaMu returns the linear attenuation coefficient in 1/cm for a photon
// of e MeV
func GammaMu(e float64) float64 {
	return ReferenceGammaMu.Eval(e)
}

// FitPowerSum fits a PowerSum to (e, mu) by least squares with a
// Nelder-Mead search started at x0
func FitPowerSum(e, mu []float64, x0 PowerSum) (PowerSum, float64, error) {
	if len(e) != len(mu) {
		return PowerSum{}, 0, ErrLengthMismatch
	}
	if len(e) < 4 {
		return PowerSum{}, 0, fmt.Errorf("need at least 4 points, got %d", len(e))
	}

	sse := func(x []float64) float64 {
		p := PowerSum{A: x[0], B: x[1], C: x[2], D: x[3]}
		var s float64
		for i := range e {
			d := p.Eval(e[i]) - mu[i]
			s += d * d
		}
		return s
	}

	res, err := optimize.Minimize(optimize.Problem{Func: sse}, []float64{x0.A, x0.B, x0.C, x0.D}, nil, &optimize.NelderMead{})
	if err != nil {
		return PowerSum{}, 0, fmt.Errorf("fitting attenuation model: %w", err)
	}
	return PowerSum{A: res.X[0], B: res.X[1], C: res.X[2], D: res.X[3]}, res.F, nil
}

// Neutron cross-section region edges in MeV
const (
	ThermalEnergy = 2.53e-8
	EpithermalMin = 1e-6
	FastMin       = 1e-3
)

// NeutronSigma returns the absorption cross-section in barn for a neutron
// of e MeV: 1/v below 1 eV, a decaying resonance term up to 1 keV, and a
// power law above
func NeutronSigma(e float64) float64 {
	switch {
	case e <= 0:
		return 0
	case e < EpithermalMin:
		return 100 / math.Sqrt(e/ThermalEnergy)
	case e < FastMin:
		return 50 + 20*math.Exp(-(e-EpithermalMin)/1e-5)
	default:
		return 5 * math.Pow(e, -0.3)
	}
}

// compositeSigma is the two-region cross-section used by the composite
// transmission map, which has no resonance term
func compositeSigma(e float64) float64 {
	if e <= 0 {
		return 0
	}
	if e < EpithermalMin {
		return 100 / math.Sqrt(e/ThermalEnergy)
	}
	return 5 * math.Pow(e, -0.3)
}

// Transmission returns exp(-μx)
func Transmission(mu, x float64) float64 {
	return math.Exp(-mu * x)
}

// Buildup returns the buildup factor for optical depth μx
func Buildup(mu, x float64) float64 {
	mx := mu * x
	return 1 + BuildupAlpha*mx*math.Exp(BuildupBeta*mx)
}

// CompositeTransmission weighs gamma and neutron transmission through
// thickness x cm
func CompositeTransmission(eGamma, eNeutron, x float64) float64 {
	tg := Transmission(GammaMu(eGamma), x)
	tn := Transmission(compositeSigma(eNeutron)*Barn*AbsorberDensity, x)
	return GammaWeight*tg + NeutronWeight*tn
}

// Efficiency returns the shielded fraction in percent. Zero when nothing
// was incident.
func Efficiency(incident, transmitted float64) float64 {
	if incident <= 0 {
		return 0
	}
	return (1 - transmitted/incident) * 100
}

// TransmissionByBin returns the transmitted percentage of each incident
// bin. Empty incident bins give 0.
func TransmissionByBin(incident, transmitted []float64) ([]float64, error) {
	if len(incident) != len(transmitted) {
		return nil, ErrLengthMismatch
	}
	out := make([]float64, len(incident))
	for i := range incident {
		if incident[i] > 0 {
			out[i] = transmitted[i] / incident[i] * 100
		}
	}
	return out, nil
}
