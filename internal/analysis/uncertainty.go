package analysis

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// BaseEfficiency is the nominal comprehensive efficiency of the reference
// recipe, in percent
const BaseEfficiency = 82.5

// Factor is a multiplicative input with relative standard deviation Sigma
type Factor struct {
	Name  string
	Sigma float64
}

// DefaultFactors are the relative input uncertainties of the reference
// measurement
func DefaultFactors() []Factor {
	return []Factor{
		{Name: "density", Sigma: 0.02},
		{Name: "thickness", Sigma: 0.01},
		{Name: "composition", Sigma: 0.03},
		{Name: "model", Sigma: 0.025},
	}
}

// Band is the result of an uncertainty propagation
type Band struct {
	Mean   float64
	StdDev float64
	// Lower and Upper are mean ∓ 1.96σ
	Lower, Upper float64
	// Q025 and Q975 are the empirical 2.5 % and 97.5 % quantiles
	Q025, Q975 float64
	Samples    int
}

// Propagate multiplies base by one N(1, σ) draw per factor, n times
func Propagate(base float64, factors []Factor, n int, seed uint64) (Band, error) {
	if n < 2 {
		return Band{}, errors.New("need at least 2 samples")
	}

	rng := rand.New(rand.NewPCG(seed, ^seed))
	dists := make([]distuv.Normal, len(factors))
	for i, f := range factors {
		dists[i] = distuv.Normal{Mu: 1, Sigma: f.Sigma}
	}

	results := make([]float64, n)
	for i := range results {
		v := base
		for _, d := range dists {
			if d.Sigma <= 0 {
				continue
			}
			v *= d.Quantile(uniform(rng))
		}
		results[i] = v
	}

	mean, sd := stat.MeanStdDev(results, nil)
	sort.Float64s(results)
	return Band{
		Mean:    mean,
		StdDev:  sd,
		Lower:   mean - 1.96*sd,
		Upper:   mean + 1.96*sd,
		Q025:    stat.Quantile(0.025, stat.Empirical, results, nil),
		Q975:    stat.Quantile(0.975, stat.Empirical, results, nil),
		Samples: n,
	}, nil
}

// uniform returns a variate in the open interval (0, 1)
func uniform(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

// QuadratureSum returns sqrt(Σσ²), the combined relative uncertainty of
// independent factors to first order
func QuadratureSum(sigmas ...float64) float64 {
	var s float64
	for _, v := range sigmas {
		s += v * v
	}
	return math.Sqrt(s)
}

// Sensitivity is a linear response coefficient per percent of input
// variation
type Sensitivity struct {
	Name        string
	Coefficient float64
}

// DefaultSensitivities are the response coefficients of the reference
// recipe
func DefaultSensitivities() []Sensitivity {
	return []Sensitivity{
		{Name: "density", Coefficient: 0.85},
		{Name: "thickness", Coefficient: 1.20},
		{Name: "composition", Coefficient: 0.65},
	}
}

// Response returns base·(1 + k·variation/100) for a variation in percent
func (s Sensitivity) Response(base, variation float64) float64 {
	return base * (1 + s.Coefficient*variation/100)
}
