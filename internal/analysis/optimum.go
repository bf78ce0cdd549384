package analysis

import (
	"math/rand/v2"
	"sort"
)

// Constraints bound the PbO/Gd2O3 search
type Constraints struct {
	PbOCost      float64 // cost per wt% PbO
	Gd2O3Cost    float64 // cost per wt% Gd2O3
	MaxCost      float64
	MaxTotal     float64 // PbO + Gd2O3, wt%
	MinObjective float64 // minimum linear efficiency, %
}

// DefaultConstraints returns the reference study limits
func DefaultConstraints() Constraints {
	return Constraints{PbOCost: 50, Gd2O3Cost: 100, MaxCost: 800, MaxTotal: 15, MinObjective: 85}
}

// LinearObjective is the first-order efficiency in PbO and Gd2O3
func LinearObjective(pbo, gd2o3 float64) float64 {
	return 70 + 2.1*pbo + 1.5*gd2o3
}

// Feasible reports whether the recipe satisfies all constraints
func (c Constraints) Feasible(pbo, gd2o3 float64) bool {
	return pbo*c.PbOCost+gd2o3*c.Gd2O3Cost <= c.MaxCost &&
		pbo+gd2o3 <= c.MaxTotal &&
		LinearObjective(pbo, gd2o3) >= c.MinObjective
}

// Candidate is a recipe with its objective value
type Candidate struct {
	PbO       float64
	Gd2O3     float64
	Objective float64
}

// GridSearch scans bin centres of an nx by ny grid over [0, max]² and
// returns the feasible recipe with the highest linear objective, plus the
// number of feasible cells. ok is false when no cell is feasible.
func (c Constraints) GridSearch(nx, ny int, max float64) (best Candidate, feasible int, ok bool) {
	if nx < 1 || ny < 1 || max <= 0 {
		return Candidate{}, 0, false
	}
	wx, wy := max/float64(nx), max/float64(ny)

	for i := 0; i < nx; i++ {
		pbo := (float64(i) + 0.5) * wx
		for j := 0; j < ny; j++ {
			gd := (float64(j) + 0.5) * wy
			if !c.Feasible(pbo, gd) {
				continue
			}
			feasible++
			obj := LinearObjective(pbo, gd)
			if !ok || obj > best.Objective {
				best = Candidate{PbO: pbo, Gd2O3: gd, Objective: obj}
				ok = true
			}
		}
	}
	return best, feasible, ok
}

// Tradeoff is a gamma/neutron efficiency pair
type Tradeoff struct {
	Gamma   float64
	Neutron float64
}

// Dominates reports whether t is at least as good as o in both objectives
// and strictly better in one
func (t Tradeoff) Dominates(o Tradeoff) bool {
	return t.Gamma >= o.Gamma && t.Neutron >= o.Neutron &&
		(t.Gamma > o.Gamma || t.Neutron > o.Neutron)
}

// ParetoFront returns the non-dominated points sorted by descending gamma
// efficiency
func ParetoFront(points []Tradeoff) []Tradeoff {
	sorted := append([]Tradeoff(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Gamma != sorted[j].Gamma {
			return sorted[i].Gamma > sorted[j].Gamma
		}
		return sorted[i].Neutron > sorted[j].Neutron
	})

	var front []Tradeoff
	for _, p := range sorted {
		// everything kept so far has gamma >= p.Gamma
		if len(front) > 0 && p.Neutron <= front[len(front)-1].Neutron {
			continue
		}
		front = append(front, p)
	}
	return front
}

// TradeoffCloud draws n candidate pairs uniformly in [70, 95]² and keeps
// those whose sum lies in [170, 180]
func TradeoffCloud(n int, seed uint64) []Tradeoff {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	var out []Tradeoff
	for i := 0; i < n; i++ {
		g := 70 + rng.Float64()*25
		nn := 70 + rng.Float64()*25
		if s := g + nn; s >= 170 && s <= 180 {
			out = append(out, Tradeoff{Gamma: g, Neutron: nn})
		}
	}
	return out
}

// WeightPoint is the optimum at one gamma weight
type WeightPoint struct {
	Weight        float64
	Gamma         float64
	Neutron       float64
	Comprehensive float64
}

// WeightSweep returns the optimal gamma and neutron efficiencies as the
// gamma weight varies
func WeightSweep(weights []float64) []WeightPoint {
	out := make([]WeightPoint, len(weights))
	for i, w := range weights {
		g := 75 + 20*w
		n := 75 + 20*(1-w)
		out[i] = WeightPoint{Weight: w, Gamma: g, Neutron: n, Comprehensive: w*g + (1-w)*n}
	}
	return out
}
