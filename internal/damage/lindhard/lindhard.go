// Package lindhard splits a primary knock-on atom's recoil energy into its
// non-ionising (displacement) and ionising parts.
package lindhard

import (
	"math"

	"github.com/ngamma/glassdamage/pkg/units"
)

// Partition is the saturating approximation f = C·x/(1 + B·x) with
// x = (T/1 MeV)^M. B is expressed per MeV.
type Partition struct {
	C float64
	B float64
	M float64
}

// Default returns c = 0.3, b = 0.1 /MeV, m = 0.5
func Default() Partition {
	return Partition{C: 0.3, B: 0.1, M: 0.5}
}

// NonIonizingFraction returns the displacement share of recoil energy t,
// clamped to [0,1]. zbar and abar are the material's mean atomic number
// and mass; the current approximation does not depend on them.
func (p Partition) NonIonizingFraction(t, zbar, abar float64) float64 {
	x := math.Pow(math.Max(t, 0)/units.MeV, p.M)
	f := p.C * x / (1 + p.B*x)
	switch {
	case f < 0 || math.IsNaN(f):
		return 0
	case f > 1:
		return 1
	}
	return f
}

// NonIonizingEnergy returns f·t
func (p Partition) NonIonizingEnergy(t, zbar, abar float64) float64 {
	if t <= 0 {
		return 0
	}
	return p.NonIonizingFraction(t, zbar, abar) * t
}
