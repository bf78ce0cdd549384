// Package material describes the element composition of scored media.
// Materials are read-only to the damage models; builders here derive
// mass fractions the same way a Geant4 material table does for compounds
// (by atom count) and mixtures (by component mass fraction).
package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/ngamma/glassdamage/pkg/units"
)

// Fallback averages used when a material carries no usable composition
const (
	FallbackZ = 10.0
	FallbackA = 20.0
)

var (
	// ErrNoComponents is returned when a material has no elements
	ErrNoComponents = errors.New("material has no components")
	// ErrFractionSum is returned when mass fractions do not sum to one
	ErrFractionSum = errors.New("mass fractions do not sum to 1")
)

// Element is a chemical element entry
type Element struct {
	Symbol string
	Name   string
	Z      float64 // atomic number
	A      float64 // molar mass in g/mol
}

// Component is an element together with its mass fraction in a material
type Component struct {
	Element
	MassFraction float64
}

// Material is a homogeneous medium
type Material struct {
	Name       string
	Density    float64 // internal units, e.g. 2.2*units.GramPerCm3
	Components []Component
}

// AverageA returns the mass-fraction weighted molar mass in g/mol.
// Zero when the material has no components.
func (m *Material) AverageA() float64 {
	var a float64
	for _, c := range m.Components {
		a += c.A * c.MassFraction
	}
	return a
}

// AverageZ returns the mass-fraction weighted atomic number
func (m *Material) AverageZ() float64 {
	var z float64
	for _, c := range m.Components {
		z += c.Z * c.MassFraction
	}
	return z
}

// AverageZA returns the weighted Z and A, substituting FallbackZ/FallbackA
// for sums that are not positive
func (m *Material) AverageZA() (zbar, abar float64) {
	zbar, abar = m.AverageZ(), m.AverageA()
	if zbar <= 0 {
		zbar = FallbackZ
	}
	if abar <= 0 {
		abar = FallbackA
	}
	return zbar, abar
}

// AtomDensity returns the number of atoms per unit volume (internal units),
// using the weighted molar mass. Zero when the molar mass is not positive.
func (m *Material) AtomDensity() float64 {
	a := m.AverageA()
	if a <= 0 {
		return 0
	}
	return m.Density * units.Avogadro / (a * units.GramPerMole)
}

// FractionSum returns the sum of all mass fractions
func (m *Material) FractionSum() float64 {
	var sum float64
	for _, c := range m.Components {
		sum += c.MassFraction
	}
	return sum
}

// Validate checks that the material has components and that the mass
// fractions sum to one within tol
func (m *Material) Validate(tol float64) error {
	if len(m.Components) == 0 {
		return fmt.Errorf("%s: %w", m.Name, ErrNoComponents)
	}
	if sum := m.FractionSum(); math.Abs(sum-1) > tol {
		return fmt.Errorf("%s: %w (got %.6f)", m.Name, ErrFractionSum, sum)
	}
	return nil
}

// Fraction returns the mass fraction of the element with the given symbol
func (m *Material) Fraction(symbol string) float64 {
	var f float64
	for _, c := range m.Components {
		if c.Symbol == symbol {
			f += c.MassFraction
		}
	}
	return f
}

// Atoms is an element with an atom count, used to build compounds
type Atoms struct {
	Element Element
	Count   int
}

// Part is a material with its mass fraction in a mixture
type Part struct {
	Material     *Material
	MassFraction float64
}

// NewCompound builds a material from a stoichiometric formula
func NewCompound(name string, density float64, atoms []Atoms) *Material {
	var total float64
	for _, a := range atoms {
		total += float64(a.Count) * a.Element.A
	}

	m := &Material{Name: name, Density: density}
	if total <= 0 {
		return m
	}
	for _, a := range atoms {
		m.Components = append(m.Components, Component{
			Element:      a.Element,
			MassFraction: float64(a.Count) * a.Element.A / total,
		})
	}
	return m
}

// NewMixture builds a material from other materials by mass fraction.
// Elements appearing in several parts are merged in order of first
// appearance. Fractions are normalised to their sum.
func NewMixture(name string, density float64, parts []Part) *Material {
	var total float64
	for _, p := range parts {
		total += p.MassFraction
	}

	m := &Material{Name: name, Density: density}
	if total <= 0 {
		return m
	}

	index := make(map[string]int)
	for _, p := range parts {
		w := p.MassFraction / total
		for _, c := range p.Material.Components {
			if i, ok := index[c.Symbol]; ok {
				m.Components[i].MassFraction += w * c.MassFraction
				continue
			}
			index[c.Symbol] = len(m.Components)
			m.Components = append(m.Components, Component{
				Element:      c.Element,
				MassFraction: w * c.MassFraction,
			})
		}
	}
	return m
}
