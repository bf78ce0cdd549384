package material

import (
	"fmt"
	"sort"

	"github.com/ngamma/glassdamage/pkg/units"
)

// Elements of the shielding-glass oxide system
var (
	Oxygen     = Element{Symbol: "O", Name: "Oxygen", Z: 8, A: 16.00}
	Silicon    = Element{Symbol: "Si", Name: "Silicon", Z: 14, A: 28.09}
	Sodium     = Element{Symbol: "Na", Name: "Sodium", Z: 11, A: 22.99}
	Potassium  = Element{Symbol: "K", Name: "Potassium", Z: 19, A: 39.10}
	Lithium    = Element{Symbol: "Li", Name: "Lithium", Z: 3, A: 6.941}
	Zinc       = Element{Symbol: "Zn", Name: "Zinc", Z: 30, A: 65.39}
	Aluminum   = Element{Symbol: "Al", Name: "Aluminum", Z: 13, A: 26.98}
	Cerium     = Element{Symbol: "Ce", Name: "Cerium", Z: 58, A: 140.12}
	Boron      = Element{Symbol: "B", Name: "Boron", Z: 5, A: 10.81}
	Lead       = Element{Symbol: "Pb", Name: "Lead", Z: 82, A: 207.20}
	Gadolinium = Element{Symbol: "Gd", Name: "Gadolinium", Z: 64, A: 157.25}
	Magnesium  = Element{Symbol: "Mg", Name: "Magnesium", Z: 12, A: 24.31}
	Calcium    = Element{Symbol: "Ca", Name: "Calcium", Z: 20, A: 40.078}
)

// Names of the composite media in the default catalog
const (
	ShieldingGlass = "ShieldingGlass"
	GlassPlate     = "G4_GLASS_PLATE"
)

// Catalog is a name-indexed set of materials
type Catalog struct {
	materials map[string]*Material
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{materials: make(map[string]*Material)}
}

// Add registers m under its name, replacing any previous entry
func (c *Catalog) Add(m *Material) {
	c.materials[m.Name] = m
}

// Lookup returns the material registered under name
func (c *Catalog) Lookup(name string) (*Material, error) {
	m, ok := c.materials[name]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", name)
	}
	return m, nil
}

// Names returns the registered names in sorted order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.materials))
	for name := range c.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog returns the oxides, the composite shielding glass and the
// NIST plate glass used by the shielding study
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	oxide := func(name string, density float64, metal Element, nMetal, nOxygen int) *Material {
		m := NewCompound(name, density*units.GramPerCm3, []Atoms{
			{Element: metal, Count: nMetal},
			{Element: Oxygen, Count: nOxygen},
		})
		c.Add(m)
		return m
	}

	oxide("SiO2", 2.200, Silicon, 1, 2)
	oxide("Na2O", 2.270, Sodium, 2, 1)
	oxide("K2O", 2.3, Potassium, 2, 1)
	oxide("ZnO", 5.6, Zinc, 1, 1)
	gd2o3 := oxide("Gd2O3", 7.407, Gadolinium, 2, 3)
	al2o3 := oxide("Al2O3", 3.970, Aluminum, 2, 3)
	li2o := oxide("Li2O", 2.013, Lithium, 2, 1)
	ceo2 := oxide("CeO2", 7.200, Cerium, 1, 2)
	b2o3 := oxide("B2O3", 1.840, Boron, 2, 3)
	oxide("PbO", 9.530, Lead, 1, 1)
	mgo := oxide("MgO", 3.58, Magnesium, 1, 1)

	c.Add(NewMixture(ShieldingGlass, 2.460*units.GramPerCm3, []Part{
		{Material: b2o3, MassFraction: 60 * units.PerCent},
		{Material: mgo, MassFraction: 4 * units.PerCent},
		{Material: al2o3, MassFraction: 8 * units.PerCent},
		{Material: ceo2, MassFraction: 5 * units.PerCent},
		{Material: gd2o3, MassFraction: 5 * units.PerCent},
		{Material: li2o, MassFraction: 18 * units.PerCent},
	}))

	// NIST composition of soda-lime plate glass
	c.Add(&Material{
		Name:    GlassPlate,
		Density: 2.4 * units.GramPerCm3,
		Components: []Component{
			{Element: Oxygen, MassFraction: 0.459800},
			{Element: Sodium, MassFraction: 0.096441},
			{Element: Silicon, MassFraction: 0.336553},
			{Element: Calcium, MassFraction: 0.107205},
		},
	})

	return c
}
