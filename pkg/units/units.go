// Package units defines the internal unit system used by every damage
// calculation in this module. It follows the CLHEP convention used by
// Geant4 (millimetre, nanosecond, MeV, positron charge, mole), so values
// produced by the stopping-power based models are numerically identical to
// what a Geant4 host computes with the same constants.
//
// A quantity is stored as value*Unit and read back with In(q, Unit).
package units

// Length
const (
	Millimeter  = 1.0
	Millimeter2 = Millimeter * Millimeter
	Millimeter3 = Millimeter * Millimeter * Millimeter

	Micrometer  = 1e-3 * Millimeter
	Centimeter  = 10 * Millimeter
	Centimeter2 = Centimeter * Centimeter
	Centimeter3 = Centimeter * Centimeter * Centimeter
	Meter       = 1000 * Millimeter
	Meter2      = Meter * Meter
)

// Short aliases matching the names used in physics tables
const (
	MM  = Millimeter
	UM  = Micrometer
	CM  = Centimeter
	CM2 = Centimeter2
	CM3 = Centimeter3
)

// Time
const (
	Nanosecond = 1.0
	Second     = 1e9 * Nanosecond
)

// Energy
const (
	MegaElectronVolt = 1.0
	ElectronVolt     = 1e-6 * MegaElectronVolt
	KiloElectronVolt = 1e-3 * MegaElectronVolt
	GigaElectronVolt = 1e3 * MegaElectronVolt

	MeV = MegaElectronVolt
	KeV = KiloElectronVolt
	EV  = ElectronVolt
)

// ElementaryChargeSI is the positron charge in coulomb (exact, SI 2019)
const ElementaryChargeSI = 1.602176634e-19

// Derived mechanical units
const (
	Joule    = ElectronVolt / ElementaryChargeSI
	Kilogram = Joule * Second * Second / (Meter * Meter)
	Gram     = 1e-3 * Kilogram
	Gray     = Joule / Kilogram
)

// Amount of substance
const (
	Mole     = 1.0
	Avogadro = 6.02214076e+23 / Mole
)

// Common composite units
const (
	GramPerCm3  = Gram / Centimeter3
	GramPerMole = Gram / Mole
	// MeVPerArealDensity is MeV/(g/cm2), the unit of mass stopping power
	MeVPerArealDensity = MegaElectronVolt / (Gram / Centimeter2)
)

// PerCent is a dimensionless fraction
const PerCent = 0.01

// In expresses quantity q in the given unit
func In(q, unit float64) float64 {
	return q / unit
}
