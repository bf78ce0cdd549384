// Package recoil estimates the characteristic energy an incident particle
// transfers to a target atom.
package recoil

import "github.com/ngamma/glassdamage/pkg/particle"

// Fractions of the kinetic energy handed to a recoil when no two-body
// kinematics apply
const (
	PhotonFraction = 0.1 // Compton recoil-electron proxy
	OtherFraction  = 0.5
)

// MaxTransferFraction is the elastic two-body maximum T/E = 4A/(1+A)^2
// for a unit-mass projectile on a target of mass number a
func MaxTransferFraction(a float64) float64 {
	if a <= 0 {
		return 0
	}
	return 4 * a / ((1 + a) * (1 + a))
}

// Energy returns the recoil energy for a particle of the given kind and
// kinetic energy hitting a target of mass number a. Neutrons and protons
// use elastic kinematics, photons and other particles a fixed fraction.
// Negative kinetic energies are treated as zero.
func Energy(kineticEnergy float64, kind particle.Kind, a float64) float64 {
	if kineticEnergy <= 0 {
		return 0
	}

	switch kind {
	case particle.Neutron, particle.Proton:
		if a <= 0 {
			return 0
		}
		return 4 * kineticEnergy * a / ((1 + a) * (1 + a))
	case particle.Photon:
		return kineticEnergy * PhotonFraction
	default:
		return kineticEnergy * OtherFraction
	}
}
