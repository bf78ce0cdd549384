// Package particle classifies transported particles into the kinds the
// damage models distinguish.
package particle

// Kind is the closed set of particle classes understood by the damage models
type Kind int

const (
	// Other covers every particle without a dedicated damage branch
	Other Kind = iota
	Neutron
	Proton
	Photon
)

// PDG Monte Carlo numbering codes
const (
	PDGNeutron = 2112
	PDGProton  = 2212
	PDGPhoton  = 22
)

// FromPDG maps a PDG particle code onto a Kind
func FromPDG(code int) Kind {
	switch code {
	case PDGNeutron:
		return Neutron
	case PDGProton:
		return Proton
	case PDGPhoton:
		return Photon
	default:
		return Other
	}
}

// PDG returns the canonical PDG code of the kind, or 0 for Other
func (k Kind) PDG() int {
	switch k {
	case Neutron:
		return PDGNeutron
	case Proton:
		return PDGProton
	case Photon:
		return PDGPhoton
	default:
		return 0
	}
}

// Charged reports whether the kind takes the stopping-power branch of NIEL.
// Everything that is neither a neutron nor a photon counts as charged.
func (k Kind) Charged() bool {
	return k != Neutron && k != Photon
}

func (k Kind) String() string {
	switch k {
	case Neutron:
		return "neutron"
	case Proton:
		return "proton"
	case Photon:
		return "gamma"
	default:
		return "other"
	}
}

// Parse accepts the names produced by String plus a few common aliases
func Parse(name string) (Kind, bool) {
	switch name {
	case "neutron", "n":
		return Neutron, true
	case "proton", "p":
		return Proton, true
	case "gamma", "photon", "g":
		return Photon, true
	case "other":
		return Other, true
	default:
		return Other, false
	}
}
