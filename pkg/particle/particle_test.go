package particle

import "testing"

func TestFromPDG(t *testing.T) {
	tests := []struct {
		code     int
		expected Kind
	}{
		{2112, Neutron},
		{2212, Proton},
		{22, Photon},
		{11, Other},
		{-2112, Other},
		{0, Other},
	}

	for _, tt := range tests {
		if got := FromPDG(tt.code); got != tt.expected {
			t.Errorf("FromPDG(%d): expected %v, got %v", tt.code, tt.expected, got)
		}
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{Neutron, Proton, Photon} {
		if FromPDG(k.PDG()) != k {
			t.Errorf("%v did not survive PDG round trip", k)
		}
		parsed, ok := Parse(k.String())
		if !ok || parsed != k {
			t.Errorf("%v did not survive name round trip", k)
		}
	}
	if _, ok := Parse("muon"); ok {
		t.Error("expected unknown name to be rejected")
	}
}

func TestCharged(t *testing.T) {
	if Neutron.Charged() || Photon.Charged() {
		t.Error("neutral kinds reported as charged")
	}
	if !Proton.Charged() || !Other.Charged() {
		t.Error("proton and other must take the charged branch")
	}
}
