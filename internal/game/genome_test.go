package game

import "testing"

func TestGenome_Accessors(t *testing.T) {
	// 0b00_01_10_11: stay / follow / flee / random, most significant
	// pair first.
	g := Genome(0b00011011)

	if got := g.OnlyCooperators(); got != PolicyStay {
		t.Errorf("OnlyCooperators() = %v, want stay", got)
	}
	if got := g.OnlyDefectors(); got != PolicyFollow {
		t.Errorf("OnlyDefectors() = %v, want follow", got)
	}
	if got := g.MixedCooperators(); got != PolicyFlee {
		t.Errorf("MixedCooperators() = %v, want flee", got)
	}
	if got := g.MixedDefectors(); got != PolicyRandom {
		t.Errorf("MixedDefectors() = %v, want random", got)
	}
}

func TestGenome_AccessorsIndependent(t *testing.T) {
	// Each accessor reads only its own two bits.
	for _, g := range []Genome{0x00, 0xFF, 0b11000000, 0b00110000, 0b00001100, 0b00000011} {
		sum := uint8(g.OnlyCooperators())<<6 |
			uint8(g.OnlyDefectors())<<4 |
			uint8(g.MixedCooperators())<<2 |
			uint8(g.MixedDefectors())
		if sum != uint8(g) {
			t.Errorf("genome %#08b: accessors reassemble to %#08b", uint8(g), sum)
		}
	}
}

func TestPolicy_String(t *testing.T) {
	want := map[Policy]string{
		PolicyStay:   "stay",
		PolicyFollow: "follow",
		PolicyFlee:   "flee",
		PolicyRandom: "random",
	}
	for p, s := range want {
		if p.String() != s {
			t.Errorf("Policy(%d).String() = %q, want %q", p, p.String(), s)
		}
	}
}
