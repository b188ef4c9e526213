package game

import "fmt"

// Genome encodes an agent's movement policy in 8 bits: four independent
// 2-bit sub-policy selectors, one per neighbourhood context. Genomes are
// inherited verbatim by clones during replacement, so the encoded
// behaviours evolve under selection.
//
// Bit layout (bit 7 is the most significant):
//
//	[7:6] context: only cooperators around
//	[5:4] context: only defectors around
//	[3:2] mixed neighbourhood, applied against the cooperators
//	[1:0] mixed neighbourhood, applied against the defectors
type Genome uint8

// Policy is a decoded 2-bit sub-policy selector.
type Policy uint8

const (
	// PolicyStay penalizes every free cell except the agent's own,
	// biasing toward staying put.
	PolicyStay Policy = 0

	// PolicyFollow rewards free cells adjacent to the evaluated
	// neighbour class, biasing toward moving closer.
	PolicyFollow Policy = 1

	// PolicyFlee rewards free cells NOT adjacent to the evaluated
	// neighbour class, biasing toward moving away.
	PolicyFlee Policy = 2

	// PolicyRandom perturbs every free cell's score by a uniform draw.
	PolicyRandom Policy = 3
)

// String returns the sub-policy name.
func (p Policy) String() string {
	switch p {
	case PolicyStay:
		return "stay"
	case PolicyFollow:
		return "follow"
	case PolicyFlee:
		return "flee"
	case PolicyRandom:
		return "random"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

// OnlyCooperators returns the sub-policy used when every occupied
// neighbour is a cooperator.
func (g Genome) OnlyCooperators() Policy { return Policy(g >> 6 & 0x3) }

// OnlyDefectors returns the sub-policy used when every occupied
// neighbour is a defector.
func (g Genome) OnlyDefectors() Policy { return Policy(g >> 4 & 0x3) }

// MixedCooperators returns the sub-policy applied against the cooperator
// class in a mixed neighbourhood.
func (g Genome) MixedCooperators() Policy { return Policy(g >> 2 & 0x3) }

// MixedDefectors returns the sub-policy applied against the defector
// class in a mixed neighbourhood.
func (g Genome) MixedDefectors() Policy { return Policy(g & 0x3) }
