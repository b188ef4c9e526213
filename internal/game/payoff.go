// Package game implements the per-generation algorithm of the follow/flee
// spatial prisoner's dilemma: neighbourhood scanning and scoring, movement
// genome decoding, and fitness-driven birth-death replacement.
//
// Agents occupy nodes of a regular graph. Each generation every agent
// plays the prisoner's dilemma against its occupied neighbours, then
// relocates according to an evolvable 8-bit movement policy; afterwards
// the worst scorers are culled and the best scorers cloned into the freed
// space.
package game

import "fmt"

// Strategy is a node's occupancy state.
type Strategy int

const (
	Empty      Strategy = 0
	Cooperator Strategy = 1
	Defector   Strategy = 2
)

// String returns a short label for logging.
func (s Strategy) String() string {
	switch s {
	case Empty:
		return "empty"
	case Cooperator:
		return "cooperator"
	case Defector:
		return "defector"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Prisoner's dilemma payoffs for the first player.
const (
	payoffReward     = 3 // both cooperate
	payoffSucker     = 0 // cooperate against a defector
	payoffTemptation = 5 // defect against a cooperator
	payoffPunishment = 1 // both defect
)

// Payoff returns the first player's payoff for one round of the
// prisoner's dilemma. Both strategies must be Cooperator or Defector; an
// empty cell reaching the payoff table means the population state is
// corrupted and ErrCorruptState is returned.
func Payoff(a, b Strategy) (int, error) {
	switch {
	case a == Cooperator && b == Cooperator:
		return payoffReward, nil
	case a == Cooperator && b == Defector:
		return payoffSucker, nil
	case a == Defector && b == Cooperator:
		return payoffTemptation, nil
	case a == Defector && b == Defector:
		return payoffPunishment, nil
	}
	return 0, fmt.Errorf("%w: payoff requested for strategies (%d,%d)", ErrCorruptState, a, b)
}
