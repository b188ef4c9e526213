package game

import "errors"

// Sentinel errors for unrecoverable internal corruption. If configuration
// validation is correct upstream these states are unreachable; they are
// surfaced as typed errors from Step rather than aborting the process so
// the host decides how to terminate.
var (
	// ErrCorruptState indicates an empty or unknown strategy reached the
	// payoff table.
	ErrCorruptState = errors.New("corrupt population state")

	// ErrInvalidPolicy indicates an unrecognized 2-bit sub-policy code
	// reached the movement decoder.
	ErrInvalidPolicy = errors.New("invalid movement sub-policy")

	// ErrInvalidRepMode indicates an unrecognized replacement mode.
	ErrInvalidRepMode = errors.New("invalid replacement mode")
)
