package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// Phase is the lifecycle stage of an oracle's current request.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseCommit
	PhaseReveal
	PhaseResolved
)

var phaseNames = map[Phase]string{
	PhaseIdle:     "idle",
	PhaseCommit:   "commit",
	PhaseReveal:   "reveal",
	PhaseResolved: "resolved",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int32(p))
}

// IsValid reports whether p is one of the defined phases.
func (p Phase) IsValid() bool {
	_, ok := phaseNames[p]
	return ok
}

// TieBreakPolicy decides the resolution bit when the revealed true and false
// counts are equal.
type TieBreakPolicy int32

const (
	// TieBreakFalse resolves ties to false. It matches a plain
	// "true wins only with strictly more votes" comparison.
	TieBreakFalse TieBreakPolicy = iota
	// TieBreakTrue resolves ties to true.
	TieBreakTrue
)

var tieBreakNames = map[TieBreakPolicy]string{
	TieBreakFalse: "TIE_BREAK_FALSE",
	TieBreakTrue:  "TIE_BREAK_TRUE",
}

func (t TieBreakPolicy) String() string {
	if name, ok := tieBreakNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TIE_BREAK_UNKNOWN(%d)", int32(t))
}

func (t TieBreakPolicy) Validate() error {
	if _, ok := tieBreakNames[t]; !ok {
		return errorsmod.Wrapf(ErrInvalidTieBreak, "%d", int32(t))
	}
	return nil
}

// ParseTieBreakPolicy accepts either the canonical name or the short form
// ("false", "true").
func ParseTieBreakPolicy(s string) (TieBreakPolicy, error) {
	switch s {
	case "TIE_BREAK_FALSE", "false", "":
		return TieBreakFalse, nil
	case "TIE_BREAK_TRUE", "true":
		return TieBreakTrue, nil
	}
	return 0, errorsmod.Wrapf(ErrInvalidTieBreak, "%q", s)
}

// Decide returns the resolution bit for the given tallies.
func (t TieBreakPolicy) Decide(countTrue, countFalse uint64) bool {
	switch {
	case countTrue > countFalse:
		return true
	case countFalse > countTrue:
		return false
	}
	return t == TieBreakTrue
}
