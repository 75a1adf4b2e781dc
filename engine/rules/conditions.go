// Package rules evaluates declarative event conditions against game state.
package rules

import (
	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/types"
)

// Context carries the resolved action the current turn is evaluating, for
// the two action-dependent condition kinds.
type Context struct {
	VerbID         string
	DirectObjectID string
}

// Check evaluates a single condition. All condition kinds are pure reads.
// Unknown kinds evaluate to false (fail closed); they cannot normally occur
// since tags are validated at content-load time.
func Check(c types.Condition, s *types.GameState, ctx Context) bool {
	switch c.Type {
	case types.CondPlayerInRoom:
		return s.CurrentRoom == c.Target

	case types.CondPlayerHasItem:
		return state.HasItem(s, c.Target)

	case types.CondObjectInRoom:
		room := c.Room
		if room == "" {
			room = s.CurrentRoom
		}
		return state.Placement(s, c.Target).Room(room)

	case types.CondObjectHasProperty:
		return state.HasProperty(s, c.Target, c.Prop)

	case types.CondFlagSet:
		return state.GetFlag(s, c.Target)

	case types.CondFlagNotSet:
		return !state.GetFlag(s, c.Target)

	case types.CondCounterGTE:
		return state.GetCounter(s, c.Target) >= c.Amount

	case types.CondCounterLTE:
		return state.GetCounter(s, c.Target) <= c.Amount

	case types.CondCounterEQ:
		return state.GetCounter(s, c.Target) == c.Amount

	case types.CondActionIs:
		return ctx.VerbID == c.Target

	case types.CondActionTargetIs:
		return ctx.DirectObjectID == c.Target

	default:
		return false
	}
}

// CheckAll is a logical AND over a condition list. Evaluation is exhaustive
// rather than short-circuited; conditions are pure reads so order cannot
// affect correctness. An empty list is vacuously true.
func CheckAll(conditions []types.Condition, s *types.GameState, ctx Context) bool {
	all := true
	for _, c := range conditions {
		if !Check(c, s, ctx) {
			all = false
		}
	}
	return all
}
