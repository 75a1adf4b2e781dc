// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"fmt"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/types"
)

// Blocked is the sentinel message a block_action effect produces. The turn
// orchestrator strips it from event output and suppresses the action handler.
const Blocked = "__BLOCKED__"

// revealFlag names the flag that makes a hidden exit traversable.
func revealFlag(roomID string, dir types.Direction) string {
	return fmt.Sprintf("exit_revealed_%s_%s", roomID, dir)
}

// RevealFlag exposes the hidden-exit flag naming scheme to action handlers.
func RevealFlag(roomID string, dir types.Direction) string {
	return revealFlag(roomID, dir)
}

// Apply applies one effect, mutating the state, and returns any message to
// display. Effect tags are validated at content-load time; a tag reaching
// the default branch is an engine defect and is surfaced as an error rather
// than swallowed.
func Apply(e types.Effect, s *types.GameState) (string, error) {
	switch e.Type {
	case types.EffPrintMessage:
		return e.Text, nil

	case types.EffMoveObject:
		switch e.Dest {
		case "player":
			state.MoveToInventory(s, e.Target)
		case "destroyed":
			state.Destroy(s, e.Target)
		default:
			state.MoveToRoom(s, e.Target, e.Dest)
		}
		return "", nil

	case types.EffMovePlayer:
		// Scripted teleport: bypasses exit conditions and does not mark the
		// destination visited, unlike a walked "go" transition.
		s.CurrentRoom = e.Target
		return "", nil

	case types.EffSetFlag:
		s.Flags[e.Target] = true
		return "", nil

	case types.EffClearFlag:
		delete(s.Flags, e.Target)
		return "", nil

	case types.EffIncrementCounter:
		s.Counters[e.Target] += e.Amount
		return "", nil

	case types.EffSetCounter:
		s.Counters[e.Target] = e.Amount
		return "", nil

	case types.EffAddScore:
		s.Score += e.Amount
		return "", nil

	case types.EffSetProperty:
		state.AddProperty(s, e.Target, e.Prop)
		return "", nil

	case types.EffClearProperty:
		state.RemoveProperty(s, e.Target, e.Prop)
		return "", nil

	case types.EffKillPlayer:
		s.PlayerAlive = false
		if e.Text != "" {
			return e.Text, nil
		}
		return "You have died.", nil

	case types.EffBlockAction:
		return Blocked, nil

	case types.EffEnableExit:
		s.Flags[revealFlag(e.Target, e.Direction)] = true
		return "", nil

	case types.EffDisableExit:
		delete(s.Flags, revealFlag(e.Target, e.Direction))
		return "", nil

	case types.EffDestroyObject:
		state.Destroy(s, e.Target)
		return "", nil

	case types.EffRevealObject:
		state.RemoveProperty(s, e.Target, types.PropHidden)
		return "", nil

	default:
		return "", fmt.Errorf("unhandled effect type %q", e.Type)
	}
}

// ApplyAll applies effects in declared order and returns the non-empty
// messages in that same order. Ordering is a contract: content may rely on
// a reveal running before the message that refers to the revealed object.
func ApplyAll(effects []types.Effect, s *types.GameState) ([]string, error) {
	var messages []string
	for _, e := range effects {
		msg, err := Apply(e, s)
		if err != nil {
			return messages, err
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}
