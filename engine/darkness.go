package engine

import (
	"fmt"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

const grueWarning = "It is pitch black. You are likely to be eaten by a grue."

const grueDeath = "Oh no! You have walked into the slavering fangs of a lurking grue!\n" +
	"\n   **** You have died ****"

// IsDark reports whether the player currently stands in darkness: the room
// is dark and no lit light source is carried or present.
func IsDark(s *types.GameState, w *world.World) bool {
	room := w.Room(s.CurrentRoom)
	if room == nil || !room.IsDark {
		return false
	}

	for _, id := range s.Inventory {
		if state.HasProperty(s, id, types.PropLit) {
			return false
		}
	}
	for _, id := range state.ObjectsInRoom(s, s.CurrentRoom) {
		if state.HasProperty(s, id, types.PropLit) {
			return false
		}
	}
	return true
}

// DarkDescription returns what the player sees in a dark room.
func DarkDescription(s *types.GameState, w *world.World) string {
	if room := w.Room(s.CurrentRoom); room != nil && room.DarkDescription != "" {
		return room.DarkDescription
	}
	return grueWarning
}

// TickDarkness advances the darkness clock. The first turn in darkness is
// a warning; the second is fatal.
func TickDarkness(s *types.GameState, w *world.World) string {
	if !IsDark(s, w) {
		s.DarkTurns = 0
		return ""
	}

	s.DarkTurns++
	switch {
	case s.DarkTurns == 1:
		return grueWarning
	case s.DarkTurns >= 2:
		s.PlayerAlive = false
		return grueDeath
	}
	return ""
}

// TickFuel burns fuel on lit light sources near the player. Fuel lives in
// the counters map keyed by "fuel_<id>", seeded from the object's rated
// fuel; negative rated fuel means the source never runs down. At most one
// warning is reported per turn.
func TickFuel(s *types.GameState, w *world.World) string {
	ids := append(append([]string{}, s.Inventory...), state.ObjectsInRoom(s, s.CurrentRoom)...)
	for _, id := range ids {
		if !state.HasProperty(s, id, types.PropLit) {
			continue
		}
		obj := w.Object(id)
		if obj == nil || obj.LightFuel < 0 {
			continue
		}

		key := "fuel_" + id
		fuel, ok := s.Counters[key]
		if !ok {
			fuel = obj.LightFuel
		}
		fuel--
		s.Counters[key] = fuel

		if fuel <= 0 {
			state.RemoveProperty(s, id, types.PropLit)
			return fmt.Sprintf("The %s has run out of power.", obj.Name)
		}
		if fuel <= 20 {
			return fmt.Sprintf("The %s is getting dim.", obj.Name)
		}
	}
	return ""
}
