package engine

import (
	"fmt"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

const (
	wanderChance = 30
	stealChance  = 25
)

// TickNPCs runs per-turn NPC behavior: wandering and stealing. NPCs are
// processed in declaration order so the RNG stream is reproducible.
func TickNPCs(s *types.GameState, w *world.World, rng *RNG) []string {
	var messages []string
	for _, npc := range w.NPCs() {
		ns := s.NPCs[npc.ID]
		if ns == nil || !ns.Alive {
			continue
		}

		if npc.Behavior.Wanders && len(npc.Behavior.WanderRooms) > 0 {
			if msg := wanderNPC(npc, ns, s, rng); msg != "" {
				messages = append(messages, msg)
			}
		}

		if npc.Behavior.StealsItems && ns.Location == s.CurrentRoom {
			if msg := stealFromPlayer(npc, ns, s, w, rng); msg != "" {
				messages = append(messages, msg)
			}
		}
	}
	return messages
}

// wanderNPC moves an NPC to a random room from its wander list. The move
// is silent unless the player sees the NPC leave or arrive.
func wanderNPC(npc *types.NPC, ns *types.NPCState, s *types.GameState, rng *RNG) string {
	if ns.Location == "" || !rng.Chance(wanderChance) {
		return ""
	}

	var possible []string
	for _, room := range npc.Behavior.WanderRooms {
		if room != ns.Location {
			possible = append(possible, room)
		}
	}
	if len(possible) == 0 {
		return ""
	}

	oldRoom := ns.Location
	ns.Location = possible[rng.Pick(len(possible))]

	switch s.CurrentRoom {
	case oldRoom:
		return fmt.Sprintf("The %s slips away.", npc.Name)
	case ns.Location:
		return fmt.Sprintf("A %s appears.", npc.Name)
	}
	return ""
}

// stealFromPlayer has an NPC grab a random valuable item from the player's
// inventory. Only items that carry score value are worth stealing.
func stealFromPlayer(npc *types.NPC, ns *types.NPCState, s *types.GameState, w *world.World, rng *RNG) string {
	if !rng.Chance(stealChance) {
		return ""
	}

	var valuable []string
	for _, id := range s.Inventory {
		if obj := w.Object(id); obj != nil && obj.ScoreValue > 0 {
			valuable = append(valuable, id)
		}
	}
	if len(valuable) == 0 {
		return ""
	}

	stolenID := valuable[rng.Pick(len(valuable))]
	state.Destroy(s, stolenID) // out of play until the NPC drops it
	ns.Inventory = append(ns.Inventory, stolenID)

	name := stolenID
	if obj := w.Object(stolenID); obj != nil {
		name = obj.Name
	}
	return fmt.Sprintf("The %s snatches the %s from you!", npc.Name, name)
}
