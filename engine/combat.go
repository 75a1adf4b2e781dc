package engine

import (
	"fmt"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

const npcHitChance = 50

// PlayerWeapon finds the best weapon in the player's inventory.
// Returns ("", 1) for bare hands.
func PlayerWeapon(s *types.GameState, w *world.World) (string, int) {
	bestID := ""
	bestDamage := 1

	for _, id := range s.Inventory {
		if !state.HasProperty(s, id, types.PropWeapon) {
			continue
		}
		if obj := w.Object(id); obj != nil && obj.Damage > bestDamage {
			bestID = id
			bestDamage = obj.Damage
		}
	}
	return bestID, bestDamage
}

// NPCAttackPlayer resolves one hostile NPC swing at the player. A miss
// still produces a message. Returns "" when the NPC cannot attack at all.
func NPCAttackPlayer(npcID string, s *types.GameState, w *world.World, rng *RNG) string {
	npc := w.NPC(npcID)
	ns := s.NPCs[npcID]
	if npc == nil || ns == nil || !ns.Alive {
		return ""
	}
	if ns.Location != s.CurrentRoom {
		return ""
	}

	if !rng.Chance(npcHitChance) {
		if msg := npc.Behavior.CombatMessages["miss"]; msg != "" {
			return msg
		}
		return fmt.Sprintf("The %s swings and misses!", npc.Name)
	}

	s.PlayerHealth -= npc.Damage
	if s.PlayerHealth <= 0 {
		s.PlayerAlive = false
		return fmt.Sprintf("The %s strikes! You have died.", npc.Name)
	}

	if msg := npc.Behavior.CombatMessages["hit"]; msg != "" {
		return msg
	}
	return fmt.Sprintf("The %s hits you!", npc.Name)
}

// TickHostiles lets every hostile NPC sharing the player's room take a
// swing, in declaration order.
func TickHostiles(s *types.GameState, w *world.World, rng *RNG) []string {
	var messages []string
	for _, npc := range w.NPCs() {
		ns := s.NPCs[npc.ID]
		if ns == nil || !ns.Alive || ns.Attitude != types.Hostile {
			continue
		}
		if ns.Location != s.CurrentRoom {
			continue
		}
		if msg := NPCAttackPlayer(npc.ID, s, w, rng); msg != "" {
			messages = append(messages, msg)
		}
		if !s.PlayerAlive {
			break
		}
	}
	return messages
}
