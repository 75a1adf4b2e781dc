package loader

import (
	"fmt"
	"strings"

	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// ValidationError collects every broken cross-reference found in a
// content set, so authors see all problems in one pass.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("game data validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Validate checks all cross-references in loaded content: starting room,
// exit targets, object locations and parents, keys, NPC rooms, and the
// entity targets of event conditions and effects.
func Validate(c *world.Content) error {
	ve := &ValidationError{}

	roomIDs := map[string]bool{}
	for _, r := range c.Rooms {
		if roomIDs[r.ID] {
			ve.addf("duplicate room id '%s'", r.ID)
		}
		roomIDs[r.ID] = true
	}
	objectIDs := map[string]bool{}
	for _, o := range c.Objects {
		if objectIDs[o.ID] {
			ve.addf("duplicate object id '%s'", o.ID)
		}
		objectIDs[o.ID] = true
	}
	npcIDs := map[string]bool{}
	for _, n := range c.NPCs {
		if npcIDs[n.ID] {
			ve.addf("duplicate npc id '%s'", n.ID)
		}
		npcIDs[n.ID] = true
	}

	if c.Config.StartingRoom == "" {
		ve.addf("no starting room configured")
	} else if !roomIDs[c.Config.StartingRoom] {
		ve.addf("starting room '%s' not found", c.Config.StartingRoom)
	}

	for _, room := range c.Rooms {
		for _, exit := range room.Exits {
			if !roomIDs[exit.TargetRoom] {
				ve.addf("room '%s' exit to unknown room '%s'", room.ID, exit.TargetRoom)
			}
			if exit.Condition != nil && exit.Condition.ObjectID != "" && !objectIDs[exit.Condition.ObjectID] {
				ve.addf("room '%s' exit condition references unknown object '%s'", room.ID, exit.Condition.ObjectID)
			}
		}
	}

	for _, obj := range c.Objects {
		if obj.Location != "" && obj.Location != "player" &&
			!roomIDs[obj.Location] && !objectIDs[obj.Location] {
			ve.addf("object '%s' in unknown location '%s'", obj.ID, obj.Location)
		}
		if obj.ParentObject != "" && !objectIDs[obj.ParentObject] {
			ve.addf("object '%s' has unknown parent '%s'", obj.ID, obj.ParentObject)
		}
		if obj.KeyID != "" && !objectIDs[obj.KeyID] {
			ve.addf("object '%s' has unknown key '%s'", obj.ID, obj.KeyID)
		}
	}

	for _, npc := range c.NPCs {
		if npc.Location != "" && !roomIDs[npc.Location] {
			ve.addf("npc '%s' in unknown room '%s'", npc.ID, npc.Location)
		}
		for _, roomID := range npc.Behavior.WanderRooms {
			if !roomIDs[roomID] {
				ve.addf("npc '%s' wander room '%s' not found", npc.ID, roomID)
			}
		}
		for _, itemID := range npc.Inventory {
			if !objectIDs[itemID] {
				ve.addf("npc '%s' carries unknown object '%s'", npc.ID, itemID)
			}
		}
	}

	eventIDs := map[string]bool{}
	for _, event := range c.Events {
		if eventIDs[event.ID] {
			ve.addf("duplicate event id '%s'", event.ID)
		}
		eventIDs[event.ID] = true

		for _, cond := range event.Conditions {
			validateConditionTargets(ve, event.ID, cond, roomIDs, objectIDs)
		}
		for _, eff := range event.Effects {
			validateEffectTargets(ve, event.ID, eff, roomIDs, objectIDs)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateConditionTargets(ve *ValidationError, eventID string, cond types.Condition, roomIDs, objectIDs map[string]bool) {
	switch cond.Type {
	case types.CondPlayerInRoom:
		if !roomIDs[cond.Target] {
			ve.addf("event '%s' condition references unknown room '%s'", eventID, cond.Target)
		}
	case types.CondPlayerHasItem, types.CondObjectHasProperty:
		if !objectIDs[cond.Target] {
			ve.addf("event '%s' condition references unknown object '%s'", eventID, cond.Target)
		}
	case types.CondObjectInRoom:
		if !objectIDs[cond.Target] {
			ve.addf("event '%s' condition references unknown object '%s'", eventID, cond.Target)
		}
		if cond.Room != "" && !roomIDs[cond.Room] {
			ve.addf("event '%s' condition references unknown room '%s'", eventID, cond.Room)
		}
	}
}

func validateEffectTargets(ve *ValidationError, eventID string, eff types.Effect, roomIDs, objectIDs map[string]bool) {
	switch eff.Type {
	case types.EffMoveObject:
		if !objectIDs[eff.Target] {
			ve.addf("event '%s' effect moves unknown object '%s'", eventID, eff.Target)
		}
		if eff.Dest != "player" && eff.Dest != "destroyed" && !roomIDs[eff.Dest] && !objectIDs[eff.Dest] {
			ve.addf("event '%s' effect moves object to unknown destination '%s'", eventID, eff.Dest)
		}
	case types.EffMovePlayer:
		if !roomIDs[eff.Target] {
			ve.addf("event '%s' effect moves player to unknown room '%s'", eventID, eff.Target)
		}
	case types.EffSetProperty, types.EffClearProperty, types.EffDestroyObject, types.EffRevealObject:
		if !objectIDs[eff.Target] {
			ve.addf("event '%s' effect references unknown object '%s'", eventID, eff.Target)
		}
	case types.EffEnableExit, types.EffDisableExit:
		if !roomIDs[eff.Target] {
			ve.addf("event '%s' effect references unknown room '%s'", eventID, eff.Target)
		}
	}
}
