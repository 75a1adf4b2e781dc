package actions

import (
	"fmt"
	"strings"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// RoomDescription builds the full description of a room: display name,
// description variant, visible objects, and NPCs. The long variant is used
// on first visit or when forced; otherwise the short one when available.
func RoomDescription(roomID string, s *types.GameState, w *world.World, forceLong bool) string {
	room := w.Room(roomID)
	if room == nil {
		return "You are nowhere."
	}

	parts := []string{room.Name}

	switch {
	case forceLong || !s.VisitedRooms[roomID]:
		if room.FirstVisitDescription != "" {
			parts = append(parts, room.FirstVisitDescription)
		} else {
			parts = append(parts, room.Description)
		}
	case room.ShortDescription != "":
		parts = append(parts, room.ShortDescription)
	default:
		parts = append(parts, room.Description)
	}

	// Objects in declaration order, scenery and hidden suppressed.
	for _, obj := range w.Objects() {
		if !state.Placement(s, obj.ID).Room(roomID) {
			continue
		}
		if state.HasProperty(s, obj.ID, types.PropScenery) ||
			state.HasProperty(s, obj.ID, types.PropHidden) {
			continue
		}
		if obj.Description.Room != "" {
			parts = append(parts, obj.Description.Room)
		} else {
			parts = append(parts, fmt.Sprintf("There is a %s here.", obj.Name))
		}
	}

	for _, npc := range w.NPCs() {
		ns := s.NPCs[npc.ID]
		if ns == nil || !ns.Alive || ns.Location != roomID {
			continue
		}
		if npc.Description != "" {
			parts = append(parts, npc.Description)
		} else {
			parts = append(parts, fmt.Sprintf("A %s is here.", npc.Name))
		}
	}

	return strings.Join(parts, "\n")
}

// objectName returns the display name for an object ID.
func objectName(w *world.World, id string) string {
	if obj := w.Object(id); obj != nil {
		return obj.Name
	}
	return id
}
