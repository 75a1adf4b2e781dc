// Package state manages the mutable game state: object placements,
// property sets, NPC runtime state, flags, and counters.
package state

import (
	"sort"

	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// New creates a fresh game state seeded from the world's initial
// per-entity state. World properties are only the seed; after this point
// property reads go through the state copy exclusively.
func New(w *world.World) *types.GameState {
	s := &types.GameState{
		CurrentRoom:  w.Config.StartingRoom,
		Inventory:    []string{},
		Flags:        map[string]bool{},
		Counters:     map[string]int{},
		VisitedRooms: map[string]bool{},
		Objects:      map[string]*types.ObjectState{},
		NPCs:         map[string]*types.NPCState{},
		FiredEvents:  map[string]bool{},
		PlayerAlive:  true,
		PlayerHealth: 10,
	}

	for _, obj := range w.Objects() {
		os := &types.ObjectState{Properties: map[types.ObjectProperty]bool{}}
		for _, p := range obj.Properties {
			os.Properties[p] = true
		}
		switch {
		case obj.ParentObject != "":
			os.Placement = types.Placement{Kind: types.InContainer, ID: obj.ParentObject}
		case obj.Location == "player":
			os.Placement = types.Placement{Kind: types.InInventory}
			s.Inventory = append(s.Inventory, obj.ID)
		case obj.Location != "":
			os.Placement = types.Placement{Kind: types.InRoom, ID: obj.Location}
		default:
			os.Placement = types.Placement{Kind: types.Destroyed}
		}
		s.Objects[obj.ID] = os
	}

	for _, npc := range w.NPCs() {
		health := npc.Health
		if health == 0 {
			health = 10
		}
		s.NPCs[npc.ID] = &types.NPCState{
			Location:  npc.Location,
			Health:    health,
			Alive:     true,
			Inventory: append([]string{}, npc.Inventory...),
			Attitude:  npc.Attitude,
		}
	}

	s.VisitedRooms[s.CurrentRoom] = true
	return s
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(s *types.GameState, name string) bool {
	return s.Flags[name]
}

// GetCounter returns the value of a counter. Unset counters return 0.
func GetCounter(s *types.GameState, name string) int {
	return s.Counters[name]
}

// HasItem reports whether the player carries the given object.
func HasItem(s *types.GameState, objectID string) bool {
	for _, id := range s.Inventory {
		if id == objectID {
			return true
		}
	}
	return false
}

// Placement returns the current placement of an object. Unknown objects
// report as destroyed.
func Placement(s *types.GameState, objectID string) types.Placement {
	if os, ok := s.Objects[objectID]; ok {
		return os.Placement
	}
	return types.Placement{Kind: types.Destroyed}
}

func ensureObject(s *types.GameState, objectID string) *types.ObjectState {
	os, ok := s.Objects[objectID]
	if !ok {
		os = &types.ObjectState{
			Placement:  types.Placement{Kind: types.Destroyed},
			Properties: map[types.ObjectProperty]bool{},
		}
		s.Objects[objectID] = os
	}
	if os.Properties == nil {
		os.Properties = map[types.ObjectProperty]bool{}
	}
	return os
}

// removeFromInventory drops the object from the inventory list if present.
func removeFromInventory(s *types.GameState, objectID string) {
	for i, id := range s.Inventory {
		if id == objectID {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return
		}
	}
}

// MoveToRoom places an object in a room, clearing any prior inventory or
// container placement.
func MoveToRoom(s *types.GameState, objectID, roomID string) {
	os := ensureObject(s, objectID)
	removeFromInventory(s, objectID)
	os.Placement = types.Placement{Kind: types.InRoom, ID: roomID}
}

// MoveToInventory places an object in the player's inventory. Appending is
// skipped if the object is already carried, so the pickup order is stable.
func MoveToInventory(s *types.GameState, objectID string) {
	os := ensureObject(s, objectID)
	if !HasItem(s, objectID) {
		s.Inventory = append(s.Inventory, objectID)
	}
	os.Placement = types.Placement{Kind: types.InInventory}
}

// MoveToContainer parents an object to a container or surface.
func MoveToContainer(s *types.GameState, objectID, containerID string) {
	os := ensureObject(s, objectID)
	removeFromInventory(s, objectID)
	os.Placement = types.Placement{Kind: types.InContainer, ID: containerID}
}

// Destroy removes an object from play.
func Destroy(s *types.GameState, objectID string) {
	os := ensureObject(s, objectID)
	removeFromInventory(s, objectID)
	os.Placement = types.Placement{Kind: types.Destroyed}
}

// AddProperty adds a property to an object's runtime property set.
func AddProperty(s *types.GameState, objectID string, p types.ObjectProperty) {
	ensureObject(s, objectID).Properties[p] = true
}

// RemoveProperty removes a property from an object's runtime property set.
func RemoveProperty(s *types.GameState, objectID string, p types.ObjectProperty) {
	if os, ok := s.Objects[objectID]; ok && os.Properties != nil {
		delete(os.Properties, p)
	}
}

// HasProperty reports whether an object currently has a property.
func HasProperty(s *types.GameState, objectID string, p types.ObjectProperty) bool {
	if os, ok := s.Objects[objectID]; ok && os.Properties != nil {
		return os.Properties[p]
	}
	return false
}

// ObjectsInRoom returns the IDs of objects placed directly in a room,
// sorted for deterministic iteration.
func ObjectsInRoom(s *types.GameState, roomID string) []string {
	var ids []string
	for id, os := range s.Objects {
		if os.Placement.Room(roomID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ObjectsInContainer returns the IDs of objects parented to a container,
// sorted for deterministic iteration.
func ObjectsInContainer(s *types.GameState, containerID string) []string {
	var ids []string
	for id, os := range s.Objects {
		if os.Placement.Container(containerID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// NPCsInRoom returns the IDs of living NPCs in a room, sorted.
func NPCsInRoom(s *types.GameState, roomID string) []string {
	var ids []string
	for id, ns := range s.NPCs {
		if ns.Alive && ns.Location == roomID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
