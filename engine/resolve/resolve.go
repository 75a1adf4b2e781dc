// Package resolve maps a structured command's free-text object references
// to exact entity IDs using world indices and accessibility rules.
package resolve

import (
	"fmt"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// ResolvedAction is a command with all references replaced by exact IDs.
type ResolvedAction struct {
	VerbID           string
	DirectObjectID   string
	IndirectObjectID string
	NPCTargetID      string
}

// UnknownVerbError indicates the verb word matched no verb definition.
type UnknownVerbError struct {
	Verb string
}

func (e *UnknownVerbError) Error() string {
	return fmt.Sprintf("I don't know how to '%s'.", e.Verb)
}

// NotFoundError indicates a reference matched no accessible entity.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("I don't see any '%s' here.", e.Name)
}

// Resolver resolves commands against a world.
type Resolver struct {
	world *world.World
}

// New creates a resolver for the given world.
func New(w *world.World) *Resolver {
	return &Resolver{world: w}
}

// Resolve converts a command into an unambiguous target set. The returned
// error is always user-facing ((a) in the error taxonomy): no state is
// mutated and no turn is consumed.
func (r *Resolver) Resolve(cmd types.Command, s *types.GameState) (ResolvedAction, error) {
	var res ResolvedAction

	res.VerbID = cmd.Verb
	if r.world.Verb(res.VerbID) == nil {
		resolved := r.world.ResolveVerbName(cmd.Verb)
		if resolved == "" {
			return res, &UnknownVerbError{Verb: cmd.Verb}
		}
		res.VerbID = resolved
	}

	if cmd.DirectObject != "" {
		id, isNPC, err := r.resolveTarget(cmd.DirectObject, s)
		if err != nil {
			return res, err
		}
		if isNPC {
			res.NPCTargetID = id
		} else {
			res.DirectObjectID = id
		}
	}

	if cmd.IndirectObject != "" {
		id, isNPC, err := r.resolveTarget(cmd.IndirectObject, s)
		if err != nil {
			return res, err
		}
		if isNPC {
			res.NPCTargetID = id
		} else {
			res.IndirectObjectID = id
		}
	}

	return res, nil
}

// resolveTarget maps one reference to an entity ID and whether it is an NPC.
// NPC candidates win over objects; among objects, candidates are filtered by
// accessibility and the first match in declaration order is taken. The
// first-match tie-break is intentional: deterministic, not smartest-match.
func (r *Resolver) resolveTarget(name string, s *types.GameState) (string, bool, error) {
	for _, npcID := range r.world.ResolveNPCName(name) {
		ns := s.NPCs[npcID]
		if ns != nil && ns.Alive && ns.Location == s.CurrentRoom {
			return npcID, true, nil
		}
	}

	objectIDs := r.world.ResolveObjectName(name)
	if len(objectIDs) == 0 {
		// Fall back to treating the raw text as a literal object ID.
		if r.world.Object(name) != nil {
			objectIDs = []string{name}
		} else {
			return "", false, &NotFoundError{Name: name}
		}
	}

	for _, id := range objectIDs {
		if r.Accessible(id, s) {
			return id, false, nil
		}
	}
	return "", false, &NotFoundError{Name: name}
}

// Accessible reports whether the player can reach an object for reference
// resolution: held, in the current room and not hidden, or inside an
// accessible container that is transparent or open.
func (r *Resolver) Accessible(objectID string, s *types.GameState) bool {
	return r.accessible(objectID, s, map[string]bool{})
}

func (r *Resolver) accessible(objectID string, s *types.GameState, seen map[string]bool) bool {
	if seen[objectID] {
		// Containment cycle in authored data; treat as unreachable.
		return false
	}
	seen[objectID] = true

	os, ok := s.Objects[objectID]
	if !ok {
		return false
	}

	switch os.Placement.Kind {
	case types.InInventory:
		return true

	case types.InRoom:
		if os.Placement.ID != s.CurrentRoom {
			return false
		}
		return !state.HasProperty(s, objectID, types.PropHidden)

	case types.InContainer:
		parent := os.Placement.ID
		if !r.accessible(parent, s, seen) {
			return false
		}
		return state.HasProperty(s, parent, types.PropTransparent) ||
			state.HasProperty(s, parent, types.PropOpen)

	default:
		return false
	}
}
