package actions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cfirth/fable/engine/effects"
	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

func handleLook(cmd types.Command, s *types.GameState, w *world.World) Result {
	return ok(RoomDescription(s.CurrentRoom, s, w, true))
}

func handleGo(cmd types.Command, s *types.GameState, w *world.World) Result {
	dirStr := cmd.Direction
	if dirStr == "" {
		dirStr = cmd.DirectObject
	}
	if dirStr == "" {
		return refuse("Which direction?")
	}

	dir, valid := types.ParseDirection(strings.ToLower(dirStr))
	if !valid {
		return refuse(fmt.Sprintf("'%s' is not a valid direction.", dirStr))
	}

	room := w.Room(s.CurrentRoom)
	if room == nil {
		return refuse("You are nowhere.")
	}

	for i := range room.Exits {
		exit := &room.Exits[i]
		if exit.Direction != dir {
			continue
		}
		if exit.Hidden && !s.Flags[effects.RevealFlag(room.ID, dir)] {
			break // hidden exit behaves as absent
		}

		if exit.Condition != nil {
			blocked := false
			if exit.Condition.Flag != "" && !s.Flags[exit.Condition.Flag] {
				blocked = true
			}
			if exit.Condition.ObjectProperty != "" && exit.Condition.ObjectID != "" {
				if !state.HasProperty(s, exit.Condition.ObjectID, exit.Condition.ObjectProperty) {
					blocked = true
				}
			}
			if blocked {
				msg := exit.Condition.MessageIfBlocked
				if msg == "" {
					msg = "You can't go that way."
				}
				return refuse(msg)
			}
		}

		s.CurrentRoom = exit.TargetRoom
		desc := RoomDescription(exit.TargetRoom, s, w, false)
		s.VisitedRooms[exit.TargetRoom] = true
		return ok(desc)
	}

	return refuse("You can't go that way.")
}

func handleTake(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Take what?")
	}

	obj := w.Object(objID)
	if obj == nil {
		if candidates := w.ResolveObjectName(objID); len(candidates) > 0 {
			objID = candidates[0]
			obj = w.Object(objID)
		}
	}
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if state.HasItem(s, objID) {
		return refuse("You already have that.")
	}

	if state.HasProperty(s, objID, types.PropFixed) ||
		state.HasProperty(s, objID, types.PropScenery) ||
		!state.HasProperty(s, objID, types.PropTakeable) {
		return refuse("You can't take that.")
	}

	if len(s.Inventory) >= w.Config.MaxInventorySize {
		return refuse("You're carrying too many things.")
	}

	state.MoveToInventory(s, objID)
	return ok("Taken.")
}

func handleTakeFrom(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Take what?")
	}
	if w.Object(objID) == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}
	if state.HasItem(s, objID) {
		return refuse("You already have that.")
	}
	if !state.HasProperty(s, objID, types.PropTakeable) {
		return refuse("You can't take that.")
	}

	state.MoveToInventory(s, objID)
	return ok("Taken.")
}

func handleDrop(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Drop what?")
	}
	if !state.HasItem(s, objID) {
		return refuse("You're not carrying that.")
	}

	state.MoveToRoom(s, objID, s.CurrentRoom)
	return ok("Dropped.")
}

func handleInventory(cmd types.Command, s *types.GameState, w *world.World) Result {
	if len(s.Inventory) == 0 {
		return ok("You are empty-handed.")
	}
	lines := []string{"You are carrying:"}
	for _, id := range s.Inventory {
		lines = append(lines, "  A "+objectName(w, id))
	}
	return ok(strings.Join(lines, "\n"))
}

func handleExamine(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Examine what?")
	}

	obj := w.Object(objID)
	if obj == nil {
		if npc := w.NPC(objID); npc != nil {
			if npc.Description != "" {
				return ok(npc.Description)
			}
			return ok(fmt.Sprintf("You see nothing special about the %s.", npc.Name))
		}
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	parts := []string{}
	if obj.Description.Examine != "" {
		parts = append(parts, obj.Description.Examine)
	} else {
		parts = append(parts, fmt.Sprintf("You see nothing special about the %s.", obj.Name))
	}

	if state.HasProperty(s, objID, types.PropContainer) &&
		state.HasProperty(s, objID, types.PropOpen) {
		contents := state.ObjectsInContainer(s, objID)
		if len(contents) > 0 {
			parts = append(parts, fmt.Sprintf("The %s contains:", obj.Name))
			for _, cid := range contents {
				parts = append(parts, "  A "+objectName(w, cid))
			}
		} else {
			parts = append(parts, fmt.Sprintf("The %s is empty.", obj.Name))
		}
	}

	return ok(strings.Join(parts, "\n"))
}

func handleOpen(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Open what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropOpenable) {
		return refuse("You can't open that.")
	}
	if state.HasProperty(s, objID, types.PropOpen) {
		return refuse("It's already open.")
	}
	if state.HasProperty(s, objID, types.PropLocked) {
		return refuse("It's locked.")
	}

	state.AddProperty(s, objID, types.PropOpen)

	parts := []string{"Opened."}
	if obj.Description.OnOpen != "" {
		parts = []string{obj.Description.OnOpen}
	}

	if state.HasProperty(s, objID, types.PropContainer) {
		for _, cid := range state.ObjectsInContainer(s, objID) {
			parts = append(parts, fmt.Sprintf("The %s contains a %s.", obj.Name, objectName(w, cid)))
		}
	}

	return ok(strings.Join(parts, "\n"))
}

func handleClose(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Close what?")
	}
	if w.Object(objID) == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropOpenable) {
		return refuse("You can't close that.")
	}
	if !state.HasProperty(s, objID, types.PropOpen) {
		return refuse("It's already closed.")
	}

	state.RemoveProperty(s, objID, types.PropOpen)
	return ok("Closed.")
}

func handleTurnOn(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Turn on what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropLightSource) {
		return refuse("You can't turn that on.")
	}
	if state.HasProperty(s, objID, types.PropLit) {
		return refuse("It's already on.")
	}

	state.AddProperty(s, objID, types.PropLit)
	return ok(fmt.Sprintf("The %s is now on.", obj.Name))
}

func handleTurnOff(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Turn off what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropLightSource) {
		return refuse("You can't turn that off.")
	}
	if !state.HasProperty(s, objID, types.PropLit) {
		return refuse("It's already off.")
	}

	state.RemoveProperty(s, objID, types.PropLit)
	return ok(fmt.Sprintf("The %s is now off.", obj.Name))
}

func handlePut(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	containerID := cmd.IndirectObject
	if objID == "" {
		return refuse("Put what?")
	}
	if containerID == "" {
		return refuse("Where do you want to put it?")
	}

	if !state.HasItem(s, objID) {
		return refuse("You're not carrying that.")
	}

	container := w.Object(containerID)
	if container == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.IndirectObject))
	}

	isContainer := state.HasProperty(s, containerID, types.PropContainer)
	isSurface := state.HasProperty(s, containerID, types.PropSurface)
	if !isContainer && !isSurface {
		return refuse("You can't put things there.")
	}
	if isContainer && !state.HasProperty(s, containerID, types.PropOpen) {
		return refuse(fmt.Sprintf("The %s is closed.", container.Name))
	}

	state.MoveToContainer(s, objID, containerID)
	if isSurface {
		return ok(fmt.Sprintf("You put the %s on the %s.", objectName(w, objID), container.Name))
	}
	return ok(fmt.Sprintf("You put the %s in the %s.", objectName(w, objID), container.Name))
}

func handleUnlock(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	keyID := cmd.IndirectObject
	if objID == "" {
		return refuse("Unlock what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropLockable) {
		return refuse("You can't unlock that.")
	}
	if !state.HasProperty(s, objID, types.PropLocked) {
		return refuse("It's not locked.")
	}

	if obj.KeyID != "" {
		if keyID == "" {
			return refuse("What do you want to unlock it with?")
		}
		if keyID != obj.KeyID {
			return refuse("That doesn't work.")
		}
		if !state.HasItem(s, keyID) {
			return refuse("You don't have that.")
		}
	}

	state.RemoveProperty(s, objID, types.PropLocked)
	return ok("Unlocked.")
}

func handleRead(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Read what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropReadable) {
		return refuse("There's nothing to read on that.")
	}

	if obj.Description.OnRead != "" {
		return ok(obj.Description.OnRead)
	}
	return ok("There's nothing written on it.")
}

func handleEat(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Eat what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	if !state.HasProperty(s, objID, types.PropEdible) {
		return refuse("That's not something you can eat.")
	}

	state.Destroy(s, objID)
	return ok(fmt.Sprintf("You eat the %s. Not bad.", obj.Name))
}

func handleAttack(cmd types.Command, s *types.GameState, w *world.World) Result {
	target := cmd.DirectObject
	if target == "" {
		return refuse("Attack what?")
	}

	npc := w.NPC(target)
	if npc == nil {
		if npcIDs := w.ResolveNPCName(target); len(npcIDs) > 0 {
			target = npcIDs[0]
			npc = w.NPC(target)
		}
	}
	if npc == nil {
		return refuse("Violence isn't the answer here.")
	}

	ns := s.NPCs[target]
	if ns == nil || !ns.Alive {
		return refuse("It's already dead.")
	}
	if ns.Location != s.CurrentRoom {
		return refuse("I don't see that here.")
	}

	// Weapon choice: explicit indirect object, else best weapon carried.
	weaponDamage := 1
	if cmd.IndirectObject != "" {
		if weapon := w.Object(cmd.IndirectObject); weapon != nil && weapon.Damage > 0 {
			weaponDamage = weapon.Damage
		}
	} else {
		for _, invID := range s.Inventory {
			if !state.HasProperty(s, invID, types.PropWeapon) {
				continue
			}
			if obj := w.Object(invID); obj != nil && obj.Damage > weaponDamage {
				weaponDamage = obj.Damage
			}
		}
	}

	ns.Health -= weaponDamage
	if ns.Health <= 0 {
		ns.Alive = false
		if npc.DeathFlag != "" {
			s.Flags[npc.DeathFlag] = true
		}
		msg := npc.DeathMessage
		if msg == "" {
			msg = fmt.Sprintf("The %s is dead!", npc.Name)
		}
		// The NPC's belongings fall to the floor.
		for _, itemID := range ns.Inventory {
			state.MoveToRoom(s, itemID, s.CurrentRoom)
		}
		ns.Inventory = nil
		return ok(msg)
	}

	msgs := []string{fmt.Sprintf("You strike the %s!", npc.Name)}
	counter := npc.Behavior.CombatMessages["counter"]
	if counter == "" {
		counter = fmt.Sprintf("The %s strikes back!", npc.Name)
	}
	msgs = append(msgs, counter)

	s.PlayerHealth -= npc.Damage
	if s.PlayerHealth <= 0 {
		s.PlayerAlive = false
		msgs = append(msgs, "You have died.")
	}
	return ok(strings.Join(msgs, "\n"))
}

func handleMove(cmd types.Command, s *types.GameState, w *world.World) Result {
	objID := cmd.DirectObject
	if objID == "" {
		return refuse("Move what?")
	}
	obj := w.Object(objID)
	if obj == nil {
		return refuse(fmt.Sprintf("I don't see any '%s' here.", cmd.DirectObject))
	}

	// Moving things is an event hook; without a matching event there is
	// nothing underneath.
	return ok(fmt.Sprintf("Moving the %s reveals nothing special.", obj.Name))
}

func handleWait(cmd types.Command, s *types.GameState, w *world.World) Result {
	return ok("Time passes.")
}

func handleScore(cmd types.Command, s *types.GameState, w *world.World) Result {
	return ok(fmt.Sprintf("Your score is %d (out of %d). This gives you the rank of %s.",
		s.Score, w.Config.MaxScore, Rank(s, w)))
}

func handleQuit(cmd types.Command, s *types.GameState, w *world.World) Result {
	return Result{Success: true, Quit: true}
}

// Rank returns the player's rank: the highest configured threshold not
// exceeding the current score, defaulting to Beginner.
func Rank(s *types.GameState, w *world.World) string {
	rank := "Beginner"
	thresholds := make([]int, 0, len(w.Config.Ranks))
	for t := range w.Config.Ranks {
		thresholds = append(thresholds, t)
	}
	sort.Ints(thresholds)
	for _, t := range thresholds {
		if s.Score >= t {
			rank = w.Config.Ranks[t]
		}
	}
	return rank
}
