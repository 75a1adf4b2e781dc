// Package world provides indexed, read-only access to loaded game content.
package world

import (
	"sort"
	"strings"

	"github.com/cfirth/fable/types"
)

// Content is the full validated content set handed over by the loader.
// Slices preserve declaration order, which resolution tie-breaking and
// room listings depend on.
type Content struct {
	Config  types.GameConfig
	Rooms   []types.Room
	Objects []types.GameObject
	NPCs    []types.NPC
	Verbs   []types.VerbDefinition
	Events  []types.Event
}

// World is the immutable index over game content. It is constructed once
// per session and never mutated; all lookups are read-only.
type World struct {
	Config types.GameConfig

	rooms   map[string]*types.Room
	objects map[string]*types.GameObject
	npcs    map[string]*types.NPC
	verbs   map[string]*types.VerbDefinition
	events  map[string]*types.Event

	objectOrder []string
	npcOrder    []string

	objectNames map[string][]string // lowercase name/alias -> ids, declaration order
	npcNames    map[string][]string
	verbNames   map[string]string

	eventsByTrigger map[types.TriggerType][]*types.Event
}

// New builds the index. The caller must hand over validated content; New
// does not re-validate cross-references.
func New(c *Content) *World {
	w := &World{
		Config:          c.Config,
		rooms:           make(map[string]*types.Room, len(c.Rooms)),
		objects:         make(map[string]*types.GameObject, len(c.Objects)),
		npcs:            make(map[string]*types.NPC, len(c.NPCs)),
		verbs:           make(map[string]*types.VerbDefinition, len(c.Verbs)),
		events:          make(map[string]*types.Event, len(c.Events)),
		objectNames:     map[string][]string{},
		npcNames:        map[string][]string{},
		verbNames:       map[string]string{},
		eventsByTrigger: map[types.TriggerType][]*types.Event{},
	}

	for i := range c.Rooms {
		r := &c.Rooms[i]
		w.rooms[r.ID] = r
	}

	for i := range c.Objects {
		o := &c.Objects[i]
		w.objects[o.ID] = o
		w.objectOrder = append(w.objectOrder, o.ID)
		for _, name := range append([]string{o.Name}, o.Aliases...) {
			key := strings.ToLower(name)
			w.objectNames[key] = append(w.objectNames[key], o.ID)
		}
	}

	for i := range c.NPCs {
		n := &c.NPCs[i]
		w.npcs[n.ID] = n
		w.npcOrder = append(w.npcOrder, n.ID)
		for _, name := range append([]string{n.Name}, n.Aliases...) {
			key := strings.ToLower(name)
			w.npcNames[key] = append(w.npcNames[key], n.ID)
		}
	}

	for i := range c.Verbs {
		v := &c.Verbs[i]
		w.verbs[v.ID] = v
		for _, name := range v.Names {
			w.verbNames[strings.ToLower(name)] = v.ID
		}
	}

	for i := range c.Events {
		e := &c.Events[i]
		w.events[e.ID] = e
		w.eventsByTrigger[e.Trigger] = append(w.eventsByTrigger[e.Trigger], e)
	}
	// Higher priority first; stable sort keeps declaration order for ties.
	for trigger := range w.eventsByTrigger {
		events := w.eventsByTrigger[trigger]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Priority > events[j].Priority
		})
	}

	return w
}

// Room returns a room by ID, or nil.
func (w *World) Room(id string) *types.Room {
	return w.rooms[id]
}

// Object returns an object by ID, or nil.
func (w *World) Object(id string) *types.GameObject {
	return w.objects[id]
}

// NPC returns an NPC by ID, or nil.
func (w *World) NPC(id string) *types.NPC {
	return w.npcs[id]
}

// Verb returns a verb definition by ID, or nil.
func (w *World) Verb(id string) *types.VerbDefinition {
	return w.verbs[id]
}

// ResolveVerbName maps a verb word to its verb ID, or "".
func (w *World) ResolveVerbName(name string) string {
	return w.verbNames[strings.ToLower(name)]
}

// ResolveObjectName returns the object IDs matching a name or alias,
// case-insensitively, in declaration order. Collisions are preserved as a
// list, never an error.
func (w *World) ResolveObjectName(name string) []string {
	return w.objectNames[strings.ToLower(name)]
}

// ResolveNPCName returns the NPC IDs matching a name or alias.
func (w *World) ResolveNPCName(name string) []string {
	return w.npcNames[strings.ToLower(name)]
}

// EventsForTrigger returns events for a trigger, sorted by descending
// priority with declaration order breaking ties.
func (w *World) EventsForTrigger(t types.TriggerType) []*types.Event {
	return w.eventsByTrigger[t]
}

// Objects returns all objects in declaration order.
func (w *World) Objects() []*types.GameObject {
	result := make([]*types.GameObject, 0, len(w.objectOrder))
	for _, id := range w.objectOrder {
		result = append(result, w.objects[id])
	}
	return result
}

// NPCs returns all NPCs in declaration order.
func (w *World) NPCs() []*types.NPC {
	result := make([]*types.NPC, 0, len(w.npcOrder))
	for _, id := range w.npcOrder {
		result = append(result, w.npcs[id])
	}
	return result
}

// Verbs returns all verb definitions. Order is not significant.
func (w *World) Verbs() []*types.VerbDefinition {
	result := make([]*types.VerbDefinition, 0, len(w.verbs))
	for _, v := range w.verbs {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
