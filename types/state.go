package types

// PlacementKind classifies where an object currently is.
type PlacementKind string

const (
	InRoom      PlacementKind = "room"
	InInventory PlacementKind = "inventory"
	InContainer PlacementKind = "container"
	Destroyed   PlacementKind = "destroyed"
)

// Placement is the single tagged location of an object: exactly one of a
// room, the player's inventory, a parent container, or destroyed. ID is the
// room or container according to Kind, empty otherwise.
type Placement struct {
	Kind PlacementKind `json:"kind"`
	ID   string        `json:"id,omitempty"`
}

// Room reports whether the placement is the given room.
func (p Placement) Room(roomID string) bool {
	return p.Kind == InRoom && p.ID == roomID
}

// Container reports whether the placement is inside the given container.
func (p Placement) Container(containerID string) bool {
	return p.Kind == InContainer && p.ID == containerID
}

// ObjectState is the runtime state of one object instance.
type ObjectState struct {
	Placement  Placement               `json:"placement"`
	Properties map[ObjectProperty]bool `json:"-"`
}

// NPCState is the runtime state of one NPC.
type NPCState struct {
	Location  string   `json:"location,omitempty"`
	Health    int      `json:"health"`
	Alive     bool     `json:"alive"`
	Inventory []string `json:"inventory,omitempty"`
	Attitude  Attitude `json:"attitude"`
}

// GameState is all mutable runtime state for a session. It is owned
// exclusively by the running engine and mutated only by action handlers,
// the effect applier, and the per-turn system ticks.
type GameState struct {
	CurrentRoom  string
	Inventory    []string // insertion order = pickup order, no duplicates
	Score        int
	Turns        int
	Flags        map[string]bool
	Counters     map[string]int
	VisitedRooms map[string]bool
	Objects      map[string]*ObjectState
	NPCs         map[string]*NPCState
	FiredEvents  map[string]bool
	PlayerAlive  bool
	PlayerHealth int
	DarkTurns    int

	// RNG bookkeeping for deterministic save/restore.
	RNGSeed     int64
	RNGPosition int64
}
