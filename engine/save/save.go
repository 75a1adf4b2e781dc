// Package save implements snapshot serialization of game state and the
// slot stores that persist snapshots.
package save

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/cfirth/fable/types"
)

// FormatVersion identifies the snapshot layout. Bump on breaking changes.
const FormatVersion = "1"

// objectSnapshot is the serialized form of one object's runtime state.
// Properties are stored as a sorted list so snapshots are byte-stable.
type objectSnapshot struct {
	Placement  types.Placement `json:"placement"`
	Properties []string        `json:"properties,omitempty"`
}

// Snapshot is the JSON-serializable save format. Set-valued state (flags,
// visited rooms, fired events) is stored as sorted lists.
type Snapshot struct {
	Version      string                    `json:"version"`
	Game         string                    `json:"game"`
	SessionID    string                    `json:"session_id"`
	CurrentRoom  string                    `json:"current_room"`
	Inventory    []string                  `json:"inventory"`
	Score        int                       `json:"score"`
	Turns        int                       `json:"turns"`
	Flags        []string                  `json:"flags,omitempty"`
	Counters     map[string]int            `json:"counters,omitempty"`
	VisitedRooms []string                  `json:"visited_rooms,omitempty"`
	Objects      map[string]objectSnapshot `json:"objects"`
	NPCs         map[string]types.NPCState `json:"npcs,omitempty"`
	FiredEvents  []string                  `json:"fired_events,omitempty"`
	PlayerAlive  bool                      `json:"player_alive"`
	PlayerHealth int                       `json:"player_health"`
	DarkTurns    int                       `json:"dark_turns,omitempty"`
	RNGSeed      int64                     `json:"rng_seed"`
	RNGPosition  int64                     `json:"rng_position"`
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k, v := range set {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Marshal serializes game state to indented JSON.
func Marshal(s *types.GameState, gameTitle string) ([]byte, error) {
	snap := Snapshot{
		Version:      FormatVersion,
		Game:         gameTitle,
		SessionID:    uuid.NewString(),
		CurrentRoom:  s.CurrentRoom,
		Inventory:    append([]string{}, s.Inventory...),
		Score:        s.Score,
		Turns:        s.Turns,
		Flags:        sortedKeys(s.Flags),
		Counters:     s.Counters,
		VisitedRooms: sortedKeys(s.VisitedRooms),
		Objects:      make(map[string]objectSnapshot, len(s.Objects)),
		NPCs:         make(map[string]types.NPCState, len(s.NPCs)),
		FiredEvents:  sortedKeys(s.FiredEvents),
		PlayerAlive:  s.PlayerAlive,
		PlayerHealth: s.PlayerHealth,
		DarkTurns:    s.DarkTurns,
		RNGSeed:      s.RNGSeed,
		RNGPosition:  s.RNGPosition,
	}

	for id, os := range s.Objects {
		props := make([]string, 0, len(os.Properties))
		for p, set := range os.Properties {
			if set {
				props = append(props, string(p))
			}
		}
		sort.Strings(props)
		snap.Objects[id] = objectSnapshot{Placement: os.Placement, Properties: props}
	}

	for id, ns := range s.NPCs {
		snap.NPCs[id] = *ns
	}

	return json.MarshalIndent(snap, "", "  ")
}

// Unmarshal parses snapshot bytes.
func Unmarshal(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Apply replaces game state wholesale with the snapshot's contents.
func Apply(s *types.GameState, snap *Snapshot) {
	s.CurrentRoom = snap.CurrentRoom
	s.Inventory = append([]string{}, snap.Inventory...)
	s.Score = snap.Score
	s.Turns = snap.Turns
	s.PlayerAlive = snap.PlayerAlive
	s.PlayerHealth = snap.PlayerHealth
	s.DarkTurns = snap.DarkTurns
	s.RNGSeed = snap.RNGSeed
	s.RNGPosition = snap.RNGPosition

	s.Flags = make(map[string]bool, len(snap.Flags))
	for _, f := range snap.Flags {
		s.Flags[f] = true
	}

	s.Counters = make(map[string]int, len(snap.Counters))
	for k, v := range snap.Counters {
		s.Counters[k] = v
	}

	s.VisitedRooms = make(map[string]bool, len(snap.VisitedRooms))
	for _, r := range snap.VisitedRooms {
		s.VisitedRooms[r] = true
	}

	s.FiredEvents = make(map[string]bool, len(snap.FiredEvents))
	for _, e := range snap.FiredEvents {
		s.FiredEvents[e] = true
	}

	s.Objects = make(map[string]*types.ObjectState, len(snap.Objects))
	for id, os := range snap.Objects {
		props := make(map[types.ObjectProperty]bool, len(os.Properties))
		for _, p := range os.Properties {
			props[types.ObjectProperty(p)] = true
		}
		s.Objects[id] = &types.ObjectState{Placement: os.Placement, Properties: props}
	}

	s.NPCs = make(map[string]*types.NPCState, len(snap.NPCs))
	for id, ns := range snap.NPCs {
		copied := ns
		s.NPCs[id] = &copied
	}
}
