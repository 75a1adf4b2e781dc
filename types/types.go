// Package types defines the shared data structures for the Fable engine.
// This package contains only type definitions and tag validation — no game logic.
package types

import (
	"encoding/json"
	"fmt"
)

// Command is the structured output of a parser collaborator. It is the
// contract between any parser (keyword or LLM) and the engine: object
// references are either exact entity IDs or free text to be resolved.
type Command struct {
	Verb           string `json:"verb"`
	DirectObject   string `json:"direct_object,omitempty"`
	IndirectObject string `json:"indirect_object,omitempty"`
	Preposition    string `json:"preposition,omitempty"`
	Direction      string `json:"direction,omitempty"`
	RawInput       string `json:"raw_input,omitempty"`
}

// GameConfig is the top-level game configuration from game.json.
type GameConfig struct {
	Title            string         `json:"title"`
	Author           string         `json:"author"`
	Version          string         `json:"version"`
	Description      string         `json:"description"`
	StartingRoom     string         `json:"starting_room"`
	IntroText        string         `json:"intro_text"`
	MaxScore         int            `json:"max_score"`
	MaxInventorySize int            `json:"max_inventory_size"`
	TrophyContainer  string         `json:"trophy_container"`
	Ranks            map[int]string `json:"-"`
}

// configJSON mirrors GameConfig with ranks keyed by string thresholds,
// since JSON object keys are always strings.
type configJSON struct {
	Title            string            `json:"title"`
	Author           string            `json:"author"`
	Version          string            `json:"version"`
	Description      string            `json:"description"`
	StartingRoom     string            `json:"starting_room"`
	IntroText        string            `json:"intro_text"`
	MaxScore         int               `json:"max_score"`
	MaxInventorySize int               `json:"max_inventory_size"`
	TrophyContainer  string            `json:"trophy_container"`
	Ranks            map[string]string `json:"ranks"`
}

// UnmarshalJSON decodes a game config, converting rank thresholds to ints
// and applying defaults.
func (g *GameConfig) UnmarshalJSON(data []byte) error {
	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Title = raw.Title
	g.Author = raw.Author
	g.Version = raw.Version
	g.Description = raw.Description
	g.StartingRoom = raw.StartingRoom
	g.IntroText = raw.IntroText
	g.MaxScore = raw.MaxScore
	g.MaxInventorySize = raw.MaxInventorySize
	g.TrophyContainer = raw.TrophyContainer
	if g.Title == "" {
		g.Title = "Untitled Adventure"
	}
	if g.Version == "" {
		g.Version = "1.0"
	}
	if g.MaxInventorySize == 0 {
		g.MaxInventorySize = 100
	}
	if g.TrophyContainer == "" {
		g.TrophyContainer = "trophy_case"
	}
	if len(raw.Ranks) > 0 {
		g.Ranks = make(map[int]string, len(raw.Ranks))
		for k, v := range raw.Ranks {
			var threshold int
			if _, err := fmt.Sscanf(k, "%d", &threshold); err != nil {
				return fmt.Errorf("rank threshold %q is not a number", k)
			}
			g.Ranks[threshold] = v
		}
	}
	return nil
}

// ExitCondition gates traversal of an exit.
type ExitCondition struct {
	Flag             string         `json:"flag,omitempty"`
	ObjectID         string         `json:"object_id,omitempty"`
	ObjectProperty   ObjectProperty `json:"object_property,omitempty"`
	MessageIfBlocked string         `json:"message_if_blocked,omitempty"`
}

// Exit connects a room to another room in one direction.
type Exit struct {
	Direction   Direction      `json:"direction"`
	TargetRoom  string         `json:"target_room"`
	Condition   *ExitCondition `json:"condition,omitempty"`
	Description string         `json:"description,omitempty"`
	Hidden      bool           `json:"hidden,omitempty"`
}

// Room is a location in the game world.
type Room struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	ShortDescription      string `json:"short_description,omitempty"`
	FirstVisitDescription string `json:"first_visit_description,omitempty"`
	DarkDescription       string `json:"dark_description,omitempty"`
	Exits                 []Exit `json:"exits,omitempty"`
	IsDark                bool   `json:"is_dark,omitempty"`
}

// ObjectDescription holds description variants for an object.
type ObjectDescription struct {
	Room    string `json:"room,omitempty"`
	Examine string `json:"examine,omitempty"`
	OnOpen  string `json:"on_open,omitempty"`
	OnRead  string `json:"on_read,omitempty"`
}

// GameObject is an interactive object in the game world.
type GameObject struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Aliases      []string          `json:"aliases,omitempty"`
	Description  ObjectDescription `json:"description"`
	Location     string            `json:"location,omitempty"`
	ParentObject string            `json:"parent_object,omitempty"`
	Properties   []ObjectProperty  `json:"properties,omitempty"`
	Size         int               `json:"size,omitempty"`
	Capacity     int               `json:"capacity,omitempty"`
	KeyID        string            `json:"key_id,omitempty"`
	Damage       int               `json:"damage,omitempty"`
	LightFuel    int               `json:"light_fuel,omitempty"`
	ScoreValue   int               `json:"score_value,omitempty"`
}

// NPCBehavior configures an NPC's per-turn behavior.
type NPCBehavior struct {
	Wanders        bool              `json:"wanders,omitempty"`
	WanderRooms    []string          `json:"wander_rooms,omitempty"`
	StealsItems    bool              `json:"steals_items,omitempty"`
	BlocksExit     string            `json:"blocks_exit,omitempty"`
	CombatMessages map[string]string `json:"combat_messages,omitempty"`
}

// NPC is a non-player character.
type NPC struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Aliases      []string    `json:"aliases,omitempty"`
	Description  string      `json:"description,omitempty"`
	Location     string      `json:"location,omitempty"`
	Attitude     Attitude    `json:"attitude,omitempty"`
	Health       int         `json:"health,omitempty"`
	MaxHealth    int         `json:"max_health,omitempty"`
	Damage       int         `json:"damage,omitempty"`
	Behavior     NPCBehavior `json:"behavior"`
	DeathMessage string      `json:"death_message,omitempty"`
	DeathFlag    string      `json:"death_flag,omitempty"`
	Inventory    []string    `json:"inventory,omitempty"`
}

// VerbDefinition declares a game verb and the words that invoke it.
type VerbDefinition struct {
	ID          string   `json:"id"`
	Names       []string `json:"names"`
	Description string   `json:"description,omitempty"`
}

// Condition is a declarative predicate over game state. Operands are typed
// per condition kind; the loosely-typed "value" payload from content data is
// decoded into the matching field and validated during unmarshalling.
type Condition struct {
	Type   ConditionType
	Target string
	Room   string         // object_in_room: explicit room, "" means current room
	Prop   ObjectProperty // object_has_property
	Amount int            // counter comparisons
}

// UnmarshalJSON decodes {type, target, value} into typed operands,
// rejecting unknown tags and invalid payloads at load time.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   string          `json:"type"`
		Target string          `json:"target"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := ParseConditionType(raw.Type)
	if err != nil {
		return err
	}
	c.Type = t
	c.Target = raw.Target

	switch t {
	case CondObjectInRoom:
		if len(raw.Value) > 0 {
			if err := json.Unmarshal(raw.Value, &c.Room); err != nil {
				return fmt.Errorf("condition %s: value must be a room id: %w", t, err)
			}
		}
	case CondObjectHasProperty:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return fmt.Errorf("condition %s: value must be a property name: %w", t, err)
		}
		if c.Prop, err = ParseObjectProperty(s); err != nil {
			return fmt.Errorf("condition %s: %w", t, err)
		}
	case CondCounterGTE, CondCounterLTE, CondCounterEQ:
		if err := json.Unmarshal(raw.Value, &c.Amount); err != nil {
			return fmt.Errorf("condition %s: value must be a number: %w", t, err)
		}
	}
	return nil
}

// Effect is a declarative state mutation. As with Condition, the content
// data's single "value" payload is decoded into a typed operand.
type Effect struct {
	Type      EffectType
	Target    string
	Text      string         // print_message text, kill_player custom message
	Dest      string         // move_object destination: room id, "player" or "destroyed"
	Prop      ObjectProperty // set/clear_object_property
	Amount    int            // increment_counter, set_counter, add_score
	Direction Direction      // enable_exit/disable_exit
}

// UnmarshalJSON decodes {type, target, value} into typed operands.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   string          `json:"type"`
		Target string          `json:"target"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := ParseEffectType(raw.Type)
	if err != nil {
		return err
	}
	e.Type = t
	e.Target = raw.Target

	switch t {
	case EffPrintMessage, EffKillPlayer:
		if len(raw.Value) > 0 {
			if err := json.Unmarshal(raw.Value, &e.Text); err != nil {
				return fmt.Errorf("effect %s: value must be a string: %w", t, err)
			}
		}
	case EffMoveObject:
		if err := json.Unmarshal(raw.Value, &e.Dest); err != nil {
			return fmt.Errorf("effect %s: value must be a destination: %w", t, err)
		}
	case EffIncrementCounter:
		e.Amount = 1
		if len(raw.Value) > 0 {
			if err := json.Unmarshal(raw.Value, &e.Amount); err != nil {
				return fmt.Errorf("effect %s: value must be a number: %w", t, err)
			}
		}
	case EffSetCounter, EffAddScore:
		if err := json.Unmarshal(raw.Value, &e.Amount); err != nil {
			return fmt.Errorf("effect %s: value must be a number: %w", t, err)
		}
	case EffSetProperty, EffClearProperty:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return fmt.Errorf("effect %s: value must be a property name: %w", t, err)
		}
		if e.Prop, err = ParseObjectProperty(s); err != nil {
			return fmt.Errorf("effect %s: %w", t, err)
		}
	case EffEnableExit, EffDisableExit:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return fmt.Errorf("effect %s: value must be a direction: %w", t, err)
		}
		d, ok := ParseDirection(s)
		if !ok {
			return fmt.Errorf("effect %s: unknown direction %q", t, s)
		}
		e.Direction = d
	}
	return nil
}

// Event is a scripted, conditional bundle of effects tied to a pipeline trigger.
type Event struct {
	ID         string      `json:"id"`
	Trigger    TriggerType `json:"trigger"`
	Conditions []Condition `json:"conditions,omitempty"`
	Effects    []Effect    `json:"effects,omitempty"`
	Once       bool        `json:"once,omitempty"`
	Priority   int         `json:"priority,omitempty"`
}
