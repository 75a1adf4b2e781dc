package types

import (
	"encoding/json"
	"fmt"
)

// Direction is a compass or vertical movement direction.
type Direction string

const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Up        Direction = "up"
	Down      Direction = "down"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
	In        Direction = "in"
	Out       Direction = "out"
)

// DirectionAbbreviations maps short forms to full directions.
var DirectionAbbreviations = map[string]Direction{
	"n":  North,
	"s":  South,
	"e":  East,
	"w":  West,
	"u":  Up,
	"d":  Down,
	"ne": Northeast,
	"nw": Northwest,
	"se": Southeast,
	"sw": Southwest,
}

var directions = map[Direction]bool{
	North: true, South: true, East: true, West: true,
	Up: true, Down: true,
	Northeast: true, Northwest: true, Southeast: true, Southwest: true,
	In: true, Out: true,
}

// ParseDirection resolves a direction word or abbreviation.
func ParseDirection(s string) (Direction, bool) {
	if d, ok := DirectionAbbreviations[s]; ok {
		return d, true
	}
	d := Direction(s)
	return d, directions[d]
}

// UnmarshalJSON rejects unknown direction tags at load time.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dir, ok := ParseDirection(s)
	if !ok {
		return fmt.Errorf("unknown direction %q", s)
	}
	*d = dir
	return nil
}

// ObjectProperty is a tag in an object's property set.
type ObjectProperty string

const (
	PropTakeable    ObjectProperty = "takeable"
	PropOpenable    ObjectProperty = "openable"
	PropOpen        ObjectProperty = "open"
	PropLockable    ObjectProperty = "lockable"
	PropLocked      ObjectProperty = "locked"
	PropContainer   ObjectProperty = "container"
	PropSurface     ObjectProperty = "surface"
	PropLightSource ObjectProperty = "light_source"
	PropLit         ObjectProperty = "lit"
	PropReadable    ObjectProperty = "readable"
	PropEdible      ObjectProperty = "edible"
	PropWearable    ObjectProperty = "wearable"
	PropWorn        ObjectProperty = "worn"
	PropWeapon      ObjectProperty = "weapon"
	PropScenery     ObjectProperty = "scenery"
	PropFixed       ObjectProperty = "fixed"
	PropHidden      ObjectProperty = "hidden"
	PropTransparent ObjectProperty = "transparent"
)

var objectProperties = map[ObjectProperty]bool{
	PropTakeable: true, PropOpenable: true, PropOpen: true,
	PropLockable: true, PropLocked: true, PropContainer: true,
	PropSurface: true, PropLightSource: true, PropLit: true,
	PropReadable: true, PropEdible: true, PropWearable: true,
	PropWorn: true, PropWeapon: true, PropScenery: true,
	PropFixed: true, PropHidden: true, PropTransparent: true,
}

// ParseObjectProperty validates a property tag from content data.
func ParseObjectProperty(s string) (ObjectProperty, error) {
	p := ObjectProperty(s)
	if !objectProperties[p] {
		return "", fmt.Errorf("unknown object property %q", s)
	}
	return p, nil
}

// UnmarshalJSON rejects unknown property tags at load time.
func (p *ObjectProperty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	prop, err := ParseObjectProperty(s)
	if err != nil {
		return err
	}
	*p = prop
	return nil
}

// TriggerType is the pipeline phase an event is evaluated in.
type TriggerType string

const (
	BeforeAction TriggerType = "before_action"
	AfterAction  TriggerType = "after_action"
	EnterRoom    TriggerType = "enter_room"
	EachTurn     TriggerType = "each_turn"
)

var triggerTypes = map[TriggerType]bool{
	BeforeAction: true, AfterAction: true, EnterRoom: true, EachTurn: true,
}

// ParseTriggerType validates an event trigger tag.
func ParseTriggerType(s string) (TriggerType, error) {
	t := TriggerType(s)
	if !triggerTypes[t] {
		return "", fmt.Errorf("unknown trigger type %q", s)
	}
	return t, nil
}

// UnmarshalJSON rejects unknown trigger tags at load time.
func (t *TriggerType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	trig, err := ParseTriggerType(s)
	if err != nil {
		return err
	}
	*t = trig
	return nil
}

// ConditionType tags a declarative event condition.
type ConditionType string

const (
	CondPlayerInRoom      ConditionType = "player_in_room"
	CondPlayerHasItem     ConditionType = "player_has_item"
	CondObjectInRoom      ConditionType = "object_in_room"
	CondObjectHasProperty ConditionType = "object_has_property"
	CondFlagSet           ConditionType = "flag_set"
	CondFlagNotSet        ConditionType = "flag_not_set"
	CondCounterGTE        ConditionType = "counter_gte"
	CondCounterLTE        ConditionType = "counter_lte"
	CondCounterEQ         ConditionType = "counter_eq"
	CondActionIs          ConditionType = "action_is"
	CondActionTargetIs    ConditionType = "action_target_is"
)

var conditionTypes = map[ConditionType]bool{
	CondPlayerInRoom: true, CondPlayerHasItem: true, CondObjectInRoom: true,
	CondObjectHasProperty: true, CondFlagSet: true, CondFlagNotSet: true,
	CondCounterGTE: true, CondCounterLTE: true, CondCounterEQ: true,
	CondActionIs: true, CondActionTargetIs: true,
}

// ParseConditionType validates a condition tag.
func ParseConditionType(s string) (ConditionType, error) {
	t := ConditionType(s)
	if !conditionTypes[t] {
		return "", fmt.Errorf("unknown condition type %q", s)
	}
	return t, nil
}

// EffectType tags a declarative event effect.
type EffectType string

const (
	EffPrintMessage     EffectType = "print_message"
	EffMoveObject       EffectType = "move_object"
	EffMovePlayer       EffectType = "move_player"
	EffSetFlag          EffectType = "set_flag"
	EffClearFlag        EffectType = "clear_flag"
	EffIncrementCounter EffectType = "increment_counter"
	EffSetCounter       EffectType = "set_counter"
	EffAddScore         EffectType = "add_score"
	EffSetProperty      EffectType = "set_object_property"
	EffClearProperty    EffectType = "clear_object_property"
	EffKillPlayer       EffectType = "kill_player"
	EffBlockAction      EffectType = "block_action"
	EffEnableExit       EffectType = "enable_exit"
	EffDisableExit      EffectType = "disable_exit"
	EffDestroyObject    EffectType = "destroy_object"
	EffRevealObject     EffectType = "reveal_object"
)

var effectTypes = map[EffectType]bool{
	EffPrintMessage: true, EffMoveObject: true, EffMovePlayer: true,
	EffSetFlag: true, EffClearFlag: true, EffIncrementCounter: true,
	EffSetCounter: true, EffAddScore: true, EffSetProperty: true,
	EffClearProperty: true, EffKillPlayer: true, EffBlockAction: true,
	EffEnableExit: true, EffDisableExit: true, EffDestroyObject: true,
	EffRevealObject: true,
}

// ParseEffectType validates an effect tag.
func ParseEffectType(s string) (EffectType, error) {
	t := EffectType(s)
	if !effectTypes[t] {
		return "", fmt.Errorf("unknown effect type %q", s)
	}
	return t, nil
}

// Attitude is an NPC's disposition toward the player.
type Attitude string

const (
	Friendly Attitude = "friendly"
	Neutral  Attitude = "neutral"
	Hostile  Attitude = "hostile"
)

var attitudes = map[Attitude]bool{
	Friendly: true, Neutral: true, Hostile: true,
}

// ParseAttitude validates an NPC attitude tag.
func ParseAttitude(s string) (Attitude, error) {
	if s == "" {
		return Neutral, nil
	}
	a := Attitude(s)
	if !attitudes[a] {
		return "", fmt.Errorf("unknown attitude %q", s)
	}
	return a, nil
}

// UnmarshalJSON rejects unknown attitude tags at load time. An absent or
// empty attitude decodes to Neutral.
func (a *Attitude) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	att, err := ParseAttitude(s)
	if err != nil {
		return err
	}
	*a = att
	return nil
}
