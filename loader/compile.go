package loader

import (
	"fmt"

	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
	lua "github.com/yuin/gopher-lua"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawObject holds an object table before compilation.
type rawObject struct {
	id    string
	table *lua.LTable
}

// rawNPC holds an NPC table before compilation.
type rawNPC struct {
	id    string
	table *lua.LTable
}

// rawVerb holds a verb table before compilation.
type rawVerb struct {
	id    string
	table *lua.LTable
}

// rawEvent holds an event table before compilation.
type rawEvent struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringSlice converts a Lua array to []string, skipping
// non-string entries.
func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Content set.
func compile(coll *luaCollector) (*world.Content, error) {
	content := &world.Content{}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	content.Config = compileGame(coll.game)

	for _, raw := range coll.rooms {
		room, err := compileRoom(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling room %s: %w", raw.id, err)
		}
		content.Rooms = append(content.Rooms, room)
	}
	for _, raw := range coll.objects {
		obj, err := compileObject(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling object %s: %w", raw.id, err)
		}
		content.Objects = append(content.Objects, obj)
	}
	for _, raw := range coll.npcs {
		npc, err := compileNPC(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling npc %s: %w", raw.id, err)
		}
		content.NPCs = append(content.NPCs, npc)
	}
	for _, raw := range coll.verbs {
		content.Verbs = append(content.Verbs, types.VerbDefinition{
			ID:          raw.id,
			Names:       tableToStringSlice(getTable(raw.table, "names")),
			Description: getString(raw.table, "description"),
		})
	}
	for _, raw := range coll.events {
		event, err := compileEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling event %s: %w", raw.id, err)
		}
		content.Events = append(content.Events, event)
	}

	return content, nil
}

func compileGame(tbl *lua.LTable) types.GameConfig {
	cfg := types.GameConfig{
		Title:            getString(tbl, "title"),
		Author:           getString(tbl, "author"),
		Version:          getString(tbl, "version"),
		Description:      getString(tbl, "description"),
		StartingRoom:     getString(tbl, "start"),
		IntroText:        getString(tbl, "intro"),
		MaxScore:         getInt(tbl, "max_score"),
		MaxInventorySize: getInt(tbl, "max_inventory"),
		TrophyContainer:  getString(tbl, "trophy_container"),
	}
	if cfg.Title == "" {
		cfg.Title = "Untitled Adventure"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.MaxInventorySize == 0 {
		cfg.MaxInventorySize = 10
	}
	if ranks := getTable(tbl, "ranks"); ranks != nil {
		cfg.Ranks = map[int]string{}
		ranks.ForEach(func(k, v lua.LValue) {
			kn, kok := k.(lua.LNumber)
			vs, vok := v.(lua.LString)
			if kok && vok {
				cfg.Ranks[int(kn)] = string(vs)
			}
		})
	}
	return cfg
}

func compileRoom(raw rawRoom) (types.Room, error) {
	tbl := raw.table
	room := types.Room{
		ID:                    raw.id,
		Name:                  getString(tbl, "name"),
		Description:           getString(tbl, "description"),
		ShortDescription:      getString(tbl, "short_description"),
		FirstVisitDescription: getString(tbl, "first_visit_description"),
		DarkDescription:       getString(tbl, "dark_description"),
		IsDark:                getBool(tbl, "is_dark", false),
	}
	if room.Name == "" {
		room.Name = raw.id
	}

	exits := getTable(tbl, "exits")
	if exits == nil {
		return room, nil
	}
	var compileErr error
	exits.ForEach(func(_, v lua.LValue) {
		if compileErr != nil {
			return
		}
		exitTbl, ok := v.(*lua.LTable)
		if !ok {
			compileErr = fmt.Errorf("exit entries must be tables")
			return
		}
		exit, err := compileExit(exitTbl)
		if err != nil {
			compileErr = err
			return
		}
		room.Exits = append(room.Exits, exit)
	})
	return room, compileErr
}

func compileExit(tbl *lua.LTable) (types.Exit, error) {
	dirName := getString(tbl, "direction")
	dir, ok := types.ParseDirection(dirName)
	if !ok {
		return types.Exit{}, fmt.Errorf("unknown exit direction %q", dirName)
	}
	exit := types.Exit{
		Direction:   dir,
		TargetRoom:  getString(tbl, "target"),
		Description: getString(tbl, "description"),
		Hidden:      getBool(tbl, "hidden", false),
	}
	if condTbl := getTable(tbl, "condition"); condTbl != nil {
		cond := &types.ExitCondition{
			Flag:             getString(condTbl, "flag"),
			ObjectID:         getString(condTbl, "object"),
			MessageIfBlocked: getString(condTbl, "blocked"),
		}
		if propName := getString(condTbl, "property"); propName != "" {
			prop, err := types.ParseObjectProperty(propName)
			if err != nil {
				return types.Exit{}, err
			}
			cond.ObjectProperty = prop
		}
		exit.Condition = cond
	}
	return exit, nil
}

func compileObject(raw rawObject) (types.GameObject, error) {
	tbl := raw.table
	obj := types.GameObject{
		ID:           raw.id,
		Name:         getString(tbl, "name"),
		Aliases:      tableToStringSlice(getTable(tbl, "aliases")),
		Location:     getString(tbl, "location"),
		ParentObject: getString(tbl, "parent"),
		Size:         getInt(tbl, "size"),
		Capacity:     getInt(tbl, "capacity"),
		KeyID:        getString(tbl, "key"),
		Damage:       getInt(tbl, "damage"),
		LightFuel:    getInt(tbl, "light_fuel"),
		ScoreValue:   getInt(tbl, "score_value"),
	}
	if obj.Name == "" {
		obj.Name = raw.id
	}

	// description may be a bare string (the examine text) or a table with
	// room/examine/on_open/on_read variants.
	switch desc := tbl.RawGetString("description").(type) {
	case lua.LString:
		obj.Description.Examine = string(desc)
	case *lua.LTable:
		obj.Description = types.ObjectDescription{
			Room:    getString(desc, "room"),
			Examine: getString(desc, "examine"),
			OnOpen:  getString(desc, "on_open"),
			OnRead:  getString(desc, "on_read"),
		}
	}

	for _, name := range tableToStringSlice(getTable(tbl, "properties")) {
		prop, err := types.ParseObjectProperty(name)
		if err != nil {
			return types.GameObject{}, err
		}
		obj.Properties = append(obj.Properties, prop)
	}
	return obj, nil
}

func compileNPC(raw rawNPC) (types.NPC, error) {
	tbl := raw.table
	npc := types.NPC{
		ID:           raw.id,
		Name:         getString(tbl, "name"),
		Aliases:      tableToStringSlice(getTable(tbl, "aliases")),
		Description:  getString(tbl, "description"),
		Location:     getString(tbl, "location"),
		Health:       getInt(tbl, "health"),
		MaxHealth:    getInt(tbl, "max_health"),
		Damage:       getInt(tbl, "damage"),
		DeathMessage: getString(tbl, "death_message"),
		DeathFlag:    getString(tbl, "death_flag"),
		Inventory:    tableToStringSlice(getTable(tbl, "inventory")),
	}
	if npc.Name == "" {
		npc.Name = raw.id
	}
	if npc.MaxHealth == 0 {
		npc.MaxHealth = npc.Health
	}

	if attName := getString(tbl, "attitude"); attName != "" {
		att, err := types.ParseAttitude(attName)
		if err != nil {
			return types.NPC{}, err
		}
		npc.Attitude = att
	}

	if behavior := getTable(tbl, "behavior"); behavior != nil {
		npc.Behavior = types.NPCBehavior{
			Wanders:        getBool(behavior, "wanders", false),
			WanderRooms:    tableToStringSlice(getTable(behavior, "wander_rooms")),
			StealsItems:    getBool(behavior, "steals_items", false),
			BlocksExit:     getString(behavior, "blocks_exit"),
			CombatMessages: tableToStringMap(getTable(behavior, "combat_messages")),
		}
	}
	return npc, nil
}

func compileEvent(raw rawEvent) (types.Event, error) {
	tbl := raw.table
	trigger, err := types.ParseTriggerType(getString(tbl, "trigger"))
	if err != nil {
		return types.Event{}, err
	}
	event := types.Event{
		ID:       raw.id,
		Trigger:  trigger,
		Once:     getBool(tbl, "once", false),
		Priority: getInt(tbl, "priority"),
	}

	if conds := getTable(tbl, "conditions"); conds != nil {
		for i := 1; i <= conds.MaxN(); i++ {
			condTbl, ok := conds.RawGetInt(i).(*lua.LTable)
			if !ok {
				return types.Event{}, fmt.Errorf("conditions must use the condition helpers")
			}
			cond, err := compileCondition(condTbl)
			if err != nil {
				return types.Event{}, err
			}
			event.Conditions = append(event.Conditions, cond)
		}
	}
	if effects := getTable(tbl, "effects"); effects != nil {
		for i := 1; i <= effects.MaxN(); i++ {
			effTbl, ok := effects.RawGetInt(i).(*lua.LTable)
			if !ok {
				return types.Event{}, fmt.Errorf("effects must use the effect helpers")
			}
			eff, err := compileEffect(effTbl)
			if err != nil {
				return types.Event{}, err
			}
			event.Effects = append(event.Effects, eff)
		}
	}
	return event, nil
}

func compileCondition(tbl *lua.LTable) (types.Condition, error) {
	condType, err := types.ParseConditionType(getString(tbl, "type"))
	if err != nil {
		return types.Condition{}, err
	}
	cond := types.Condition{
		Type:   condType,
		Target: getString(tbl, "target"),
		Room:   getString(tbl, "room"),
		Amount: getInt(tbl, "amount"),
	}
	if propName := getString(tbl, "prop"); propName != "" {
		prop, err := types.ParseObjectProperty(propName)
		if err != nil {
			return types.Condition{}, err
		}
		cond.Prop = prop
	}
	return cond, nil
}

func compileEffect(tbl *lua.LTable) (types.Effect, error) {
	effType, err := types.ParseEffectType(getString(tbl, "type"))
	if err != nil {
		return types.Effect{}, err
	}
	eff := types.Effect{
		Type:   effType,
		Target: getString(tbl, "target"),
		Text:   getString(tbl, "text"),
		Dest:   getString(tbl, "dest"),
		Amount: getInt(tbl, "amount"),
	}
	if propName := getString(tbl, "prop"); propName != "" {
		prop, err := types.ParseObjectProperty(propName)
		if err != nil {
			return types.Effect{}, err
		}
		eff.Prop = prop
	}
	if dirName := getString(tbl, "direction"); dirName != "" {
		dir, ok := types.ParseDirection(dirName)
		if !ok {
			return types.Effect{}, fmt.Errorf("unknown direction %q", dirName)
		}
		eff.Direction = dir
	}
	// increment_counter with no amount means a step of one, matching the
	// JSON decoder.
	if effType == types.EffIncrementCounter && tbl.RawGetString("amount") == lua.LNil {
		eff.Amount = 1
	}
	return eff, nil
}
