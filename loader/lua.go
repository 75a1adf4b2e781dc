package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cfirth/fable/engine/world"
	lua "github.com/yuin/gopher-lua"
)

// luaCollector accumulates Lua definitions during file execution.
// Declaration order is preserved so per-turn iteration is stable.
type luaCollector struct {
	game    *lua.LTable
	rooms   []rawRoom
	objects []rawObject
	npcs    []rawNPC
	verbs   []rawVerb
	events  []rawEvent
}

// LoadLua reads all .lua files from dir, compiles them into game content,
// validates references, and returns the indexed world. The Lua VM is
// discarded after loading.
func LoadLua(dir string) (*world.World, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &luaCollector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	content, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}
	if err := Validate(content); err != nil {
		return nil, err
	}
	return world.New(content), nil
}

// sortedLuaFiles orders files so game.lua runs first; the rest run
// alphabetically.
func sortedLuaFiles(files []string) []string {
	sort.Strings(files)
	for i, f := range files {
		if f == "game.lua" {
			out := make([]string, 0, len(files))
			out = append(out, f)
			out = append(out, files[:i]...)
			out = append(out, files[i+1:]...)
			return out
		}
	}
	return files
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that would let content scripts touch the host.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *luaCollector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *luaCollector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function that takes a table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Object "id" { ... } — curried.
	L.SetGlobal("Object", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.objects = append(coll.objects, rawObject{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// NPC "id" { ... } — curried.
	L.SetGlobal("NPC", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.npcs = append(coll.npcs, rawNPC{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Verb "id" { names = {...} } — curried.
	L.SetGlobal("Verb", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.verbs = append(coll.verbs, rawVerb{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Event "id" { trigger = "...", conditions = {...}, effects = {...} } — curried.
	L.SetGlobal("Event", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.events = append(coll.events, rawEvent{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Exit { direction = "...", target = "..." } — pass-through, returns the table.
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		L.Push(tbl)
		return 1
	}))
}

// tagged builds the { type = t, ... } tables the compiler expects.
func tagged(L *lua.LState, t string, fields map[string]lua.LValue) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(t))
	for k, v := range fields {
		tbl.RawSetString(k, v)
	}
	return tbl
}

func registerConditionHelpers(L *lua.LState) {
	// PlayerInRoom("room_id")
	L.SetGlobal("PlayerInRoom", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "player_in_room", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// HasItem("object_id")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "player_has_item", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// ObjectInRoom("object_id", "room_id") — the room may be omitted,
	// meaning the player's current room.
	L.SetGlobal("ObjectInRoom", L.NewFunction(func(L *lua.LState) int {
		fields := map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}
		if L.GetTop() >= 2 {
			fields["room"] = lua.LString(L.CheckString(2))
		}
		L.Push(tagged(L, "object_in_room", fields))
		return 1
	}))

	// HasProp("object_id", "property")
	L.SetGlobal("HasProp", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "object_has_property", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"prop":   lua.LString(L.CheckString(2)),
		}))
		return 1
	}))

	// FlagSet("flag")
	L.SetGlobal("FlagSet", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "flag_set", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// FlagNot("flag")
	L.SetGlobal("FlagNot", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "flag_not_set", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// CounterGte("counter", n)
	L.SetGlobal("CounterGte", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "counter_gte", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"amount": L.CheckNumber(2),
		}))
		return 1
	}))

	// CounterLte("counter", n)
	L.SetGlobal("CounterLte", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "counter_lte", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"amount": L.CheckNumber(2),
		}))
		return 1
	}))

	// CounterEq("counter", n)
	L.SetGlobal("CounterEq", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "counter_eq", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"amount": L.CheckNumber(2),
		}))
		return 1
	}))

	// ActionIs("verb_id")
	L.SetGlobal("ActionIs", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "action_is", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// TargetIs("object_id")
	L.SetGlobal("TargetIs", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "action_target_is", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "print_message", map[string]lua.LValue{
			"text": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// MoveObject("object_id", "dest") — dest is a room id, object id,
	// "player" or "destroyed".
	L.SetGlobal("MoveObject", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "move_object", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"dest":   lua.LString(L.CheckString(2)),
		}))
		return 1
	}))

	// MovePlayer("room_id")
	L.SetGlobal("MovePlayer", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "move_player", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// SetFlag("flag")
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "set_flag", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// ClearFlag("flag")
	L.SetGlobal("ClearFlag", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "clear_flag", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// IncCounter("counter", amount)
	L.SetGlobal("IncCounter", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "increment_counter", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"amount": L.CheckNumber(2),
		}))
		return 1
	}))

	// SetCounter("counter", value)
	L.SetGlobal("SetCounter", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "set_counter", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"amount": L.CheckNumber(2),
		}))
		return 1
	}))

	// AddScore(points)
	L.SetGlobal("AddScore", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "add_score", map[string]lua.LValue{
			"amount": L.CheckNumber(1),
		}))
		return 1
	}))

	// SetProp("object_id", "property")
	L.SetGlobal("SetProp", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "set_object_property", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"prop":   lua.LString(L.CheckString(2)),
		}))
		return 1
	}))

	// ClearProp("object_id", "property")
	L.SetGlobal("ClearProp", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "clear_object_property", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
			"prop":   lua.LString(L.CheckString(2)),
		}))
		return 1
	}))

	// KillPlayer("message") — message optional.
	L.SetGlobal("KillPlayer", L.NewFunction(func(L *lua.LState) int {
		fields := map[string]lua.LValue{}
		if L.GetTop() >= 1 {
			fields["text"] = lua.LString(L.CheckString(1))
		}
		L.Push(tagged(L, "kill_player", fields))
		return 1
	}))

	// Block() — stops the action being handled. Pair with Say for the
	// player-facing refusal.
	L.SetGlobal("Block", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "block_action", nil))
		return 1
	}))

	// OpenExit("room_id", "direction")
	L.SetGlobal("OpenExit", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "enable_exit", map[string]lua.LValue{
			"target":    lua.LString(L.CheckString(1)),
			"direction": lua.LString(L.CheckString(2)),
		}))
		return 1
	}))

	// CloseExit("room_id", "direction")
	L.SetGlobal("CloseExit", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "disable_exit", map[string]lua.LValue{
			"target":    lua.LString(L.CheckString(1)),
			"direction": lua.LString(L.CheckString(2)),
		}))
		return 1
	}))

	// Destroy("object_id")
	L.SetGlobal("Destroy", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "destroy_object", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))

	// Reveal("object_id")
	L.SetGlobal("Reveal", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "reveal_object", map[string]lua.LValue{
			"target": lua.LString(L.CheckString(1)),
		}))
		return 1
	}))
}
