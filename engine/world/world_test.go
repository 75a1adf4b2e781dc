package world

import (
	"reflect"
	"testing"

	"github.com/cfirth/fable/types"
)

func indexedWorld() *World {
	return New(&Content{
		Config: types.GameConfig{Title: "Test", StartingRoom: "hall"},
		Rooms: []types.Room{
			{ID: "hall", Name: "Hall"},
			{ID: "cellar", Name: "Cellar"},
		},
		Objects: []types.GameObject{
			{ID: "brass_lantern", Name: "brass lantern", Aliases: []string{"lantern", "lamp"}},
			{ID: "toy_lantern", Name: "toy lantern", Aliases: []string{"lantern"}},
		},
		NPCs: []types.NPC{
			{ID: "troll", Name: "troll"},
		},
		Verbs: []types.VerbDefinition{
			{ID: "take", Names: []string{"take", "get", "grab"}},
			{ID: "examine", Names: []string{"examine", "x"}},
		},
		Events: []types.Event{
			{ID: "low", Trigger: types.EachTurn, Priority: 1},
			{ID: "high", Trigger: types.EachTurn, Priority: 5},
			{ID: "mid_a", Trigger: types.EachTurn, Priority: 3},
			{ID: "mid_b", Trigger: types.EachTurn, Priority: 3},
			{ID: "entry", Trigger: types.EnterRoom},
		},
	})
}

func TestLookupsByID(t *testing.T) {
	w := indexedWorld()

	if w.Room("hall") == nil || w.Room("attic") != nil {
		t.Error("room lookup mismatch")
	}
	if w.Object("brass_lantern") == nil || w.Object("ghost_lamp") != nil {
		t.Error("object lookup mismatch")
	}
	if w.NPC("troll") == nil || w.NPC("ogre") != nil {
		t.Error("npc lookup mismatch")
	}
	if w.Verb("take") == nil || w.Verb("dance") != nil {
		t.Error("verb lookup mismatch")
	}
}

func TestResolveVerbName_CaseInsensitive(t *testing.T) {
	w := indexedWorld()

	if got := w.ResolveVerbName("GRAB"); got != "take" {
		t.Errorf("ResolveVerbName(GRAB) = %q, want take", got)
	}
	if got := w.ResolveVerbName("x"); got != "examine" {
		t.Errorf("ResolveVerbName(x) = %q, want examine", got)
	}
	if got := w.ResolveVerbName("dance"); got != "" {
		t.Errorf("ResolveVerbName(dance) = %q, want empty", got)
	}
}

func TestResolveObjectName_CollisionsKeepDeclarationOrder(t *testing.T) {
	w := indexedWorld()

	got := w.ResolveObjectName("Lantern")
	want := []string{"brass_lantern", "toy_lantern"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveObjectName(Lantern) = %v, want %v", got, want)
	}

	if got := w.ResolveObjectName("lamp"); !reflect.DeepEqual(got, []string{"brass_lantern"}) {
		t.Errorf("ResolveObjectName(lamp) = %v", got)
	}
	if got := w.ResolveObjectName("sword"); got != nil {
		t.Errorf("ResolveObjectName(sword) = %v, want nil", got)
	}
}

func TestEventsForTrigger_PriorityThenDeclarationOrder(t *testing.T) {
	w := indexedWorld()

	events := w.EventsForTrigger(types.EachTurn)
	var ids []string
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	want := []string{"high", "mid_a", "mid_b", "low"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("EventsForTrigger order = %v, want %v", ids, want)
	}

	if got := len(w.EventsForTrigger(types.EnterRoom)); got != 1 {
		t.Errorf("expected 1 enter_room event, got %d", got)
	}
	if got := w.EventsForTrigger(types.BeforeAction); got != nil {
		t.Errorf("expected nil for unused trigger, got %v", got)
	}
}

func TestObjects_DeclarationOrder(t *testing.T) {
	w := indexedWorld()

	objs := w.Objects()
	if len(objs) != 2 || objs[0].ID != "brass_lantern" || objs[1].ID != "toy_lantern" {
		t.Errorf("Objects() order wrong: %v, %v", objs[0].ID, objs[1].ID)
	}
}
