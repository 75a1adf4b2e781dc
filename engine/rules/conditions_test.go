package rules

import (
	"testing"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

func condTestState() *types.GameState {
	w := world.New(&world.Content{
		Config: types.GameConfig{StartingRoom: "hall"},
		Rooms: []types.Room{
			{ID: "hall", Name: "Hall", Description: "A hall."},
			{ID: "vault", Name: "Vault", Description: "A vault."},
		},
		Objects: []types.GameObject{
			{ID: "torch", Name: "torch", Location: "player",
				Properties: []types.ObjectProperty{types.PropTakeable, types.PropLightSource}},
			{ID: "statue", Name: "statue", Location: "hall",
				Properties: []types.ObjectProperty{types.PropFixed}},
		},
	})
	s := state.New(w)
	s.Flags["gate_open"] = true
	s.Counters["lantern_fuel"] = 50
	return s
}

func TestCheck(t *testing.T) {
	s := condTestState()
	ctx := Context{VerbID: "take", DirectObjectID: "statue"}

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"player in room", types.Condition{Type: types.CondPlayerInRoom, Target: "hall"}, true},
		{"player in other room", types.Condition{Type: types.CondPlayerInRoom, Target: "vault"}, false},
		{"has item", types.Condition{Type: types.CondPlayerHasItem, Target: "torch"}, true},
		{"has item not carried", types.Condition{Type: types.CondPlayerHasItem, Target: "statue"}, false},
		{"object in explicit room", types.Condition{Type: types.CondObjectInRoom, Target: "statue", Room: "hall"}, true},
		{"object in current room", types.Condition{Type: types.CondObjectInRoom, Target: "statue"}, true},
		{"object in wrong room", types.Condition{Type: types.CondObjectInRoom, Target: "statue", Room: "vault"}, false},
		{"carried object not in room", types.Condition{Type: types.CondObjectInRoom, Target: "torch"}, false},
		{"object has property", types.Condition{Type: types.CondObjectHasProperty, Target: "torch", Prop: types.PropLightSource}, true},
		{"object lacks property", types.Condition{Type: types.CondObjectHasProperty, Target: "torch", Prop: types.PropLit}, false},
		{"flag set", types.Condition{Type: types.CondFlagSet, Target: "gate_open"}, true},
		{"flag set missing", types.Condition{Type: types.CondFlagSet, Target: "gate_shut"}, false},
		{"flag not set", types.Condition{Type: types.CondFlagNotSet, Target: "gate_shut"}, true},
		{"flag not set but is", types.Condition{Type: types.CondFlagNotSet, Target: "gate_open"}, false},
		{"counter gte", types.Condition{Type: types.CondCounterGTE, Target: "lantern_fuel", Amount: 50}, true},
		{"counter gte below", types.Condition{Type: types.CondCounterGTE, Target: "lantern_fuel", Amount: 51}, false},
		{"counter lte", types.Condition{Type: types.CondCounterLTE, Target: "lantern_fuel", Amount: 50}, true},
		{"counter lte above", types.Condition{Type: types.CondCounterLTE, Target: "lantern_fuel", Amount: 49}, false},
		{"counter eq", types.Condition{Type: types.CondCounterEQ, Target: "lantern_fuel", Amount: 50}, true},
		{"counter eq unset", types.Condition{Type: types.CondCounterEQ, Target: "missing", Amount: 0}, true},
		{"action is", types.Condition{Type: types.CondActionIs, Target: "take"}, true},
		{"action is other", types.Condition{Type: types.CondActionIs, Target: "drop"}, false},
		{"action target is", types.Condition{Type: types.CondActionTargetIs, Target: "statue"}, true},
		{"action target is other", types.Condition{Type: types.CondActionTargetIs, Target: "torch"}, false},
		{"unknown kind fails closed", types.Condition{Type: "phase_of_moon"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.cond, s, ctx); got != tt.want {
				t.Errorf("Check(%+v) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestCheckAll(t *testing.T) {
	s := condTestState()
	ctx := Context{}

	if !CheckAll(nil, s, ctx) {
		t.Error("empty condition list should be vacuously true")
	}

	pass := []types.Condition{
		{Type: types.CondPlayerInRoom, Target: "hall"},
		{Type: types.CondFlagSet, Target: "gate_open"},
	}
	if !CheckAll(pass, s, ctx) {
		t.Error("all-true list should pass")
	}

	mixed := append(pass, types.Condition{Type: types.CondPlayerHasItem, Target: "statue"})
	if CheckAll(mixed, s, ctx) {
		t.Error("one false condition should fail the list")
	}
}
