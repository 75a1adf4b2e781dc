package engine

import (
	"strings"
	"testing"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/types"
)

func TestIsDark(t *testing.T) {
	w := testWorld()
	s := state.New(w)

	if IsDark(s, w) {
		t.Error("cellar is lit")
	}

	s.CurrentRoom = "crypt"
	if !IsDark(s, w) {
		t.Error("crypt with no light should be dark")
	}

	// A lit source in the room lights it.
	state.MoveToRoom(s, "lantern", "crypt")
	state.AddProperty(s, "lantern", types.PropLit)
	if IsDark(s, w) {
		t.Error("lit lantern in the room should light it")
	}

	// A carried lit source does too.
	state.MoveToInventory(s, "lantern")
	if IsDark(s, w) {
		t.Error("carried lit lantern should light the room")
	}

	// An unlit source does not help.
	state.RemoveProperty(s, "lantern", types.PropLit)
	if !IsDark(s, w) {
		t.Error("unlit lantern should leave the crypt dark")
	}
}

func TestTickDarkness_WarningThenDeath(t *testing.T) {
	w := testWorld()
	s := state.New(w)
	s.CurrentRoom = "crypt"

	msg := TickDarkness(s, w)
	if !strings.Contains(msg, "pitch black") {
		t.Errorf("first dark turn should warn, got %q", msg)
	}
	if !s.PlayerAlive {
		t.Fatal("warning turn must not kill")
	}

	msg = TickDarkness(s, w)
	if !strings.Contains(msg, "lurking grue") {
		t.Errorf("second dark turn should be fatal, got %q", msg)
	}
	if s.PlayerAlive {
		t.Error("player should be dead")
	}
}

func TestTickDarkness_LightResetsClock(t *testing.T) {
	w := testWorld()
	s := state.New(w)
	s.CurrentRoom = "crypt"

	TickDarkness(s, w)
	if s.DarkTurns != 1 {
		t.Fatalf("DarkTurns = %d, want 1", s.DarkTurns)
	}

	state.MoveToInventory(s, "lantern")
	state.AddProperty(s, "lantern", types.PropLit)
	if msg := TickDarkness(s, w); msg != "" {
		t.Errorf("lit turn should be silent, got %q", msg)
	}
	if s.DarkTurns != 0 {
		t.Errorf("light should reset the darkness clock, DarkTurns = %d", s.DarkTurns)
	}
}

func TestDarkDescription(t *testing.T) {
	w := testWorld()
	s := state.New(w)
	s.CurrentRoom = "crypt"

	if got := DarkDescription(s, w); !strings.Contains(got, "pitch black") {
		t.Errorf("default dark description = %q", got)
	}
}

func TestTickFuel(t *testing.T) {
	w := testWorld()
	s := state.New(w)

	// The test lantern has infinite fuel; it never burns down.
	state.MoveToInventory(s, "lantern")
	state.AddProperty(s, "lantern", types.PropLit)
	for i := 0; i < 50; i++ {
		if msg := TickFuel(s, w); msg != "" {
			t.Fatalf("infinite-fuel lantern produced %q", msg)
		}
	}
	if !state.HasProperty(s, "lantern", types.PropLit) {
		t.Error("infinite-fuel lantern should stay lit")
	}
}

func TestTickFuel_SeedsFromRatedFuel(t *testing.T) {
	w := testWorld()
	s := state.New(w)
	state.MoveToInventory(s, "candle")
	state.AddProperty(s, "candle", types.PropLit)

	if msg := TickFuel(s, w); msg != "" {
		t.Errorf("fresh candle should burn silently, got %q", msg)
	}
	if s.Counters["fuel_candle"] != 99 {
		t.Errorf("fuel_candle = %d, want 99", s.Counters["fuel_candle"])
	}
}

func TestTickFuel_DimAndOut(t *testing.T) {
	w := testWorld()
	s := state.New(w)
	state.MoveToInventory(s, "candle")
	state.AddProperty(s, "candle", types.PropLit)

	// Force a nearly spent fuel counter; rated fuel only seeds it.
	s.Counters["fuel_candle"] = 22

	if msg := TickFuel(s, w); msg != "" {
		t.Errorf("at 21 fuel, no warning yet: %q", msg)
	}
	if msg := TickFuel(s, w); msg != "The candle is getting dim." {
		t.Errorf("dim warning = %q", msg)
	}

	s.Counters["fuel_candle"] = 1
	if msg := TickFuel(s, w); msg != "The candle has run out of power." {
		t.Errorf("out message = %q", msg)
	}
	if state.HasProperty(s, "candle", types.PropLit) {
		t.Error("spent candle should go out")
	}
}

func TestTickFuel_UnlitUntouched(t *testing.T) {
	w := testWorld()
	s := state.New(w)
	state.MoveToInventory(s, "candle")

	if msg := TickFuel(s, w); msg != "" {
		t.Errorf("unlit candle should not burn, got %q", msg)
	}
	if _, ok := s.Counters["fuel_candle"]; ok {
		t.Error("unlit candle must not seed a fuel counter")
	}
}
