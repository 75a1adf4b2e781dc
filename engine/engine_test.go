package engine

import (
	"strings"
	"testing"

	"github.com/cfirth/fable/engine/effects"
	"github.com/cfirth/fable/engine/save"
	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// testWorld builds a small test game: a lit cellar, a dark crypt, a
// treasure, a trophy case, and a handful of events.
func testWorld() *world.World {
	return world.New(&world.Content{
		Config: types.GameConfig{
			Title:           "Test Adventure",
			StartingRoom:    "cellar",
			IntroText:       "Welcome to the test.",
			MaxScore:        10,
			TrophyContainer: "trophy_case",
			Ranks:           map[int]string{0: "Beginner", 10: "Master"},
		},
		Rooms: []types.Room{
			{
				ID:          "cellar",
				Name:        "Cellar",
				Description: "A damp stone cellar.",
				Exits: []types.Exit{
					{Direction: types.North, TargetRoom: "crypt"},
					{Direction: types.Down, TargetRoom: "vault", Hidden: true},
				},
			},
			{
				ID:          "vault",
				Name:        "Vault",
				Description: "A sealed vault.",
				Exits: []types.Exit{
					{Direction: types.Up, TargetRoom: "cellar"},
				},
			},
			{
				ID:          "crypt",
				Name:        "Crypt",
				Description: "An old crypt.",
				IsDark:      true,
				Exits: []types.Exit{
					{Direction: types.South, TargetRoom: "cellar"},
				},
			},
		},
		Objects: []types.GameObject{
			{
				ID:         "lantern",
				Name:       "lantern",
				Location:   "cellar",
				Properties: []types.ObjectProperty{types.PropTakeable, types.PropLightSource},
				LightFuel:  -1,
			},
			{
				ID:         "candle",
				Name:       "candle",
				Location:   "cellar",
				Properties: []types.ObjectProperty{types.PropTakeable, types.PropLightSource},
				LightFuel:  100,
			},
			{
				ID:         "emerald",
				Name:       "emerald",
				Location:   "cellar",
				Properties: []types.ObjectProperty{types.PropTakeable},
				ScoreValue: 10,
			},
			{
				ID:         "trophy_case",
				Name:       "trophy case",
				Aliases:    []string{"case"},
				Location:   "cellar",
				Properties: []types.ObjectProperty{types.PropContainer, types.PropOpenable, types.PropOpen, types.PropFixed},
			},
			{
				ID:         "altar",
				Name:       "altar",
				Location:   "cellar",
				Properties: []types.ObjectProperty{types.PropFixed},
			},
		},
		Verbs: []types.VerbDefinition{
			{ID: "look", Names: []string{"look", "l"}},
			{ID: "go", Names: []string{"go", "walk"}},
			{ID: "take", Names: []string{"take", "get"}},
			{ID: "drop", Names: []string{"drop"}},
			{ID: "put", Names: []string{"put"}},
			{ID: "inventory", Names: []string{"inventory", "i"}},
			{ID: "wait", Names: []string{"wait", "z"}},
			{ID: "turn_on", Names: []string{"turn_on"}},
			{ID: "quit", Names: []string{"quit"}},
			{ID: "save", Names: []string{"save"}},
			{ID: "restore", Names: []string{"restore"}},
			{ID: "examine", Names: []string{"examine", "x"}},
		},
		Events: []types.Event{
			{
				ID:      "altar_guard",
				Trigger: types.BeforeAction,
				Conditions: []types.Condition{
					{Type: types.CondActionIs, Target: "take"},
					{Type: types.CondActionTargetIs, Target: "emerald"},
					{Type: types.CondFlagNotSet, Target: "altar_appeased"},
				},
				Effects: []types.Effect{
					{Type: types.EffPrintMessage, Text: "A ghostly hand wards you off."},
					{Type: types.EffBlockAction},
				},
			},
			{
				ID:      "first_rumble",
				Trigger: types.EachTurn,
				Once:    true,
				Effects: []types.Effect{
					{Type: types.EffPrintMessage, Text: "The ground rumbles."},
				},
			},
		},
	})
}

func newTestEngine(w *world.World) *Engine {
	return New(w, Options{Seed: 42})
}

func TestStartGame_IntroAndRoom(t *testing.T) {
	e := newTestEngine(testWorld())

	out := e.StartGame()
	if !strings.Contains(out, "Welcome to the test.") {
		t.Errorf("missing intro in %q", out)
	}
	if !strings.Contains(out, "A damp stone cellar.") {
		t.Errorf("missing room description in %q", out)
	}
}

func TestProcessInput_UnknownVerb(t *testing.T) {
	e := newTestEngine(testWorld())

	out, quit := e.ProcessInput("frobnicate altar")
	if quit {
		t.Error("unexpected quit")
	}
	if out != "I don't know how to 'frobnicate'." {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProcessInput_UnknownObject(t *testing.T) {
	e := newTestEngine(testWorld())

	out, _ := e.ProcessInput("take unicorn")
	if out != "I don't see any 'unicorn' here." {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProcessInput_TakeAndDrop(t *testing.T) {
	e := newTestEngine(testWorld())

	out, _ := e.ProcessInput("take lantern")
	if !strings.Contains(out, "Taken.") {
		t.Errorf("expected 'Taken.', got %q", out)
	}
	if !state.HasItem(e.State, "lantern") {
		t.Error("expected lantern in inventory")
	}

	out, _ = e.ProcessInput("drop lantern")
	if !strings.Contains(out, "Dropped.") {
		t.Errorf("expected 'Dropped.', got %q", out)
	}
	if !state.Placement(e.State, "lantern").Room("cellar") {
		t.Error("expected lantern back in cellar")
	}
}

func TestProcessInput_TurnsAdvance(t *testing.T) {
	e := newTestEngine(testWorld())

	e.ProcessInput("wait")
	e.ProcessInput("wait")
	if e.State.Turns != 2 {
		t.Errorf("expected 2 turns, got %d", e.State.Turns)
	}
}

func TestProcessInput_FailedResolutionConsumesNoTurn(t *testing.T) {
	e := newTestEngine(testWorld())

	e.ProcessInput("take unicorn")
	if e.State.Turns != 0 {
		t.Errorf("expected 0 turns, got %d", e.State.Turns)
	}
}

func TestProcessInput_BlockedAction(t *testing.T) {
	e := newTestEngine(testWorld())

	out, _ := e.ProcessInput("take emerald")
	if !strings.Contains(out, "A ghostly hand wards you off.") {
		t.Errorf("expected block message, got %q", out)
	}
	if state.HasItem(e.State, "emerald") {
		t.Error("blocked take should not move the emerald")
	}

	e.State.Flags["altar_appeased"] = true
	out, _ = e.ProcessInput("take emerald")
	if !strings.Contains(out, "Taken.") {
		t.Errorf("expected take to succeed, got %q", out)
	}
}

func TestProcessInput_OnceEventFiresOnce(t *testing.T) {
	e := newTestEngine(testWorld())

	out, _ := e.ProcessInput("wait")
	if !strings.Contains(out, "The ground rumbles.") {
		t.Errorf("expected rumble on first turn, got %q", out)
	}

	out, _ = e.ProcessInput("wait")
	if strings.Contains(out, "The ground rumbles.") {
		t.Errorf("once event fired twice: %q", out)
	}
}

func TestProcessInput_Quit(t *testing.T) {
	e := newTestEngine(testWorld())

	out, quit := e.ProcessInput("quit")
	if !quit {
		t.Error("expected quit")
	}
	if !strings.Contains(out, "Your final score is 0 (out of 10), in 0 turns.") {
		t.Errorf("expected final score report on quit, got %q", out)
	}
	if !strings.Contains(out, "rank of Beginner") {
		t.Errorf("expected rank in quit report, got %q", out)
	}
}

func TestParserContext_RevealedHiddenExit(t *testing.T) {
	e := newTestEngine(testWorld())

	for _, dir := range e.ParserContext().Exits {
		if dir == "down" {
			t.Fatal("hidden exit offered to the parser before being revealed")
		}
	}

	e.State.Flags[effects.RevealFlag("cellar", types.Down)] = true

	found := false
	for _, dir := range e.ParserContext().Exits {
		if dir == "down" {
			found = true
		}
	}
	if !found {
		t.Error("revealed exit missing from parser context")
	}
}

func TestDarkness_WarningThenDeath(t *testing.T) {
	e := newTestEngine(testWorld())

	out, _ := e.ProcessInput("go north")
	if !strings.Contains(out, "It is pitch black. You are likely to be eaten by a grue.") {
		t.Errorf("expected grue warning, got %q", out)
	}
	if !e.State.PlayerAlive {
		t.Fatal("player should survive the first dark turn")
	}

	out, _ = e.ProcessInput("wait")
	if !strings.Contains(out, "lurking grue") {
		t.Errorf("expected grue death, got %q", out)
	}
	if e.State.PlayerAlive {
		t.Error("expected player dead")
	}

	out, _ = e.ProcessInput("look")
	if !strings.Contains(out, "You are dead.") {
		t.Errorf("expected dead-player gate, got %q", out)
	}
}

func TestDarkness_LitLanternResetsClock(t *testing.T) {
	e := newTestEngine(testWorld())

	e.ProcessInput("take lantern")
	e.ProcessInput("turn_on lantern")
	e.ProcessInput("go north")

	if e.State.DarkTurns != 0 {
		t.Errorf("expected dark clock at 0 with lit lantern, got %d", e.State.DarkTurns)
	}
	if !e.State.PlayerAlive {
		t.Error("player should be alive")
	}
}

func TestDarkness_GatesVerbs(t *testing.T) {
	e := newTestEngine(testWorld())

	e.ProcessInput("take lantern")
	e.ProcessInput("go north")
	out, _ := e.ProcessInput("examine lantern")
	if !strings.Contains(out, "pitch black") {
		t.Errorf("expected darkness gate, got %q", out)
	}
}

func TestScoring_TrophyCaseAwardsOnce(t *testing.T) {
	e := newTestEngine(testWorld())
	e.State.Flags["altar_appeased"] = true

	e.ProcessInput("take emerald")
	out, _ := e.ProcessInput("put emerald in case")
	if !strings.Contains(out, "[Your score just went up by 10 points.]") {
		t.Errorf("expected score announcement, got %q", out)
	}
	if e.State.Score != 10 {
		t.Errorf("expected score 10, got %d", e.State.Score)
	}

	// Taking it back out and re-depositing must not double-score.
	state.MoveToInventory(e.State, "emerald")
	out, _ = e.ProcessInput("put emerald in case")
	if strings.Contains(out, "score just went up") {
		t.Errorf("treasure scored twice: %q", out)
	}
	if e.State.Score != 10 {
		t.Errorf("expected score still 10, got %d", e.State.Score)
	}
}

func TestSaveRestore_RoundTrip(t *testing.T) {
	w := testWorld()
	store, err := save.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(w, Options{Seed: 42, Store: store})
	e.State.Flags["altar_appeased"] = true

	e.ProcessInput("take lantern")
	e.ProcessInput("take emerald")

	out, _ := e.ProcessInput("save slot1")
	if out != "Game saved to slot 'slot1'." {
		t.Fatalf("unexpected save output %q", out)
	}

	// Mutate past the save point.
	e.ProcessInput("drop emerald")
	e.ProcessInput("go north")
	if e.State.CurrentRoom != "crypt" {
		t.Fatal("setup failed: expected crypt")
	}

	out, _ = e.ProcessInput("restore slot1")
	if !strings.Contains(out, "Game restored from slot 'slot1'.") {
		t.Fatalf("unexpected restore output %q", out)
	}
	if e.State.CurrentRoom != "cellar" {
		t.Errorf("expected cellar after restore, got %q", e.State.CurrentRoom)
	}
	if !state.HasItem(e.State, "emerald") {
		t.Error("expected emerald back in inventory")
	}
	if e.RNG.Position() != e.State.RNGPosition {
		t.Errorf("rng position mismatch: rng=%d state=%d", e.RNG.Position(), e.State.RNGPosition)
	}
}

func TestRestore_MissingSlot(t *testing.T) {
	store, err := save.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(testWorld(), Options{Store: store})

	out, _ := e.ProcessInput("restore nothing")
	if out != "No save found in slot 'nothing'." {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDeterminism_SameSeedSameTranscript(t *testing.T) {
	script := []string{"take lantern", "wait", "go north", "go south", "wait", "wait"}

	run := func() []string {
		e := New(testWorld(), Options{Seed: 7})
		var outputs []string
		for _, line := range script {
			out, _ := e.ProcessInput(line)
			outputs = append(outputs, out)
		}
		return outputs
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("turn %d diverged:\n%q\nvs\n%q", i, a[i], b[i])
		}
	}
}

func TestDeath_FinalScoreReport(t *testing.T) {
	e := newTestEngine(testWorld())

	// Two turns in the dark crypt without a light: warning, then the grue.
	e.ProcessInput("go north")
	out, _ := e.ProcessInput("wait")

	if !strings.Contains(out, "Your final score is 0 (out of 10), in") {
		t.Errorf("expected final score report on death, got %q", out)
	}
	if !strings.Contains(out, "rank of Beginner") {
		t.Errorf("expected rank in final score report, got %q", out)
	}
	if !strings.Contains(out, "Type 'restore' to load a save or 'quit' to exit.") {
		t.Errorf("expected death menu hint, got %q", out)
	}
}

func TestDeadPlayer_QuitExits(t *testing.T) {
	e := newTestEngine(testWorld())
	e.ProcessInput("go north")
	e.ProcessInput("wait")
	if e.State.PlayerAlive {
		t.Fatal("setup failed: expected dead player")
	}

	if out, quit := e.ProcessInput("look"); quit || !strings.Contains(out, "You are dead.") {
		t.Errorf("expected dead-player gate, got %q quit=%v", out, quit)
	}
	out, quit := e.ProcessInput("quit")
	if !quit {
		t.Error("expected quit to exit while dead")
	}
	if !strings.Contains(out, "Your final score is") {
		t.Errorf("expected final score report on quit while dead, got %q", out)
	}
}

func TestDeadPlayer_RestoreRevives(t *testing.T) {
	store, err := save.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(testWorld(), Options{Seed: 42, Store: store})

	e.ProcessInput("save before")
	e.ProcessInput("go north")
	e.ProcessInput("wait")
	if e.State.PlayerAlive {
		t.Fatal("setup failed: expected dead player")
	}

	out, quit := e.ProcessInput("restore before")
	if quit {
		t.Fatal("restore should not quit")
	}
	if !strings.Contains(out, "Game restored from slot 'before'.") {
		t.Errorf("unexpected restore output %q", out)
	}
	if !e.State.PlayerAlive {
		t.Error("expected restore to revive the player")
	}
	if e.State.CurrentRoom != "cellar" {
		t.Errorf("expected cellar after restore, got %q", e.State.CurrentRoom)
	}
}

func TestTrace_AppendsTurnSummary(t *testing.T) {
	e := newTestEngine(testWorld())

	out, _ := e.ProcessInput("wait")
	if strings.Contains(out, "[trace]") {
		t.Errorf("trace output should be off by default, got %q", out)
	}

	e.Trace = true
	out, _ = e.ProcessInput("take lantern")
	if !strings.Contains(out, "[trace] turn=2 verb=take direct=lantern") {
		t.Errorf("expected trace line, got %q", out)
	}
}
