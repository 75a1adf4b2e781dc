package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cfirth/fable/engine"
	"github.com/cfirth/fable/engine/save"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// testWorld returns a minimal two-room world for CLI testing.
func testWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(&world.Content{
		Config: types.GameConfig{
			Title:        "Test Game",
			StartingRoom: "hall",
			IntroText:    "Welcome to the test.",
		},
		Rooms: []types.Room{
			{ID: "hall", Name: "Hall", Description: "A grand hall.",
				Exits: []types.Exit{{Direction: types.North, TargetRoom: "garden"}}},
			{ID: "garden", Name: "Garden", Description: "A peaceful garden.",
				Exits: []types.Exit{{Direction: types.South, TargetRoom: "hall"}}},
		},
		Objects: []types.GameObject{
			{ID: "rusty_key", Name: "rusty key", Aliases: []string{"key"}, Location: "hall",
				Properties:  []types.ObjectProperty{types.PropTakeable},
				Description: types.ObjectDescription{Examine: "An old key."}},
		},
		Verbs: []types.VerbDefinition{
			{ID: "look", Names: []string{"look", "l"}},
			{ID: "go", Names: []string{"go", "walk"}},
			{ID: "take", Names: []string{"take", "get"}},
			{ID: "inventory", Names: []string{"inventory", "i"}},
			{ID: "quit", Names: []string{"quit"}},
		},
	})
	return w
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	store, err := save.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	eng := engine.New(testWorld(t), engine.Options{Store: store})
	var out bytes.Buffer
	return &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}, &out
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "A grand hall.") {
		t.Error("expected starting room description in output")
	}
}

func TestCLI_BasicGameplay(t *testing.T) {
	c, out := newTestCLI(t, "take key\ninventory\nquit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "rusty key") {
		t.Error("expected taken key to show in inventory")
	}
	if !strings.Contains(output, "Your final score is") {
		t.Error("expected final score report before exit")
	}
	if !strings.Contains(output, "Goodbye.") {
		t.Error("expected farewell after quit verb")
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "go north\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "A peaceful garden.") {
		t.Error("expected garden description after going north")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/quit", "/state", "save / restore"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_SaveAndRestore(t *testing.T) {
	store, err := save.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	w := testWorld(t)

	// Play a bit and save.
	var out bytes.Buffer
	c := &CLI{
		Engine: engine.New(w, engine.Options{Store: store}),
		In:     strings.NewReader("go north\nsave test\n/quit\n"),
		Out:    &out,
	}
	c.Run()
	if !strings.Contains(out.String(), "Game saved to slot 'test'.") {
		t.Error("expected save confirmation")
	}

	// Start fresh and restore from the same store.
	var out2 bytes.Buffer
	c2 := &CLI{
		Engine: engine.New(w, engine.Options{Store: store}),
		In:     strings.NewReader("restore test\n/quit\n"),
		Out:    &out2,
	}
	c2.Run()

	output := out2.String()
	if !strings.Contains(output, "Game restored from slot 'test'.") {
		t.Error("expected restore confirmation")
	}
	if !strings.Contains(output, "A peaceful garden.") {
		t.Error("expected garden description after restoring save")
	}
}

func TestCLI_RestoreNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "restore nonexistent\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "No save found in slot 'nonexistent'.") {
		t.Error("expected missing-save message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nlook\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace] turn=1 verb=look") {
		t.Error("expected trace line after look")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Location: hall") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(output, "Turn:") {
		t.Error("expected turn count in state output")
	}
}

func TestCLI_EmptyAndCommentLines(t *testing.T) {
	c, out := newTestCLI(t, "\n# script comment\n\n/quit\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, "script comment") {
		t.Error("comment lines should be silently skipped")
	}
	if strings.Contains(output, "I don't understand") {
		t.Error("empty lines should be silently skipped")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "go north\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> go north\n") {
		t.Error("expected echoed input after prompt")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "look\nagain\n/quit\n")
	c.Run()

	// Intro look plus two explicit looks.
	count := strings.Count(out.String(), "A grand hall.")
	if count < 3 {
		t.Errorf("expected 'A grand hall.' at least 3 times (intro + look + again), got %d", count)
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "look\ng\n/quit\n")
	c.Run()

	count := strings.Count(out.String(), "A grand hall.")
	if count < 3 {
		t.Errorf("expected 'A grand hall.' at least 3 times, got %d", count)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}
