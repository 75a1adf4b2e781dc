// Package engine provides the turn orchestrator that wires together
// parsing, resolution, events, action handlers, and the per-turn world
// systems into a single ProcessInput call.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cfirth/fable/debug"
	"github.com/cfirth/fable/engine/actions"
	"github.com/cfirth/fable/engine/effects"
	"github.com/cfirth/fable/engine/parser"
	"github.com/cfirth/fable/engine/resolve"
	"github.com/cfirth/fable/engine/rules"
	"github.com/cfirth/fable/engine/save"
	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/observability"
	"github.com/cfirth/fable/types"
)

// verbs usable while standing in darkness. Moving is allowed but risky.
var allowedInDark = map[string]bool{
	"look": true, "inventory": true, "turn_on": true, "quit": true,
	"save": true, "restore": true, "score": true, "wait": true,
}

// Options configures optional engine collaborators. Zero values get
// sensible defaults: keyword parser, no persistence, silent logger.
type Options struct {
	Parser parser.Parser
	Store  save.Store
	Seed   int64
	Log    *debug.Logger
	Tracer trace.Tracer
}

// Engine holds the immutable world and the mutable session state.
type Engine struct {
	World    *world.World
	State    *types.GameState
	Parser   parser.Parser
	Resolver *resolve.Resolver
	Registry *actions.Registry
	RNG      *RNG
	Store    save.Store

	// Trace appends a turn summary line to the output when set. Frontends
	// toggle it at runtime.
	Trace bool

	log    *debug.Logger
	tracer trace.Tracer
}

// New creates an engine with fresh state for the given world.
func New(w *world.World, opts Options) *Engine {
	if opts.Parser == nil {
		opts.Parser = parser.NewKeyword()
	}
	if opts.Log == nil {
		opts.Log = debug.NewLogger(false, "")
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("fable")
	}

	s := state.New(w)
	s.RNGSeed = opts.Seed

	return &Engine{
		World:    w,
		State:    s,
		Parser:   opts.Parser,
		Resolver: resolve.New(w),
		Registry: actions.NewRegistry(),
		RNG:      NewRNG(opts.Seed),
		Store:    opts.Store,
		log:      opts.Log,
		tracer:   opts.Tracer,
	}
}

// StartGame returns the intro text and the first room description.
func (e *Engine) StartGame() string {
	var parts []string
	if e.World.Config.IntroText != "" {
		parts = append(parts, e.World.Config.IntroText)
	}
	parts = append(parts, actions.RoomDescription(e.State.CurrentRoom, e.State, e.World, true))
	e.State.VisitedRooms[e.State.CurrentRoom] = true
	return strings.Join(parts, "\n\n")
}

// ProcessInput runs one full turn. The returned quit flag tells the
// frontend to shut down.
func (e *Engine) ProcessInput(input string) (output string, quit bool) {
	_, span := e.tracer.Start(context.Background(), "turn")
	defer span.End()

	// 0. Dead players only get the exit doors.
	if !e.State.PlayerAlive {
		words := strings.Fields(strings.ToLower(input))
		first := ""
		if len(words) > 0 {
			first = words[0]
		}
		switch first {
		case "quit", "q":
			return e.finalScore(), true
		case "restore", "load":
			// Fall through to the normal pipeline; handleMeta revives.
		default:
			return "You are dead. Type 'quit' to exit or 'restore' to load a save.", false
		}
	}

	aliveBefore := e.State.PlayerAlive

	// 1. Parse input with fresh surroundings context.
	cmd, err := e.Parser.Parse(input, e.ParserContext())
	if err != nil {
		return err.Error(), false
	}
	e.log.Printf("parsed: %+v", cmd)

	span.SetAttributes(observability.TurnAttributes(e.State.Turns, cmd.Verb, e.State.CurrentRoom)...)

	// 2. Save and restore bypass the turn pipeline entirely.
	if msg, handled := e.handleMeta(cmd); handled {
		return msg, false
	}

	// 3. Resolve to exact entity IDs.
	resolved, err := e.Resolver.Resolve(cmd, e.State)
	if err != nil {
		return err.Error(), false
	}
	e.log.Printf("resolved: %+v", resolved)

	// Hand the handlers a command with IDs instead of raw names.
	resolvedCmd := cmd
	switch {
	case resolved.DirectObjectID != "":
		resolvedCmd.DirectObject = resolved.DirectObjectID
	case resolved.NPCTargetID != "":
		resolvedCmd.DirectObject = resolved.NPCTargetID
	}
	if resolved.IndirectObjectID != "" {
		resolvedCmd.IndirectObject = resolved.IndirectObjectID
	}

	// 4. Darkness gates most verbs.
	if IsDark(e.State, e.World) && !allowedInDark[resolved.VerbID] && resolved.VerbID != "go" {
		return DarkDescription(e.State, e.World), false
	}

	// 5. Pre-action events may block the action outright.
	eventMessages, blocked := e.runEvents(types.BeforeAction, resolved)
	if blocked {
		return strings.Join(eventMessages, "\n"), false
	}

	// 6. Dispatch to the verb handler.
	handler := e.Registry.Handler(resolved.VerbID)
	if handler == nil {
		return "I don't know how to do that.", false
	}
	result := handler(resolvedCmd, e.State, e.World)
	if result.Quit {
		return e.finalScore(), true
	}

	// 7. Post-action events.
	postMessages, _ := e.runEvents(types.AfterAction, resolved)

	// 8. Advance the turn and run world systems.
	e.State.Turns++
	systemMessages := e.tickSystems()

	// 9. Scoring check.
	_, scoreMsg := CheckTreasureScore(e.State, e.World)

	// 10. Track RNG position for save/restore.
	e.State.RNGPosition = e.RNG.Position()

	// 11. Compile output, skipping empties.
	all := append([]string{}, eventMessages...)
	if msg := result.FullMessage(); msg != "" {
		all = append(all, msg)
	}
	all = append(all, postMessages...)
	all = append(all, systemMessages...)
	if scoreMsg != "" {
		all = append(all, scoreMsg)
	}

	if aliveBefore && !e.State.PlayerAlive {
		all = append(all, e.finalScore(),
			"Type 'restore' to load a save or 'quit' to exit.")
	}

	if e.Trace {
		all = append(all, fmt.Sprintf("[trace] turn=%d verb=%s direct=%s indirect=%s npc=%s room=%s",
			e.State.Turns, resolved.VerbID, resolved.DirectObjectID, resolved.IndirectObjectID,
			resolved.NPCTargetID, e.State.CurrentRoom))
	}

	var kept []string
	for _, msg := range all {
		if msg != "" {
			kept = append(kept, msg)
		}
	}
	return strings.Join(kept, "\n"), false
}

// finalScore is the end-of-game report shown on quit and on death.
func (e *Engine) finalScore() string {
	return fmt.Sprintf("Your final score is %d (out of %d), in %d turns. This gives you the rank of %s.",
		e.State.Score, e.World.Config.MaxScore, e.State.Turns, actions.Rank(e.State, e.World))
}

// ParserContext describes the player's current surroundings for parsing.
func (e *Engine) ParserContext() *parser.Context {
	ctx := &parser.Context{}
	s, w := e.State, e.World

	for _, id := range state.ObjectsInRoom(s, s.CurrentRoom) {
		obj := w.Object(id)
		if obj == nil || state.HasProperty(s, id, types.PropHidden) {
			continue
		}
		ctx.VisibleObjects = append(ctx.VisibleObjects, obj.Name)
		if state.HasProperty(s, id, types.PropOpen) {
			for _, childID := range state.ObjectsInContainer(s, id) {
				if child := w.Object(childID); child != nil {
					ctx.VisibleObjects = append(ctx.VisibleObjects, child.Name)
				}
			}
		}
	}

	for _, id := range s.Inventory {
		if obj := w.Object(id); obj != nil {
			ctx.Inventory = append(ctx.Inventory, obj.Name)
		}
	}

	if room := w.Room(s.CurrentRoom); room != nil {
		for _, exit := range room.Exits {
			if exit.Hidden && !s.Flags[effects.RevealFlag(room.ID, exit.Direction)] {
				continue
			}
			ctx.Exits = append(ctx.Exits, string(exit.Direction))
		}
	}

	for _, verb := range w.Verbs() {
		names := verb.Names
		if len(names) > 2 {
			names = names[:2]
		}
		ctx.ValidVerbs = append(ctx.ValidVerbs, names...)
	}

	for _, id := range state.NPCsInRoom(s, s.CurrentRoom) {
		if npc := w.NPC(id); npc != nil {
			ctx.NPCNames = append(ctx.NPCNames, npc.Name)
		}
	}

	return ctx
}

// Save writes the current state to a slot.
func (e *Engine) Save(slot string) error {
	if e.Store == nil {
		return errors.New("saving is not available")
	}
	e.State.RNGPosition = e.RNG.Position()
	data, err := save.Marshal(e.State, e.World.Config.Title)
	if err != nil {
		return err
	}
	return e.Store.Put(slot, data)
}

// Restore replaces the current state from a slot and re-creates the RNG
// at its saved position.
func (e *Engine) Restore(slot string) error {
	if e.Store == nil {
		return errors.New("saving is not available")
	}
	data, err := e.Store.Get(slot)
	if err != nil {
		return err
	}
	snap, err := save.Unmarshal(data)
	if err != nil {
		return err
	}
	save.Apply(e.State, snap)
	e.RNG = RestoreRNG(snap.RNGSeed, snap.RNGPosition)
	return nil
}

// handleMeta intercepts save/restore verbs. Returns handled=false for
// everything else.
func (e *Engine) handleMeta(cmd types.Command) (string, bool) {
	switch cmd.Verb {
	case "save":
		slot := cmd.DirectObject
		if slot == "" {
			slot = "quicksave"
		}
		if err := e.Save(slot); err != nil {
			return fmt.Sprintf("Save failed: %v", err), true
		}
		return fmt.Sprintf("Game saved to slot '%s'.", slot), true

	case "restore":
		slot := cmd.DirectObject
		if slot == "" {
			slot = "quicksave"
		}
		if err := e.Restore(slot); err != nil {
			if errors.Is(err, save.ErrNotFound) {
				return fmt.Sprintf("No save found in slot '%s'.", slot), true
			}
			return fmt.Sprintf("Restore failed: %v", err), true
		}
		desc := actions.RoomDescription(e.State.CurrentRoom, e.State, e.World, true)
		return fmt.Sprintf("Game restored from slot '%s'.\n\n%s", slot, desc), true
	}
	return "", false
}

// runEvents evaluates events for a trigger in priority order. Returns the
// collected messages and whether a block_action effect fired.
func (e *Engine) runEvents(trigger types.TriggerType, resolved resolve.ResolvedAction) ([]string, bool) {
	var messages []string
	blocked := false

	ctx := rules.Context{VerbID: resolved.VerbID, DirectObjectID: resolved.DirectObjectID}
	for _, event := range e.World.EventsForTrigger(trigger) {
		if event.Once && e.State.FiredEvents[event.ID] {
			continue
		}
		if !rules.CheckAll(event.Conditions, e.State, ctx) {
			continue
		}

		effectMessages, err := effects.ApplyAll(event.Effects, e.State)
		if err != nil {
			e.log.Printf("event %s: %v", event.ID, err)
		}
		for _, msg := range effectMessages {
			if msg == effects.Blocked {
				blocked = true
				continue
			}
			messages = append(messages, msg)
		}
		if event.Once {
			e.State.FiredEvents[event.ID] = true
		}
		e.log.Printf("event fired: %s", event.ID)
	}

	return messages, blocked
}

// tickSystems runs the per-turn world updates in a fixed order so the RNG
// stream stays reproducible.
func (e *Engine) tickSystems() []string {
	var messages []string

	entryMessages, _ := e.runEvents(types.EnterRoom, resolve.ResolvedAction{})
	messages = append(messages, entryMessages...)

	turnMessages, _ := e.runEvents(types.EachTurn, resolve.ResolvedAction{})
	messages = append(messages, turnMessages...)

	if msg := TickFuel(e.State, e.World); msg != "" {
		messages = append(messages, msg)
	}
	if msg := TickDarkness(e.State, e.World); msg != "" {
		messages = append(messages, msg)
	}

	messages = append(messages, TickNPCs(e.State, e.World, e.RNG)...)

	if e.State.PlayerAlive {
		messages = append(messages, TickHostiles(e.State, e.World, e.RNG)...)
	}

	return messages
}
