// Package actions implements the built-in verb handlers and the explicit
// verb-to-handler table the orchestrator dispatches through.
package actions

import (
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// Result is the outcome of executing one action handler.
type Result struct {
	Message string
	Extra   []string // follow-up lines appended after Message
	Success bool
	Quit    bool // reserved quit signal, propagated untouched to the caller
}

// FullMessage joins the primary message and extra lines, skipping empties.
func (r Result) FullMessage() string {
	out := r.Message
	for _, m := range r.Extra {
		if m == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += m
	}
	return out
}

func ok(msg string) Result {
	return Result{Message: msg, Success: true}
}

func refuse(msg string) Result {
	return Result{Message: msg, Success: false}
}

// Handler executes a resolved command against the game state.
type Handler func(cmd types.Command, s *types.GameState, w *world.World) Result

// Registry maps verb IDs to handlers. It is built once at engine
// construction and passed by reference; there is no global registration.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds the table of built-in handlers.
func NewRegistry() *Registry {
	r := &Registry{handlers: map[string]Handler{}}
	r.Register("look", handleLook)
	r.Register("go", handleGo)
	r.Register("take", handleTake)
	r.Register("take_from", handleTakeFrom)
	r.Register("drop", handleDrop)
	r.Register("inventory", handleInventory)
	r.Register("examine", handleExamine)
	r.Register("open", handleOpen)
	r.Register("close", handleClose)
	r.Register("turn_on", handleTurnOn)
	r.Register("turn_off", handleTurnOff)
	r.Register("put", handlePut)
	r.Register("unlock", handleUnlock)
	r.Register("read", handleRead)
	r.Register("eat", handleEat)
	r.Register("attack", handleAttack)
	r.Register("move", handleMove)
	r.Register("wait", handleWait)
	r.Register("score", handleScore)
	r.Register("quit", handleQuit)
	return r
}

// Register adds or replaces a handler for a verb ID.
func (r *Registry) Register(verbID string, h Handler) {
	r.handlers[verbID] = h
}

// Handler returns the handler for a verb ID, or nil.
func (r *Registry) Handler(verbID string) Handler {
	return r.handlers[verbID]
}

// Verbs returns the registered verb IDs. Order is not significant.
func (r *Registry) Verbs() []string {
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	return ids
}
