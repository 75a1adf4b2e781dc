// Package parser converts player input into structured commands.
// Two implementations exist: a keyword parser that needs no network, and
// an LLM-backed parser for free-form phrasing.
package parser

import (
	"strings"

	"github.com/cfirth/fable/types"
)

// Context is what a parser knows about the player's surroundings. It is
// rebuilt before every parse so disambiguation tracks the current room.
type Context struct {
	VisibleObjects []string
	Inventory      []string
	Exits          []string
	ValidVerbs     []string
	NPCNames       []string
}

// Parser turns raw input into a command. Object references in the result
// are either exact names from the context or free text for the resolver.
type Parser interface {
	Parse(input string, ctx *Context) (types.Command, error)
}

// prepositions split the direct object from the indirect object.
var prepositions = map[string]bool{
	"in": true, "on": true, "with": true, "at": true, "to": true,
	"from": true, "into": true, "onto": true, "under": true,
	"behind": true, "through": true,
}

var verbAliases = map[string]string{
	"l":       "look",
	"look":    "look",
	"examine": "examine",
	"x":       "examine",
	"inspect": "examine",

	"get":  "take",
	"take": "take",
	"grab": "take",
	"pick": "take",

	"drop":  "drop",
	"throw": "drop",

	"i":         "inventory",
	"inv":       "inventory",
	"inventory": "inventory",

	"go":   "go",
	"walk": "go",
	"run":  "go",

	"move": "move",
	"push": "move",
	"pull": "move",

	"open":  "open",
	"close": "close",
	"shut":  "close",

	"turn":       "turn_on",
	"light":      "turn_on",
	"extinguish": "turn_off",

	"put":    "put",
	"place":  "put",
	"insert": "put",

	"unlock": "unlock",
	"lock":   "lock",

	"read":  "read",
	"eat":   "eat",
	"drink": "eat",

	"attack": "attack",
	"kill":   "attack",
	"hit":    "attack",
	"fight":  "attack",
	"strike": "attack",

	"wait": "wait",
	"z":    "wait",

	"score": "score",

	"quit": "quit",
	"q":    "quit",

	"save":    "save",
	"restore": "restore",
	"load":    "restore",
}

// Keyword is the offline parser. No NLP, just word patterns.
type Keyword struct{}

// NewKeyword returns the keyword parser.
func NewKeyword() *Keyword {
	return &Keyword{}
}

// Parse splits input into verb, objects, and preposition. Unknown verb
// words pass through unchanged; the resolver reports them.
func (p *Keyword) Parse(input string, ctx *Context) (types.Command, error) {
	raw := strings.TrimSpace(input)
	text := strings.ToLower(raw)

	if text == "" {
		return types.Command{Verb: "look", RawInput: raw}, nil
	}

	// Bare direction shortcut: "n", "south", etc.
	if dir, ok := types.ParseDirection(text); ok {
		return types.Command{Verb: "go", Direction: string(dir), RawInput: raw}, nil
	}

	words := strings.Fields(text)
	verbWord := words[0]
	rest := words[1:]

	// Two-word verb forms.
	if verbWord == "pick" && len(rest) > 0 && rest[0] == "up" {
		return types.Command{
			Verb:         "take",
			DirectObject: p.matchObject(strings.Join(rest[1:], " "), ctx),
			RawInput:     raw,
		}, nil
	}
	if verbWord == "turn" && len(rest) > 0 && (rest[0] == "on" || rest[0] == "off") {
		verb := "turn_on"
		if rest[0] == "off" {
			verb = "turn_off"
		}
		return types.Command{
			Verb:         verb,
			DirectObject: p.matchObject(strings.Join(rest[1:], " "), ctx),
			RawInput:     raw,
		}, nil
	}
	if verbWord == "look" && len(rest) > 0 && rest[0] == "at" {
		return types.Command{
			Verb:         "examine",
			DirectObject: p.matchObject(strings.Join(rest[1:], " "), ctx),
			RawInput:     raw,
		}, nil
	}

	verb := verbWord
	if canonical, ok := verbAliases[verbWord]; ok {
		verb = canonical
	}

	if verb == "go" && len(rest) > 0 {
		if dir, ok := types.ParseDirection(rest[0]); ok {
			return types.Command{Verb: "go", Direction: string(dir), RawInput: raw}, nil
		}
	}

	if len(rest) == 0 {
		return types.Command{Verb: verb, RawInput: raw}, nil
	}

	// Split the remainder on the first preposition.
	var preposition string
	var directParts, indirectParts []string
	for _, word := range rest {
		switch {
		case preposition == "" && prepositions[word]:
			preposition = word
		case preposition != "":
			indirectParts = append(indirectParts, word)
		default:
			directParts = append(directParts, word)
		}
	}

	direct := p.matchObject(strings.Join(directParts, " "), ctx)
	indirect := p.matchObject(strings.Join(indirectParts, " "), ctx)

	if verb == "take" && preposition == "from" && indirect != "" {
		return types.Command{
			Verb:           "take_from",
			DirectObject:   direct,
			IndirectObject: indirect,
			Preposition:    preposition,
			RawInput:       raw,
		}, nil
	}

	return types.Command{
		Verb:           verb,
		DirectObject:   direct,
		IndirectObject: indirect,
		Preposition:    preposition,
		RawInput:       raw,
	}, nil
}

// matchObject strips articles and matches against context names. Unmatched
// text is returned as-is for the resolver.
func (p *Keyword) matchObject(text string, ctx *Context) string {
	text = strings.TrimSpace(text)
	for _, article := range []string{"the ", "a ", "an ", "some "} {
		if strings.HasPrefix(text, article) {
			text = strings.TrimSpace(strings.TrimPrefix(text, article))
			break
		}
	}
	if text == "" {
		return ""
	}

	if ctx != nil {
		names := append(append([]string{}, ctx.VisibleObjects...), ctx.Inventory...)
		names = append(names, ctx.NPCNames...)
		for _, name := range names {
			if text == strings.ToLower(name) {
				return name
			}
		}
	}
	return text
}
