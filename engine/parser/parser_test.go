package parser

import (
	"testing"

	"github.com/cfirth/fable/types"
)

func TestKeywordParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		{
			name:  "empty string defaults to look",
			input: "",
			want:  types.Command{Verb: "look"},
		},
		{
			name:  "whitespace only defaults to look",
			input: "   ",
			want:  types.Command{Verb: "look"},
		},
		{
			name:  "bare verb",
			input: "inventory",
			want:  types.Command{Verb: "inventory", RawInput: "inventory"},
		},
		{
			name:  "verb alias",
			input: "x lantern",
			want:  types.Command{Verb: "examine", DirectObject: "lantern", RawInput: "x lantern"},
		},
		{
			name:  "bare direction",
			input: "north",
			want:  types.Command{Verb: "go", Direction: "north", RawInput: "north"},
		},
		{
			name:  "direction abbreviation",
			input: "ne",
			want:  types.Command{Verb: "go", Direction: "northeast", RawInput: "ne"},
		},
		{
			name:  "go with direction word",
			input: "go south",
			want:  types.Command{Verb: "go", Direction: "south", RawInput: "go south"},
		},
		{
			name:  "walk alias for go",
			input: "walk west",
			want:  types.Command{Verb: "go", Direction: "west", RawInput: "walk west"},
		},
		{
			name:  "take with article",
			input: "take the lantern",
			want:  types.Command{Verb: "take", DirectObject: "lantern", RawInput: "take the lantern"},
		},
		{
			name:  "pick up multiword form",
			input: "pick up brass lantern",
			want:  types.Command{Verb: "take", DirectObject: "brass lantern", RawInput: "pick up brass lantern"},
		},
		{
			name:  "turn on",
			input: "turn on lamp",
			want:  types.Command{Verb: "turn_on", DirectObject: "lamp", RawInput: "turn on lamp"},
		},
		{
			name:  "turn off",
			input: "turn off lamp",
			want:  types.Command{Verb: "turn_off", DirectObject: "lamp", RawInput: "turn off lamp"},
		},
		{
			name:  "look at becomes examine",
			input: "look at sword",
			want:  types.Command{Verb: "examine", DirectObject: "sword", RawInput: "look at sword"},
		},
		{
			name:  "preposition splits objects",
			input: "put coin in case",
			want: types.Command{
				Verb: "put", DirectObject: "coin", IndirectObject: "case",
				Preposition: "in", RawInput: "put coin in case",
			},
		},
		{
			name:  "unlock with key",
			input: "unlock chest with key",
			want: types.Command{
				Verb: "unlock", DirectObject: "chest", IndirectObject: "key",
				Preposition: "with", RawInput: "unlock chest with key",
			},
		},
		{
			name:  "take from becomes take_from",
			input: "take coin from chest",
			want: types.Command{
				Verb: "take_from", DirectObject: "coin", IndirectObject: "chest",
				Preposition: "from", RawInput: "take coin from chest",
			},
		},
		{
			name:  "kill alias for attack",
			input: "kill troll with sword",
			want: types.Command{
				Verb: "attack", DirectObject: "troll", IndirectObject: "sword",
				Preposition: "with", RawInput: "kill troll with sword",
			},
		},
		{
			name:  "z alias for wait",
			input: "z",
			want:  types.Command{Verb: "wait", RawInput: "z"},
		},
		{
			name:  "load alias for restore",
			input: "load mysave",
			want:  types.Command{Verb: "restore", DirectObject: "mysave", RawInput: "load mysave"},
		},
		{
			name:  "unknown verb passes through",
			input: "frobnicate lantern",
			want:  types.Command{Verb: "frobnicate", DirectObject: "lantern", RawInput: "frobnicate lantern"},
		},
		{
			name:  "uppercase input is lowered",
			input: "TAKE LANTERN",
			want:  types.Command{Verb: "take", DirectObject: "lantern", RawInput: "TAKE LANTERN"},
		},
	}

	p := NewKeyword()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.input, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordParse_MatchesContextNames(t *testing.T) {
	p := NewKeyword()
	ctx := &Context{
		VisibleObjects: []string{"Brass Lantern"},
		Inventory:      []string{"Iron Key"},
		NPCNames:       []string{"Troll"},
	}

	got, err := p.Parse("take brass lantern", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DirectObject != "Brass Lantern" {
		t.Errorf("expected canonical name 'Brass Lantern', got %q", got.DirectObject)
	}

	got, _ = p.Parse("attack troll", ctx)
	if got.DirectObject != "Troll" {
		t.Errorf("expected canonical name 'Troll', got %q", got.DirectObject)
	}
}
