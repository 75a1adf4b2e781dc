package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/cfirth/fable/types"
)

const llmSystemPrompt = `You are a text adventure game parser. Your job is to translate natural language input into structured commands. You must output valid JSON with the keys "verb", "direct_object", "indirect_object", "preposition" and "direction".
Rules:
- Map the player's intent to the closest verb from the valid verbs list
- Resolve object references to the exact names from the visible objects or inventory
- For directional movement, use verb "go" with the direction field
- If the input is unclear, make your best guess
- Never invent objects or verbs not in the context`

// LLM parses free-form input with a Gemini model. Any failure falls back
// to the keyword parser so the game never stalls on a network error.
type LLM struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	fallback *Keyword
}

// NewLLM creates an LLM parser for the given model name.
func NewLLM(ctx context.Context, apiKey, modelName string) (*LLM, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llmSystemPrompt)},
	}
	temperature := float32(0.1)
	model.Temperature = &temperature

	return &LLM{
		client:   client,
		model:    model,
		fallback: NewKeyword(),
	}, nil
}

// Close releases the underlying API client.
func (p *LLM) Close() {
	p.client.Close()
}

// Parse asks the model for a structured command. Returns the keyword
// parse when the model is unreachable or returns garbage.
func (p *LLM) Parse(input string, ctx *Context) (types.Command, error) {
	resp, err := p.model.GenerateContent(context.Background(), genai.Text(buildPrompt(input, ctx)))
	if err != nil {
		return p.fallback.Parse(input, ctx)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return p.fallback.Parse(input, ctx)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return p.fallback.Parse(input, ctx)
	}

	clean := strings.TrimSpace(string(text))
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var cmd types.Command
	if err := json.Unmarshal([]byte(clean), &cmd); err != nil || cmd.Verb == "" {
		return p.fallback.Parse(input, ctx)
	}
	cmd.RawInput = strings.TrimSpace(input)
	return cmd, nil
}

func buildPrompt(input string, ctx *Context) string {
	parts := []string{fmt.Sprintf("Player input: %q", input), "", "Context:"}

	if ctx != nil {
		if len(ctx.VisibleObjects) > 0 {
			parts = append(parts, "Visible objects: "+strings.Join(ctx.VisibleObjects, ", "))
		}
		if len(ctx.Inventory) > 0 {
			parts = append(parts, "Inventory: "+strings.Join(ctx.Inventory, ", "))
		}
		if len(ctx.Exits) > 0 {
			parts = append(parts, "Exits: "+strings.Join(ctx.Exits, ", "))
		}
		if len(ctx.ValidVerbs) > 0 {
			parts = append(parts, "Valid verbs: "+strings.Join(ctx.ValidVerbs, ", "))
		}
		if len(ctx.NPCNames) > 0 {
			parts = append(parts, "NPCs present: "+strings.Join(ctx.NPCNames, ", "))
		}
	}

	parts = append(parts, "", "Output the parsed command as JSON.")
	return strings.Join(parts, "\n")
}
