// Package narration is the boundary to the hosted language model that narrates
// the story. Responses are parsed into a strict result or a ParseFailure.
package narration

import (
	"context"
	"fmt"
	"strings"
)

// Narrator produces the next story beat
type Narrator interface {
	Narrate(ctx context.Context, history []Message, c Context) (Outcome, error)
}

const systemPrompt = `You are the Dungeon Master of a grim dark-fantasy survival RPG.
Narrate in second person, at most three short paragraphs.
Reply with ONE JSON object and nothing else:
{"narrative": string, "hp_change": int, "will_change": int, "xp_reward": int,
 "world_state": "PHYSICAL"|"ASTRAL"|"BONFIRE"|"ECLIPSE",
 "new_inventory": string (optional item name), "new_companion": string (optional companion id),
 "dice_request": string (optional), "suggested_actions": [string, string, string]}
Use BONFIRE only when the player rests somewhere safe.`

const introInput = "[SYSTEM]: Begin the story. The character awakens at the first bonfire. Set world_state to BONFIRE."

// maxHistory bounds how many log messages are replayed to the model
const maxHistory = 20

// Agent narrates through a chat-completions client
type Agent struct {
	client *Client
}

// NewAgent creates a narration agent
func NewAgent(client *Client) *Agent {
	return &Agent{client: client}
}

// Narrate asks the model for the next beat
func (a *Agent) Narrate(ctx context.Context, history []Message, c Context) (Outcome, error) {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
	msgs = append(msgs, history...)

	input := c.PlayerInput
	if strings.TrimSpace(input) == "" {
		input = introInput
	}
	msgs = append(msgs, Message{Role: "user", Content: c.block() + "\n\nPLAYER: " + input})

	resp, err := a.client.CreateCompletion(ctx, &CompletionRequest{
		Messages:       msgs,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call narration API: %w", err)
	}
	return Parse(resp.Choices[0].Message.Content, c.Mode), nil
}

// NarratorFunc adapts a function to the Narrator interface
type NarratorFunc func(ctx context.Context, history []Message, c Context) (Outcome, error)

// Narrate calls f
func (f NarratorFunc) Narrate(ctx context.Context, history []Message, c Context) (Outcome, error) {
	return f(ctx, history, c)
}
