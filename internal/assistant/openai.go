package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sophia-orders/internal/dispatch"
	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
)

// OpenAIConfig holds the settings for the chat-completions client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIResponder answers customer messages via an OpenAI-compatible
// chat-completions endpoint with function calling. Cart mutations requested by
// the model are executed through the dispatcher, and the function result is
// fed back for a natural-language follow-up reply.
type OpenAIResponder struct {
	config     OpenAIConfig
	catalog    *menu.Catalog
	dispatcher *dispatch.Dispatcher
	client     *http.Client
	logger     zerolog.Logger
}

// NewOpenAIResponder creates a responder backed by the chat-completions API.
func NewOpenAIResponder(cfg OpenAIConfig, catalog *menu.Catalog, dispatcher *dispatch.Dispatcher, logger zerolog.Logger) *OpenAIResponder {
	return &OpenAIResponder{
		config:     cfg,
		catalog:    catalog,
		dispatcher: dispatcher,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "openai-responder").Logger(),
	}
}

type chatMessage struct {
	Role         string        `json:"role"`
	Name         string        `json:"name,omitempty"`
	Content      string        `json:"content"`
	FunctionCall *functionCall `json:"function_call,omitempty"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type completionsRequest struct {
	Model        string        `json:"model"`
	Messages     []chatMessage `json:"messages"`
	Functions    []functionDef `json:"functions,omitempty"`
	FunctionCall string        `json:"function_call,omitempty"`
	Temperature  float64       `json:"temperature"`
	MaxTokens    int           `json:"max_tokens"`
}

type completionsResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Respond sends the message to the model. Exactly one function call is
// honoured per message; any transport or parse failure degrades to the fixed
// apology with the session unchanged.
func (r *OpenAIResponder) Respond(ctx context.Context, session model.Session, userMessage string) (string, model.Session) {
	systemPrompt := r.systemPrompt(session)

	messages := make([]chatMessage, 0, len(session.ConversationHistory)+2)
	messages = append(messages, chatMessage{Role: model.RoleSystem, Content: systemPrompt})
	messages = append(messages, toChatMessages(session.ConversationHistory)...)
	messages = append(messages, chatMessage{Role: model.RoleUser, Content: userMessage})

	choice, err := r.complete(ctx, completionsRequest{
		Model:        r.config.Model,
		Messages:     messages,
		Functions:    functionDefs,
		FunctionCall: "auto",
		Temperature:  0.7,
		MaxTokens:    500,
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("chat completion failed")
		return ApologyReply, session
	}

	updated := session.Clone()

	if choice.FunctionCall != nil {
		result, afterCall := r.dispatcher.Execute(choice.FunctionCall.Name, json.RawMessage(choice.FunctionCall.Arguments), updated)
		updated = afterCall

		resultJSON, err := json.Marshal(result)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to encode function result")
			return ApologyReply, session
		}

		updated.ConversationHistory = append(updated.ConversationHistory,
			model.Message{Role: model.RoleUser, Content: userMessage},
			model.Message{Role: model.RoleFunction, Name: choice.FunctionCall.Name, Content: string(resultJSON)},
		)

		// Second round-trip for a natural-language reply about the result.
		followUp := make([]chatMessage, 0, len(updated.ConversationHistory)+1)
		followUp = append(followUp, chatMessage{Role: model.RoleSystem, Content: systemPrompt})
		followUp = append(followUp, toChatMessages(updated.ConversationHistory)...)

		reply := "Done!"
		followUpChoice, err := r.complete(ctx, completionsRequest{
			Model:       r.config.Model,
			Messages:    followUp,
			Temperature: 0.7,
			MaxTokens:   300,
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("follow-up completion failed")
			return ApologyReply, session
		}
		if followUpChoice.Content != "" {
			reply = followUpChoice.Content
		}

		updated.ConversationHistory = append(updated.ConversationHistory,
			model.Message{Role: model.RoleAssistant, Content: reply})
		updated.TrimHistory()
		return reply, updated
	}

	reply := choice.Content
	if reply == "" {
		reply = "I can help you order from our menu!"
	}

	updated.ConversationHistory = append(updated.ConversationHistory,
		model.Message{Role: model.RoleUser, Content: userMessage},
		model.Message{Role: model.RoleAssistant, Content: reply},
	)
	updated.TrimHistory()
	return reply, updated
}

// complete performs one chat-completions round-trip and returns the first
// choice's message.
func (r *OpenAIResponder) complete(ctx context.Context, reqBody completionsRequest) (*chatMessage, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completions request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(r.config.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build completions request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.config.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completions request returned status %d", resp.StatusCode)
	}

	var result completionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode completions response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("completions response contained no choices")
	}

	return &result.Choices[0].Message, nil
}

// systemPrompt assembles the menu-grounded instructions, including the full
// catalog as JSON and any active restrictions for this session.
func (r *OpenAIResponder) systemPrompt(session model.Session) string {
	menuJSON, err := json.MarshalIndent(r.catalog.ForPrompt(), "", "  ")
	if err != nil {
		// The prompt projection is plain data; this cannot realistically fail.
		menuJSON = []byte("[]")
	}

	var b strings.Builder
	b.WriteString(r.catalog.Config().Prompts.SystemPrompt)
	b.WriteString("\n\nIMPORTANT RULES:\n")
	b.WriteString("- You must ONLY recommend items that exist in the menu below\n")
	b.WriteString("- NEVER make up items that aren't in the menu\n")
	b.WriteString("- When a customer has allergens, filter ALL recommendations to exclude those allergens\n")
	b.WriteString("- Be persuasive but honest about what we offer\n")
	b.WriteString("- Use function calling for ALL cart operations\n\n")
	b.WriteString("Available allergens in our menu: ")
	b.WriteString(strings.Join(r.catalog.AllAllergens(), ", "))
	b.WriteString("\n\nCOMPLETE MENU:\n")
	b.Write(menuJSON)
	b.WriteString("\n")

	if len(session.AllergyRestrictions) > 0 {
		b.WriteString("\nCUSTOMER ALLERGENS TO AVOID: ")
		b.WriteString(strings.Join(session.AllergyRestrictions, ", "))
		b.WriteString("\n")
	}
	if len(session.DietaryPreferences) > 0 {
		b.WriteString("\nCUSTOMER DIETARY PREFERENCES: ")
		b.WriteString(strings.Join(session.DietaryPreferences, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

func toChatMessages(history []model.Message) []chatMessage {
	out := make([]chatMessage, len(history))
	for i, m := range history {
		out[i] = chatMessage{Role: m.Role, Name: m.Name, Content: m.Content}
	}
	return out
}
