package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rokufun-core/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiInvoker translates a normalized action+payload request into one call
// against the Gemini API. It holds no per-request state.
type GeminiInvoker struct {
	client *genai.Client
}

func NewGeminiInvoker(ctx context.Context, apiKey string) (*GeminiInvoker, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiInvoker{client: client}, nil
}

func NewGeminiInvokerFromClient(c *genai.Client) *GeminiInvoker {
	return &GeminiInvoker{client: c}
}

func (g *GeminiInvoker) Invoke(ctx context.Context, model string, req entity.Request) (string, error) {
	p := req.Payload
	if p == nil {
		p = &entity.Payload{}
	}

	switch req.Action {
	case entity.ActionGenerateContent:
		return g.generate(ctx, model, p)
	case entity.ActionChat:
		return g.chat(ctx, model, p)
	case entity.ActionSpeech:
		// Pass-through: the client falls back to native speech synthesis.
		// An empty text is still an empty response.
		if p.Text == "" {
			return "", entity.ErrEmptyResponse
		}
		return p.Text, nil
	default:
		return "", fmt.Errorf("%w: %q", entity.ErrUnknownAction, req.Action)
	}
}

func (g *GeminiInvoker) generate(ctx context.Context, model string, p *entity.Payload) (string, error) {
	cfg, err := generationConfig(p)
	if err != nil {
		return "", &entity.AdapterError{Hint: entity.HintBadRequest, Message: err.Error()}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(p.Prompt), cfg)
	if err != nil {
		return "", wrapProviderError(err)
	}
	return textOf(resp)
}

func (g *GeminiInvoker) chat(ctx context.Context, model string, p *entity.Payload) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.SystemInstruction, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, chatContents(p.History, p.Message), cfg)
	if err != nil {
		return "", wrapProviderError(err)
	}
	return textOf(resp)
}

// chatContents builds the contents sequence: history oldest first, then the
// new message as the final user turn. Leading model turns are dropped because
// a conversation cannot validly begin with a model turn.
func chatContents(history []entity.Turn, message string) []*genai.Content {
	for len(history) > 0 && history[0].Role == "model" {
		history = history[1:]
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func generationConfig(p *entity.Payload) (*genai.GenerateContentConfig, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.SystemInstruction, genai.RoleUser)
	}

	gc := p.GenerationConfig
	if gc == nil {
		return cfg, nil
	}

	cfg.ResponseMIMEType = gc.ResponseMIMEType
	cfg.Temperature = gc.Temperature
	if len(gc.ResponseSchema) > 0 {
		var schema genai.Schema
		if err := json.Unmarshal(gc.ResponseSchema, &schema); err != nil {
			return nil, fmt.Errorf("decoding response schema: %w", err)
		}
		cfg.ResponseSchema = &schema
	}
	return cfg, nil
}

func textOf(resp *genai.GenerateContentResponse) (string, error) {
	text := resp.Text()
	if text == "" {
		return "", entity.ErrEmptyResponse
	}
	return text, nil
}

// wrapProviderError forwards the provider's message together with a coarse
// status hint so classification never has to touch SDK types.
func wrapProviderError(err error) error {
	var ae genai.APIError
	if errors.As(err, &ae) {
		return &entity.AdapterError{
			StatusCode: ae.Code,
			Hint:       hintFor(ae.Code, ae.Message),
			Message:    ae.Message,
		}
	}
	return &entity.AdapterError{Hint: hintFor(0, err.Error()), Message: err.Error()}
}

func hintFor(code int, msg string) entity.StatusHint {
	switch code {
	case 503:
		return entity.HintOverloaded
	case 429:
		return entity.HintRateLimited
	case 504:
		return entity.HintDeadline
	case 401, 403:
		return entity.HintInvalidKey
	case 400:
		return entity.HintBadRequest
	}

	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "overloaded"), strings.Contains(m, "busy"), strings.Contains(m, "unavailable"):
		return entity.HintOverloaded
	case strings.Contains(m, "resource_exhausted"), strings.Contains(m, "quota"), strings.Contains(m, "rate limit"):
		return entity.HintRateLimited
	case strings.Contains(m, "deadline"), strings.Contains(m, "timeout"):
		return entity.HintDeadline
	case strings.Contains(m, "api key"), strings.Contains(m, "permission"):
		return entity.HintInvalidKey
	case strings.Contains(m, "invalid"):
		return entity.HintBadRequest
	}
	return entity.HintUnknown
}
