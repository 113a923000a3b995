package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"rokufun-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestChatContents_StripsLeadingModelTurns(t *testing.T) {
	history := []entity.Turn{
		{Role: "model", Text: "こんばんは。今日はどんな一日だった？"},
		{Role: "user", Text: "散歩してきた"},
		{Role: "model", Text: "いいね"},
	}

	contents := chatContents(history, "それで終わり")
	require.Len(t, contents, 3)

	assert.Equal(t, genai.Role(genai.RoleUser), genai.Role(contents[0].Role))
	assert.Equal(t, "散歩してきた", contents[0].Parts[0].Text)
	assert.Equal(t, genai.Role(genai.RoleModel), genai.Role(contents[1].Role))
	assert.Equal(t, genai.Role(genai.RoleUser), genai.Role(contents[2].Role))
	assert.Equal(t, "それで終わり", contents[2].Parts[0].Text)
}

func TestChatContents_CleanHistoryUnchanged(t *testing.T) {
	history := []entity.Turn{
		{Role: "user", Text: "one"},
		{Role: "model", Text: "two"},
	}

	contents := chatContents(history, "three")
	require.Len(t, contents, 3)
	assert.Equal(t, "one", contents[0].Parts[0].Text)
	assert.Equal(t, "two", contents[1].Parts[0].Text)
	assert.Equal(t, "three", contents[2].Parts[0].Text)
}

func TestChatContents_EmptyHistory(t *testing.T) {
	contents := chatContents(nil, "first message")
	require.Len(t, contents, 1)
	assert.Equal(t, genai.Role(genai.RoleUser), genai.Role(contents[0].Role))
}

func TestInvoke_SpeechPassesTextThrough(t *testing.T) {
	g := NewGeminiInvokerFromClient(nil)

	text, err := g.Invoke(context.Background(), "gemini-flash-latest", entity.Request{
		Action:  entity.ActionSpeech,
		Payload: &entity.Payload{Text: "おはようございます"},
	})
	require.NoError(t, err)
	assert.Equal(t, "おはようございます", text)
}

func TestInvoke_SpeechWithoutTextIsEmptyResponse(t *testing.T) {
	g := NewGeminiInvokerFromClient(nil)

	_, err := g.Invoke(context.Background(), "gemini-flash-latest", entity.Request{
		Action: entity.ActionSpeech,
	})
	assert.ErrorIs(t, err, entity.ErrEmptyResponse)
}

func TestGenerationConfig_DecodesSchemaAndSettings(t *testing.T) {
	temp := float32(1.1)
	p := &entity.Payload{
		SystemInstruction: "be poetic",
		GenerationConfig: &entity.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   json.RawMessage(`{"type":"OBJECT","properties":{"story":{"type":"STRING"}},"required":["story"]}`),
			Temperature:      &temp,
		},
	}

	cfg, err := generationConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 1.1, float64(*cfg.Temperature), 0.001)
	require.NotNil(t, cfg.ResponseSchema)
	assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
	assert.Contains(t, cfg.ResponseSchema.Properties, "story")
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be poetic", cfg.SystemInstruction.Parts[0].Text)
}

func TestGenerationConfig_BadSchemaFails(t *testing.T) {
	p := &entity.Payload{
		GenerationConfig: &entity.GenerationConfig{
			ResponseSchema: json.RawMessage(`"not an object schema`),
		},
	}
	_, err := generationConfig(p)
	assert.Error(t, err)
}

func TestHintFor_StatusCodeWinsOverMessage(t *testing.T) {
	tests := []struct {
		code int
		msg  string
		want entity.StatusHint
	}{
		{503, "anything", entity.HintOverloaded},
		{429, "anything", entity.HintRateLimited},
		{504, "anything", entity.HintDeadline},
		{401, "anything", entity.HintInvalidKey},
		{403, "anything", entity.HintInvalidKey},
		{400, "anything", entity.HintBadRequest},
		{0, "The model is overloaded. Please try again later.", entity.HintOverloaded},
		{0, "RESOURCE_EXHAUSTED: quota exceeded", entity.HintRateLimited},
		{0, "context deadline exceeded", entity.HintDeadline},
		{0, "API key not valid. Please pass a valid API key.", entity.HintInvalidKey},
		{0, "Invalid JSON payload received", entity.HintBadRequest},
		{0, "something else entirely", entity.HintUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hintFor(tt.code, tt.msg), "code=%d msg=%q", tt.code, tt.msg)
	}
}

func TestWrapProviderError(t *testing.T) {
	wrapped := wrapProviderError(genai.APIError{Code: 503, Message: "The model is overloaded"})

	var ae *entity.AdapterError
	require.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, 503, ae.StatusCode)
	assert.Equal(t, entity.HintOverloaded, ae.Hint)
	assert.Equal(t, "The model is overloaded", ae.Message)

	wrapped = wrapProviderError(errors.New("dial tcp: connection timeout"))
	require.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, entity.HintDeadline, ae.Hint)
}
