package entity

import "encoding/json"

// Action selects which provider operation a gateway request performs.
type Action string

const (
	ActionGenerateContent Action = "generateContent"
	ActionChat            Action = "chat"
	ActionSpeech          Action = "speech"
)

// Known reports whether the action is one of the recognized kinds.
// Anything else is a programmer error and fails without a retry attempt.
func (a Action) Known() bool {
	switch a {
	case ActionGenerateContent, ActionChat, ActionSpeech:
		return true
	}
	return false
}

// Request is the wire envelope accepted by the gateway.
type Request struct {
	Action  Action   `json:"action"`
	Payload *Payload `json:"payload"`
}

// Turn is one entry of a chat history, oldest first.
type Turn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// GenerationConfig carries the structured-output settings for generateContent.
// ResponseSchema is kept raw here; the provider adapter decodes it into the
// SDK's schema type.
type GenerationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	Temperature      *float32        `json:"temperature,omitempty"`
}

// Payload is polymorphic over Action. generateContent uses Prompt,
// SystemInstruction and GenerationConfig; chat uses Message, History and
// SystemInstruction; speech uses Text only. Model is optional everywhere and
// defaults to the configured default model.
type Payload struct {
	Model string `json:"model,omitempty"`

	// generateContent
	Prompt            string            `json:"prompt,omitempty"`
	SystemInstruction string            `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`

	// chat
	Message string `json:"message,omitempty"`
	History []Turn `json:"history,omitempty"`

	// speech
	Text string `json:"text,omitempty"`
}
