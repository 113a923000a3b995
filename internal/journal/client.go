// Package journal is the client-side facade over the gateway: it builds the
// domain prompts (daily feedback, souvenir image, parallel-world story, chat,
// structured extraction) and translates gateway errors into user-facing
// messages.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rokufun-core/internal/domain/entity"
)

const defaultModel = "gemini-3-flash-preview"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// call posts one action/payload envelope and returns the gateway's result
// text. Non-200 responses become errors carrying the gateway's user-facing
// message where one was returned.
func (c *Client) call(ctx context.Context, action entity.Action, payload *entity.Payload) (string, error) {
	body, err := json.Marshal(entity.Request{Action: action, Payload: payload})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/gemini", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Error == "" {
			// Not JSON, e.g. an upstream timeout page.
			if resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusGatewayTimeout {
				return "", errors.New("通信がタイムアウトしました。もう一度お試しください。")
			}
			return "", fmt.Errorf("gateway error (status %d)", resp.StatusCode)
		}
		return "", errors.New(apiErr.Error)
	}

	var out struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding gateway response: %w", err)
	}
	return out.Result, nil
}
