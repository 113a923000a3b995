package api

import (
	"context"
	"errors"

	"rokufun-core/internal/domain/entity"
	"rokufun-core/internal/domain/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Dispatcher is what the gateway needs from the use-case layer: one call in,
// final text or final error out. Retry and fallback state never cross this
// boundary.
type Dispatcher interface {
	Dispatch(ctx context.Context, req entity.Request) (string, error)
}

// GeminiHandler adapts dispatcher results to HTTP semantics. A nil dispatcher
// means the provider credential was not configured; requests then fail with
// 500 without any provider call.
type GeminiHandler struct {
	dispatcher Dispatcher
	sink       repository.EventSink
}

func NewGeminiHandler(d Dispatcher, sink repository.EventSink) *GeminiHandler {
	return &GeminiHandler{dispatcher: d, sink: sink}
}

func (h *GeminiHandler) HandleGemini(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	c.Set("X-Request-ID", requestID)

	if h.dispatcher == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "APIキーが設定されていません (Server Config Error)",
		})
	}

	var req entity.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.Action == "" || req.Payload == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing action or payload"})
	}

	h.sink.Log("INFO", "API呼出: "+string(req.Action), map[string]any{
		"model":      req.Payload.Model,
		"request_id": requestID,
	})

	result, err := h.dispatcher.Dispatch(c.Context(), req)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownAction) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Unknown action",
				"details": err.Error(),
			})
		}
		h.sink.Log("ERROR", "API失敗: "+string(req.Action), map[string]any{
			"error":      err.Error(),
			"request_id": requestID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   userMessage(err),
			"details": err.Error(),
		})
	}

	h.sink.Log("INFO", "API成功: "+string(req.Action), map[string]any{
		"model":      req.Payload.Model,
		"request_id": requestID,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"result": result})
}

// HandleContent archives a generated artifact (feedback text, story, image
// description) to the external sink. Best-effort by design: the sink call
// cannot fail this request.
func (h *GeminiHandler) HandleContent(c *fiber.Ctx) error {
	var req struct {
		ContentType string `json:"contentType"`
		Title       string `json:"title"`
		Content     string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.ContentType == "" || req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	h.sink.SaveContent(req.ContentType, req.Title, req.Content)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// userMessage maps the terminal failure class to a short user-facing message
// so an operator error (bad key) is never masked as provider overload.
func userMessage(err error) string {
	var ae *entity.AdapterError
	if errors.As(err, &ae) {
		switch ae.Hint {
		case entity.HintOverloaded, entity.HintRateLimited:
			return "AIが混み合っています。しばらくしてからもう一度お試しください。"
		case entity.HintDeadline:
			return "通信がタイムアウトしました。もう一度お試しください。"
		case entity.HintInvalidKey:
			return "APIキーが無効です (Server Config Error)"
		}
	}
	if errors.Is(err, entity.ErrEmptyResponse) {
		return "AIから空の応答が返されました。もう一度お試しください。"
	}
	return "AIとの通信に失敗しました。"
}
