package repository

import (
	"context"

	"rokufun-core/internal/domain/entity"
)

// ModelInvoker performs exactly one provider call for the given model.
// Implementations are stateless across invocations.
type ModelInvoker interface {
	Invoke(ctx context.Context, model string, req entity.Request) (string, error)
}

// EventSink receives structured log events and content records. Every call is
// best-effort and must never block or fail the caller.
type EventSink interface {
	Log(level, message string, details map[string]any)
	SaveContent(contentType, title, content string)
}

// JournalStore persists the journal as whole JSON blobs under fixed keys.
// Loads of absent keys return zero values, not errors.
type JournalStore interface {
	LoadLogs(ctx context.Context) (map[string]entity.DailyLog, error)
	SaveLogs(ctx context.Context, logs map[string]entity.DailyLog) error
	LoadStats(ctx context.Context) (entity.UserStats, error)
	SaveStats(ctx context.Context, stats entity.UserStats) error
	LoadSettings(ctx context.Context) (entity.UserSettings, error)
	SaveSettings(ctx context.Context, settings entity.UserSettings) error
}
