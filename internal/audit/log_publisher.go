package audit

import (
	"context"
	"log/slog"
)

// LogPublisher writes audit events to the application log. It is the default
// sink when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) {
	p.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"property_id", event.PropertyID,
		"task_id", event.TaskID,
		"request_id", event.RequestID,
		"detail", event.Detail,
	)
}

func (p *LogPublisher) Close() {}

var _ Publisher = (*LogPublisher)(nil)
