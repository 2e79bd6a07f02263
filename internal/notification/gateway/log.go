package gateway

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
)

// Log accepts every message and only logs it. It is the default for local
// runs.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (g *Log) SendEmail(ctx context.Context, msg Message) (*Receipt, error) {
	id := ulid.Make().String()
	g.logger.InfoContext(ctx, "email accepted by log gateway",
		"gateway_id", id,
		"template_id", msg.TemplateID,
		"reference", msg.Reference,
		"personalisation_keys", len(msg.Personalisation),
	)
	return &Receipt{ID: id}, nil
}
