package notify

import (
	"context"

	"go.uber.org/zap"
)

// Log writes notifications to a zap logger.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a Log notifier. A nil logger discards output.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger.Named("notify")}
}

// Show logs n at info level.
func (l *Log) Show(ctx context.Context, n Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.Info(n.Message,
		zap.String("id", n.ID),
		zap.String("kind", string(n.Kind)),
		zap.Duration("duration", n.Duration),
	)
	return nil
}
