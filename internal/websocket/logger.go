package websocket

import (
	"bilim-chat/pkg/logger"

	"go.uber.org/zap"
)

// connLogger logs connection lifecycle events with the client's identifiers.
type connLogger struct {
	logger *zap.Logger
}

func newConnLogger(l *logger.Logger) *connLogger {
	if l == nil {
		return &connLogger{logger: zap.NewNop()}
	}
	return &connLogger{logger: l.Logger.With(zap.String("component", "websocket"))}
}

func (l *connLogger) Info(event string, c *Client, fields ...zap.Field) {
	l.logger.Info("websocket_event", l.fields(event, c, fields)...)
}

func (l *connLogger) Warn(event string, c *Client, err error, fields ...zap.Field) {
	l.logger.Warn("websocket_warning", l.fields(event, c, append(fields, zap.Error(err)))...)
}

func (l *connLogger) fields(event string, c *Client, extra []zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("event", event),
		zap.String("user_id", c.UserID),
		zap.String("client_id", c.ID),
	}, extra...)
}
