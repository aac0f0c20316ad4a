package mcpserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// callLogger logs every tool call with a generated call ID and its duration.
// Errors are logged and returned unchanged.
func callLogger(l *logrus.Entry) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			entry := l.WithFields(logrus.Fields{
				"call": uuid.NewString(),
				"tool": req.Params.Name,
			})
			entry.Debug("tool call started")

			start := time.Now()
			res, err := next(ctx, req)
			entry = entry.WithField("duration", time.Since(start).Round(time.Microsecond))
			if err != nil {
				entry.WithError(err).Warn("tool call failed")
				return res, err
			}
			entry.Info("tool call done")
			return res, nil
		}
	}
}
