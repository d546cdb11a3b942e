package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger.
// In production (ENVIRONMENT=production) it uses JSON output for log aggregation.
// Otherwise it uses the human-readable text handler.
func Init() {
	slog.SetDefault(slog.New(NewHandler(os.Getenv("ENVIRONMENT"))))
}

// NewHandler picks the slog handler for an environment name
func NewHandler(environment string) slog.Handler {
	if strings.ToLower(environment) == "production" {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
}

// WithUser returns a logger with the acting user attached.
// Handlers use it for mutation audit lines.
func WithUser(username string) *slog.Logger {
	return slog.With("user", username)
}

// WithProject scopes a user logger to one project
func WithProject(logger *slog.Logger, projectID int64) *slog.Logger {
	return logger.With("project_id", projectID)
}
