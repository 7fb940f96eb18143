// Package launcher hands a closed match off to the external session server.
// spec.md §1 scopes the real session-server call out as an external
// collaborator: "the core only records the handoff." This package defines the
// seam and ships only the logging implementation.
package launcher

import (
	"context"

	"go.uber.org/zap"

	"github.com/riftkeep/matchmaker/internal/queue"
)

// Launcher notifies an external system that a match is ready to start.
type Launcher interface {
	Notify(ctx context.Context, m *queue.Match) error
}

// LogLauncher records the handoff as a structured log event instead of
// calling out to a real session server, the way the teacher logs instead of
// hard-failing at the boundary of systems it doesn't own (discord, geoIP).
type LogLauncher struct {
	logger *zap.Logger
}

// NewLogLauncher builds a LogLauncher.
func NewLogLauncher(logger *zap.Logger) *LogLauncher {
	return &LogLauncher{logger: logger}
}

// Notify always succeeds: it logs the start-match event and returns nil.
func (l *LogLauncher) Notify(ctx context.Context, m *queue.Match) error {
	playerIDs := make([]string, len(m.Players))
	for i, p := range m.Players {
		playerIDs[i] = p.PlayerID.String()
	}
	l.logger.Info("match ready to start",
		zap.String("match_id", m.ID.String()),
		zap.String("host_id", m.HostID.String()),
		zap.String("region", m.Region),
		zap.Strings("player_ids", playerIDs),
	)
	return nil
}
