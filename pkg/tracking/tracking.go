package tracking

import (
	"log/slog"
	"net/http"

	"github.com/matst80/slask-cars/pkg/types"
)

// LogTracking writes events to the debug log, used when no broker is configured.
type LogTracking struct{}

func (LogTracking) TrackSession(sessionId string, r *http.Request) {
	slog.Debug("session started", "session", sessionId, "agent", r.UserAgent())
}

func (LogTracking) TrackView(sessionId string, criteria *types.Criteria, sort types.SortKey, resultLen int, page int) {
	slog.Debug("view", "session", sessionId, "sort", sort, "results", resultLen, "page", page)
}

func (LogTracking) Close() error {
	return nil
}

var (
	_ types.Tracking = (*RabbitTracking)(nil)
	_ types.Tracking = LogTracking{}
)
