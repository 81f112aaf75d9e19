package types

import (
	"net/http"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackView(sessionId string, criteria *Criteria, sort SortKey, resultLen int, page int)
	Close() error
}
