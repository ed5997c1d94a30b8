package types

import "net/http"

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackBrowse(sessionId string, req *BrowseRequest, resultLen int)
	Close() error
}
