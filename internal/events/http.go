package events

import (
	"net/http"
	"time"
)

// HTTPStart is emitted when a GraphQL HTTP request is received.
// Context carries the request context and request ID.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is emitted after the handler writes its response. Operations is
// the number of GraphQL operations the request carried: 1 for a plain
// request, the array length for a batch, 0 when the request never reached
// execution.
type HTTPFinish struct {
	Request    *http.Request
	Status     int
	Operations int
	Duration   time.Duration
}
