package events

import "time"

// GraphQLStart is emitted before executing one GraphQL operation.
// CachedQuery reports whether the parsed document came from the server's
// query cache rather than a fresh parse.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
	CachedQuery   bool
}

// GraphQLFinish is emitted after executing one GraphQL operation. Errors
// holds the field errors the execution surfaced, in response order.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}
