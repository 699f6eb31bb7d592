package executor

import (
	"context"
)

// Runtime is the host integration surface for field resolution. The executor
// walks the selection set, coerces each field's arguments, and asks the
// Runtime for the field's value; everything after that (value completion,
// null propagation, error location) is the executor's job.
//
// Contract:
//   - objectType is the GraphQL type name (e.g. "Query"), field the field
//     name on that type. For root fields objectType is the root type name.
//   - source is the parent object value (nil for root fields).
//   - args maps argument names to coerced Go values. A key is present only
//     when a value was determined for it — supplied in the query, supplied
//     through a variable, or filled from the argument's declared default.
//     A declared argument the request never supplied is absent from the
//     map, not present with a nil value. Implementations that need a key
//     should check for it and return an *ArgumentMismatchError when it is
//     missing.
//   - A returned error becomes a located GraphQL error on the owning field;
//     if the field's type is Non-Null the executor propagates the resulting
//     null to the nearest nullable ancestor.
//   - Implementations must be safe for concurrent use and must not mutate
//     source or args.
type Runtime interface {
	ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error)
}
