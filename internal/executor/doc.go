// Package executor evaluates parsed GraphQL documents against a schema.
//
// Execution is synchronous and single-threaded per request: fields resolve
// in collection order through the Runtime interface, and one Executor may
// serve many requests concurrently because all per-request state lives in
// an executionState owned by the request.
//
// Argument values reach resolvers through two coercion paths that share one
// rule set. Query literals take the syntactic path: the AST value is first
// normalized into a RawValue, where enum members must appear as bare words
// and a quoted string never coerces to an enum. Variable values take the
// structural path: they arrive as decoded JSON (float64 numbers, string
// enum members, map objects) and coerce by shape. Variable references are
// not coerced up front; each $name resolves at its use site against the
// type expected there, so declaration defaults and required-variable checks
// happen per position.
//
// Coercion failures are collected, not thrown: every failing position in a
// field's arguments is gathered into one field error, the resolver for that
// field is skipped, and execution continues with sibling fields. Absence is
// distinct from explicit null throughout — defaults apply only to positions
// no value was supplied for, and an explicit null is delivered as nil.
package executor
