// Package event parses the CI trigger payload into an immutable pull-request
// context and implements the guard clauses that short-circuit a run before
// any outbound call is made.
package event
