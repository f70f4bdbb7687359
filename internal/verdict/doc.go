// Package verdict reduces structural findings, reviewer output, and policy
// configuration into the final pass/warn/fail outcome.
//
// [Decide] is a pure reducer over an [Evidence] bundle, which makes every
// precedence rule unit-testable without network stubbing. Fail dominates: once
// reached, no reviewer hint, score, or warning can downgrade it.
package verdict
