// Package inventory reads the base branch's existing skill manifests to give
// the reviewer context on pre-existing content. It never affects structural
// pass/fail: failures simply produce a smaller inventory.
package inventory
