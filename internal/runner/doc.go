// Package runner wires the gate pipeline together: guard clauses, change-set
// retrieval, structural checks, the optional coherence review, verdict
// reduction, and comment publishing. Only change-set retrieval and comment
// publishing failures are fatal.
package runner
