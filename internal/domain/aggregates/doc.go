// Package aggregates defines domain-facing aggregate contracts.
//
// The contracts avoid persistence and transport details and mark the semantic
// write boundaries where invariants must hold atomically. For this system
// there is a single aggregate: the per-church statistics row together with
// the source collections it is derived from.
package aggregates
