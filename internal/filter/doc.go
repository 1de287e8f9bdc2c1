// Package filter implements the pure chapter predicate engine: keyword and
// regex matching over chapter titles with include/exclude semantics. Inputs
// are never mutated and output order always follows input order.
package filter
