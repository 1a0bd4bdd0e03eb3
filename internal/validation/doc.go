// Package validation provides non-failing, field-level validators for
// appointment and patient input.
//
// Validators reuse the domain value objects' parsing but never return an
// error: each problem becomes an entry in Result.Errors keyed by field name,
// and callers decide whether to block a submission. The domain entities
// still enforce their invariants unconditionally when a write is attempted.
package validation
