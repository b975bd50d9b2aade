package queries

import "errors"

// Fatal error kinds surfaced by the compiler. Warnings (unknown
// criteria, dropped gene symbols) never take these shapes ; they travel
// as plain strings next to the composed result.
var (
	// numeric parse failure on a threshold field
	ErrInvalidValue = errors.New("invalid criterion value")
	// mutually exclusive toggles were both set
	ErrConflictingCriteria = errors.New("conflicting criteria")
	// a store lookup during resolution hit its deadline
	ErrResolverTimeout = errors.New("resolver timeout")
)
