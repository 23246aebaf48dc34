package entities

import "errors"

// Computation-layer error taxonomy. Aggregation and projection never fail for
// zero-division or missing-optional-field cases; these sentinels cover the
// cases that do surface to callers.
var (
	// ErrMalformedRevenueEvent marks a raw transaction that could not be
	// normalized. The normalizer skips and counts these rather than
	// aborting the batch.
	ErrMalformedRevenueEvent = errors.New("malformed revenue event")

	// ErrDuplicateRevenueEvent marks a transaction whose source reference
	// is already in the ledger. Sources replay their poll boundary, so the
	// collector skips these silently.
	ErrDuplicateRevenueEvent = errors.New("revenue event already ingested")

	// ErrInvalidCompensationSettings rejects a settings write; the prior
	// settings remain in effect.
	ErrInvalidCompensationSettings = errors.New("invalid compensation settings")

	// ErrDistributionAlreadyExecuted rejects a distribution run for a month
	// that already has distribution records. No rows are written.
	ErrDistributionAlreadyExecuted = errors.New("distribution already executed for month")

	// ErrUnauthorized rejects a settings write by an actor without the
	// compensation admin capability.
	ErrUnauthorized = errors.New("actor not authorized")
)
