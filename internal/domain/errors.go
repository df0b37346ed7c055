package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures and are used by the knowledge
// base, the hint service and the transports to communicate failure conditions.
// -----------------------------------------------------------------------------

// Request errors
var (
	ErrInvalidHintLevel = errors.New("hint level must be one of 1, 2, 3, 4")
)

// Knowledge base errors
var (
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")
)

// Hint generation errors
var (
	ErrHintGeneration = errors.New("hint generation failed")
)
