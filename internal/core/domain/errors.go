package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCorpus indicates the index was built over zero documents.
	// Not fatal: searches over an empty corpus return no results.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Prose synthesis degrades to the structured rendering without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrStoreUnavailable indicates the incident store is not configured.
	ErrStoreUnavailable = errors.New("incident store unavailable")
)
