package domain

import "errors"

var (
	// ErrLoadFailed is returned when the dataset source cannot be read
	// under the primary or the fallback encoding. This is the one fatal
	// condition in the pipeline.
	ErrLoadFailed = errors.New("dataset could not be loaded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownStrategy is returned for a ranking strategy outside the
	// known set
	ErrUnknownStrategy = errors.New("unknown ranking strategy")

	// ErrFilteredSetNotFound is returned when a re-rank handle does not
	// resolve to a stored filtered set (unknown or expired)
	ErrFilteredSetNotFound = errors.New("filtered set not found or expired")

	// ErrFeedbackUnavailable is returned when the feedback store is not
	// configured or unreachable
	ErrFeedbackUnavailable = errors.New("feedback store unavailable")
)
