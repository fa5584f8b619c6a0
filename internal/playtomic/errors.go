package playtomic

import "errors"

var (
	// ErrNotFinished is returned for matches without a confirmed result.
	ErrNotFinished = errors.New("match has no confirmed result")
	// ErrNoWinner is returned when neither the teams nor the sets name a winner.
	ErrNoWinner = errors.New("match result has no winner")
)
