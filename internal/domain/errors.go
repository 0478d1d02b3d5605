package domain

import "errors"

var (
	// ErrInsufficientData is returned when fewer than the minimum number of
	// bars is supplied. The engine never synthesizes placeholder structure.
	ErrInsufficientData = errors.New("insufficient bar history")

	// ErrInvalidInput is returned for non-finite prices, bars with high < low,
	// or non-monotonic timestamps. No partial result is produced.
	ErrInvalidInput = errors.New("invalid input")
)
