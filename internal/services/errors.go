package services

import "errors"

// Service errors
var (
	// Dataset errors
	ErrSnapshotNotLoaded = errors.New("dataset snapshot not loaded")

	// Filter errors
	ErrInvalidYear      = errors.New("invalid year value")
	ErrInvalidYearRange = errors.New("year_from must not exceed year_to")
	ErrInvalidTopN      = errors.New("invalid top-n value")
)
