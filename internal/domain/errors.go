package domain

import "errors"

var (
	// ErrBackendUnavailable signals a failed call to the document store.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrMovieNotFound signals a missing movie document.
	ErrMovieNotFound = errors.New("movie not found")
)
