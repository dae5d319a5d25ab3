package domain

import "errors"

var (
	// ErrInvalidArgument marks bad caller input. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTransport marks a failed upstream call (network or non-2xx status).
	ErrTransport = errors.New("transport failure")
	// ErrCorruptCacheEntry marks a cached value that no longer decodes.
	ErrCorruptCacheEntry = errors.New("corrupt cache entry")
)
