package service

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
	ErrBackendFailure      = errors.New("order backend failure")
	ErrUnimplemented       = errors.New("not implemented")
	ErrRateLimitExceeded   = errors.New("order rate limit exceeded")
)
