package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCodeFormat  = errors.New("seller code format is invalid")
	ErrCodeRevoked        = errors.New("seller code has been revoked")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrForbidden          = errors.New("caller lacks the required role")
	ErrInvalidExecContext = errors.New("invalid query execution context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
