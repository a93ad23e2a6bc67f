package kabooom

import "errors"

var (
	// ErrInvalidStart indicates the start cell is out of bounds or occupied.
	ErrInvalidStart = errors.New("invalid start cell")

	// ErrInvalidTrajectory indicates the target trajectory is empty.
	ErrInvalidTrajectory = errors.New("invalid trajectory")

	// ErrNoInterception indicates the frontier was exhausted without reaching the target.
	ErrNoInterception = errors.New("no interception found")

	// ErrStateLimit indicates the visited set grew past the configured bound.
	ErrStateLimit = errors.New("state limit exceeded")
)
