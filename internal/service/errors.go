package service

import "errors"

// ErrInvalidArgument marks validation failures the API layer should surface
// as 4xx responses. Engine-level numeric edge cases never produce it; those
// always yield a best-effort result instead.
var ErrInvalidArgument = errors.New("invalid argument")
