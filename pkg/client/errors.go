package client

import "errors"

var (
	ErrMissingSocketURL     = errors.New("client: socket url is required")
	ErrUnknownStorageDriver = errors.New("client: unknown storage driver")
	ErrStorageUnavailable   = errors.New("client: storage unavailable")
)
