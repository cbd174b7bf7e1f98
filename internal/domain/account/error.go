package account

import (
	"errors"
)

var (
	ErrMalformedResponse = errors.New("malformed server response")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrCipherLocked      = errors.New("cipher is locked")
	ErrInvalidRecordID   = errors.New("invalid record id")
	ErrEmptyWebsite      = errors.New("website must not be empty")
	ErrEmptyPassword     = errors.New("password must not be empty")
)
