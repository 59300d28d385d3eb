package model

import "errors"

var (
	// ErrTokenInvalid is returned when a token cannot be decoded at all.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenMalformed is returned when a token decodes but lacks a usable subject.
	ErrTokenMalformed = errors.New("token format is invalid")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignatureInvalid is returned when a token signature does not match.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)
