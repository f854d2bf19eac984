// Package common defines shared constants and sentinel errors used across
// the SkyVault client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository/cache-level errors.
	ErrNotFound = errors.New("not found")

	// Crypto errors.
	ErrDecryptFailed = errors.New("could not decrypt metadata with any master key")
	ErrNoMasterKeys  = errors.New("no master keys")

	// API errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrAPIFailure   = errors.New("api request failed")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
