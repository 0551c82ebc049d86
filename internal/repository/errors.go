// Package repository implements the in-memory stores backing the service:
// credentials, the refresh-token registry, anonymous sessions, the vote
// ledger and the location catalog. The sentinel errors below are shared
// across stores so handlers can map each failure to an HTTP status code.
package repository

import "errors"

// ErrDuplicateLogin is returned when registering a login that already
// exists, whether the owning account is active or deactivated.
var ErrDuplicateLogin = errors.New("login already exists")

// ErrDuplicateEmail is returned when a profile update would give two
// different users the same email.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrInvalidCredentials is returned when the login is unknown or the
// password does not match. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountInactive is returned when a deactivated account tries to
// authenticate or act.
var ErrAccountInactive = errors.New("account is deactivated")

// ErrNotFound is returned when a user, location or vote does not exist.
var ErrNotFound = errors.New("not found")

// ErrOutOfRange is returned when a rating falls outside the allowed bounds.
var ErrOutOfRange = errors.New("rating out of range")

// ErrInvalidRefreshToken is returned when a refresh token is not present in
// the registry. Rotation removes the old entry, so a rotated token fails
// with this error even while its signature is still valid.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// ErrDuplicateLocation is returned when creating a location with an id that
// is already taken.
var ErrDuplicateLocation = errors.New("location id already exists")
