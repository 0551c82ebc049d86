package repository

import (
	"sync"
	"time"
)

// refreshEntry records who owns a registered refresh token and when it was
// issued.
type refreshEntry struct {
	UserID   string
	IssuedAt time.Time
}

// TokenRepo is the refresh-token registry, keyed by the SHA-256 hash of the
// raw token value. A refresh token is live only while its hash is present
// here: rotation and revocation work by removing entries, so a token with a
// valid signature but no registry entry must be rejected.
type TokenRepo struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	now    func() time.Time
}

func NewTokenRepo() *TokenRepo {
	return &TokenRepo{tokens: make(map[string]refreshEntry), now: time.Now}
}

// Store registers a refresh token hash for a user.
func (r *TokenRepo) Store(tokenHash, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tokenHash] = refreshEntry{UserID: userID, IssuedAt: r.now()}
}

// Owner returns the user id a registered token hash belongs to.
func (r *TokenRepo) Owner(tokenHash string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tokens[tokenHash]
	return e.UserID, ok
}

// Rotate replaces oldHash with newHash for the same user in one step under
// the registry lock. It fails with ErrInvalidRefreshToken when oldHash is
// not registered, which makes every refresh token single-use: the first
// rotation deletes the entry and any replay fails here.
func (r *TokenRepo) Rotate(oldHash, newHash string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tokens[oldHash]
	if !ok {
		return "", ErrInvalidRefreshToken
	}
	delete(r.tokens, oldHash)
	r.tokens[newHash] = refreshEntry{UserID: e.UserID, IssuedAt: r.now()}
	return e.UserID, nil
}

// Revoke removes a token hash. Revoking an absent hash is a no-op; logout
// must never fail because the token was already gone.
func (r *TokenRepo) Revoke(tokenHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, tokenHash)
}

// RevokeAllForUser removes every registered token belonging to the user and
// reports how many were dropped. The registry is keyed by token hash, so
// this is a linear scan.
func (r *TokenRepo) RevokeAllForUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for hash, e := range r.tokens {
		if e.UserID == userID {
			delete(r.tokens, hash)
			n++
		}
	}
	return n
}
