package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type tags carried in the "typ" claim. Access and refresh tokens are
// signed the same way; the tag keeps one from being used in place of the
// other.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned by VerifyToken for any token that fails
// validation: bad signature, malformed payload or expiry in the past.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the validated payload of an access or refresh token.
type Claims struct {
	UserID    string
	Role      string
	TokenType string
	ExpiresAt time.Time
}

// AccessToken is a signed JWT access token along with its expiry. Access
// tokens are short-lived, stateless and sent in the Authorization header.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// RefreshToken is a longer-lived signed token used to obtain new access
// tokens. Its raw value goes back to the client; the registry stores only a
// SHA-256 hash of it.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

// NewAccessToken builds and signs an HS256 JWT authorizing API calls for a
// user. Claims: subject (sub), role, type tag (typ), expiration (exp) and
// issued at (iat).
func NewAccessToken(secret, userID, role string, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"typ":  TokenTypeAccess,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs an HS256 JWT tagged typ=refresh. A
// refresh token must additionally be registered in the token registry;
// rotation removes the registry entry, so a valid signature alone never
// authorizes a refresh.
func NewRefreshToken(secret, userID string, ttl time.Duration) (RefreshToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": TokenTypeRefresh,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: signed, Exp: exp}, nil
}

// VerifyToken parses a signed token and returns its claims. It rejects
// non-HMAC signing methods, bad signatures, malformed payloads and expired
// tokens. It does not consult the refresh registry.
func VerifyToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	typ, _ := mc["typ"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || typ == "" {
		return Claims{}, ErrInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: sub, Role: role, TokenType: typ, ExpiresAt: exp.Time}, nil
}

// HashRefreshRaw returns the SHA-256 hash of a raw refresh token as a hex
// string. The registry stores only this hash, so a leaked registry dump
// cannot be replayed as tokens.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// NewSecret returns a hex-encoded random signing secret. It is generated
// once at startup when no secret is configured; in that mode every token
// becomes unverifiable after a restart.
func NewSecret() (string, error) {
	return randomHex(32)
}

// randomHex returns a hex-encoded string built from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
