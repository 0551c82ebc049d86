package model

import "time"

// Session ties an anonymous browser session to a pseudo user id used for
// voting without an account. The pseudo id is unrelated to real user ids
// and stays fixed for the session's lifetime; LastActivity advances on
// every use and drives idle expiry.
type Session struct {
	ID           string
	PseudoUserID string
	LastActivity time.Time
}
