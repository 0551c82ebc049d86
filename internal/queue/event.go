// Package queue defines message payloads exchanged over the message broker.
package queue

// VoteRecordedEvent is published whenever a rating is created or updated.
// It carries enough for downstream consumers to log or aggregate without
// calling back into the API. VoterID is truncated so full identities never
// cross the broker.
type VoteRecordedEvent struct {
	LocationID uint64 `json:"location_id"`
	VoterID    string `json:"voter_id"`
	Rating     int    `json:"rating"`
	Anonymous  bool   `json:"anonymous"`
	RecordedAt string `json:"recorded_at"`
}
