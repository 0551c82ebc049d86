package model

import "time"

// Vote is a single rating left by one identity on one location. There is at
// most one per (location, identity) pair; repeated ratings overwrite it.
type Vote struct {
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// VoteStats aggregates all votes for one location. Average is the
// arithmetic mean rounded to two decimal places; Distribution has an entry
// for every allowed rating value, zero included.
type VoteStats struct {
	Average      float64     `json:"average_rating"`
	Count        int         `json:"total_votes"`
	Distribution map[int]int `json:"rating_distribution"`
}

// TopLocation is one row of the top-rated ranking.
type TopLocation struct {
	LocationID uint64  `json:"location_id"`
	Average    float64 `json:"average_rating"`
	Count      int     `json:"total_votes"`
}

// RecentVote is a vote as exposed by the recent-votes feed. VoterID is
// truncated so full identities never leave the service.
type RecentVote struct {
	LocationID uint64    `json:"location_id"`
	VoterID    string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Timestamp  time.Time `json:"timestamp"`
}
