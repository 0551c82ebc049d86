package repository

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/11shadownevermore11/Hackaton/internal/model"
)

// VoteRepo is the vote ledger: one rating per (location, identity) pair,
// where the identity is either a real user id or a session-scoped pseudo
// user id. Locations are not required to exist in the catalog to collect
// votes.
type VoteRepo struct {
	mu       sync.RWMutex
	votes    map[uint64]map[string]model.Vote
	min, max int
	now      func() time.Time
}

func NewVoteRepo(minRating, maxRating int) *VoteRepo {
	return &VoteRepo{
		votes: make(map[uint64]map[string]model.Vote),
		min:   minRating,
		max:   maxRating,
		now:   time.Now,
	}
}

// Rate records the identity's rating for a location, overwriting any
// previous vote by the same identity.
func (r *VoteRepo) Rate(locationID uint64, identityID string, rating int) error {
	if rating < r.min || rating > r.max {
		return ErrOutOfRange
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byIdentity, ok := r.votes[locationID]
	if !ok {
		byIdentity = make(map[string]model.Vote)
		r.votes[locationID] = byIdentity
	}
	byIdentity[identityID] = model.Vote{Rating: rating, Timestamp: r.now()}
	return nil
}

// Get returns the identity's vote for a location.
func (r *VoteRepo) Get(locationID uint64, identityID string) (model.Vote, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.votes[locationID][identityID]
	return v, ok
}

// Update overwrites an existing vote. Unlike Rate it requires a prior vote
// by the same identity and returns it, so callers can report the change.
func (r *VoteRepo) Update(locationID uint64, identityID string, newRating int) (model.Vote, error) {
	if newRating < r.min || newRating > r.max {
		return model.Vote{}, ErrOutOfRange
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.votes[locationID][identityID]
	if !ok {
		return model.Vote{}, ErrNotFound
	}
	r.votes[locationID][identityID] = model.Vote{Rating: newRating, Timestamp: r.now()}
	return old, nil
}

// Remove deletes the identity's vote. The delete is not idempotent: a
// second call fails with ErrNotFound. A location whose vote map empties is
// pruned entirely.
func (r *VoteRepo) Remove(locationID uint64, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byIdentity, ok := r.votes[locationID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := byIdentity[identityID]; !ok {
		return ErrNotFound
	}
	delete(byIdentity, identityID)
	if len(byIdentity) == 0 {
		delete(r.votes, locationID)
	}
	return nil
}

// Stats aggregates the votes for a location. A location without votes gets
// zeroed stats with a full distribution, never an error.
func (r *VoteRepo) Stats(locationID uint64) model.VoteStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dist := make(map[int]int, r.max-r.min+1)
	for i := r.min; i <= r.max; i++ {
		dist[i] = 0
	}
	byIdentity := r.votes[locationID]
	if len(byIdentity) == 0 {
		return model.VoteStats{Distribution: dist}
	}
	sum := 0
	for _, v := range byIdentity {
		sum += v.Rating
		dist[v.Rating]++
	}
	return model.VoteStats{
		Average:      round2(float64(sum) / float64(len(byIdentity))),
		Count:        len(byIdentity),
		Distribution: dist,
	}
}

// Top returns up to limit locations ordered by average rating, then vote
// count, both descending. The relative order of locations with identical
// average and count is unspecified. A non-positive limit returns all.
func (r *VoteRepo) Top(limit int) []model.TopLocation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.TopLocation, 0, len(r.votes))
	for locationID, byIdentity := range r.votes {
		sum := 0
		for _, v := range byIdentity {
			sum += v.Rating
		}
		out = append(out, model.TopLocation{
			LocationID: locationID,
			Average:    round2(float64(sum) / float64(len(byIdentity))),
			Count:      len(byIdentity),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Recent returns up to limit votes across all locations, newest first, with
// voter identities truncated. A non-positive limit returns all.
func (r *VoteRepo) Recent(limit int) []model.RecentVote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.RecentVote, 0)
	for locationID, byIdentity := range r.votes {
		for identityID, v := range byIdentity {
			out = append(out, model.RecentVote{
				LocationID: locationID,
				VoterID:    truncateIdentity(identityID),
				Rating:     v.Rating,
				Timestamp:  v.Timestamp,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// truncateIdentity shortens a voter id for public feeds so full identities
// never leave the service.
func truncateIdentity(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
