package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/11shadownevermore11/Hackaton/internal/config"
	"github.com/11shadownevermore11/Hackaton/internal/queue"
	"github.com/11shadownevermore11/Hackaton/internal/repository"
	"github.com/11shadownevermore11/Hackaton/internal/utils"
)

const sessionCookieName = "session_id"

// VotingHandler serves the rating endpoints. Voters are identified either
// by a bearer access token (real user id) or by the anonymous session
// cookie (pseudo user id); the bearer wins when both are present.
type VotingHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Votes    *repository.VoteRepo

	// Publish, when set, receives an event for every recorded vote. It is
	// called on a separate goroutine and must not block the request.
	Publish func(queue.VoteRecordedEvent)
}

func NewVotingHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo, v *repository.VoteRepo) *VotingHandler {
	return &VotingHandler{Cfg: cfg, Users: u, Sessions: s, Votes: v}
}

type rateReq struct {
	Rating int `json:"rating"`
}

// Rate records a rating for a location. Anonymous voters get a session
// allocated on their first vote; the response sets the session cookie so
// later requests resolve to the same pseudo user.
func (h *VotingHandler) Rate(c echo.Context) error {
	locID, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	// Range is checked before any session is allocated so an invalid vote
	// leaves no cookie behind.
	if req.Rating < h.Cfg.MinRating || req.Rating > h.Cfg.MaxRating {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "rating must be between " + strconv.Itoa(h.Cfg.MinRating) + " and " + strconv.Itoa(h.Cfg.MaxRating),
		})
	}

	identity, anonymous := h.bearerIdentity(c), false
	if identity == "" {
		anonymous = true
		sid := ""
		if ck, err := c.Cookie(sessionCookieName); err == nil {
			sid = ck.Value
		}
		newSID, pseudoID, created := h.Sessions.ResolveOrCreate(sid)
		identity = pseudoID
		if created {
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    newSID,
				Path:     "/",
				HttpOnly: true,
				MaxAge:   int(h.Cfg.SessionTTL.Seconds()),
			})
		}
	}

	if err := h.Votes.Rate(locID, identity, req.Rating); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating out of range"})
	}
	h.publishVote(locID, identity, req.Rating, anonymous)

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "thanks for your rating",
		"location_id": locID,
		"rating":      req.Rating,
		"user_voted":  true,
	})
}

// Stats returns the aggregate rating statistics for a location. Locations
// without votes get zeroed stats, not an error.
func (h *VotingHandler) Stats(c echo.Context) error {
	locID, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	stats := h.Votes.Stats(locID)
	return c.JSON(http.StatusOK, echo.Map{
		"location_id":         locID,
		"average_rating":      stats.Average,
		"total_votes":         stats.Count,
		"rating_distribution": stats.Distribution,
		"min_rating":          h.Cfg.MinRating,
		"max_rating":          h.Cfg.MaxRating,
	})
}

// MyRating reports whether the caller has voted on a location and with
// what rating. An unknown identity is not an error: it just has not voted.
func (h *VotingHandler) MyRating(c echo.Context) error {
	locID, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	identity, ok := h.voterIdentity(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{
			"location_id": locID,
			"has_voted":   false,
		})
	}
	v, ok := h.Votes.Get(locID, identity)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{
			"location_id": locID,
			"has_voted":   false,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"location_id": locID,
		"has_voted":   true,
		"my_rating":   v.Rating,
		"voted_at":    v.Timestamp,
	})
}

// UpdateRating overwrites the caller's existing vote. Unlike Rate it never
// creates a session and requires a prior vote.
func (h *VotingHandler) UpdateRating(c echo.Context) error {
	locID, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	identity, ok := h.voterIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "rate the location first"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	old, err := h.Votes.Update(locID, identity, req.Rating)
	if err != nil {
		if err == repository.ErrOutOfRange {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "rating must be between " + strconv.Itoa(h.Cfg.MinRating) + " and " + strconv.Itoa(h.Cfg.MaxRating),
			})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
	}
	h.publishVote(locID, identity, req.Rating, !h.isBearer(c))

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "rating updated",
		"location_id": locID,
		"old_rating":  old.Rating,
		"new_rating":  req.Rating,
	})
}

// RemoveRating deletes the caller's vote. The delete is not idempotent: a
// second call yields 404.
func (h *VotingHandler) RemoveRating(c echo.Context) error {
	locID, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	identity, ok := h.voterIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authorized"})
	}
	if err := h.Votes.Remove(locID, identity); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "rating removed",
		"location_id": locID,
	})
}

// TopRated returns the best locations ordered by average rating, then vote
// count.
func (h *VotingHandler) TopRated(c echo.Context) error {
	limit := queryLimit(c, 10)
	return c.JSON(http.StatusOK, echo.Map{
		"top_locations": h.Votes.Top(limit),
		"limit":         limit,
	})
}

// RecentVotes returns the newest votes across all locations with truncated
// voter identities.
func (h *VotingHandler) RecentVotes(c echo.Context) error {
	limit := queryLimit(c, 20)
	return c.JSON(http.StatusOK, echo.Map{
		"recent_votes": h.Votes.Recent(limit),
		"limit":        limit,
	})
}

// bearerIdentity returns the user id from a valid bearer access token whose
// subject still resolves to an active user, or "" when there is none.
func (h *VotingHandler) bearerIdentity(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	claims, err := utils.VerifyToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil || claims.TokenType != utils.TokenTypeAccess {
		return ""
	}
	u, err := h.Users.GetByID(claims.UserID)
	if err != nil || !u.IsActive {
		return ""
	}
	return u.ID
}

func (h *VotingHandler) isBearer(c echo.Context) bool {
	return h.bearerIdentity(c) != ""
}

// voterIdentity resolves an existing voting identity without creating a
// session: bearer token first, then the session cookie.
func (h *VotingHandler) voterIdentity(c echo.Context) (string, bool) {
	if id := h.bearerIdentity(c); id != "" {
		return id, true
	}
	ck, err := c.Cookie(sessionCookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return h.Sessions.Lookup(ck.Value)
}

func (h *VotingHandler) publishVote(locID uint64, identity string, rating int, anonymous bool) {
	if h.Publish == nil {
		return
	}
	ev := queue.VoteRecordedEvent{
		LocationID: locID,
		VoterID:    shortID(identity),
		Rating:     rating,
		Anonymous:  anonymous,
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go h.Publish(ev)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func queryLimit(c echo.Context, def int) int {
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
