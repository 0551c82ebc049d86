package handler_test

import (
	"net/http"
	"testing"
)

func TestAnonymousVoteFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/voting/5/rate", map[string]any{"rating": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("rate: status %d body %s", rec.Code, rec.Body.String())
	}
	session := cookieNamed(rec, "session_id")
	if session == nil {
		t.Fatal("first anonymous vote did not set a session cookie")
	}

	rec = env.do(t, http.MethodGet, "/voting/5/my-rating", nil, withCookie(session))
	if rec.Code != http.StatusOK {
		t.Fatalf("my-rating: status %d", rec.Code)
	}
	body := decode(t, rec)
	if body["has_voted"] != true {
		t.Errorf("has_voted = %v, want true", body["has_voted"])
	}
	if body["my_rating"].(float64) != 4 {
		t.Errorf("my_rating = %v, want 4", body["my_rating"])
	}

	// Voting again with the cookie reuses the session: no new cookie and
	// still a single vote.
	rec = env.do(t, http.MethodPost, "/voting/5/rate", map[string]any{"rating": 2}, withCookie(session))
	if rec.Code != http.StatusOK {
		t.Fatalf("re-rate: status %d", rec.Code)
	}
	if cookieNamed(rec, "session_id") != nil {
		t.Error("existing session got a new cookie")
	}
	stats := decode(t, env.do(t, http.MethodGet, "/voting/5/stats", nil))
	if stats["total_votes"].(float64) != 1 {
		t.Errorf("total_votes = %v, want 1 (overwrite, not append)", stats["total_votes"])
	}
}

func TestMyRatingWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/voting/5/my-rating", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("my-rating: status %d", rec.Code)
	}
	if body := decode(t, rec); body["has_voted"] != false {
		t.Errorf("has_voted = %v, want false", body["has_voted"])
	}
}

func TestRateOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	for _, rating := range []int{0, 6, -3} {
		rec := env.do(t, http.MethodPost, "/voting/5/rate", map[string]any{"rating": rating})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rate(%d): status %d, want 400", rating, rec.Code)
		}
		if cookieNamed(rec, "session_id") != nil {
			t.Errorf("rate(%d): invalid vote allocated a session", rating)
		}
	}
}

func TestTwoSessionsStats(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/voting/7/rate", map[string]any{"rating": 5})
	env.do(t, http.MethodPost, "/voting/7/rate", map[string]any{"rating": 3})

	body := decode(t, env.do(t, http.MethodGet, "/voting/7/stats", nil))
	if body["average_rating"].(float64) != 4.0 {
		t.Errorf("average_rating = %v, want 4.0", body["average_rating"])
	}
	if body["total_votes"].(float64) != 2 {
		t.Errorf("total_votes = %v, want 2", body["total_votes"])
	}
	dist := body["rating_distribution"].(map[string]any)
	if dist["3"].(float64) != 1 || dist["5"].(float64) != 1 || dist["4"].(float64) != 0 {
		t.Errorf("rating_distribution = %v, want {3:1, 5:1, rest 0}", dist)
	}
}

func TestStatsForUnratedLocation(t *testing.T) {
	env := newTestEnv(t)
	body := decode(t, env.do(t, http.MethodGet, "/voting/42/stats", nil))
	if body["average_rating"].(float64) != 0 || body["total_votes"].(float64) != 0 {
		t.Errorf("stats = %v, want zeroed", body)
	}
	dist := body["rating_distribution"].(map[string]any)
	for _, k := range []string{"1", "2", "3", "4", "5"} {
		if dist[k].(float64) != 0 {
			t.Errorf("distribution[%s] = %v, want 0", k, dist[k])
		}
	}
}

func TestUpdateAndRemoveRating(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/voting/3/rate", map[string]any{"rating": 2})
	session := cookieNamed(rec, "session_id")
	if session == nil {
		t.Fatal("no session cookie")
	}

	// Update requires an existing session.
	rec = env.do(t, http.MethodPut, "/voting/3/update-rating", map[string]any{"rating": 5})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("update without session: status %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPut, "/voting/3/update-rating", map[string]any{"rating": 5}, withCookie(session))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["old_rating"].(float64) != 2 || body["new_rating"].(float64) != 5 {
		t.Errorf("update = %v, want old 2 new 5", body)
	}

	// Updating a location this session never rated fails.
	rec = env.do(t, http.MethodPut, "/voting/99/update-rating", map[string]any{"rating": 4}, withCookie(session))
	if rec.Code != http.StatusNotFound {
		t.Errorf("update unrated location: status %d, want 404", rec.Code)
	}

	// Remove once, then verify the delete is not idempotent.
	rec = env.do(t, http.MethodDelete, "/voting/3/remove-rating", nil, withCookie(session))
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: status %d", rec.Code)
	}
	body = decode(t, env.do(t, http.MethodGet, "/voting/3/my-rating", nil, withCookie(session)))
	if body["has_voted"] != false {
		t.Errorf("has_voted after remove = %v, want false", body["has_voted"])
	}
	rec = env.do(t, http.MethodDelete, "/voting/3/remove-rating", nil, withCookie(session))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second remove: status %d, want 404", rec.Code)
	}
}

func TestAuthenticatedVote(t *testing.T) {
	env := newTestEnv(t)
	_, access, _ := env.registerAndLogin(t, "alice", "pw1", "")

	rec := env.do(t, http.MethodPost, "/voting/9/rate", map[string]any{"rating": 5}, withBearer(access))
	if rec.Code != http.StatusOK {
		t.Fatalf("rate: status %d body %s", rec.Code, rec.Body.String())
	}
	if cookieNamed(rec, "session_id") != nil {
		t.Error("authenticated vote allocated an anonymous session")
	}

	body := decode(t, env.do(t, http.MethodGet, "/voting/9/my-rating", nil, withBearer(access)))
	if body["has_voted"] != true || body["my_rating"].(float64) != 5 {
		t.Errorf("my-rating = %v, want has_voted true rating 5", body)
	}

	// The same user voting twice still counts once.
	env.do(t, http.MethodPost, "/voting/9/rate", map[string]any{"rating": 3}, withBearer(access))
	stats := decode(t, env.do(t, http.MethodGet, "/voting/9/stats", nil))
	if stats["total_votes"].(float64) != 1 {
		t.Errorf("total_votes = %v, want 1", stats["total_votes"])
	}
}

func TestTopRatedAndRecent(t *testing.T) {
	env := newTestEnv(t)

	// loc 1: avg 5.0 (1 vote); loc 2: avg 4.0 (2 votes); loc 3: avg 4.0 (1 vote).
	env.do(t, http.MethodPost, "/voting/1/rate", map[string]any{"rating": 5})
	env.do(t, http.MethodPost, "/voting/2/rate", map[string]any{"rating": 5})
	env.do(t, http.MethodPost, "/voting/2/rate", map[string]any{"rating": 3})
	env.do(t, http.MethodPost, "/voting/3/rate", map[string]any{"rating": 4})

	body := decode(t, env.do(t, http.MethodGet, "/voting/top-rated?limit=2", nil))
	top := body["top_locations"].([]any)
	if len(top) != 2 {
		t.Fatalf("len(top_locations) = %d, want 2", len(top))
	}
	first := top[0].(map[string]any)
	second := top[1].(map[string]any)
	if first["location_id"].(float64) != 1 {
		t.Errorf("top[0] = %v, want location 1", first)
	}
	if second["location_id"].(float64) != 2 {
		t.Errorf("top[1] = %v, want location 2 (tie broken by count)", second)
	}

	body = decode(t, env.do(t, http.MethodGet, "/voting/recent-votes?limit=3", nil))
	recent := body["recent_votes"].([]any)
	if len(recent) != 3 {
		t.Fatalf("len(recent_votes) = %d, want 3", len(recent))
	}
	for _, rv := range recent {
		voter := rv.(map[string]any)["user_id"].(string)
		// Pseudo user ids are UUIDs; the feed must expose only a prefix.
		if len(voter) != 11 || voter[8:] != "..." {
			t.Errorf("voter id %q not truncated", voter)
		}
	}
}
