package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/11shadownevermore11/Hackaton/internal/config"
	"github.com/11shadownevermore11/Hackaton/internal/handler"
	"github.com/11shadownevermore11/Hackaton/internal/repository"
	"github.com/11shadownevermore11/Hackaton/internal/router"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	e         *echo.Echo
	cfg       config.Config
	users     *repository.UserRepo
	tokens    *repository.TokenRepo
	sessions  *repository.SessionRepo
	votes     *repository.VoteRepo
	locations *repository.LocationRepo
}

// newTestEnv wires the full route table over fresh in-memory stores, the
// same way main does, minus Redis and the broker.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		Env:        "test",
		JWTSecret:  testSecret,
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		SessionTTL: 24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
		MinRating:  1,
		MaxRating:  5,
		UploadDir:  t.TempDir(),
	}
	env := &testEnv{
		e:         echo.New(),
		cfg:       cfg,
		users:     repository.NewUserRepo(),
		tokens:    repository.NewTokenRepo(),
		sessions:  repository.NewSessionRepo(cfg.SessionTTL),
		votes:     repository.NewVoteRepo(cfg.MinRating, cfg.MaxRating),
		locations: repository.NewLocationRepo(),
	}
	router.RegisterRoutes(env.e)
	router.RegisterAuth(env.e, handler.NewAuthHandler(cfg, env.users, env.tokens), cfg.JWTSecret)
	router.RegisterLocations(env.e, handler.NewLocationHandler(env.locations, cfg.UploadDir))
	router.RegisterVoting(env.e, handler.NewVotingHandler(cfg, env.users, env.sessions, env.votes))
	return env
}

type reqOpt func(*http.Request)

func withBearer(token string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(ck *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(ck) }
}

// do sends a JSON request through the route table and returns the recorder.
func (env *testEnv) do(t *testing.T, method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// registerAndLogin creates a user and returns (userID, accessToken,
// refreshToken).
func (env *testEnv) registerAndLogin(t *testing.T, login, password, role string) (string, string, string) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/auth/register", map[string]any{
		"login":    login,
		"name":     login,
		"role":     role,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", login, rec.Code, rec.Body.String())
	}
	uid, _ := decode(t, rec)["user_id"].(string)

	rec = env.do(t, http.MethodPost, "/auth/login", map[string]any{
		"username": login,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", login, rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	access, _ := body["access_token"].(string)
	refresh, _ := body["refresh_token"].(string)
	return uid, access, refresh
}
