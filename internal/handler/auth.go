package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/11shadownevermore11/Hackaton/internal/config"
	"github.com/11shadownevermore11/Hackaton/internal/model"
	"github.com/11shadownevermore11/Hackaton/internal/repository"
	"github.com/11shadownevermore11/Hackaton/internal/utils"
)

const refreshCookieName = "refresh_token"

// AuthHandler bundles dependencies for the auth and profile endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Register creates a new user. The login must be free across active and
// deactivated accounts.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.ToLower(strings.TrimSpace(req.Login))
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = "user"
	}

	uid, err := h.Users.Create(req.Login, req.Name, role, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrDuplicateLogin {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "login already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered",
		"user_id": uid,
		"login":   req.Login,
	})
}

// Login verifies credentials, issues a token pair and sets the refresh
// token in an HTTP-only cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	u, err := h.Users.VerifyCredentials(req.Username, req.Password)
	if err != nil {
		if err == repository.ErrAccountInactive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "account is deactivated"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}

	resp, err := h.issueTokens(c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh rotates a refresh token taken from the cookie or the JSON body
// and returns a fresh pair. The old token's registry entry is removed in
// the same step, so it cannot be replayed. Registry presence is checked
// before anything else: a rotated-away token stays cryptographically valid
// until its natural expiry, and only the registry knows it is dead.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := h.refreshTokenFromRequest(c)
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "refresh token not found"})
	}
	oldHash := utils.HashRefreshRaw(raw)

	if _, ok := h.Tokens.Owner(oldHash); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	claims, err := utils.VerifyToken(h.Cfg.JWTSecret, raw)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	u, err := h.Users.GetByID(claims.UserID)
	if err != nil || !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, u.ID, h.Cfg.RefreshTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if _, err := h.Tokens.Rotate(oldHash, utils.HashRefreshRaw(refresh.Raw)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	h.setRefreshCookie(c, refresh.Raw)

	return c.JSON(http.StatusOK, tokenResp{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		TokenType:    "bearer",
		ExpiresIn:    int(h.Cfg.AccessTTL.Seconds()),
	})
}

// Logout revokes the presented refresh token and clears the cookie.
// Revocation is idempotent: logging out with an unknown or already-revoked
// token still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if raw := h.refreshTokenFromRequest(c); raw != "" {
		h.Tokens.Revoke(utils.HashRefreshRaw(raw))
	}
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// issueTokens creates an access/refresh pair for a user, registers the
// refresh token and sets the refresh cookie.
func (h *AuthHandler) issueTokens(c echo.Context, u model.User) (tokenResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTL)
	if err != nil {
		return tokenResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, u.ID, h.Cfg.RefreshTTL)
	if err != nil {
		return tokenResp{}, err
	}
	h.Tokens.Store(utils.HashRefreshRaw(refresh.Raw), u.ID)
	h.setRefreshCookie(c, refresh.Raw)
	return tokenResp{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		TokenType:    "bearer",
		ExpiresIn:    int(h.Cfg.AccessTTL.Seconds()),
	}, nil
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, raw string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    raw,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Cfg.RefreshTTL.Seconds()),
	})
}

// refreshTokenFromRequest reads the refresh token from the cookie first and
// falls back to a JSON body for clients that do not hold cookies.
func (h *AuthHandler) refreshTokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(refreshCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshReq
	_ = c.Bind(&req)
	return strings.TrimSpace(req.RefreshToken)
}

// currentUser loads the authenticated user placed in context by the JWTAuth
// middleware and enforces the active flag. On failure it writes the error
// response and reports false.
func (h *AuthHandler) currentUser(c echo.Context) (model.User, bool) {
	uid, _ := c.Get("user_id").(string)
	u, err := h.Users.GetByID(uid)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
		return model.User{}, false
	}
	if !u.IsActive {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "account is deactivated"})
		return model.User{}, false
	}
	return u, true
}
