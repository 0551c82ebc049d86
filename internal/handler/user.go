package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/11shadownevermore11/Hackaton/internal/model"
	"github.com/11shadownevermore11/Hackaton/internal/repository"
	"github.com/11shadownevermore11/Hackaton/internal/utils"
)

// Profile and admin endpoints live on AuthHandler as well: they share the
// credential store and the current-user plumbing.

type updateProfileReq struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}
type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type profileResp struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
}

func profileOf(u model.User) profileResp {
	return profileResp{
		ID:        u.ID,
		Username:  u.Login,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05"),
		LastLogin: u.LastLogin.Format("2006-01-02T15:04:05"),
	}
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := h.currentUser(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, profileOf(u))
}

// UpdateMe applies a partial profile update (full name and/or email).
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	u, ok := h.currentUser(c)
	if !ok {
		return nil
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	updated, err := h.Users.UpdateProfile(u.ID, req.FullName, req.Email)
	if err != nil {
		if err == repository.ErrDuplicateEmail {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated",
		"user":    profileOf(updated),
	})
}

// ChangePassword verifies the current password and stores a new hash.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u, ok := h.currentUser(c)
	if !ok {
		return nil
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "old_password/new_password required"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wrong current password"})
	}
	if err := h.Users.SetPassword(u.ID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "change password failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// GetUser returns the public projection of any user by id.
func (h *AuthHandler) GetUser(c echo.Context) error {
	u, err := h.Users.GetByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         u.ID,
		"username":   u.Login,
		"full_name":  u.FullName,
		"created_at": u.CreatedAt.Format("2006-01-02T15:04:05"),
	})
}

// ListUsers returns every account. Admin only; password hashes stay inside
// the store.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	if _, ok := h.currentUser(c); !ok {
		return nil
	}
	all := h.Users.All()
	users := make([]echo.Map, 0, len(all))
	for _, u := range all {
		users = append(users, echo.Map{
			"id":         u.ID,
			"username":   u.Login,
			"email":      u.Email,
			"full_name":  u.FullName,
			"role":       u.Role,
			"is_active":  u.IsActive,
			"created_at": u.CreatedAt.Format("2006-01-02T15:04:05"),
			"last_login": u.LastLogin.Format("2006-01-02T15:04:05"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_users": len(users),
		"users":       users,
	})
}

// DeactivateUser clears a user's active flag. The record and its login stay
// reserved; refresh tokens the user still holds are revoked.
func (h *AuthHandler) DeactivateUser(c echo.Context) error {
	if _, ok := h.currentUser(c); !ok {
		return nil
	}
	id := c.Param("id")
	if err := h.Users.Deactivate(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	h.Tokens.RevokeAllForUser(id)
	return c.JSON(http.StatusOK, echo.Map{"message": "user deactivated"})
}
