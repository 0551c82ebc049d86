package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/11shadownevermore11/Hackaton/internal/model"
	"github.com/11shadownevermore11/Hackaton/internal/utils"
)

// UserRepo is the in-memory credential store. All state lives for the
// lifetime of the process. A single mutex guards the map because the
// duplicate-login check and the insert must not interleave.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User // keyed by user id
	now   func() time.Time
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*model.User), now: time.Now}
}

// Create registers a new user and returns its id. Logins are normalized to
// lower case and must be unique across active and deactivated accounts.
// The login doubles as the contact email until the profile is updated.
func (r *UserRepo) Create(login, fullName, role, password string, cost int) (string, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Login == login {
			return "", ErrDuplicateLogin
		}
	}
	now := r.now()
	u := &model.User{
		ID:           uuid.NewString(),
		Login:        login,
		Email:        login,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		LastLogin:    now,
	}
	r.users[u.ID] = u
	return u.ID, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return *u, nil
}

// GetByLogin fetches a user by normalized login.
func (r *UserRepo) GetByLogin(login string) (model.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Login == login {
			return *u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// VerifyCredentials checks a login/password pair and returns the user on
// success, touching its last-login timestamp. An unknown login and a wrong
// password both yield ErrInvalidCredentials; a deactivated account yields
// ErrAccountInactive.
func (r *UserRepo) VerifyCredentials(login, password string) (model.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Login != login {
			continue
		}
		if !utils.VerifyPassword(u.PasswordHash, password) {
			return model.User{}, ErrInvalidCredentials
		}
		if !u.IsActive {
			return model.User{}, ErrAccountInactive
		}
		u.LastLogin = r.now()
		return *u, nil
	}
	return model.User{}, ErrInvalidCredentials
}

// UpdateProfile applies a partial profile update. A nil pointer leaves the
// field untouched. Changing the email to one held by a different user fails
// with ErrDuplicateEmail.
func (r *UserRepo) UpdateProfile(id string, fullName, email *string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if email != nil {
		e := strings.ToLower(strings.TrimSpace(*email))
		for _, other := range r.users {
			if other.ID != id && other.Email == e {
				return model.User{}, ErrDuplicateEmail
			}
		}
		u.Email = e
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	return *u, nil
}

// SetPassword replaces the stored password hash.
func (r *UserRepo) SetPassword(id, newPassword string, cost int) error {
	hash, err := utils.HashPassword(newPassword, cost)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// Deactivate clears the active flag. The record is kept so the login stays
// reserved.
func (r *UserRepo) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

// All returns every user ordered by creation time.
func (r *UserRepo) All() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
