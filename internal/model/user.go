package model

import "time"

// User is an account record held in the in-memory credential store. The ID
// is immutable and unique; Login stays unique across active and deactivated
// accounts. Email starts out equal to Login and can be changed later via a
// profile update.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}
