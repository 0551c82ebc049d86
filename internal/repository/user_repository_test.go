package repository

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

const testCost = bcrypt.MinCost

func TestUserRepoCreateDuplicateLogin(t *testing.T) {
	r := NewUserRepo()
	if _, err := r.Create("alice", "Alice", "user", "pw1", testCost); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := r.Create("Alice", "Another", "user", "pw2", testCost); !errors.Is(err, ErrDuplicateLogin) {
		t.Errorf("Create duplicate = %v, want ErrDuplicateLogin", err)
	}

	// Logins stay reserved after deactivation.
	u, err := r.GetByLogin("alice")
	if err != nil {
		t.Fatalf("GetByLogin: %v", err)
	}
	if err := r.Deactivate(u.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := r.Create("alice", "Third", "user", "pw3", testCost); !errors.Is(err, ErrDuplicateLogin) {
		t.Errorf("Create after deactivate = %v, want ErrDuplicateLogin", err)
	}
}

func TestUserRepoVerifyCredentials(t *testing.T) {
	r := NewUserRepo()
	uid, err := r.Create("bob", "Bob", "user", "secret", testCost)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := r.VerifyCredentials("bob", "secret")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if u.ID != uid {
		t.Errorf("ID = %q, want %q", u.ID, uid)
	}

	if _, err := r.VerifyCredentials("bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := r.VerifyCredentials("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown login = %v, want ErrInvalidCredentials", err)
	}

	if err := r.Deactivate(uid); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := r.VerifyCredentials("bob", "secret"); !errors.Is(err, ErrAccountInactive) {
		t.Errorf("inactive account = %v, want ErrAccountInactive", err)
	}
}

func TestUserRepoUpdateProfile(t *testing.T) {
	r := NewUserRepo()
	aid, _ := r.Create("alice", "Alice", "user", "pw", testCost)
	bid, _ := r.Create("bob", "Bob", "user", "pw", testCost)

	name := "Alice A."
	email := "alice@example.com"
	u, err := r.UpdateProfile(aid, &name, &email)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.FullName != name || u.Email != email {
		t.Errorf("profile = (%q, %q), want (%q, %q)", u.FullName, u.Email, name, email)
	}

	if _, err := r.UpdateProfile(bid, nil, &email); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate email = %v, want ErrDuplicateEmail", err)
	}
	// Re-submitting your own email is fine.
	if _, err := r.UpdateProfile(aid, nil, &email); err != nil {
		t.Errorf("own email = %v, want nil", err)
	}

	if _, err := r.UpdateProfile("missing", &name, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user = %v, want ErrNotFound", err)
	}
}

func TestUserRepoSetPassword(t *testing.T) {
	r := NewUserRepo()
	uid, _ := r.Create("carol", "Carol", "user", "old", testCost)

	if err := r.SetPassword(uid, "new", testCost); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if _, err := r.VerifyCredentials("carol", "old"); err == nil {
		t.Error("old password still accepted")
	}
	if _, err := r.VerifyCredentials("carol", "new"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if err := r.SetPassword("missing", "x", testCost); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user = %v, want ErrNotFound", err)
	}
}

func TestUserRepoAll(t *testing.T) {
	r := NewUserRepo()
	r.Create("a", "A", "user", "pw", testCost)
	r.Create("b", "B", "admin", "pw", testCost)
	if got := len(r.All()); got != 2 {
		t.Errorf("len(All()) = %d, want 2", got)
	}
}
