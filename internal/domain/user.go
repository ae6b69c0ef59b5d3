package domain

import "time"

// Role controls what a user may do beyond managing their own entries.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a person who logs time entries.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// NewUser creates a regular user.
func NewUser(name, email string) User {
	return User{
		Name:  name,
		Email: email,
		Role:  RoleUser,
	}
}

// IsAdmin reports whether the user may approve entries and manage other users.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// String returns the user name for display purposes.
func (u User) String() string {
	if u.Name == "" {
		return u.Email
	}
	return u.Name
}
