package users

import "time"

// User is a registered account. PasswordHash never leaves the service.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// PublicUser is the outward-facing view of a user.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips credentials from a user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
