package model

import "time"

// Organizer represents an event-organizer (admin) account.
type Organizer struct {
	ID           int       `json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrganizerLoginRequest is the payload for organizer authentication.
type OrganizerLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// OrganizerLoginResponse is returned after successful organizer login.
type OrganizerLoginResponse struct {
	Token     string    `json:"token"`
	Organizer Organizer `json:"organizer"`
}
