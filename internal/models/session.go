package models

import "time"

// SessionUser is the identity exposed by the auth provider.
type SessionUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Image         string    `json:"image,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	Role          UserRole  `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SessionInfo describes the auth session itself.
type SessionInfo struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
}

// Session is the payload of GET /api/auth/get-session.
type Session struct {
	User    SessionUser `json:"user"`
	Session SessionInfo `json:"session"`
}

// SessionState is what pages see: resolved data or the error that prevented it.
// Data is nil when the visitor is signed out.
type SessionState struct {
	Data *Session
	Err  error
}

// SignedIn reports whether a user identity was resolved.
func (s SessionState) SignedIn() bool {
	return s.Data != nil && s.Data.User.ID != ""
}

// HasRole reports whether the signed-in user has role r.
func (s SessionState) HasRole(r UserRole) bool {
	return s.SignedIn() && s.Data.User.Role == r
}

// Role returns the signed-in role or "".
func (s SessionState) Role() UserRole {
	if !s.SignedIn() {
		return ""
	}
	return s.Data.User.Role
}
