package domain

import "time"

// Session is the server-side identity bound to a client-held token.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession binds a freshly authenticated user to token.
func NewSession(token string, u *User, now time.Time) *Session {
	return &Session{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: now,
	}
}
