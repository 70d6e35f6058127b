package domain

import "time"

// Rule is a standing instruction published by an administrator.
type Rule struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Notice is a short announcement shown on the dashboard.
type Notice struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
