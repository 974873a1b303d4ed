package models

import "time"

// Page is a uniquely titled unit of content. Author is the most recent writer.
type Page struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageSummary is a single row of the recent-pages listing.
type PageSummary struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	UpdatedAt time.Time `json:"updated_at"`
}
