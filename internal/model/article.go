package model

import "time"

type Article struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Excerpt    string     `json:"excerpt,omitempty"`
	AuthorID   string     `json:"author_id"`
	Author     PublicUser `json:"author,omitempty"`
	CategoryID *string    `json:"category_id,omitempty"`
	Published  bool       `json:"published"`
	Views      int        `json:"views"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Comment struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	ArticleID string     `json:"article_id"`
	UserID    string     `json:"user_id"`
	User      PublicUser `json:"user,omitempty"`
	ParentID  *string    `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
