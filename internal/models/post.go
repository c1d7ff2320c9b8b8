package models

import (
	"strings"
	"time"
)

// Post is owned by the content store. CreatedAt is assigned once on insert.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"authorId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// PostResponse is what the API returns for a post (timeline entries included)
type PostResponse struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"authorId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePostRequest defines the request body for creating or updating a post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

func (r *CreatePostRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}
