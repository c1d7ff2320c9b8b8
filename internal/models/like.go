package models

import "time"

// Like is an edge user -> post, unique per pair
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_user_post_like"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_user_post_like"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeRequest is the body of POST and DELETE /likes
type LikeRequest struct {
	UserID uint `json:"userId" validate:"required"`
	PostID uint `json:"postId" validate:"required"`
}

// LikeStatus answers whether a user liked a post
type LikeStatus struct {
	UserID uint `json:"userId"`
	PostID uint `json:"postId"`
	Liked  bool `json:"liked"`
}
