package models

import "time"

// Follow is a directed edge follower -> followed. The pair is unique and
// the edge is removed with either endpoint.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"followerId" gorm:"not null;index;uniqueIndex:idx_follower_followed"`
	Follower   User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowedID uint      `json:"followedId" gorm:"not null;index;uniqueIndex:idx_follower_followed"`
	Followed   User      `json:"-" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FollowRequest is the body of POST and DELETE /follows
type FollowRequest struct {
	FollowerID uint `json:"followerId" validate:"required"`
	FollowedID uint `json:"followedId" validate:"required"`
}

// FollowStatus answers whether one user follows another
type FollowStatus struct {
	FollowerID uint `json:"followerId"`
	FollowedID uint `json:"followedId"`
	Following  bool `json:"following"`
}
