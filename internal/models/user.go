package models

import (
	"strings"
	"time"
)

// User is owned by the identity store. Everything except Email is immutable after creation.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:30;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	FirstName string    `json:"firstName" gorm:"size:50;not null"`
	LastName  string    `json:"lastName" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// UserResponse is the public projection of a User
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserProfile is a user together with its follow counts
type UserProfile struct {
	UserResponse
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FollowersCount int64  `json:"followersCount"`
	FollowingCount int64  `json:"followingCount"`
}

// ToResponse maps a User to its public projection
func (u *User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

// ToUserResponses maps a slice of users
func ToUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = users[i].ToResponse()
	}
	return out
}

type RegisterUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Normalize trims the text fields and lower-cases the email
func (r *RegisterUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

func (r *UpdateEmailRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
