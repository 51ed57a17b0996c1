package model

import (
	"time"
)

// User roles. Role is stored as a plain string and checked against this set
// at the validation boundary.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User types describe how the account holder relates to sign language.
const (
	UserTypeDeaf    = "Deaf"
	UserTypeHearing = "Hearing"
	UserTypeGeneral = "General"
)

// DefaultProfilePicURL is the placeholder used until a photo is uploaded.
const DefaultProfilePicURL = "/static/profile_photos/default.png"

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FullName      string     `gorm:"size:100;not null" json:"full_name"`
	Email         string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber   *string    `gorm:"size:20;uniqueIndex" json:"phone_number,omitempty"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	UserType      string     `gorm:"size:20;not null" json:"user_type"`
	Role          string     `gorm:"size:20;not null;default:'User'" json:"role"`
	Location      *string    `gorm:"size:255" json:"location,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	ProfilePicURL string     `gorm:"size:255" json:"profile_pic_url"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is part of the fixed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ValidUserType reports whether t is part of the fixed user-type set.
func ValidUserType(t string) bool {
	return t == UserTypeDeaf || t == UserTypeHearing || t == UserTypeGeneral
}
