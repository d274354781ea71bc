package models

import "time"

// User represents a registered candidate practicing case interviews.
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"size:255;not null" json:"-"`
	FirstName         string     `gorm:"size:255" json:"first_name"`
	LastName          string     `gorm:"size:255" json:"last_name"`
	ProfilePictureURL string     `gorm:"size:512" json:"profile_picture_url"`
	Bio               string     `gorm:"type:text" json:"bio"`
	LastLogin         *time.Time `json:"last_login"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	IsAdmin           bool       `gorm:"default:false" json:"is_admin"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
