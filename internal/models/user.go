package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	FullName          string     `gorm:"not null" json:"fullName"`
	Email             string     `gorm:"not null;uniqueIndex" json:"email"`
	Password          string     `gorm:"not null" json:"-"`
	Role              string     `gorm:"not null;default:'user'" json:"role"`
	IsAccountVerified bool       `gorm:"default:false" json:"isAccountVerified"`
	VerifyOTP         string     `json:"-"`
	VerifyOTPExpireAt *time.Time `json:"-"`
	ResetOTP          string     `json:"-"`
	ResetOTPExpireAt  *time.Time `json:"-"`
	Phone             string     `json:"phone"`
	Address           string     `json:"address"`
	InstituteName     string     `json:"instituteName"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PendingUser holds a registration until its email OTP is confirmed.
type PendingUser struct {
	ID        uint      `gorm:"primaryKey"`
	FullName  string    `gorm:"not null"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Password  string    `gorm:"not null"`
	OTP       string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
