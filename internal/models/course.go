package models

import (
	"time"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	Price       float64   `gorm:"not null" json:"price"`
	Duration    int       `gorm:"not null" json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RequesterInfo struct {
	Name           string `gorm:"not null" json:"name"`
	Institute      string `gorm:"not null" json:"institute"`
	Address        string `gorm:"not null" json:"address"`
	Phone          string `gorm:"not null" json:"phone"`
	AdditionalInfo string `json:"additionalInfo"`
}

type CourseRequest struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	UserID     uint          `gorm:"not null;index" json:"userId"`
	User       *User         `json:"user,omitempty"`
	CourseID   uint          `gorm:"not null;index" json:"courseId"`
	Course     *Course       `json:"course,omitempty"`
	Status     string        `gorm:"not null;default:'pending'" json:"status"`
	PIN        string        `json:"pin,omitempty"`
	PINExpires *time.Time    `json:"pinExpires,omitempty"`
	UserInfo   RequesterInfo `gorm:"embedded;embeddedPrefix:user_info_" json:"userInfo"`
	CreatedAt  time.Time     `json:"createdAt"`
}
