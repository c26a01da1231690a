package models

import (
	"time"
)

const (
	AdTypeScript = "script"
	AdTypeImage  = "image"
)

type Ad struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Type          string    `gorm:"not null" json:"type"`
	ScriptContent string    `json:"scriptContent,omitempty"`
	Link          string    `json:"link,omitempty"`
	IsActive      bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type MarqueeMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	IsActive  bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
