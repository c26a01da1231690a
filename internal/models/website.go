package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebsiteTemplate struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `gorm:"not null" json:"description"`
	Features    datatypes.JSONSlice[string] `gorm:"not null" json:"features"`
	Price       float64                     `gorm:"not null" json:"price"`
	Contact     string                      `gorm:"not null" json:"contact"`
	Category    string                      `gorm:"not null" json:"category"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

type CustomerInfo struct {
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"not null;index" json:"email"`
	Phone        string `gorm:"not null" json:"phone"`
	Business     string `gorm:"not null" json:"business"`
	Requirements string `json:"requirements"`
}

type WebsiteOrder struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	TemplateID   uint         `gorm:"not null;index" json:"templateId"`
	Title        string       `gorm:"not null" json:"title"`
	Price        float64      `gorm:"not null" json:"price"`
	CustomerInfo CustomerInfo `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo"`
	Status       string       `gorm:"not null;default:'pending'" json:"status"`
	PIN          string       `json:"pin,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
