package models

import (
	"time"
)

const (
	CategoryNote         = "note"
	CategorySlide        = "slide"
	CategoryChowtha      = "chowtha"
	CategoryLabReport    = "lab_report"
	CategoryPrevQuestion = "prev_question"
	CategoryBook         = "book"
	CategoryOther        = "other"
)

var PDFCategories = []string{
	CategoryNote,
	CategorySlide,
	CategoryChowtha,
	CategoryLabReport,
	CategoryPrevQuestion,
	CategoryBook,
	CategoryOther,
}

func IsValidCategory(category string) bool {
	for _, c := range PDFCategories {
		if c == category {
			return true
		}
	}
	return false
}

type PDF struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	URL           string    `gorm:"not null" json:"url"`
	PublicID      string    `gorm:"not null" json:"public_id"`
	Size          int64     `gorm:"not null" json:"size"`
	Category      string    `gorm:"not null;default:'note';index" json:"category"`
	CourseName    string    `gorm:"not null" json:"courseName"`
	InstituteName string    `gorm:"not null" json:"instituteName"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	Likes         int       `gorm:"default:0" json:"likes"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PDFLike records one like per client IP; the composite unique index keeps
// a second like from the same address out.
type PDFLike struct {
	ID        uint   `gorm:"primaryKey"`
	PDFID     uint   `gorm:"not null;uniqueIndex:idx_pdf_like_ip"`
	IP        string `gorm:"not null;uniqueIndex:idx_pdf_like_ip"`
	CreatedAt time.Time
}
