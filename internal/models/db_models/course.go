package db_models

import (
	"github.com/google/uuid"
)

type VideoCourse struct {
	BaseModel
	Title         string
	Description   *string
	CoverImageURL string
	PriceEur      *float64
	PriceUsd      *float64
	// Processor-side price id when the course is billable.
	ProviderPriceID *string
	Order           int `gorm:"default:0"`

	Sections []Section `gorm:"foreignKey:CourseID"`
}

type Section struct {
	BaseModel
	CourseID uuid.UUID `gorm:"type:uuid;index"`
	Title    string
	Order    int `gorm:"default:0"`

	Videos []Video `gorm:"foreignKey:SectionID"`
}

type Video struct {
	BaseModel
	SectionID   uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Description *string
	VimeoID     string
	Duration    int `gorm:"default:0"` // seconds
	Order       int `gorm:"default:0"`

	Progress []VideoProgress `gorm:"foreignKey:VideoID"`
}

type VideoProgress struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_video_progress_user_video"`
	VideoID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_video_progress_user_video"`
	Completed   bool
	CompletedAt *int64
}

type CoursePurchase struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_course_purchase_user_course"`
	CourseID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_course_purchase_user_course"`
	PurchasePrice float64

	User   User        `gorm:"foreignKey:UserID"`
	Course VideoCourse `gorm:"foreignKey:CourseID"`
}
