package domain

import (
	"time" // Timestamps

	"gorm.io/gorm" // GORM ORM library
)

// Lead statuses (closed enumeration, flat transition graph)
const (
	StatusHot  = "hot"
	StatusWarm = "warm"
	StatusCold = "cold"
)

// ValidLeadStatus reports whether s is one of the known lead statuses
func ValidLeadStatus(s string) bool {
	return s == StatusHot || s == StatusWarm || s == StatusCold
}

// Lead Model (prospective client tracked by the CRM)
type Lead struct {
	ID           uint       `gorm:"primaryKey"`                // Primary key
	ClientID     string     `gorm:"size:10;uniqueIndex;not null"` // Natural key identifying the client
	ClientName   string     `gorm:"size:100;not null"`         // Client display name
	PhoneNumber  string     `gorm:"size:15"`                   // Contact phone
	Email        string     `gorm:"size:254"`                  // Contact email
	InquiryTime  time.Time  // Time of the original inquiry (defaults to creation time)
	Status       string     `gorm:"size:4;not null;default:cold"` // Status: hot, warm or cold
	AssignedToID uint       `gorm:"not null;index"`            // Foreign key to the handling User
	AssignedTo   User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Handling user
	FollowUpDate *time.Time // Scheduled follow-up (optional)
	Notes        string     `gorm:"type:text"`                 // Free-form notes
	Missed       bool       `gorm:"not null;default:false"`    // Whether a scheduled follow-up was missed
	CreatedAt    time.Time  // Audit timestamp
	UpdatedAt    time.Time  // Audit timestamp
}

// BeforeCreate defaults InquiryTime to the creation time when not provided
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.InquiryTime.IsZero() {
		l.InquiryTime = time.Now()
	}
	return nil
}
