package domain

import "time" // Timestamps

// Flat types (closed enumeration)
const (
	Flat1BHK = "1BHK"
	Flat2BHK = "2BHK"
	Flat3BHK = "3BHK"
	Flat4BHK = "4BHK"
)

// ValidFlatType reports whether t is one of the known flat types
func ValidFlatType(t string) bool {
	switch t {
	case Flat1BHK, Flat2BHK, Flat3BHK, Flat4BHK:
		return true
	}
	return false
}

// Flat Model (internally tracked assigned inventory)
type Flat struct {
	ID           uint      `gorm:"primaryKey"`                       // Primary key
	BuilderName  string    `gorm:"size:100;not null;uniqueIndex:idx_flats_builder_number"` // Builder, part of the natural key
	FlatNumber   string    `gorm:"size:50;not null;uniqueIndex:idx_flats_builder_number"`  // Flat number, part of the natural key
	FlatType     string    `gorm:"size:10;not null"`                 // Type: 1BHK-4BHK
	Address      string    `gorm:"type:text"`                        // Full address
	AssignedToID uint      `gorm:"not null;index"`                   // Foreign key to the handling User
	AssignedTo   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Handling user
	Status       string    `gorm:"size:20;not null;default:available"` // Free-form status (default "available")
	CreatedAt    time.Time // Audit timestamp
	UpdatedAt    time.Time // Audit timestamp
}
