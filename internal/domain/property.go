package domain

import (
	"time" // Timestamps

	"gorm.io/datatypes" // JSON column support
)

// Property types (closed enumeration)
const (
	PropertyApartment = "apartment"
	PropertyVilla     = "villa"
	PropertyStudio    = "studio"
	PropertyPenthouse = "penthouse"
)

// ValidPropertyType reports whether t is one of the known property types
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyApartment, PropertyVilla, PropertyStudio, PropertyPenthouse:
		return true
	}
	return false
}

// Property Model (publicly listed inventory, no ownership relation)
type Property struct {
	ID           uint           `gorm:"primaryKey" json:"id"`            // Primary key
	Title        string         `gorm:"size:200;not null" json:"title"`  // Listing title (natural key for seeding)
	Location     string         `gorm:"size:200" json:"location"`        // Location display string
	Price        string         `gorm:"size:50" json:"price"`            // Price display string (e.g. "₹2.5 Cr")
	PropertyType string         `gorm:"size:20;not null" json:"property_type"` // Type: apartment, villa, studio, penthouse
	Bedrooms     string         `gorm:"size:10" json:"bedrooms"`         // Bedrooms display string
	Bathrooms    string         `gorm:"size:10" json:"bathrooms"`        // Bathrooms display string
	Area         string         `gorm:"size:50" json:"area"`             // Area display string (e.g. "1,200 sq ft")
	Images       datatypes.JSON `json:"images"`                          // Ordered image URLs stored as a JSON array
	Featured     bool           `gorm:"not null;default:false" json:"featured"` // Featured listing flag
	Rating       float64        `gorm:"type:decimal(3,1);default:0.0" json:"rating"` // Rating 0.0-5.0, one decimal
	CreatedAt    time.Time      `json:"created_at"`                      // Audit timestamp
	UpdatedAt    time.Time      `json:"updated_at"`                      // Audit timestamp
}
