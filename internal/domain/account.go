package domain

// Account Model (login identity, separate from the CRM profile)
type Account struct {
	ID           uint   `gorm:"primaryKey"`           // Primary key
	Username     string `gorm:"size:150;uniqueIndex;not null"` // Unique username
	Email        string `gorm:"size:254;uniqueIndex;not null"` // Unique login email
	PasswordHash string `gorm:"not null"`             // Bcrypt password hash
	FirstName    string `gorm:"size:150"`             // First name
	LastName     string `gorm:"size:150"`             // Last name
}
