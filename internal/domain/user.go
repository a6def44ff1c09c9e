package domain

// User roles (closed enumeration)
const (
	RoleManager  = "manager"  // Sees every lead and flat
	RoleEmployee = "employee" // Sees only rows assigned to them
)

// ValidRole reports whether role is one of the known user roles
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleEmployee
}

// User Model (CRM profile linked one-to-one to an Account)
type User struct {
	ID          uint    `gorm:"primaryKey"`          // Primary key
	AccountID   uint    `gorm:"uniqueIndex;not null"` // Foreign key to Account (one-to-one)
	Account     Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Linked login identity
	Role        string  `gorm:"size:10;not null;default:employee"` // Role: manager or employee
	PhoneNumber string  `gorm:"size:15"`             // Optional phone number
}
