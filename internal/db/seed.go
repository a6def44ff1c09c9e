package db

import (
	"encoding/json" // Image list marshaling
	"time"          // Follow-up offsets

	"estate_crm/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/datatypes"          // JSON column support
	"gorm.io/gorm"               // GORM ORM library
)

// Seed provisions the demo dataset. Idempotent: every record is upserted on
// its natural key (account email, lead client_id, property title, flat
// (builder_name, flat_number)), so re-running is safe.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Demo accounts and profiles
	manager, err := seedUser(db, domain.Account{
		Username:     "manager",
		Email:        "manager@example.com",
		PasswordHash: string(hash),
		FirstName:    "John",
		LastName:     "Manager",
	}, domain.RoleManager, "123-456-7890")
	if err != nil {
		return err
	}
	employee, err := seedUser(db, domain.Account{
		Username:     "employee",
		Email:        "employee@example.com",
		PasswordHash: string(hash),
		FirstName:    "Alice",
		LastName:     "Employee",
	}, domain.RoleEmployee, "234-567-8901")
	if err != nil {
		return err
	}
	_ = manager // Manager owns no seeded rows, scoping gives them everything

	now := time.Now()
	in1 := now.Add(24 * time.Hour)
	in2 := now.Add(48 * time.Hour)
	ago1 := now.Add(-24 * time.Hour)

	// Sample leads, keyed on client_id
	leads := []domain.Lead{
		{
			ClientID:     "C1001",
			ClientName:   "John Doe",
			PhoneNumber:  "123-456-7890",
			Email:        "john@example.com",
			Status:       domain.StatusWarm,
			AssignedToID: employee.ID,
			FollowUpDate: &in2,
			Notes:        "Interested in 3BHK properties",
		},
		{
			ClientID:     "C1002",
			ClientName:   "Alice Smith",
			PhoneNumber:  "234-567-8901",
			Email:        "alice@example.com",
			Status:       domain.StatusHot,
			AssignedToID: employee.ID,
			FollowUpDate: &in1,
			Notes:        "Ready to visit properties this weekend",
		},
		{
			ClientID:     "C1003",
			ClientName:   "Robert Johnson",
			PhoneNumber:  "345-678-9012",
			Email:        "robert@example.com",
			Status:       domain.StatusCold,
			AssignedToID: employee.ID,
			FollowUpDate: &ago1,
			Notes:        "Just exploring options",
			Missed:       true, // Follow-up date already passed
		},
	}
	for _, lead := range leads {
		if err := db.Where("client_id = ?", lead.ClientID).FirstOrCreate(&lead).Error; err != nil {
			return err
		}
	}

	// Sample properties, keyed on title
	props := []domain.Property{
		{
			Title:        "Luxury 3BHK Apartment",
			Location:     "Bandra West, Mumbai",
			Price:        "₹2.5 Cr",
			PropertyType: domain.PropertyApartment,
			Bedrooms:     "3",
			Bathrooms:    "2",
			Area:         "1,200 sq ft",
			Images:       mustImages("https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400&h=300&fit=crop"),
			Featured:     true,
			Rating:       4.8,
		},
		{
			Title:        "Modern 2BHK Flat",
			Location:     "Koramangala, Bangalore",
			Price:        "₹1.2 Cr",
			PropertyType: domain.PropertyApartment,
			Bedrooms:     "2",
			Bathrooms:    "2",
			Area:         "980 sq ft",
			Images:       mustImages("https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=400&h=300&fit=crop"),
			Rating:       4.5,
		},
		{
			Title:        "Spacious 4BHK Villa",
			Location:     "Gurgaon, Delhi NCR",
			Price:        "₹3.8 Cr",
			PropertyType: domain.PropertyVilla,
			Bedrooms:     "4",
			Bathrooms:    "3",
			Area:         "2,100 sq ft",
			Images:       mustImages("https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=400&h=300&fit=crop"),
			Featured:     true,
			Rating:       4.9,
		},
	}
	for _, p := range props {
		if err := db.Where("title = ?", p.Title).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}

	// Sample flats, keyed on (builder_name, flat_number)
	flats := []domain.Flat{
		{BuilderName: "ABC Developers", FlatNumber: "A-101", FlatType: domain.Flat3BHK, Address: "123 Main Street, Mumbai", AssignedToID: employee.ID, Status: "available"},
		{BuilderName: "XYZ Builders", FlatNumber: "B-205", FlatType: domain.Flat2BHK, Address: "456 Park Avenue, Bangalore", AssignedToID: employee.ID, Status: "available"},
		{BuilderName: "PQR Construction", FlatNumber: "C-301", FlatType: domain.Flat4BHK, Address: "789 Lake View, Delhi", AssignedToID: employee.ID, Status: "available"},
	}
	for _, f := range flats {
		if err := db.Where("builder_name = ? AND flat_number = ?", f.BuilderName, f.FlatNumber).FirstOrCreate(&f).Error; err != nil {
			return err
		}
	}

	logrus.Info("Seed data in place. Demo credentials: manager@example.com / password, employee@example.com / password")
	return nil
}

// seedUser upserts an account by email together with its CRM profile
func seedUser(db *gorm.DB, account domain.Account, role, phone string) (domain.User, error) {
	if err := db.Where("email = ?", account.Email).FirstOrCreate(&account).Error; err != nil {
		return domain.User{}, err
	}
	user := domain.User{AccountID: account.ID, Role: role, PhoneNumber: phone}
	if err := db.Where("account_id = ?", account.ID).FirstOrCreate(&user).Error; err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// mustImages packs image URLs into the JSON column value
func mustImages(urls ...string) datatypes.JSON {
	b, _ := json.Marshal(urls) // Static input, cannot fail
	return datatypes.JSON(b)
}
