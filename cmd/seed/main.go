package main

import (
	"estate_crm/internal/config" // Custom import path (Config)
	"estate_crm/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for demo-data seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	conn, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{}) // Connect to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
}
