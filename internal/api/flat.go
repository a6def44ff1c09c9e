package api

import (
	"net/http" // HTTP status codes

	"estate_crm/internal/domain" // Domain models
	"estate_crm/internal/policy" // Access scoping

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// FlatRequest is the create/replace body for a flat
type FlatRequest struct {
	BuilderName  string `json:"builder_name" binding:"required"`   // Part of the natural key
	FlatNumber   string `json:"flat_number" binding:"required"`    // Part of the natural key
	FlatType     string `json:"flat_type" binding:"required"`      // 1BHK-4BHK
	Address      string `json:"address"`                           // Full address
	AssignedToID uint   `json:"assigned_to_id" binding:"required"` // Handling user, must be provided
	Status       string `json:"status"`                            // Optional, defaults to "available"
}

// findScopedFlat loads the flat in the id path param, restricted to the
// caller's scope
func findScopedFlat(c *gin.Context, db *gorm.DB, filter policy.Filter) (domain.Flat, bool) {
	var flat domain.Flat
	q := filter.Apply(db.Preload("AssignedTo.Account"))
	if err := q.First(&flat, "flats.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flat not found"})
		return domain.Flat{}, false
	}
	return flat, true
}

// ListFlatsHandler returns the flats visible to the caller, newest first
func ListFlatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindFlat)
		if !ok {
			return
		}
		var all []domain.Flat // Scoped, ordered query
		if err := filter.Apply(db.Preload("AssignedTo.Account")).
			Order("created_at DESC").
			Find(&all).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flats"})
			return
		}
		c.JSON(http.StatusOK, toFlatResponses(all))
	}
}

// CreateFlatHandler creates a flat assigned to an existing user
func CreateFlatHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FlatRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "builder_name, flat_number, flat_type and assigned_to_id are required"})
			return
		}
		// Validate the flat type enum
		if !domain.ValidFlatType(req.FlatType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flat type"})
			return
		}
		if req.Status == "" {
			req.Status = "available" // Default status
		}
		// The assignee must reference an existing profile
		var assignee domain.User
		if err := db.First(&assignee, req.AssignedToID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
			return
		}
		flat := domain.Flat{
			BuilderName:  req.BuilderName,  // Natural key
			FlatNumber:   req.FlatNumber,   // Natural key
			FlatType:     req.FlatType,     // Validated type
			Address:      req.Address,      // Full address
			AssignedToID: req.AssignedToID, // Handling user
			Status:       req.Status,       // Free-form status
		}
		if err := db.Create(&flat).Error; err != nil {
			// Most likely a duplicate (builder_name, flat_number) pair
			c.JSON(http.StatusBadRequest, gin.H{"error": "Flat already exists"})
			return
		}
		// Log flat creation
		logrus.WithFields(logrus.Fields{
			"flat_id":     flat.ID,          // Primary key
			"builder":     flat.BuilderName, // Natural key
			"flat_number": flat.FlatNumber,  // Natural key
			"assigned_to": flat.AssignedToID, // Handling user
		}).Info("Flat created")
		db.Preload("AssignedTo.Account").First(&flat, flat.ID)
		c.JSON(http.StatusCreated, toFlatResponse(flat))
	}
}

// GetFlatHandler returns a single flat within the caller's scope
func GetFlatHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindFlat)
		if !ok {
			return
		}
		flat, ok := findScopedFlat(c, db, filter)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toFlatResponse(flat))
	}
}

// UpdateFlatHandler replaces all mutable fields of a flat within the caller's scope
func UpdateFlatHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindFlat)
		if !ok {
			return
		}
		flat, ok := findScopedFlat(c, db, filter)
		if !ok {
			return
		}
		var req FlatRequest // Full replacement body
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "builder_name, flat_number, flat_type and assigned_to_id are required"})
			return
		}
		if !domain.ValidFlatType(req.FlatType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flat type"})
			return
		}
		var assignee domain.User // The new assignee must exist
		if err := db.First(&assignee, req.AssignedToID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
			return
		}
		flat.BuilderName = req.BuilderName
		flat.FlatNumber = req.FlatNumber
		flat.FlatType = req.FlatType
		flat.Address = req.Address
		flat.AssignedToID = req.AssignedToID
		if req.Status != "" {
			flat.Status = req.Status
		}
		if err := db.Save(&flat).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update flat"})
			return
		}
		db.Preload("AssignedTo.Account").First(&flat, flat.ID)
		c.JSON(http.StatusOK, toFlatResponse(flat))
	}
}

// DeleteFlatHandler deletes a flat within the caller's scope
func DeleteFlatHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindFlat)
		if !ok {
			return
		}
		flat, ok := findScopedFlat(c, db, filter)
		if !ok {
			return
		}
		if err := db.Delete(&flat).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete flat"})
			return
		}
		// Log flat deletion
		logrus.WithFields(logrus.Fields{
			"flat_id":     flat.ID,          // Primary key
			"builder":     flat.BuilderName, // Natural key
			"flat_number": flat.FlatNumber,  // Natural key
		}).Info("Flat deleted")
		c.Status(http.StatusNoContent)
	}
}
