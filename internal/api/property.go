package api

import (
	"context"       // Context for Redis operations
	"encoding/json" // Images array marshaling
	"net/http"      // HTTP status codes
	"time"          // Cache TTL

	"estate_crm/internal/domain"     // Domain models
	"estate_crm/internal/properties" // Listing filters
	"estate_crm/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/datatypes"            // JSON column support
	"gorm.io/gorm"                 // GORM ORM library
)

// propertyCacheTTL bounds staleness of filtered listing variants that are
// not explicitly invalidated on write
const propertyCacheTTL = 60 * time.Second

// PropertyRequest is the create/replace body for a property
type PropertyRequest struct {
	Title        string   `json:"title" binding:"required"`         // Listing title
	Location     string   `json:"location"`                         // Location display string
	Price        string   `json:"price"`                            // Price display string
	PropertyType string   `json:"property_type" binding:"required"` // apartment, villa, studio, penthouse
	Bedrooms     string   `json:"bedrooms"`                         // Bedrooms display string
	Bathrooms    string   `json:"bathrooms"`                        // Bathrooms display string
	Area         string   `json:"area"`                             // Area display string
	Images       []string `json:"images"`                           // Ordered image URLs
	Featured     bool     `json:"featured"`                         // Featured listing flag
	Rating       float64  `json:"rating"`                           // Rating 0.0-5.0
}

// propertyCacheKey builds the listing cache key from the query filters
func propertyCacheKey(q properties.Query) string {
	return "properties:search=" + q.Search + ":type=" + q.Type + ":budget=" + q.Budget
}

// imagesJSON converts the request image list to the JSON column value
func imagesJSON(urls []string) (datatypes.JSON, error) {
	if urls == nil {
		urls = []string{} // Serialize as an empty array, not null
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// ListPropertiesHandler returns the public listing with optional search,
// type and budget filters. The budget parameter is accepted but never
// applied, a known gap kept for interface compatibility.
func ListPropertiesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := properties.Query{
			Search: c.Query("search"), // Title substring filter
			Type:   c.Query("type"),   // Exact property type filter
			Budget: c.Query("budget"), // Accepted, never applied
		}
		ctx := context.Background()   // Context for Redis operations
		cacheKey := propertyCacheKey(q)
		var cached []domain.Property // Try the cache first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		var all []domain.Property // Cache miss, load everything
		if err := db.Find(&all).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
			return
		}
		result := properties.Filter(all, q) // Filter and order in one pass
		// Cache the filtered listing
		_ = utils.SetCache(ctx, rdb, cacheKey, result, propertyCacheTTL)
		c.JSON(http.StatusOK, result)
	}
}

// invalidatePropertyCache drops the unfiltered listing entry after a write.
// Filtered variants simply age out through the TTL.
func invalidatePropertyCache(rdb *redis.Client) {
	_ = utils.DeleteCache(context.Background(), rdb, propertyCacheKey(properties.Query{}))
}

// CreatePropertyHandler creates a public listing
func CreatePropertyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PropertyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and property_type are required"})
			return
		}
		// Validate the property type enum
		if !domain.ValidPropertyType(req.PropertyType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property type"})
			return
		}
		// Validate the rating range
		if req.Rating < 0 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0.0 and 5.0"})
			return
		}
		images, err := imagesJSON(req.Images)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid images"})
			return
		}
		property := domain.Property{
			Title:        req.Title,        // Listing title
			Location:     req.Location,     // Location display string
			Price:        req.Price,        // Price display string
			PropertyType: req.PropertyType, // Validated type
			Bedrooms:     req.Bedrooms,     // Bedrooms display string
			Bathrooms:    req.Bathrooms,    // Bathrooms display string
			Area:         req.Area,         // Area display string
			Images:       images,           // JSON array of URLs
			Featured:     req.Featured,     // Featured flag
			Rating:       req.Rating,       // Validated rating
		}
		if err := db.Create(&property).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
			return
		}
		// Log property creation
		logrus.WithFields(logrus.Fields{
			"property_id": property.ID,    // Primary key
			"title":       property.Title, // Listing title
		}).Info("Property created")
		invalidatePropertyCache(rdb) // Drop the stale listing entry
		c.JSON(http.StatusCreated, property)
	}
}

// GetPropertyHandler returns a single public listing
func GetPropertyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var property domain.Property
		if err := db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusOK, property)
	}
}

// UpdatePropertyHandler replaces all mutable fields of a listing
func UpdatePropertyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var property domain.Property
		if err := db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		var req PropertyRequest // Full replacement body
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and property_type are required"})
			return
		}
		if !domain.ValidPropertyType(req.PropertyType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property type"})
			return
		}
		if req.Rating < 0 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0.0 and 5.0"})
			return
		}
		images, err := imagesJSON(req.Images)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid images"})
			return
		}
		property.Title = req.Title
		property.Location = req.Location
		property.Price = req.Price
		property.PropertyType = req.PropertyType
		property.Bedrooms = req.Bedrooms
		property.Bathrooms = req.Bathrooms
		property.Area = req.Area
		property.Images = images
		property.Featured = req.Featured
		property.Rating = req.Rating
		if err := db.Save(&property).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
			return
		}
		invalidatePropertyCache(rdb) // Drop the stale listing entry
		c.JSON(http.StatusOK, property)
	}
}

// DeletePropertyHandler removes a public listing
func DeletePropertyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var property domain.Property
		if err := db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		if err := db.Delete(&property).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
			return
		}
		// Log property deletion
		logrus.WithFields(logrus.Fields{
			"property_id": property.ID,    // Primary key
			"title":       property.Title, // Listing title
		}).Info("Property deleted")
		invalidatePropertyCache(rdb) // Drop the stale listing entry
		c.Status(http.StatusNoContent)
	}
}
