package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"time"     // Follow-up timestamps

	"estate_crm/internal/domain"     // Domain models
	"estate_crm/internal/leads"      // Lead lifecycle operations
	"estate_crm/internal/middleware" // Current-user helpers
	"estate_crm/internal/policy"     // Access scoping

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// LeadRequest is the create/replace body for a lead
type LeadRequest struct {
	ClientID     string     `json:"client_id" binding:"required"`      // Natural key, must be provided
	ClientName   string     `json:"client_name" binding:"required"`    // Client display name
	PhoneNumber  string     `json:"phone_number"`                      // Contact phone
	Email        string     `json:"email"`                             // Contact email
	InquiryTime  *time.Time `json:"inquiry_time"`                      // Optional, defaults to creation time
	Status       string     `json:"status"`                            // Optional, defaults to cold
	AssignedToID uint       `json:"assigned_to_id" binding:"required"` // Handling user, must be provided
	FollowUpDate *time.Time `json:"follow_up_date"`                    // Optional scheduled follow-up
	Notes        string     `json:"notes"`                             // Free-form notes
}

// LeadPatchRequest is the partial-update body; nil fields are left unchanged
type LeadPatchRequest struct {
	ClientName   *string    `json:"client_name"`    // New display name, if provided
	PhoneNumber  *string    `json:"phone_number"`   // New contact phone, if provided
	Email        *string    `json:"email"`          // New contact email, if provided
	Status       *string    `json:"status"`         // New status, if provided
	AssignedToID *uint      `json:"assigned_to_id"` // New handling user, if provided
	FollowUpDate *time.Time `json:"follow_up_date"` // New follow-up date, if provided
	Notes        *string    `json:"notes"`          // New notes, if provided
	Missed       *bool      `json:"missed"`         // New missed flag, if provided
}

// scopeFor resolves the caller's visibility filter for one entity kind.
// An unknown role is a data fault on the profile, reported as an internal
// error without detail in the body.
func scopeFor(c *gin.Context, kind policy.Kind) (policy.Filter, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return policy.Filter{}, false
	}
	filter, err := policy.Scope(user, kind)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // Profile ID
			"role":    user.Role, // The unrecognized role value
		}).Error("Profile carries unknown role") // Log the integrity fault
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return policy.Filter{}, false
	}
	return filter, true
}

// findScopedLead loads the lead in the id path param, restricted to the
// caller's scope. Out-of-scope rows are indistinguishable from missing ones.
func findScopedLead(c *gin.Context, db *gorm.DB, filter policy.Filter) (domain.Lead, bool) {
	var lead domain.Lead
	q := filter.Apply(db.Preload("AssignedTo.Account"))
	if err := q.First(&lead, "leads.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return domain.Lead{}, false
	}
	return lead, true
}

// ListLeadsHandler returns the leads visible to the caller, newest inquiry first
func ListLeadsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		var all []domain.Lead // Scoped, ordered query
		if err := filter.Apply(db.Preload("AssignedTo.Account")).
			Order("inquiry_time DESC").
			Find(&all).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
			return
		}
		c.JSON(http.StatusOK, toLeadResponses(all))
	}
}

// CreateLeadHandler creates a lead assigned to an existing user
func CreateLeadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LeadRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id, client_name and assigned_to_id are required"})
			return
		}
		// Default and validate the status enum
		if req.Status == "" {
			req.Status = domain.StatusCold
		}
		if !domain.ValidLeadStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		// The assignee must reference an existing profile
		var assignee domain.User
		if err := db.First(&assignee, req.AssignedToID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
			return
		}
		lead := domain.Lead{
			ClientID:     req.ClientID,     // Natural key
			ClientName:   req.ClientName,   // Client display name
			PhoneNumber:  req.PhoneNumber,  // Contact phone
			Email:        req.Email,        // Contact email
			Status:       req.Status,       // Validated status
			AssignedToID: req.AssignedToID, // Handling user
			FollowUpDate: req.FollowUpDate, // Optional follow-up
			Notes:        req.Notes,        // Free-form notes
		}
		if req.InquiryTime != nil {
			lead.InquiryTime = *req.InquiryTime // Caller-supplied inquiry time
		}
		if err := db.Create(&lead).Error; err != nil {
			// Most likely a duplicate client_id
			c.JSON(http.StatusBadRequest, gin.H{"error": "Client ID already exists"})
			return
		}
		// Log lead creation
		logrus.WithFields(logrus.Fields{
			"lead_id":     lead.ID,          // Primary key
			"client_id":   lead.ClientID,    // Natural key
			"assigned_to": lead.AssignedToID, // Handling user
		}).Info("Lead created")
		// Reload with the assignee expanded for the response
		db.Preload("AssignedTo.Account").First(&lead, lead.ID)
		c.JSON(http.StatusCreated, toLeadResponse(lead))
	}
}

// GetLeadHandler returns a single lead within the caller's scope
func GetLeadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		lead, ok := findScopedLead(c, db, filter)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toLeadResponse(lead))
	}
}

// UpdateLeadHandler replaces all mutable fields of a lead within the caller's scope
func UpdateLeadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		lead, ok := findScopedLead(c, db, filter)
		if !ok {
			return
		}
		var req LeadRequest // Full replacement body
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id, client_name and assigned_to_id are required"})
			return
		}
		if req.Status == "" {
			req.Status = domain.StatusCold
		}
		if !domain.ValidLeadStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		var assignee domain.User // The new assignee must exist
		if err := db.First(&assignee, req.AssignedToID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
			return
		}
		lead.ClientID = req.ClientID
		lead.ClientName = req.ClientName
		lead.PhoneNumber = req.PhoneNumber
		lead.Email = req.Email
		lead.Status = req.Status
		lead.AssignedToID = req.AssignedToID
		lead.FollowUpDate = req.FollowUpDate
		lead.Notes = req.Notes
		if req.InquiryTime != nil {
			lead.InquiryTime = *req.InquiryTime
		}
		if err := db.Save(&lead).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update lead"})
			return
		}
		db.Preload("AssignedTo.Account").First(&lead, lead.ID)
		c.JSON(http.StatusOK, toLeadResponse(lead))
	}
}

// PatchLeadHandler updates only the provided fields of a lead within the caller's scope
func PatchLeadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		lead, ok := findScopedLead(c, db, filter)
		if !ok {
			return
		}
		var req LeadPatchRequest // Partial body, nil means unchanged
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Status != nil {
			if !domain.ValidLeadStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			lead.Status = *req.Status
		}
		if req.AssignedToID != nil {
			var assignee domain.User // The new assignee must exist
			if err := db.First(&assignee, *req.AssignedToID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
				return
			}
			lead.AssignedToID = *req.AssignedToID
		}
		if req.ClientName != nil {
			lead.ClientName = *req.ClientName
		}
		if req.PhoneNumber != nil {
			lead.PhoneNumber = *req.PhoneNumber
		}
		if req.Email != nil {
			lead.Email = *req.Email
		}
		if req.FollowUpDate != nil {
			lead.FollowUpDate = req.FollowUpDate
		}
		if req.Notes != nil {
			lead.Notes = *req.Notes
		}
		if req.Missed != nil {
			lead.Missed = *req.Missed
		}
		if err := db.Save(&lead).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update lead"})
			return
		}
		db.Preload("AssignedTo.Account").First(&lead, lead.ID)
		c.JSON(http.StatusOK, toLeadResponse(lead))
	}
}

// DeleteLeadHandler deletes a lead within the caller's scope
func DeleteLeadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		lead, ok := findScopedLead(c, db, filter)
		if !ok {
			return
		}
		if err := db.Delete(&lead).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
			return
		}
		// Log lead deletion
		logrus.WithFields(logrus.Fields{
			"lead_id":   lead.ID,       // Primary key
			"client_id": lead.ClientID, // Natural key
		}).Info("Lead deleted")
		c.Status(http.StatusNoContent)
	}
}

// UpdateLeadStatusHandler moves a lead to a new status
func UpdateLeadStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		lead, ok := findScopedLead(c, db, filter)
		if !ok {
			return
		}
		var req struct {
			Status string `json:"status" binding:"required"` // Target status
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		if err := leads.UpdateStatus(db, &lead, req.Status); err != nil {
			if errors.Is(err, leads.ErrInvalidStatus) {
				// Unknown status value, lead left unchanged
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
			return
		}
		// Log status change
		logrus.WithFields(logrus.Fields{
			"lead_id":   lead.ID,       // Primary key
			"client_id": lead.ClientID, // Natural key
			"status":    lead.Status,   // New status
		}).Info("Lead status updated")
		c.JSON(http.StatusOK, toLeadResponse(lead))
	}
}

// UpdateLeadFollowUpHandler reschedules a lead's follow-up and clears the missed flag
func UpdateLeadFollowUpHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeFor(c, policy.KindLead)
		if !ok {
			return
		}
		lead, ok := findScopedLead(c, db, filter)
		if !ok {
			return
		}
		var req struct {
			FollowUpDate *time.Time `json:"follow_up_date"` // New follow-up date, if provided
			Notes        string     `json:"notes"`          // New notes; empty means unchanged
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := leads.UpdateFollowUp(db, &lead, req.FollowUpDate, req.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow-up"})
			return
		}
		// Log the reschedule
		logrus.WithFields(logrus.Fields{
			"lead_id":   lead.ID,       // Primary key
			"client_id": lead.ClientID, // Natural key
		}).Info("Lead follow-up rescheduled")
		c.JSON(http.StatusOK, toLeadResponse(lead))
	}
}
