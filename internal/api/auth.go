package api

import (
	"errors"   // Sentinel errors
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"estate_crm/internal/domain"     // Domain models
	"estate_crm/internal/middleware" // Current-user helpers
	"estate_crm/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Authentication failure modes. Unknown email and wrong password are
// deliberately collapsed into the same error so callers cannot probe which
// emails are registered.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileMissing     = errors.New("profile missing for account")
)

// LoginRequest is the login body; both fields are mandatory
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plain-text password, checked against the stored hash
}

// authenticate verifies credentials and resolves the CRM profile.
// Returns ErrInvalidCredentials for unknown email and bad password alike,
// and ErrProfileMissing when the account has no linked profile.
func authenticate(db *gorm.DB, email, password string) (domain.User, error) {
	var account domain.Account // Look up the login identity by email
	if err := db.Where("email = ?", strings.ToLower(email)).First(&account).Error; err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	var user domain.User // Resolve the CRM profile for the account
	if err := db.Preload("Account").Where("account_id = ?", account.ID).First(&user).Error; err != nil {
		return domain.User{}, ErrProfileMissing
	}
	return user, nil
}

// LoginHandler authenticates a user by email and password and returns the
// profile together with a session token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing fields fail before touching storage
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}
		user, err := authenticate(db, req.Email, req.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			// Same response for unknown email and wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if errors.Is(err, ErrProfileMissing) {
			// Data-integrity fault: log the detail, keep the body generic
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Login email
				"error": err.Error(), // Error message
			}).Error("Login hit account without profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		// Generate session token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the profile, token and confirmation message
		c.JSON(http.StatusOK, gin.H{
			"user":    toUserSummary(user), // Profile with account fields flattened
			"token":   token,               // Session token
			"message": "Login successful",  // Confirmation message
		})
	}
}

// MeHandler returns the authenticated user's own profile
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			// Profile middleware did not run or the context is stale
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": toUserSummary(user)})
	}
}
