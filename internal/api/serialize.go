package api

import (
	"time" // Timestamp normalization

	"estate_crm/internal/domain" // Domain models
)

// UserSummary is the nested user object embedded in lead and flat responses
type UserSummary struct {
	ID          uint   `json:"id"`           // Profile ID
	Username    string `json:"username"`     // Login username
	Email       string `json:"email"`        // Login email
	FirstName   string `json:"first_name"`   // First name
	LastName    string `json:"last_name"`    // Last name
	Role        string `json:"role"`         // manager or employee
	PhoneNumber string `json:"phone_number"` // Optional phone number
}

// LeadResponse is the wire form of a Lead with assigned_to expanded
type LeadResponse struct {
	ID           uint        `json:"id"`             // Primary key
	ClientID     string      `json:"client_id"`      // Natural key
	ClientName   string      `json:"client_name"`    // Client display name
	PhoneNumber  string      `json:"phone_number"`   // Contact phone
	Email        string      `json:"email"`          // Contact email
	InquiryTime  time.Time   `json:"inquiry_time"`   // Original inquiry time
	Status       string      `json:"status"`         // hot, warm or cold
	AssignedTo   UserSummary `json:"assigned_to"`    // Expanded handling user
	FollowUpDate *time.Time  `json:"follow_up_date"` // Scheduled follow-up, if any
	Notes        string      `json:"notes"`          // Free-form notes
	Missed       bool        `json:"missed"`         // Missed follow-up flag
	CreatedAt    time.Time   `json:"created_at"`     // Audit timestamp
	UpdatedAt    time.Time   `json:"updated_at"`     // Audit timestamp
}

// FlatResponse is the wire form of a Flat with assigned_to expanded
type FlatResponse struct {
	ID          uint        `json:"id"`           // Primary key
	BuilderName string      `json:"builder_name"` // Builder, part of the natural key
	FlatNumber  string      `json:"flat_number"`  // Flat number, part of the natural key
	FlatType    string      `json:"flat_type"`    // 1BHK-4BHK
	Address     string      `json:"address"`      // Full address
	AssignedTo  UserSummary `json:"assigned_to"`  // Expanded handling user
	Status      string      `json:"status"`       // Free-form status
	CreatedAt   time.Time   `json:"created_at"`   // Audit timestamp
	UpdatedAt   time.Time   `json:"updated_at"`   // Audit timestamp
}

// toUserSummary flattens a profile and its account into the wire form
func toUserSummary(u domain.User) UserSummary {
	return UserSummary{
		ID:          u.ID,                // Profile ID
		Username:    u.Account.Username,  // From the linked account
		Email:       u.Account.Email,     // From the linked account
		FirstName:   u.Account.FirstName, // From the linked account
		LastName:    u.Account.LastName,  // From the linked account
		Role:        u.Role,              // Profile role
		PhoneNumber: u.PhoneNumber,       // Profile phone number
	}
}

// toLeadResponse maps a lead to its wire form with UTC timestamps
func toLeadResponse(l domain.Lead) LeadResponse {
	var followUp *time.Time
	if l.FollowUpDate != nil {
		t := l.FollowUpDate.UTC()
		followUp = &t
	}
	return LeadResponse{
		ID:           l.ID,
		ClientID:     l.ClientID,
		ClientName:   l.ClientName,
		PhoneNumber:  l.PhoneNumber,
		Email:        l.Email,
		InquiryTime:  l.InquiryTime.UTC(),
		Status:       l.Status,
		AssignedTo:   toUserSummary(l.AssignedTo),
		FollowUpDate: followUp,
		Notes:        l.Notes,
		Missed:       l.Missed,
		CreatedAt:    l.CreatedAt.UTC(),
		UpdatedAt:    l.UpdatedAt.UTC(),
	}
}

// toLeadResponses maps a slice of leads to wire form
func toLeadResponses(all []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(all))
	for i, l := range all {
		out[i] = toLeadResponse(l)
	}
	return out
}

// toFlatResponse maps a flat to its wire form with UTC timestamps
func toFlatResponse(f domain.Flat) FlatResponse {
	return FlatResponse{
		ID:          f.ID,
		BuilderName: f.BuilderName,
		FlatNumber:  f.FlatNumber,
		FlatType:    f.FlatType,
		Address:     f.Address,
		AssignedTo:  toUserSummary(f.AssignedTo),
		Status:      f.Status,
		CreatedAt:   f.CreatedAt.UTC(),
		UpdatedAt:   f.UpdatedAt.UTC(),
	}
}

// toFlatResponses maps a slice of flats to wire form
func toFlatResponses(all []domain.Flat) []FlatResponse {
	out := make([]FlatResponse, len(all))
	for i, f := range all {
		out[i] = toFlatResponse(f)
	}
	return out
}
