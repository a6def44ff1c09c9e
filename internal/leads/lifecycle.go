package leads

import (
	"errors" // Sentinel errors
	"time"   // Follow-up timestamps

	"estate_crm/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// ErrInvalidStatus is returned when a status update names a value outside
// the hot/warm/cold enumeration. The lead is left unchanged.
var ErrInvalidStatus = errors.New("invalid status")

// UpdateStatus moves a lead to newStatus and persists it. Any status may move
// to any other status; there is no transition ordering. The caller must
// already hold mutate access to the lead.
func UpdateStatus(db *gorm.DB, lead *domain.Lead, newStatus string) error {
	if !domain.ValidLeadStatus(newStatus) {
		return ErrInvalidStatus
	}
	lead.Status = newStatus
	return db.Save(lead).Error
}

// UpdateFollowUp reschedules a lead's follow-up. A nil followUpDate keeps the
// current date and an empty notes string keeps the current notes. Rescheduling
// always resolves a missed follow-up, so Missed is cleared unconditionally.
func UpdateFollowUp(db *gorm.DB, lead *domain.Lead, followUpDate *time.Time, notes string) error {
	if followUpDate != nil {
		lead.FollowUpDate = followUpDate
	}
	if notes != "" {
		lead.Notes = notes
	}
	lead.Missed = false
	return db.Save(lead).Error
}
