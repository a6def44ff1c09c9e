package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"estate_crm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProperty(t *testing.T, db *gorm.DB, title, propertyType string, createdAt time.Time) domain.Property {
	t.Helper()
	p := domain.Property{
		Title:        title,
		Location:     "Somewhere",
		Price:        "₹1.0 Cr",
		PropertyType: propertyType,
		Images:       []byte(`[]`),
		Rating:       4.0,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func decodeProperties(t *testing.T, body []byte) []domain.Property {
	t.Helper()
	var resp []domain.Property
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestPropertyListIsPublicAndFiltered(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedProperty(t, db, "Luxury 3BHK Apartment", domain.PropertyApartment, base)
	seedProperty(t, db, "Spacious 4BHK Villa", domain.PropertyVilla, base.Add(time.Hour))
	seedProperty(t, db, "Modern Villa Retreat", domain.PropertyVilla, base.Add(2*time.Hour))
	r := newTestRouter(db)

	// No token required
	w := doJSON(t, r, http.MethodGet, "/api/properties", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeProperties(t, w.Body.Bytes()), 3)

	// Case-insensitive title search
	w = doJSON(t, r, http.MethodGet, "/api/properties?search=VILLA", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeProperties(t, w.Body.Bytes())
	require.Len(t, got, 2)
	// Newest-created first
	assert.Equal(t, "Modern Villa Retreat", got[0].Title)
	assert.Equal(t, "Spacious 4BHK Villa", got[1].Title)

	// Exact type filter
	w = doJSON(t, r, http.MethodGet, "/api/properties?type=apartment", "", "")
	got = decodeProperties(t, w.Body.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, "Luxury 3BHK Apartment", got[0].Title)

	// Filters compose with AND
	w = doJSON(t, r, http.MethodGet, "/api/properties?search=modern&type=villa", "", "")
	got = decodeProperties(t, w.Body.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, "Modern Villa Retreat", got[0].Title)

	// Budget is accepted but changes nothing
	w = doJSON(t, r, http.MethodGet, "/api/properties?search=villa&budget=90000000", "", "")
	assert.Len(t, decodeProperties(t, w.Body.Bytes()), 2)
}

func TestPropertyCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	// Create
	w := doJSON(t, r, http.MethodPost, "/api/properties", "",
		`{"title":"Sea View Penthouse","location":"Marine Drive","price":"₹6 Cr","property_type":"penthouse","bedrooms":"4","bathrooms":"4","area":"3,000 sq ft","images":["https://example.com/p1.jpg"],"featured":true,"rating":4.9}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created domain.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.PropertyPenthouse, created.PropertyType)
	assert.JSONEq(t, `["https://example.com/p1.jpg"]`, string(created.Images))

	// Read
	w = doJSON(t, r, http.MethodGet, "/api/properties/"+itoa(created.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Replace
	w = doJSON(t, r, http.MethodPut, "/api/properties/"+itoa(created.ID), "",
		`{"title":"Sea View Penthouse","location":"Marine Drive","price":"₹5.5 Cr","property_type":"penthouse","rating":4.7}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "₹5.5 Cr", updated.Price)
	assert.InDelta(t, 4.7, updated.Rating, 0.001)

	// Delete
	w = doJSON(t, r, http.MethodDelete, "/api/properties/"+itoa(created.ID), "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/properties/"+itoa(created.ID), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	// Unknown property type
	w := doJSON(t, r, http.MethodPost, "/api/properties", "", `{"title":"X","property_type":"castle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid property type")

	// Rating out of range
	w = doJSON(t, r, http.MethodPost, "/api/properties", "", `{"title":"X","property_type":"villa","rating":5.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Rating")

	// Title is mandatory
	w = doJSON(t, r, http.MethodPost, "/api/properties", "", `{"property_type":"villa"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
