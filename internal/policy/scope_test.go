package policy

import (
	"testing"

	"estate_crm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestScopeManagerSeesEverything(t *testing.T) {
	manager := domain.User{ID: 1, Role: domain.RoleManager}

	for _, kind := range []Kind{KindLead, KindFlat} {
		filter, err := Scope(manager, kind)
		require.NoError(t, err)
		assert.True(t, filter.Allows(1))
		assert.True(t, filter.Allows(42))
		assert.True(t, filter.Allows(99))
	}
}

func TestScopeEmployeeSeesOnlyAssignedRows(t *testing.T) {
	employee := domain.User{ID: 7, Role: domain.RoleEmployee}

	for _, kind := range []Kind{KindLead, KindFlat} {
		filter, err := Scope(employee, kind)
		require.NoError(t, err)
		assert.True(t, filter.Allows(7))
		assert.False(t, filter.Allows(8))
		assert.False(t, filter.Allows(0))
	}
}

func TestScopeUnknownRole(t *testing.T) {
	_, err := Scope(domain.User{ID: 3, Role: "intern"}, KindLead)
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = Scope(domain.User{ID: 3}, KindFlat) // Empty role is just as invalid
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestZeroFilterDeniesEverything(t *testing.T) {
	var filter Filter
	assert.False(t, filter.Allows(0))
	assert.False(t, filter.Allows(1))
}

func TestFilterApplyNarrowsQueries(t *testing.T) {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &domain.User{}, &domain.Lead{}))

	alice := domain.User{Account: domain.Account{Username: "alice", Email: "alice@crm.test", PasswordHash: "x"}, Role: domain.RoleEmployee}
	bob := domain.User{Account: domain.Account{Username: "bob", Email: "bob@crm.test", PasswordHash: "x"}, Role: domain.RoleEmployee}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	seed := []domain.Lead{
		{ClientID: "C1", ClientName: "One", AssignedToID: alice.ID, Status: domain.StatusCold},
		{ClientID: "C2", ClientName: "Two", AssignedToID: alice.ID, Status: domain.StatusWarm},
		{ClientID: "C3", ClientName: "Three", AssignedToID: bob.ID, Status: domain.StatusHot},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	// Employee scope returns exactly the assigned subset
	filter, err := Scope(alice, KindLead)
	require.NoError(t, err)
	var mine []domain.Lead
	require.NoError(t, filter.Apply(db.Model(&domain.Lead{})).Find(&mine).Error)
	require.Len(t, mine, 2)
	for _, l := range mine {
		assert.Equal(t, alice.ID, l.AssignedToID)
	}

	// Manager scope returns every row
	filter, err = Scope(domain.User{ID: 99, Role: domain.RoleManager}, KindLead)
	require.NoError(t, err)
	var all []domain.Lead
	require.NoError(t, filter.Apply(db.Model(&domain.Lead{})).Find(&all).Error)
	assert.Len(t, all, 3)
}
