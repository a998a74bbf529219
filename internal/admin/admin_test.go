package admin

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role     Role
		flights  bool
		aircraft bool
		pricing  bool
	}{
		{RoleSuperAdmin, true, true, true},
		{RoleFlightManager, true, false, false},
		{RoleAircraftManager, false, true, false},
		{RoleFinanceManager, false, false, true},
		{RoleViewer, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.flights, tt.role.CanManageFlights())
			assert.Equal(t, tt.aircraft, tt.role.CanManageAircraft())
			assert.Equal(t, tt.pricing, tt.role.CanManagePricing())
			assert.True(t, tt.role.CanViewReports())
		})
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	panel := NewPanel(nil, logger.Nop())

	session, err := panel.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, session.User.Role)
	assert.NotNil(t, session.User.LastLogin)

	// The login itself lands in the audit log
	assert.Equal(t, 1, panel.AuditLen())
	actions := panel.RecentActions(1)
	require.Len(t, actions, 1)
	assert.Equal(t, "LOGIN", actions[0].ActionType)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	panel := NewPanel(nil, logger.Nop())

	_, err := panel.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = panel.Authenticate("nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, 0, panel.AuditLen())
}

func TestSessionLifecycle(t *testing.T) {
	panel := NewPanel(nil, logger.Nop())

	session, err := panel.Authenticate("flight_mgr", "flight123")
	require.NoError(t, err)

	found, err := panel.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.User.Username, found.User.Username)

	panel.Logout(session.ID)
	_, err = panel.Session(session.ID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogoutUnknownSessionIgnored(t *testing.T) {
	panel := NewPanel(nil, logger.Nop())
	before := panel.AuditLen()

	panel.Logout(uuid.New())
	assert.Equal(t, before, panel.AuditLen())
}

func TestRecentActionsNewestFirst(t *testing.T) {
	panel := NewPanel(nil, logger.Nop())
	adminID := uuid.New()

	panel.LogAction(adminID, "FIRST", "first action", nil, "", "")
	panel.LogAction(adminID, "SECOND", "second action", nil, "", "")
	panel.LogAction(adminID, "THIRD", "third action", nil, "", "")

	actions := panel.RecentActions(2)
	require.Len(t, actions, 2)
	assert.Equal(t, "THIRD", actions[0].ActionType)
	assert.Equal(t, "SECOND", actions[1].ActionType)
}

type failingStore struct{}

func (failingStore) Append(Action) error { return errors.New("disk full") }

func TestStoreFailureDoesNotBlockAudit(t *testing.T) {
	panel := NewPanel(failingStore{}, logger.Nop())

	panel.LogAction(uuid.New(), "SET_DELAY", "delay change", nil, "On Time", "Delayed 30 min")
	assert.Equal(t, 1, panel.AuditLen())
}
