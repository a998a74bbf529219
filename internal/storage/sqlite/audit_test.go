package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/admin"
	"github.com/ria-intl/airportd/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *AuditStorage {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storage, err := NewAuditStorage(db, logger.Nop())
	require.NoError(t, err)
	return storage
}

func newAction(adminID uuid.UUID, actionType string, ts time.Time) admin.Action {
	return admin.Action{
		ID:          uuid.New(),
		AdminID:     adminID,
		ActionType:  actionType,
		Description: "test action",
		Timestamp:   ts,
	}
}

func TestAppendAndGetRecent(t *testing.T) {
	storage := newTestStorage(t)
	adminID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, storage.Append(newAction(adminID, "LOGIN", base)))
	require.NoError(t, storage.Append(newAction(adminID, "SET_DELAY", base.Add(time.Minute))))
	require.NoError(t, storage.Append(newAction(adminID, "LOGOUT", base.Add(2*time.Minute))))

	actions, err := storage.GetRecentActions(2)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "LOGOUT", actions[0].ActionType)
	assert.Equal(t, "SET_DELAY", actions[1].ActionType)
}

func TestAppendPreservesAffectedEntity(t *testing.T) {
	storage := newTestStorage(t)
	entityID := uuid.New()

	action := newAction(uuid.New(), "SET_PRICING", time.Now().UTC().Truncate(time.Second))
	action.AffectedEntityID = &entityID
	action.OldValue = "1"
	action.NewValue = "1.5"
	require.NoError(t, storage.Append(action))

	actions, err := storage.GetRecentActions(1)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	got := actions[0]
	require.NotNil(t, got.AffectedEntityID)
	assert.Equal(t, entityID, *got.AffectedEntityID)
	assert.Equal(t, "1", got.OldValue)
	assert.Equal(t, "1.5", got.NewValue)
}

func TestGetActionsByAdmin(t *testing.T) {
	storage := newTestStorage(t)
	alice := uuid.New()
	bob := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, storage.Append(newAction(alice, "LOGIN", base)))
	require.NoError(t, storage.Append(newAction(bob, "LOGIN", base.Add(time.Second))))
	require.NoError(t, storage.Append(newAction(alice, "SET_DELAY", base.Add(2*time.Second))))

	actions, err := storage.GetActionsByAdmin(alice, 10)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	for _, action := range actions {
		assert.Equal(t, alice, action.AdminID)
	}
}

func TestGetActionsByTimeRange(t *testing.T) {
	storage := newTestStorage(t)
	adminID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, storage.Append(newAction(adminID, "EARLY", base)))
	require.NoError(t, storage.Append(newAction(adminID, "INSIDE", base.Add(time.Hour))))
	require.NoError(t, storage.Append(newAction(adminID, "LATE", base.Add(3*time.Hour))))

	actions, err := storage.GetActionsByTimeRange(base.Add(30*time.Minute), base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "INSIDE", actions[0].ActionType)
}
