package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/admin"
	"github.com/ria-intl/airportd/pkg/logger"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the SQLite database at path
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// AuditStorage durably appends admin audit actions. The table is
// append-only; nothing updates or deletes rows.
type AuditStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewAuditStorage creates the audit storage and initializes its schema
func NewAuditStorage(db *sql.DB, log *logger.Logger) (*AuditStorage, error) {
	storage := &AuditStorage{
		db:     db,
		logger: log.Named("sqlite-audit"),
	}

	if err := storage.initDB(); err != nil {
		return nil, err
	}
	return storage, nil
}

func (s *AuditStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS admin_actions (
			id TEXT PRIMARY KEY,
			admin_id TEXT NOT NULL,
			action_type TEXT NOT NULL,
			description TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			affected_entity_id TEXT,
			old_value TEXT,
			new_value TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create admin_actions table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_admin_actions_admin_id ON admin_actions(admin_id)`,
		`CREATE INDEX IF NOT EXISTS idx_admin_actions_timestamp ON admin_actions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_admin_actions_type ON admin_actions(action_type)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create admin_actions index: %w", err)
		}
	}

	return nil
}

// Append stores one audit action. Implements admin.ActionStore.
func (s *AuditStorage) Append(action admin.Action) error {
	var affected sql.NullString
	if action.AffectedEntityID != nil {
		affected = sql.NullString{String: action.AffectedEntityID.String(), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO admin_actions
		(id, admin_id, action_type, description, timestamp, affected_entity_id, old_value, new_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		action.ID.String(),
		action.AdminID.String(),
		action.ActionType,
		action.Description,
		action.Timestamp.Format(time.RFC3339),
		affected,
		action.OldValue,
		action.NewValue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin action: %w", err)
	}
	return nil
}

// GetRecentActions returns recent actions, newest first
func (s *AuditStorage) GetRecentActions(limit int) ([]admin.Action, error) {
	rows, err := s.db.Query(
		`SELECT id, admin_id, action_type, description, timestamp, affected_entity_id, old_value, new_value
		FROM admin_actions
		ORDER BY timestamp DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent admin actions: %w", err)
	}
	defer rows.Close()

	return s.scanActionRows(rows)
}

// GetActionsByAdmin returns actions by a specific admin, newest first
func (s *AuditStorage) GetActionsByAdmin(adminID uuid.UUID, limit int) ([]admin.Action, error) {
	rows, err := s.db.Query(
		`SELECT id, admin_id, action_type, description, timestamp, affected_entity_id, old_value, new_value
		FROM admin_actions
		WHERE admin_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		adminID.String(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin actions by admin: %w", err)
	}
	defer rows.Close()

	return s.scanActionRows(rows)
}

// GetActionsByTimeRange returns actions within a time range, newest first
func (s *AuditStorage) GetActionsByTimeRange(startTime, endTime time.Time) ([]admin.Action, error) {
	rows, err := s.db.Query(
		`SELECT id, admin_id, action_type, description, timestamp, affected_entity_id, old_value, new_value
		FROM admin_actions
		WHERE timestamp BETWEEN ? AND ?
		ORDER BY timestamp DESC`,
		startTime.Format(time.RFC3339), endTime.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin actions by time range: %w", err)
	}
	defer rows.Close()

	return s.scanActionRows(rows)
}

func (s *AuditStorage) scanActionRows(rows *sql.Rows) ([]admin.Action, error) {
	var actions []admin.Action
	for rows.Next() {
		var action admin.Action
		var id, adminID, timestamp string
		var affected sql.NullString

		if err := rows.Scan(
			&id,
			&adminID,
			&action.ActionType,
			&action.Description,
			&timestamp,
			&affected,
			&action.OldValue,
			&action.NewValue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan admin action: %w", err)
		}

		var err error
		if action.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse action id: %w", err)
		}
		if action.AdminID, err = uuid.Parse(adminID); err != nil {
			return nil, fmt.Errorf("failed to parse admin id: %w", err)
		}
		if action.Timestamp, err = time.Parse(time.RFC3339, timestamp); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if affected.Valid {
			entityID, err := uuid.Parse(affected.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse affected entity id: %w", err)
			}
			action.AffectedEntityID = &entityID
		}

		actions = append(actions, action)
	}

	return actions, rows.Err()
}
