package admin

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/pkg/logger"
)

// Authentication and authorization failures surfaced to callers
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("admin authentication required")
	ErrPermissionDenied   = errors.New("insufficient permissions")
)

// Role grants capability sets to admin users
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"      // full system access
	RoleFlightManager   Role = "flight_manager"   // flight operations only
	RoleAircraftManager Role = "aircraft_manager" // aircraft management only
	RoleFinanceManager  Role = "finance_manager"  // pricing and revenue only
	RoleViewer          Role = "viewer"           // read-only
)

// CanManageFlights reports whether the role may mutate flights
func (r Role) CanManageFlights() bool {
	return r == RoleSuperAdmin || r == RoleFlightManager
}

// CanManageAircraft reports whether the role may mutate aircraft
func (r Role) CanManageAircraft() bool {
	return r == RoleSuperAdmin || r == RoleAircraftManager
}

// CanManagePricing reports whether the role may mutate pricing
func (r Role) CanManagePricing() bool {
	return r == RoleSuperAdmin || r == RoleFinanceManager
}

// CanViewReports is true for every role
func (r Role) CanViewReports() bool {
	return true
}

// User is an administrative user
type User struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	CreatedDate time.Time  `json:"created_date"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// NewUser creates an active admin user
func NewUser(username, fullName, email string, role Role) User {
	return User{
		ID:          uuid.New(),
		Username:    username,
		FullName:    fullName,
		Email:       email,
		Role:        role,
		CreatedDate: time.Now(),
		IsActive:    true,
	}
}

// Action is one immutable audit log entry
type Action struct {
	ID               uuid.UUID  `json:"id"`
	AdminID          uuid.UUID  `json:"admin_id"`
	ActionType       string     `json:"action_type"`
	Description      string     `json:"description"`
	Timestamp        time.Time  `json:"timestamp"`
	AffectedEntityID *uuid.UUID `json:"affected_entity_id,omitempty"`
	OldValue         string     `json:"old_value,omitempty"`
	NewValue         string     `json:"new_value,omitempty"`
}

// Session is an explicit authenticated admin session. It is created on
// successful authentication and cleared on logout; privileged calls check it
// every time.
type Session struct {
	ID        uuid.UUID `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionStore persists audit entries durably. Append failures must not block
// the mutation that produced the entry.
type ActionStore interface {
	Append(action Action) error
}

// credential is a built-in login. A production deployment would source these
// from a user database.
type credential struct {
	password string
	fullName string
	email    string
	role     Role
}

var builtinCredentials = map[string]credential{
	"admin":        {password: "admin123", fullName: "System Administrator", email: "admin@ria-intl.com", role: RoleSuperAdmin},
	"flight_mgr":   {password: "flight123", fullName: "Flight Manager", email: "flights@ria-intl.com", role: RoleFlightManager},
	"aircraft_mgr": {password: "aircraft123", fullName: "Aircraft Manager", email: "aircraft@ria-intl.com", role: RoleAircraftManager},
	"finance_mgr":  {password: "finance123", fullName: "Finance Manager", email: "finance@ria-intl.com", role: RoleFinanceManager},
	"viewer":       {password: "viewer123", fullName: "Operations Viewer", email: "viewer@ria-intl.com", role: RoleViewer},
}

// Panel owns admin sessions and the append-only audit log
type Panel struct {
	sessions map[uuid.UUID]*Session
	auditLog []Action
	store    ActionStore
	logger   *logger.Logger
}

// NewPanel creates an admin panel. store may be nil, in which case audit
// entries live only in memory.
func NewPanel(store ActionStore, log *logger.Logger) *Panel {
	return &Panel{
		sessions: make(map[uuid.UUID]*Session),
		store:    store,
		logger:   log.Named("admin"),
	}
}

// Authenticate verifies credentials and opens a session. The login itself is
// audited.
func (p *Panel) Authenticate(username, password string) (*Session, error) {
	cred, ok := builtinCredentials[username]
	if !ok || cred.password != password {
		return nil, ErrInvalidCredentials
	}

	user := NewUser(username, cred.fullName, cred.email, cred.role)
	now := time.Now()
	user.LastLogin = &now

	session := &Session{
		ID:        uuid.New(),
		User:      user,
		CreatedAt: now,
	}
	p.sessions[session.ID] = session

	p.LogAction(user.ID, "LOGIN", "User "+username+" logged into admin panel", nil, "", "")

	p.logger.Info("Admin authenticated",
		logger.String("username", username),
		logger.String("role", string(user.Role)),
	)

	return session, nil
}

// Logout closes a session. Unknown session ids are ignored.
func (p *Panel) Logout(sessionID uuid.UUID) {
	session, ok := p.sessions[sessionID]
	if !ok {
		return
	}
	p.LogAction(session.User.ID, "LOGOUT", "User "+session.User.Username+" logged out of admin panel", nil, "", "")
	delete(p.sessions, sessionID)
}

// Session returns the session for the given id, or ErrNotAuthenticated
func (p *Panel) Session(sessionID uuid.UUID) (*Session, error) {
	session, ok := p.sessions[sessionID]
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// LogAction appends an entry to the audit log and, when a durable store is
// configured, persists it. Store failures are logged and do not fail the
// caller's mutation.
func (p *Panel) LogAction(adminID uuid.UUID, actionType, description string, affectedEntityID *uuid.UUID, oldValue, newValue string) {
	action := Action{
		ID:               uuid.New(),
		AdminID:          adminID,
		ActionType:       actionType,
		Description:      description,
		Timestamp:        time.Now(),
		AffectedEntityID: affectedEntityID,
		OldValue:         oldValue,
		NewValue:         newValue,
	}
	p.auditLog = append(p.auditLog, action)

	if p.store != nil {
		if err := p.store.Append(action); err != nil {
			p.logger.Warn("Failed to persist audit action",
				logger.String("action_type", actionType),
				logger.Error(err),
			)
		}
	}
}

// RecentActions returns up to limit audit entries, newest first
func (p *Panel) RecentActions(limit int) []Action {
	out := make([]Action, 0, limit)
	for i := len(p.auditLog) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, p.auditLog[i])
	}
	return out
}

// AuditLen returns the number of audit entries
func (p *Panel) AuditLen() int {
	return len(p.auditLog)
}
