// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActionName identifies an entry of the user action taxonomy.
type ActionName string

const (
	ActionLoginSuccess        ActionName = "login_success"
	ActionLoginFailed         ActionName = "login_failed"
	ActionRegistrationSuccess ActionName = "registration_success"
	ActionRegistrationFailed  ActionName = "registration_failed"
	ActionTransactionAdded    ActionName = "transaction_added"
	ActionTransactionChanged  ActionName = "transaction_changed"
	ActionTransactionDeleted  ActionName = "transaction_deleted"
	ActionCategoryAdded       ActionName = "category_added"
	ActionCategoryChanged     ActionName = "category_changed"
	ActionCategoryDeleted     ActionName = "category_deleted"
	ActionAccountDeleted      ActionName = "account_deleted"
)

// LogLevel is the severity attached to a user action.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
)

// UserAction is a row of the action taxonomy.
type UserAction struct {
	Name     ActionName
	LogLevel LogLevel
}

// DefaultUserActions is the seeded action taxonomy.
var DefaultUserActions = []UserAction{
	{Name: ActionLoginSuccess, LogLevel: LogLevelInfo},
	{Name: ActionLoginFailed, LogLevel: LogLevelWarning},
	{Name: ActionRegistrationSuccess, LogLevel: LogLevelInfo},
	{Name: ActionRegistrationFailed, LogLevel: LogLevelWarning},
	{Name: ActionTransactionAdded, LogLevel: LogLevelInfo},
	{Name: ActionTransactionChanged, LogLevel: LogLevelInfo},
	{Name: ActionTransactionDeleted, LogLevel: LogLevelInfo},
	{Name: ActionCategoryAdded, LogLevel: LogLevelInfo},
	{Name: ActionCategoryChanged, LogLevel: LogLevelInfo},
	{Name: ActionCategoryDeleted, LogLevel: LogLevelInfo},
	{Name: ActionAccountDeleted, LogLevel: LogLevelInfo},
}

// MaxActionDetailsLength is the maximum stored length of audit details.
const MaxActionDetailsLength = 120

// UserActionLog is an append-only audit entry.
// UserID is nil for anonymous actions and for entries of deleted users.
type UserActionLog struct {
	ID        uuid.UUID
	Timestamp time.Time
	Action    ActionName
	LogLevel  LogLevel
	UserID    *uuid.UUID
	Details   string
}

// NewUserActionLog creates an audit entry, truncating details to the column size.
func NewUserActionLog(action ActionName, userID *uuid.UUID, details string) *UserActionLog {
	if runes := []rune(details); len(runes) > MaxActionDetailsLength {
		details = string(runes[:MaxActionDetailsLength])
	}

	return &UserActionLog{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		UserID:    userID,
		Details:   details,
	}
}
