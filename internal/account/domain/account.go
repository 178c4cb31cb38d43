package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("username or email already registered")
	ErrInvalidAccount  = errors.New("invalid account")
	ErrBadCredentials  = errors.New("invalid email or password")
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidAccount, msg)
}

// ---------------- Enums ----------------

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ---------------- Entity ----------------

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
)

// Account is a backoffice user. The password hash never leaves the server;
// the json tag keeps it out of every response.
type Account struct {
	ID           uuid.UUID  `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	Role         Role       `json:"role" bson:"role"`
	Active       bool       `json:"active" bson:"active"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// NormalizeEmail lowercases and trims the email before validation and lookups.
func (a *Account) NormalizeEmail() {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
}

func (a *Account) Validate() error {
	if !usernamePattern.MatchString(a.Username) {
		return invalid("username must be 3-30 characters of letters, digits or underscore")
	}
	if !emailPattern.MatchString(a.Email) {
		return invalid("email is not valid")
	}
	if !a.Role.Valid() {
		return invalid(fmt.Sprintf("role %q is not recognized", a.Role))
	}
	if a.PasswordHash == "" {
		return invalid("password is required")
	}
	return nil
}

// ---------------- Stats ----------------

// RecentLoginWindow bounds the "recently seen" count in the stats overview.
const RecentLoginWindow = 30 * 24 * time.Hour

type AccountStats struct {
	TotalUsers    int64 `json:"totalUsers" bson:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers" bson:"activeUsers"`
	InactiveUsers int64 `json:"inactiveUsers" bson:"inactiveUsers"`
	AdminUsers    int64 `json:"adminUsers" bson:"adminUsers"`
	RecentLogins  int64 `json:"recentLogins" bson:"recentLogins"`
}

type RoleStat struct {
	Role  Role  `json:"role" bson:"_id"`
	Count int64 `json:"count" bson:"count"`
}
