package models

import "time"

// User is a login account. The password hash is never serialised.
type User struct {
	BaseModel

	Username     string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string `gorm:"size:200;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null;default:staff" json:"role"`

	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `json:"account_locked_until"`
}

// IsLocked reports whether the account lock is still in force at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.AccountLockedUntil != nil && u.AccountLockedUntil.After(now)
}

// IsAdmin mirrors Role.IsAdmin.
func (u *User) IsAdmin() bool { return u.Role.IsAdmin() }

// IsStaff mirrors Role.IsStaff.
func (u *User) IsStaff() bool { return u.Role.IsStaff() }
