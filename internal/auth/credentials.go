package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/pkg/crypto"
	"github.com/aquaalert/aquaalert/pkg/logger"
	"github.com/aquaalert/aquaalert/pkg/metrics"
)

const (
	// DefaultLockoutThreshold is the number of consecutive failures that locks an account.
	DefaultLockoutThreshold = 5
	// DefaultLockoutDuration is how long a locked account stays locked.
	DefaultLockoutDuration = 30 * time.Minute
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// LockedError is returned while an account is locked.
type LockedError struct {
	LockedUntil time.Time
	// JustLocked is set when this attempt triggered the lock.
	JustLocked bool
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("auth: account locked until %s", e.LockedUntil.UTC().Format(time.RFC3339))
}

// CheckResult is the outcome of a single password check.
type CheckResult struct {
	OK          bool
	Locked      bool
	JustLocked  bool
	LockedUntil *time.Time
	Attempts    int
}

// CredentialsConfig defines tunable lockout behaviour.
type CredentialsConfig struct {
	Policy           PasswordPolicy
	LockoutThreshold int
	LockoutDuration  time.Duration
	Clock            func() time.Time
}

// Credentials hashes passwords and tracks failed logins with account lockout.
type Credentials struct {
	db        *gorm.DB
	policy    PasswordPolicy
	clock     func() time.Time
	threshold int
	duration  time.Duration
}

// NewCredentials builds a Credentials service with defaults for unset values.
func NewCredentials(db *gorm.DB, cfg CredentialsConfig) (*Credentials, error) {
	if db == nil {
		return nil, errors.New("credentials: db is required")
	}

	threshold := cfg.LockoutThreshold
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}

	duration := cfg.LockoutDuration
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}

	clock := time.Now
	if cfg.Clock != nil {
		clock = cfg.Clock
	}

	return &Credentials{
		db:        db,
		policy:    cfg.Policy,
		clock:     clock,
		threshold: threshold,
		duration:  duration,
	}, nil
}

// Policy returns the configured password policy.
func (c *Credentials) Policy() PasswordPolicy {
	return c.policy
}

// SetPassword validates raw against the policy and stores its hash on user.
// The user is not persisted and is left untouched on failure.
func (c *Credentials) SetPassword(user *models.User, raw string) error {
	if user == nil {
		return errors.New("credentials: user is required")
	}
	if err := c.policy.Validate(raw); err != nil {
		return err
	}

	hashed, err := crypto.HashPassword(raw)
	if err != nil {
		return fmt.Errorf("credentials: hash password: %w", err)
	}
	user.PasswordHash = hashed
	return nil
}

// CheckPassword compares raw with the stored hash of userID and updates the
// failure counter, lock and last login inside a single row-locked transaction.
// A locked account is reported without comparing the password or touching counters.
// An expired lock is cleared, and the counter restarts from zero, before comparing.
func (c *Credentials) CheckPassword(ctx context.Context, userID, raw string) (CheckResult, error) {
	var result CheckResult

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		now := c.clock()
		if user.IsLocked(now) {
			until := *user.AccountLockedUntil
			result = CheckResult{Locked: true, LockedUntil: &until, Attempts: user.FailedLoginAttempts}
			return nil
		}

		if user.AccountLockedUntil != nil {
			user.FailedLoginAttempts = 0
			user.AccountLockedUntil = nil
		}

		updates := map[string]any{}
		if crypto.VerifyPassword(user.PasswordHash, raw) {
			user.FailedLoginAttempts = 0
			user.AccountLockedUntil = nil
			user.LastLogin = &now
			updates["last_login"] = now
			result.OK = true
		} else {
			user.FailedLoginAttempts++
			if user.FailedLoginAttempts >= c.threshold {
				until := now.Add(c.duration)
				user.AccountLockedUntil = &until
				result.Locked = true
				result.JustLocked = true
				result.LockedUntil = &until
			}
		}

		updates["failed_login_attempts"] = user.FailedLoginAttempts
		updates["account_locked_until"] = user.AccountLockedUntil
		result.Attempts = user.FailedLoginAttempts

		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return CheckResult{}, err
	}

	if result.JustLocked {
		metrics.AccountLockouts.Inc()
		logger.WithModule("auth").Warn("account locked after repeated failures",
			zap.String("user_id", userID),
			zap.Int("attempts", result.Attempts),
		)
	}

	return result, nil
}

// Authenticate resolves username and checks password. Unknown users and wrong
// passwords both yield ErrInvalidCredentials; locked accounts yield *LockedError.
func (c *Credentials) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := c.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: query user: %w", err)
	}

	result, err := c.CheckPassword(ctx, user.ID, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credentials: check password: %w", err)
	}

	switch {
	case result.OK:
		metrics.AuthAttempts.WithLabelValues("success").Inc()
		if err := c.db.WithContext(ctx).Take(&user, "id = ?", user.ID).Error; err != nil {
			return nil, fmt.Errorf("credentials: reload user: %w", err)
		}
		return &user, nil
	case result.Locked:
		metrics.AuthAttempts.WithLabelValues("locked").Inc()
		return nil, &LockedError{LockedUntil: *result.LockedUntil, JustLocked: result.JustLocked}
	default:
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
}

// ResetPassword replaces the password of username after verifying the current one.
// The check goes through the lockout counter like a normal login. A new password
// that breaks the policy is rejected before the current one is checked.
func (c *Credentials) ResetPassword(ctx context.Context, username, current, next string) error {
	if err := c.policy.Validate(next); err != nil {
		return err
	}

	user, err := c.Authenticate(ctx, username, current)
	if err != nil {
		return err
	}

	if err := c.SetPassword(user, next); err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
		return fmt.Errorf("credentials: update password: %w", err)
	}
	return nil
}
