package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
)

var (
	// ErrSessionNotFound indicates that no session matches the token.
	ErrSessionNotFound = errors.New("session: not found")
	// ErrSessionRevoked marks a session ended by logout or restart.
	ErrSessionRevoked = errors.New("session: revoked")
	// ErrSessionExpired signals that the session outlived its TTL.
	ErrSessionExpired = errors.New("session: expired")
)

// SessionMetadata captures contextual information about the client.
type SessionMetadata struct {
	IPAddress string
	UserAgent string
}

// SessionService creates, resolves and revokes login sessions.
type SessionService struct {
	db  *gorm.DB
	jwt *JWTService
	now func() time.Time
}

// NewSessionService wires the session store to the token signer.
func NewSessionService(db *gorm.DB, jwtService *JWTService, clock func() time.Time) (*SessionService, error) {
	if db == nil {
		return nil, errors.New("session: db is required")
	}
	if jwtService == nil {
		return nil, errors.New("session: jwt service is required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &SessionService{db: db, jwt: jwtService, now: clock}, nil
}

// Create stores a new session for userID and returns its signed token.
func (s *SessionService) Create(ctx context.Context, userID string, meta SessionMetadata) (string, *models.Session, error) {
	now := s.now()
	session := &models.Session{
		UserID:     userID,
		IPAddress:  strings.TrimSpace(meta.IPAddress),
		UserAgent:  strings.TrimSpace(meta.UserAgent),
		ExpiresAt:  now.Add(s.jwt.TTL()),
		LastUsedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return "", nil, fmt.Errorf("session: create: %w", err)
	}

	token, err := s.jwt.Sign(userID, session.ID, session.ExpiresAt)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// Resolve validates token and returns the live session and its user.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, *models.Session, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, nil, err
	}

	var session models.Session
	err = s.db.WithContext(ctx).Preload("User").Take(&session, "id = ?", claims.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("session: load: %w", err)
	}

	now := s.now()
	switch {
	case session.RevokedAt != nil:
		return nil, nil, ErrSessionRevoked
	case !now.Before(session.ExpiresAt):
		return nil, nil, ErrSessionExpired
	case session.User == nil || session.UserID != claims.UserID:
		return nil, nil, ErrSessionNotFound
	}

	if err := s.db.WithContext(ctx).Model(&session).UpdateColumn("last_used_at", now).Error; err != nil {
		return nil, nil, fmt.Errorf("session: touch: %w", err)
	}

	return session.User, &session, nil
}

// Revoke ends a single session. Unknown ids are ignored.
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", s.now()).Error
}

// RevokeUser ends every session of userID.
func (s *SessionService) RevokeUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", s.now()).Error
}

// RevokeAll ends every open session. Run once at process start so a restart
// always forces a fresh login.
func (s *SessionService) RevokeAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("revoked_at IS NULL").
		Update("revoked_at", s.now())
	if res.Error != nil {
		return 0, fmt.Errorf("session: revoke all: %w", res.Error)
	}
	return res.RowsAffected, nil
}
