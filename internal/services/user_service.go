package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/auth"
	"github.com/aquaalert/aquaalert/internal/models"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

// ErrSelfDelete is returned when an administrator tries to delete their own account.
var ErrSelfDelete = apperrors.NewValidation("You cannot delete your own account")

// CreateUserInput describes a new account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// UpdateUserInput carries optional account changes. Nil fields are left alone.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *models.Role
	Password *string
}

// UserService manages login accounts.
type UserService struct {
	repo        relational[models.User]
	credentials *auth.Credentials
	sessions    *auth.SessionService
}

// NewUserService constructs a UserService. sessions may be nil, in which case
// role changes and deletions do not revoke live sessions.
func NewUserService(db *gorm.DB, credentials *auth.Credentials, sessions *auth.SessionService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	if credentials == nil {
		return nil, errors.New("user service: credentials are required")
	}

	repo := newRelational[models.User](db, "User")
	repo.columns = []string{"role"}
	repo.order = "username ASC"
	repo.duplicate = "Username or email already exists"
	repo.prepare = func(_ *gorm.DB, u *models.User) error {
		u.Username = strings.TrimSpace(u.Username)
		u.Email = strings.TrimSpace(strings.ToLower(u.Email))
		if u.Username == "" {
			return apperrors.NewValidation("username cannot be empty")
		}
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return apperrors.NewValidation("email is not a valid address")
		}
		if !u.Role.Valid() {
			return apperrors.NewValidation("role must be one of public, staff, admin")
		}
		return nil
	}

	return &UserService{repo: repo, credentials: credentials, sessions: sessions}, nil
}

func (s *UserService) List(ctx context.Context, filter Filter) ([]models.User, error) {
	return s.repo.list(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.get(ctx, id)
}

// Create hashes the password under the configured policy and stores the account.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleStaff
	}
	if err := s.setPassword(user, in.Password); err != nil {
		return nil, err
	}
	if err := s.repo.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the non-nil fields of in. Changing the role or password of an
// account revokes its sessions.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	var revoke bool
	user, err := s.repo.update(ctx, id, func(u *models.User) error {
		if in.Username != nil {
			u.Username = *in.Username
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.Role != nil && *in.Role != u.Role {
			u.Role = *in.Role
			revoke = true
		}
		if in.Password != nil && *in.Password != "" {
			if err := s.setPassword(u, *in.Password); err != nil {
				return err
			}
			revoke = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if revoke {
		s.revokeSessions(ctx, user.ID)
	}
	return user, nil
}

// Delete removes the account id. actorID is the administrator making the
// request; deleting oneself is refused.
func (s *UserService) Delete(ctx context.Context, actorID, id string) (bool, error) {
	if actorID != "" && actorID == id {
		return false, ErrSelfDelete
	}
	s.revokeSessions(ctx, id)
	return s.repo.delete(ctx, id)
}

// EnsureBootstrapAdmin creates an admin account when the user table is empty.
// It reports whether an account was created.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return false, nil
	}

	var count int64
	if err := s.repo.db.WithContext(ensureContext(ctx)).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, apperrors.NewStorage(err)
	}
	if count > 0 {
		return false, nil
	}

	user, err := s.Create(ctx, CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	logger.WithModule("services").Info("bootstrap admin created", zap.String("username", user.Username))
	return true, nil
}

func (s *UserService) setPassword(user *models.User, raw string) error {
	err := s.credentials.SetPassword(user, raw)
	var violation *auth.PolicyViolation
	if errors.As(err, &violation) {
		return apperrors.NewPolicyViolation(violation.Message)
	}
	if err != nil {
		return apperrors.Wrap(err, "Failed to set password")
	}
	return nil
}

func (s *UserService) revokeSessions(ctx context.Context, userID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RevokeUser(ensureContext(ctx), userID); err != nil {
		s.repo.log.Warn("revoke sessions failed", zap.String("user_id", userID), zap.Error(err))
	}
}
