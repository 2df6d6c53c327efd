package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a successful login.
type LoginResult struct {
	User  *domain.User
	Token *domain.AccessToken
}

// CreateUserInput describes a new operator account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService coordinates login, logout and account provisioning.
type AuthService struct {
	users      repository.UserRepository
	revoked    repository.RevocationStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Revocation repository.RevocationStore
	Tokens     *auth.TokenManager
	BcryptCost int
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cost, ok := auth.HashCost(deps.BcryptCost)
	if !ok && deps.BcryptCost != 0 {
		logger.Warn("bcrypt cost out of range; using default",
			zap.Int("configured", deps.BcryptCost), zap.Int("cost", cost))
	}
	dummy, err := auth.HashPassword("employee-service", cost)
	if err != nil {
		logger.Error("hash placeholder password", zap.Error(err))
	}
	return &AuthService{
		users:      deps.UserRepo,
		revoked:    deps.Revocation,
		tokenMgr:   deps.Tokens,
		bcryptCost: cost,
		logger:     logger,
		dummyHash:  dummy,
	}
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var fields apperrors.FieldErrors
	checkRules(&fields,
		rule{field: "email", value: input.Email, tags: "required,email"},
		rule{field: "password", value: input.Password, tags: "required"},
	)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = auth.ComparePassword(s.dummyHash, input.Password)
			return nil, apperrors.NewAuthenticationFailed()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		return nil, apperrors.NewAuthenticationFailed()
	}

	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("token_id", token.ID))
	return &LoginResult{User: user, Token: token}, nil
}

// Logout revokes the token the caller authenticated with. Other tokens of
// the same user stay valid.
func (s *AuthService) Logout(ctx context.Context) error {
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return apperrors.NewUnauthorized("Unauthenticated.")
	}
	if err := s.revoked.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged out", zap.Int64("user_id", auth.ActorID(ctx)), zap.String("token_id", principal.TokenID))
	return nil
}

// CurrentUser returns the authenticated caller.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("Unauthenticated.")
	}
	return principal.User, nil
}

// CreateUser provisions an operator account.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	var fields apperrors.FieldErrors
	checkRules(&fields,
		rule{field: "name", value: input.Name, tags: "required,max=255"},
		rule{field: "email", value: email, tags: "required,email,max=255"},
		rule{field: "password", value: input.Password, tags: "required,min=8"},
	)
	if !fields.Has("email") {
		_, err := s.users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			fields.Add("email", takenMessage("email"))
		case !errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewInternalError(err)
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{Name: input.Name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewFieldError("email", takenMessage("email"))
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}
