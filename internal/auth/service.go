// Package auth authenticates back-office admins and issues their tokens.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/hiddenspringfield/shop-backend/pkg/auth"
	"github.com/hiddenspringfield/shop-backend/pkg/config"
	"github.com/hiddenspringfield/shop-backend/pkg/db"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
	"github.com/hiddenspringfield/shop-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Admin sources recorded in the token.
const (
	SourceConfig   = "config"
	SourceDatabase = "database"
)

// Service defines the behavior needed by the auth controller and middleware.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Setup(ctx context.Context, req SetupRequest) (*AdminDTO, error)
	Verify(ctx context.Context, token string) (*pkgAuth.AdminClaims, error)
}

type adminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	// Admins may be nil when only the configured admin can log in.
	Admins         adminRepository
	AdminConfig    config.AdminConfig
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	// SetupEnabled allows creating the first admin over HTTP.
	SetupEnabled bool
	Logger       *logger.Logger
	Now          func() time.Time
}

type service struct {
	admins       adminRepository
	adminCfg     config.AdminConfig
	jwtCfg       config.JWTConfig
	passwordCfg  config.PasswordConfig
	setupEnabled bool
	logg         *logger.Logger
	now          func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if params.Admins == nil && !params.AdminConfig.Configured() {
		return nil, fmt.Errorf("admin repository or configured admin credentials required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		admins:       params.Admins,
		adminCfg:     params.AdminConfig,
		jwtCfg:       params.JWTConfig,
		passwordCfg:  params.PasswordConfig,
		setupEnabled: params.SetupEnabled,
		logg:         params.Logger,
		now:          now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	dto, err := s.authenticate(ctx, username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := pkgAuth.MintAdminToken(s.jwtCfg, s.now().UTC(), pkgAuth.AdminTokenPayload{
		Username: dto.Username,
		Source:   dto.Source,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	s.logg.Info(s.logg.WithAdmin(ctx, dto.Username), "admin logged in")
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, User: *dto}, nil
}

// authenticate checks the configured admin first, then the admins table.
func (s *service) authenticate(ctx context.Context, username, password string) (*AdminDTO, error) {
	if s.adminCfg.Configured() && security.EqualSecret(username, s.adminCfg.Username) {
		if !security.EqualSecret(password, s.adminCfg.Password) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return &AdminDTO{ID: SourceConfig, Username: s.adminCfg.Username, Source: SourceConfig}, nil
	}
	if s.admins == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}
	if admin == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	valid, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.logg.WarnErr(ctx, "update admin last login", err)
	}
	return &AdminDTO{ID: admin.ID.String(), Username: admin.Username, Source: SourceDatabase}, nil
}

// Setup creates a database admin. It is refused when disabled, when the setup
// key does not match, or when the username is taken.
func (s *service) Setup(ctx context.Context, req SetupRequest) (*AdminDTO, error) {
	if !s.setupEnabled || s.admins == nil || s.adminCfg.SetupKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin setup is disabled")
	}
	if !security.EqualSecret(req.SetupKey, s.adminCfg.SetupKey) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid setup key")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and a password of at least 8 characters are required")
	}

	existing, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "admin already exists")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	created, err := s.admins.Create(ctx, &models.Admin{Username: username, PasswordHash: hash})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "admin already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin")
	}
	s.logg.Info(s.logg.WithAdmin(ctx, created.Username), "admin created")
	return &AdminDTO{ID: created.ID.String(), Username: created.Username, Source: SourceDatabase}, nil
}

// Verify validates a bearer or cookie token.
func (s *service) Verify(_ context.Context, token string) (*pkgAuth.AdminClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing token")
	}
	claims, err := pkgAuth.ParseAdminToken(s.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	return claims, nil
}
