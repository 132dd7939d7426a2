package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fieldmap-io/fieldmap/internal/infra/cache"
	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/secrets"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/tokens"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, rawToken string) error
	Verify(ctx context.Context, rawToken string) (*model.User, error)
}

// TokenConfig carries the signing parameters for session tokens.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type authService struct {
	users    repo.UserRepo
	sessions *cache.Sessions
	tokenCfg TokenConfig
	pepper   string
	log      *zap.Logger
}

func NewAuthService(users repo.UserRepo, sessions *cache.Sessions, tokenCfg TokenConfig, pepper string, log *zap.Logger) AuthService {
	return &authService{users: users, sessions: sessions, tokenCfg: tokenCfg, pepper: pepper, log: log}
}

// Login checks the credentials, stamps last_login_at, opens a session and
// returns the user together with a signed session token. Unknown email,
// corrupt stored hash, and wrong password are indistinguishable to callers.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}

	ok, err := secrets.VerifyPassword(password, s.pepper, u.PasswordHash)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn("stored password hash unreadable", zap.String("user", u.ID), zap.Error(err))
		}
		return nil, "", ErrInvalidCredentials
	}

	now := ids.Now()
	u, err = s.users.Update(ctx, u.ID, map[string]any{"last_login_at": now})
	if err != nil {
		return nil, "", err
	}

	token, jti, err := tokens.Issue(s.tokenCfg.Secret, s.tokenCfg.Issuer, u.ID, u.Role, s.tokenCfg.TTL)
	if err != nil {
		return nil, "", err
	}
	if err := s.sessions.Put(ctx, jti, u.ID, s.tokenCfg.TTL); err != nil {
		return nil, "", err
	}
	return u.Sanitized(), token, nil
}

// Logout revokes the session behind the token. Tokens that no longer parse
// have nothing left to revoke and are not an error.
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	claims, err := tokens.Parse(s.tokenCfg.Secret, s.tokenCfg.Issuer, rawToken)
	if err != nil {
		if errors.Is(err, tokens.ErrInvalidToken) {
			return nil
		}
		return err
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// Verify validates the token, confirms its session is still open, and loads
// the user it belongs to.
func (s *authService) Verify(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := tokens.Parse(s.tokenCfg.Secret, s.tokenCfg.Issuer, rawToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	open, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u.Sanitized(), nil
}
