package adminauth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"osspace/internal/shared/apperrors"
	"osspace/internal/shared/config"
	"osspace/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const tokenLength = 64 // hex chars, 32 random bytes

type Service interface {
	Login(ctx context.Context, req LoginRequest) (string, *LoginResponse, error)
	Verify(ctx context.Context, token string) (*AdminSession, error)
	// VerifyToken satisfies middleware.SessionVerifier.
	VerifyToken(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	repo Repository
	cfg  *config.AdminConfig
	log  *logger.Logger
}

func NewService(repo Repository, cfg *config.AdminConfig, log *logger.Logger) Service {
	return &service{repo: repo, cfg: cfg, log: log}
}

// Login checks the email allow-list and the shared password, then rotates
// the admin's session. Every failure path returns the same opaque error so
// responses never reveal which check failed.
func (s *service) Login(ctx context.Context, req LoginRequest) (string, *LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed := s.cfg.IsAllowedAdmin(email)
	passwordOK := s.verifyPassword(req.Password)
	if !allowed || !passwordOK {
		return "", nil, apperrors.Unauthenticated("Invalid credentials")
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to create session", err)
	}

	session := &AdminSession{
		Token:     token,
		Email:     email,
		ExpiresAt: time.Now().UTC().Add(s.cfg.SessionTTL),
	}
	if err := s.repo.ReplaceSessionsForEmail(ctx, session); err != nil {
		return "", nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to create session", err)
	}

	s.log.Info("admin logged in", "email", email)
	return token, &LoginResponse{Email: email, ExpiresAt: session.ExpiresAt}, nil
}

// verifyPassword accepts either a bcrypt hash or a plain shared secret in
// configuration. Plain comparison is constant time.
func (s *service) verifyPassword(candidate string) bool {
	configured := s.cfg.Password
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(candidate)) == 1
}

// Verify resolves a token to its session, lazily deleting expired rows.
func (s *service) Verify(ctx context.Context, token string) (*AdminSession, error) {
	if !validTokenFormat(token) {
		return nil, apperrors.Unauthenticated("Invalid session")
	}

	session, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		if err := s.repo.DeleteByToken(ctx, token); err != nil {
			s.log.WithError(err).Warn("failed to delete expired session")
		}
		return nil, apperrors.Unauthenticated("Session expired")
	}
	return session, nil
}

func (s *service) VerifyToken(ctx context.Context, token string) (string, error) {
	session, err := s.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return session.Email, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if !validTokenFormat(token) {
		return nil
	}
	return s.repo.DeleteByToken(ctx, token)
}

func newSessionToken() (string, error) {
	buf := make([]byte, tokenLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// validTokenFormat rejects anything that is not 64 lowercase hex chars
// before the database is consulted.
func validTokenFormat(token string) bool {
	if len(token) != tokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
