package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/orgadmin/internal/security/audit"
	"github.com/yourorg/orgadmin/internal/security/auth"
	"github.com/yourorg/orgadmin/pkg/cache"
	"github.com/yourorg/orgadmin/pkg/config"
)

// AuthService is the shared-credential gate in front of the console. It is
// not a user system: one username and one password, compared against a bcrypt
// hash, yielding a revocable session token. Audit attribution always uses the
// fixed administrator actor.
type AuthService struct {
	tokens       *auth.TokenManager
	sessions     *cache.Cache
	audit        *audit.Logger
	logger       *slog.Logger
	username     string
	passwordHash []byte
	sessionTTL   time.Duration
	operatorID   string
	operatorName string
}

// LoginResult represents a successful login
type LoginResult struct {
	Token        string `json:"token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	TokenType    string `json:"token_type"`
	OperatorName string `json:"operator_name"`
}

// NewAuthService creates the gate from the configured shared credential.
func NewAuthService(cfg *config.Config, auditLogger *audit.Logger, logger *slog.Logger) (*AuthService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if auditLogger == nil {
		auditLogger = audit.NewLogger(logger)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash admin password", slog.String("error", err.Error()))
		return nil, errors.New("failed to initialize auth")
	}

	return &AuthService{
		tokens:       auth.NewTokenManager(cfg.JWTSecret, "orgadmin"),
		sessions:     cache.New(),
		audit:        auditLogger,
		logger:       logger,
		username:     cfg.AdminUsername,
		passwordHash: hash,
		sessionTTL:   time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		operatorID:   cfg.OperatorID,
		operatorName: cfg.OperatorName,
	}, nil
}

// Login verifies the shared credential and issues a session token.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if username != s.username {
		s.audit.LogDenied(username, "unknown username")
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.audit.LogDenied(username, "wrong password")
		return nil, errors.New("invalid credentials")
	}

	sessionID := uuid.NewString()
	token, err := s.tokens.GenerateToken(sessionID, s.operatorID, s.operatorName, s.sessionTTL)
	if err != nil {
		s.logger.Error("failed to sign session token", slog.String("error", err.Error()))
		return nil, errors.New("failed to log in")
	}
	s.sessions.Set(sessionID, username, s.sessionTTL)

	s.logger.Info("operator logged in", slog.String("username", username))
	return &LoginResult{
		Token:        token,
		ExpiresIn:    int(s.sessionTTL.Seconds()),
		TokenType:    "Bearer",
		OperatorName: s.operatorName,
	}, nil
}

// LoggedIn reports whether a token belongs to a live session: signature
// valid, not expired, not logged out.
func (s *AuthService) LoggedIn(token string) bool {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return false
	}
	_, live := s.sessions.Get(claims.ID)
	return live
}

// Logout revokes the session behind a token. Revoking an invalid or already
// expired token is a no-op.
func (s *AuthService) Logout(token string) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return
	}
	s.sessions.Delete(claims.ID)
	s.logger.Info("operator logged out", slog.String("username", s.username))
}
