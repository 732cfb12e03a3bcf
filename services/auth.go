package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

// AuthService is the identity provider and authorization gate: it signs
// users in and out of sessions and answers allow-list membership.
type AuthService struct {
	userRepo      *database.UserRepo
	adminUserRepo *database.AdminUserRepo
	secret        []byte
	tokenTTL      time.Duration
	logger        zerolog.Logger
}

func NewAuthService(db database.Database, secret []byte, tokenTTL time.Duration) *AuthService {
	logger := log.With().Str("serviceName", "authService").Logger()

	return &AuthService{
		userRepo:      db.UserRepo(),
		adminUserRepo: db.AdminUserRepo(),
		secret:        secret,
		tokenTTL:      tokenTTL,
		logger:        logger,
	}
}

// SignIn verifies credentials and returns a session token for the user.
func (s *AuthService) SignIn(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return "", nil, errs.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errs.NewInvalidCredentialsError()
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SignUp creates a user and self-promotes it onto the admin allow-list.
// A promotion storage failure is reported so the caller can render an
// actionable message; the user row itself still exists.
func (s *AuthService) SignUp(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil, errs.NewValidationError("email")
	}
	if password == "" {
		return "", nil, errs.NewValidationError("password")
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errs.NewDatabaseError("find", "user", err)
	}
	if existing != nil {
		return "", nil, errs.NewAlreadyExists("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, errs.NewInternalError("failed to hash password")
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Add(user); err != nil {
		return "", nil, errs.NewDatabaseError("create", "user", err)
	}

	if _, err := s.adminUserRepo.Promote(user.ID, user.Email); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to promote new user to admin")
		return "", nil, errs.NewDatabaseError("promote", "admin user", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IsAdmin reports whether the identity is on the allow-list.
func (s *AuthService) IsAdmin(userID uuid.UUID) (bool, error) {
	isAdmin, err := s.adminUserRepo.IsAdmin(userID)
	if err != nil {
		return false, errs.NewDatabaseError("check", "admin user", err)
	}
	return isAdmin, nil
}

// Promote elevates an identity to admin. Promoting an existing admin is a
// no-op success; created reports whether a new allow-list row was written.
func (s *AuthService) Promote(userID uuid.UUID, email string) (created bool, err error) {
	created, err = s.adminUserRepo.Promote(userID, email)
	if err != nil {
		return false, errs.NewDatabaseError("promote", "admin user", err)
	}
	return created, nil
}

// VerifyToken validates a session token and returns the identity it carries.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errs.NewUnauthorizedError("invalid session token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, errs.NewUnauthorizedError("invalid session token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.NewUnauthorizedError("invalid session token")
	}
	return userID, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errs.NewInternalError("failed to sign session token")
	}
	return signed, nil
}
