package service

import (
	"time"

	"hostpanel/internal/apperr"
	"hostpanel/internal/crypto"
	"hostpanel/internal/models"
	"hostpanel/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Login returns a signed token and the authenticated user. The response
	// never reveals whether the email exists.
	Login(req models.LoginRequest, ipAddress string) (string, *models.User, error)
	Register(req models.RegisterRequest) (*models.User, error)
	VerifyToken(tokenString string) (*models.Claims, error)
}

type authService struct {
	users         repository.UserRepository
	attempts      repository.LoginAttemptRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
	logger        *zap.Logger
}

func NewAuthService(users repository.UserRepository, attempts repository.LoginAttemptRepository,
	jwtSecret string, jwtExpirationSeconds int64, logger *zap.Logger) AuthService {
	return &authService{
		users:         users,
		attempts:      attempts,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationSeconds) * time.Second,
		logger:        logger,
	}
}

func (s *authService) Login(req models.LoginRequest, ipAddress string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if user == nil {
		s.recordAttempt(req.Email, ipAddress, false)
		return "", nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	ok, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("Failed to verify password hash", zap.String("email", req.Email), zap.Error(err))
		return "", nil, apperr.Wrap(apperr.Internal, "failed to verify credentials", err)
	}
	if !ok {
		s.recordAttempt(req.Email, ipAddress, false)
		return "", nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	if user.MFAEnabled {
		if user.MFASecret == nil || req.TOTPCode == nil || !crypto.VerifyTOTP(*req.TOTPCode, *user.MFASecret) {
			s.recordAttempt(req.Email, ipAddress, false)
			return "", nil, apperr.New(apperr.Unauthorized, "invalid credentials")
		}
	}

	attempt := &models.LoginAttempt{
		ID:          uuid.New(),
		Email:       req.Email,
		IPAddress:   ipAddress,
		Success:     true,
		AttemptedAt: time.Now().UTC(),
	}
	if err := s.attempts.Record(attempt); err != nil {
		return "", nil, apperr.Wrap(apperr.Database, "database error", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", nil, apperr.Wrap(apperr.Internal, "failed to generate token", err)
	}

	s.logger.Info("User logged in", zap.String("email", user.Email))
	return token, user, nil
}

func (s *authService) Register(req models.RegisterRequest) (*models.User, error) {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.BadRequest, "email already registered")
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         string(models.RoleUser),
		Company:      req.Company,
		MFAEnabled:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, apperr.New(apperr.BadRequest, "email already registered")
		}
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}

	return user, nil
}

func (s *authService) VerifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "invalid token")
	}
	return claims, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// recordAttempt writes a failed-login audit row. A failed audit write is
// logged, not surfaced, so it cannot mask the Unauthorized result.
func (s *authService) recordAttempt(email, ipAddress string, success bool) {
	attempt := &models.LoginAttempt{
		ID:          uuid.New(),
		Email:       email,
		IPAddress:   ipAddress,
		Success:     success,
		AttemptedAt: time.Now().UTC(),
	}
	if err := s.attempts.Record(attempt); err != nil {
		s.logger.Error("Failed to record login attempt", zap.String("email", email), zap.Error(err))
	}
}
