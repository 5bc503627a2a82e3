package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"topic-quiz/internal/config"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/util"
	"topic-quiz/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (user *domain.User, accessToken string, refreshToken string, err error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type authServiceImpl struct {
	userRepo   domain.UserRepository
	jwtConfig  config.JWTConfig
	bcryptCost int
	validator  *validation.Validator
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, jwtConfig config.JWTConfig) (AuthService, error) {
	if len(jwtConfig.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtConfig:  jwtConfig,
		bcryptCost: bcrypt.DefaultCost,
		validator:  validation.NewValidator(),
	}, nil
}

func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, error) {
	if err := s.validator.ValidateSignup(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	user := domain.NewUser(util.NewULID(), strings.TrimSpace(req.Name), email, string(hash))
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to create user", err)
	}

	logger.Get().Info("User signed up", zap.String("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, string, string, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, "", "", err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, "", "", domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, "", "", unauthorized("Invalid email or password", ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Get().Warn("Login with wrong password", zap.String("userID", user.ID))
		return nil, "", "", unauthorized("Invalid email or password", ErrInvalidCredentials)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	logger.Get().Info("User logged in", zap.String("userID", user.ID))
	return user, accessToken, refreshToken, nil
}

func (s *authServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return user, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
			ID:        util.NewULID(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		}
		return nil, unauthorized("Invalid or expired token", fmt.Errorf("%w: %v", ErrInvalidJWTToken, err))
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, unauthorized("Invalid or expired token", ErrInvalidJWTToken)
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", unauthorized("Not a refresh token", ErrInvalidJWTToken)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		logger.Get().Warn("User not found for refresh token", zap.String("userID", claims.UserID))
		return "", "", unauthorized("User no longer exists", ErrInvalidJWTToken)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return "", "", err
	}
	logger.Get().Info("JWT token refreshed", zap.String("userID", user.ID))
	return accessToken, refreshToken, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.jwtConfig.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.jwtConfig.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create refresh token", err)
	}
	return accessToken, refreshToken, nil
}

func unauthorized(message string, err error) *domain.DomainError {
	return domain.NewError(domain.ErrUnauthorized, message, err)
}

func snippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}
