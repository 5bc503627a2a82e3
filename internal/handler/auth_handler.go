package handler

import (
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/middleware"
	"topic-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup creates an account.
// @Summary Sign up
// @Description Creates a user with an email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account details"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid field"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}

	user, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SignupResponse{
		Message: "User created successfully",
		User:    toUserResponse(user),
	})
}

// Login exchanges credentials for a token pair.
// @Summary Log in
// @Description Verifies email and password and issues access and refresh tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Message:      "Login successful",
		User:         toUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshToken handles refreshing JWT tokens.
// @Summary Refresh JWT Token
// @Description Provides a new access token and refresh token using a valid refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshTokenRequest body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}
	if req.RefreshToken == "" {
		return domain.NewMissingFieldError("refresh_token")
	}

	accessToken, refreshToken, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		logger.Get().Warn("Failed to refresh token", zap.Error(err))
		return err
	}
	return c.JSON(dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Me returns the authenticated user's profile.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domain.NewUnauthorizedError("User not authenticated")
	}

	user, err := h.authService.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(user))
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
