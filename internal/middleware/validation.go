package middleware

import (
	"topic-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const ValidatedUserIDKey = "validated_user_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateUserIDQuery checks the user_id query parameter and stores it
// under ValidatedUserIDKey.
func (vm *ValidationMiddleware) ValidateUserIDQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if err := vm.validator.ValidateUserID(userID); err != nil {
			return err // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedUserIDKey, userID)
		return c.Next()
	}
}
