package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// AuthHandler exposes login, logout and the current user.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	result, err := h.auth.Login(c.UserContext(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Message:   "Login successful",
		Token:     result.Token.Token,
		ExpiresAt: result.Token.ExpiresAt,
		User:      dto.NewUserResponse(result.User),
	})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Successfully logged out"})
}

// User handles GET /user.
func (h *AuthHandler) User(c *fiber.Ctx) error {
	user, err := h.auth.CurrentUser(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
