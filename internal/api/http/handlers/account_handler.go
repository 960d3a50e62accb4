package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AccountHandler exposes the employee login endpoint.
type AccountHandler struct {
	auth *service.AuthService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(authService *service.AuthService) *AccountHandler {
	return &AccountHandler{auth: authService}
}

// Login handles POST /employees/login. The body is the form-encoded
// password grant; failures are uniformly 401.
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
