package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nsight-itsm/assistant/internal/api/dto"
	"github.com/nsight-itsm/assistant/internal/auth"
	apperrors "github.com/nsight-itsm/assistant/pkg/util"
)

// AuthHandler manages the dashboard login endpoint.
type AuthHandler struct {
	authenticator *auth.Authenticator
	tokens        *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authenticator *auth.Authenticator, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, tokens: tokens}
}

// Login POST /auth/login. A fresh session id is minted per login; it
// scopes the classification state cached between requests.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email, password required", nil)
	}

	role, err := h.authenticator.Authenticate(req.Email, req.Password)
	if err != nil {
		return err
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.Email, role, uuid.NewString())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		Role:      string(role),
		ExpiresAt: expiresAt,
	}})
}
