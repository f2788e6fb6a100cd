package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nsight-itsm/assistant/internal/api/dto"
	"github.com/nsight-itsm/assistant/internal/auth"
	"github.com/nsight-itsm/assistant/internal/service"
	apperrors "github.com/nsight-itsm/assistant/pkg/util"
)

// AdminHandler manages the admin dashboard endpoints.
type AdminHandler struct {
	service *service.TicketService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(ticketService *service.TicketService) *AdminHandler {
	return &AdminHandler{service: ticketService}
}

// ListAll GET /admin/tickets.
func (h *AdminHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.service.AllTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Search GET /admin/tickets/search?q=.
func (h *AdminHandler) Search(c *fiber.Ctx) error {
	tickets, err := h.service.SearchTickets(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Stats GET /admin/tickets/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		Total:      stats.Total,
		Open:       stats.Open,
		InProgress: stats.InProgress,
		Resolved:   stats.Resolved,
		Closed:     stats.Closed,
	}})
}

// Resolved GET /admin/tickets/resolved.
func (h *AdminHandler) Resolved(c *fiber.Ctx) error {
	blocks, err := h.service.ResolvedBlocks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": blocks})
}

// Latest GET /admin/tickets/latest. Query params pass through as
// backend filters.
func (h *AdminHandler) Latest(c *fiber.Ctx) error {
	filters := map[string]any{}
	if email := c.Query("user_email"); email != "" {
		filters["user_email"] = email
	}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}
	detail, err := h.service.LatestTicket(c.UserContext(), filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detail})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	tickets, err := h.service.UpdateStatus(c.UserContext(), principal.Email, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Suggestion POST /admin/tickets/:id/suggestion.
func (h *AdminHandler) Suggestion(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bullets, err := h.service.Suggestion(c.UserContext(), principal.Email, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BulletListResponse{Bullets: bullets}})
}

// Summary POST /admin/tickets/:id/summary.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bullets, err := h.service.ITSummary(c.UserContext(), principal.Email, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BulletListResponse{Bullets: bullets}})
}
