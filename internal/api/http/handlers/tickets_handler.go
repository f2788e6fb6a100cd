package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nsight-itsm/assistant/internal/api/dto"
	"github.com/nsight-itsm/assistant/internal/auth"
	"github.com/nsight-itsm/assistant/internal/service"
	apperrors "github.com/nsight-itsm/assistant/pkg/util"
)

// TicketsHandler manages end-user ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CheckResolution POST /tickets/check-resolution.
func (h *TicketsHandler) CheckResolution(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CheckResolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.CheckResolution(c.UserContext(), principal.SessionID, req.Issue)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CheckResolutionResponse{
		Category:       result.Category,
		Tips:           result.Tips,
		SimilarTickets: result.SimilarTickets,
	}})
}

// Submit POST /tickets.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticketID, err := h.service.SubmitTicket(c.UserContext(), principal.SessionID, principal.Email, req.Title)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SubmitTicketResponse{TicketID: ticketID}})
}

// ListMine GET /tickets.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.MyTickets(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Similar GET /tickets/similar.
func (h *TicketsHandler) Similar(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	similar, err := h.service.SimilarTickets(c.UserContext(), principal.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": similar})
}

// Detail GET /tickets/:id.
func (h *TicketsHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.service.TicketDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detail})
}

// Attachments GET /tickets/:id/attachments.
func (h *TicketsHandler) Attachments(c *fiber.Ctx) error {
	attachments, err := h.service.Attachments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": attachments})
}
