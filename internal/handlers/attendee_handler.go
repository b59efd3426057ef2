package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	EventID string `json:"event_id"`
	Notes   string `json:"notes"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled checked_in"`
}

type SearchAttendeesRequest struct {
	Search    string `json:"search"`
	Status    string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled checked_in"`
	EventID   string `json:"event_id"`
	Sort      string `json:"sort"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page" validate:"omitempty,gte=1,lte=100"`
}

func (r SearchAttendeesRequest) query() services.SearchQuery {
	return services.SearchQuery{
		Search:    r.Search,
		Status:    r.Status,
		Sort:      r.Sort,
		Direction: r.Direction,
		Page:      r.Page,
		PerPage:   r.PerPage,
	}
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	if req.EventID == "" {
		return respondErr(c, apperrors.ErrEventIDRequired)
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return respondErr(c, apperrors.ErrValidation)
	}

	attendee, err := h.attendeeSvc.Register(middleware.Identity(c), eventID, req.Notes)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.Created(c, attendee)
}

func (h *Handler) CancelRegistration(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	if err := h.attendeeSvc.Cancel(middleware.Identity(c), id); err != nil {
		return respondErr(c, err)
	}

	return utils.OKEmpty(c)
}

func (h *Handler) SetAttendeeStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	var req SetStatusRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	attendee, err := h.attendeeSvc.SetStatus(middleware.Identity(c), id, req.Status)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, attendee)
}

func (h *Handler) SearchMyRegistrations(c *fiber.Ctx) error {
	var req SearchAttendeesRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	attendees, total, err := h.attendeeSvc.MyRegistrationsSearch(middleware.Identity(c), req.query())
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OKList(c, attendees, total)
}

func (h *Handler) SearchEventAttendees(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	var req SearchAttendeesRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	attendees, total, err := h.attendeeSvc.EventAttendeesSearch(middleware.Identity(c), eventID, req.query())
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OKList(c, attendees, total)
}

func (h *Handler) AdminSearchAttendees(c *fiber.Ctx) error {
	var req SearchAttendeesRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	eventID := uuid.Nil
	if req.EventID != "" {
		id, err := uuid.Parse(req.EventID)
		if err != nil {
			return respondErr(c, apperrors.ErrValidation)
		}
		eventID = id
	}

	attendees, total, err := h.attendeeSvc.AdminSearch(eventID, req.query())
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OKList(c, attendees, total)
}

// ExportEventAttendees streams an event's attendee list as CSV.
func (h *Handler) ExportEventAttendees(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	event, attendees, err := h.attendeeSvc.ExportEventAttendees(middleware.Scope(c), eventID)
	if err != nil {
		return respondErr(c, err)
	}

	body, err := attendeesCSV(attendees)
	if err != nil {
		return respondErr(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendees-%s.csv"`, event.ID))
	return c.Send(body)
}

func attendeesCSV(attendees []models.Attendee) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "email", "ticket_number", "status", "payment_status", "payment_amount", "checked_in_at", "registered_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, a := range attendees {
		checkedIn := ""
		if a.CheckedInAt != nil {
			checkedIn = a.CheckedInAt.Format(time.RFC3339)
		}
		row := []string{
			a.Name,
			a.Email,
			a.TicketNumber,
			a.Status,
			a.PaymentStatus,
			strconv.FormatFloat(a.PaymentAmount, 'f', 2, 64),
			checkedIn,
			a.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
