package handlers

import (
	"time"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`

	Venue   string `json:"venue"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`

	Capacity int     `json:"capacity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`

	Status   string `json:"status" validate:"omitempty,oneof=draft published cancelled"`
	Category string `json:"category" validate:"omitempty,oneof=conference workshop seminar networking social other"`

	ImageURL string `json:"image_url"`

	RegistrationDeadline string `json:"registration_deadline"`
	RequiresApproval     bool   `json:"requires_approval"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`

	Venue   *string `json:"venue"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`

	Capacity *int     `json:"capacity" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency *string  `json:"currency" validate:"omitempty,len=3"`

	Status   *string `json:"status" validate:"omitempty,oneof=draft published cancelled"`
	Category *string `json:"category" validate:"omitempty,oneof=conference workshop seminar networking social other"`

	ImageURL *string `json:"image_url"`

	RegistrationDeadline *string `json:"registration_deadline"`
	RequiresApproval     *bool   `json:"requires_approval"`
}

type SearchEventsRequest struct {
	Search    string `json:"search"`
	Status    string `json:"status" validate:"omitempty,oneof=draft published cancelled"`
	Category  string `json:"category" validate:"omitempty,oneof=conference workshop seminar networking social other"`
	City      string `json:"city"`
	Sort      string `json:"sort"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page" validate:"omitempty,gte=1,lte=100"`
}

func (r SearchEventsRequest) query() services.SearchQuery {
	return services.SearchQuery{
		Search:    r.Search,
		Status:    r.Status,
		Category:  r.Category,
		City:      r.City,
		Sort:      r.Sort,
		Direction: r.Direction,
		Page:      r.Page,
		PerPage:   r.PerPage,
	}
}

func (h *Handler) SearchEvents(c *fiber.Ctx) error {
	var req SearchEventsRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	events, total, err := h.eventSvc.PublicSearch(req.query())
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OKList(c, events, total)
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	event, err := h.eventSvc.Get(id)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, event)
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	if req.Title == "" || req.StartDate == "" {
		return respondErr(c, apperrors.ErrTitleAndStartDateRequired)
	}

	input, err := req.input()
	if err != nil {
		return respondErr(c, err)
	}

	event, err := h.eventSvc.Create(middleware.Identity(c), input)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.Created(c, event)
}

func (h *Handler) SearchMyEvents(c *fiber.Ctx) error {
	var req SearchEventsRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	events, total, err := h.eventSvc.MyEventsSearch(middleware.Scope(c), req.query())
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OKList(c, events, total)
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	var req UpdateEventRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	input, err := req.input()
	if err != nil {
		return respondErr(c, err)
	}

	event, err := h.eventSvc.Update(middleware.Scope(c), id, input)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, event)
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	if err := h.eventSvc.Delete(middleware.Scope(c), id); err != nil {
		return respondErr(c, err)
	}

	return utils.OKEmpty(c)
}

func (h *Handler) DuplicateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	event, err := h.eventSvc.Duplicate(middleware.Identity(c), middleware.Scope(c), id)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, event)
}

func (r CreateEventRequest) input() (services.CreateEventInput, error) {
	startDate, err := parseTime(r.StartDate)
	if err != nil {
		return services.CreateEventInput{}, apperrors.ErrValidation
	}
	endDate, err := parseTimePtr(r.EndDate)
	if err != nil {
		return services.CreateEventInput{}, apperrors.ErrValidation
	}
	deadline, err := parseTimePtr(r.RegistrationDeadline)
	if err != nil {
		return services.CreateEventInput{}, apperrors.ErrValidation
	}

	return services.CreateEventInput{
		Title:                r.Title,
		Description:          r.Description,
		StartDate:            startDate,
		EndDate:              endDate,
		Venue:                r.Venue,
		Address:              r.Address,
		City:                 r.City,
		Country:              r.Country,
		Capacity:             r.Capacity,
		Price:                r.Price,
		Currency:             r.Currency,
		Status:               r.Status,
		Category:             r.Category,
		ImageURL:             r.ImageURL,
		RegistrationDeadline: deadline,
		RequiresApproval:     r.RequiresApproval,
	}, nil
}

func (r UpdateEventRequest) input() (services.UpdateEventInput, error) {
	input := services.UpdateEventInput{
		Title:            r.Title,
		Description:      r.Description,
		Venue:            r.Venue,
		Address:          r.Address,
		City:             r.City,
		Country:          r.Country,
		Capacity:         r.Capacity,
		Price:            r.Price,
		Currency:         r.Currency,
		Status:           r.Status,
		Category:         r.Category,
		ImageURL:         r.ImageURL,
		RequiresApproval: r.RequiresApproval,
	}

	if r.StartDate != nil {
		startDate, err := parseTime(*r.StartDate)
		if err != nil {
			return services.UpdateEventInput{}, apperrors.ErrValidation
		}
		input.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := parseTime(*r.EndDate)
		if err != nil {
			return services.UpdateEventInput{}, apperrors.ErrValidation
		}
		input.EndDate = &endDate
	}
	if r.RegistrationDeadline != nil {
		deadline, err := parseTime(*r.RegistrationDeadline)
		if err != nil {
			return services.UpdateEventInput{}, apperrors.ErrValidation
		}
		input.RegistrationDeadline = &deadline
	}

	return input, nil
}

// parseIDParam reads the :id path parameter. A malformed id maps to
// NOT_FOUND since no resource can carry it.
func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return id, nil
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func parseTimePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
