package services

import (
	"time"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/authz"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"

	"github.com/google/uuid"
)

type EventService struct {
	events repositories.EventRepository
	now    func() time.Time
}

func NewEventService(repo *repositories.Repository) *EventService {
	return &EventService{events: repo.EventRepo, now: time.Now}
}

type CreateEventInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time

	Venue   string
	Address string
	City    string
	Country string

	Capacity int
	Price    float64
	Currency string

	Status   string
	Category string

	ImageURL string

	RegistrationDeadline *time.Time
	RequiresApproval     bool
}

// UpdateEventInput uses pointers so absent fields are left untouched.
type UpdateEventInput struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time

	Venue   *string
	Address *string
	City    *string
	Country *string

	Capacity *int
	Price    *float64
	Currency *string

	Status   *string
	Category *string

	ImageURL *string

	RegistrationDeadline *time.Time
	RequiresApproval     *bool
}

func (s *EventService) Create(ident authz.Identity, in CreateEventInput) (*models.Event, error) {
	if in.Title == "" || in.StartDate.IsZero() {
		return nil, apperrors.ErrTitleAndStartDateRequired
	}

	status := in.Status
	if status == "" {
		status = models.EventStatusDraft
	}
	category := in.Category
	if category == "" {
		category = models.CategoryOther
	}
	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}

	event := &models.Event{
		ID:                   uuid.New(),
		Title:                in.Title,
		Description:          in.Description,
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		Venue:                in.Venue,
		Address:              in.Address,
		City:                 in.City,
		Country:              in.Country,
		Capacity:             in.Capacity,
		AvailableSpots:       in.Capacity,
		Price:                in.Price,
		Currency:             currency,
		Status:               status,
		Category:             category,
		ImageURL:             in.ImageURL,
		RegistrationDeadline: in.RegistrationDeadline,
		RequiresApproval:     in.RequiresApproval,
		OrganizerID:          ident.ID,
		OrganizerName:        ident.Name,
		OrganizerEmail:       ident.Email,
	}

	if err := s.events.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(id uuid.UUID) (*models.Event, error) {
	event, err := s.events.GetByID(id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return event, nil
}

func (s *EventService) Update(scope authz.Scope, id uuid.UUID, in UpdateEventInput) (*models.Event, error) {
	event, err := s.events.GetByID(id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !scope.CanManage(event.OrganizerID) {
		return nil, apperrors.ErrForbidden
	}

	// A capacity change preserves the booked count: whoever already holds a
	// spot keeps it, only the free remainder is recomputed.
	if in.Capacity != nil && *in.Capacity != event.Capacity {
		booked := event.Capacity - event.AvailableSpots
		event.AvailableSpots = *in.Capacity - booked
		event.Capacity = *in.Capacity
	}

	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.StartDate != nil {
		event.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		event.EndDate = in.EndDate
	}
	if in.Venue != nil {
		event.Venue = *in.Venue
	}
	if in.Address != nil {
		event.Address = *in.Address
	}
	if in.City != nil {
		event.City = *in.City
	}
	if in.Country != nil {
		event.Country = *in.Country
	}
	if in.Price != nil {
		event.Price = *in.Price
	}
	if in.Currency != nil {
		event.Currency = *in.Currency
	}
	if in.Status != nil {
		event.Status = *in.Status
	}
	if in.Category != nil {
		event.Category = *in.Category
	}
	if in.ImageURL != nil {
		event.ImageURL = *in.ImageURL
	}
	if in.RegistrationDeadline != nil {
		event.RegistrationDeadline = in.RegistrationDeadline
	}
	if in.RequiresApproval != nil {
		event.RequiresApproval = *in.RequiresApproval
	}

	if err := s.events.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the event record. Attendee records are not cascaded.
func (s *EventService) Delete(scope authz.Scope, id uuid.UUID) error {
	event, err := s.events.GetByID(id)
	if err != nil {
		return asNotFound(err)
	}
	if !scope.CanManage(event.OrganizerID) {
		return apperrors.ErrForbidden
	}
	return s.events.Delete(id)
}

// Duplicate clones an event as a fresh draft owned by the acting user, with
// the full capacity available again.
func (s *EventService) Duplicate(ident authz.Identity, scope authz.Scope, id uuid.UUID) (*models.Event, error) {
	original, err := s.events.GetByID(id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !scope.CanManage(original.OrganizerID) {
		return nil, apperrors.ErrForbidden
	}

	clone := &models.Event{
		ID:                   uuid.New(),
		Title:                original.Title + " (Copy)",
		Description:          original.Description,
		StartDate:            original.StartDate,
		EndDate:              original.EndDate,
		Venue:                original.Venue,
		Address:              original.Address,
		City:                 original.City,
		Country:              original.Country,
		Capacity:             original.Capacity,
		AvailableSpots:       original.Capacity,
		Price:                original.Price,
		Currency:             original.Currency,
		Status:               models.EventStatusDraft,
		Category:             original.Category,
		ImageURL:             original.ImageURL,
		RegistrationDeadline: original.RegistrationDeadline,
		RequiresApproval:     original.RequiresApproval,
		OrganizerID:          ident.ID,
		OrganizerName:        ident.Name,
		OrganizerEmail:       ident.Email,
	}

	if err := s.events.Create(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// PublicSearch only ever exposes published events that have not started yet,
// regardless of the requested filters.
func (s *EventService) PublicSearch(q SearchQuery) ([]models.Event, int64, error) {
	now := s.now()
	filters := repositories.EventFilters{
		Status:      models.EventStatusPublished,
		Category:    q.Category,
		City:        q.City,
		Search:      q.Search,
		StartsAfter: &now,
	}
	page := repositories.Page{
		Page:      q.Page,
		PerPage:   q.PerPage,
		Sort:      q.Sort,
		Direction: q.Direction,
	}
	return s.events.Search(filters, page)
}

// MyEventsSearch lists the caller's own events; an unrestricted scope sees
// everything.
func (s *EventService) MyEventsSearch(scope authz.Scope, q SearchQuery) ([]models.Event, int64, error) {
	filters := repositories.EventFilters{
		Status:   q.Status,
		Category: q.Category,
		Search:   q.Search,
	}
	if !scope.Unrestricted() {
		filters.OrganizerID = scope.UserID()
	}

	page := repositories.Page{
		Page:      q.Page,
		PerPage:   q.PerPage,
		Sort:      q.Sort,
		Direction: q.Direction,
	}
	if page.Sort == "" {
		page.Sort = "created_at"
		page.Direction = "desc"
	}
	return s.events.Search(filters, page)
}
