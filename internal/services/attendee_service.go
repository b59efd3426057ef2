package services

import (
	"errors"
	"time"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/authz"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Mailer dispatches best-effort transactional email.
type Mailer interface {
	SendRegistrationConfirmation(name, email, eventTitle, ticketNumber string) error
}

type AttendeeService struct {
	events    repositories.EventRepository
	attendees repositories.AttendeeRepository
	cfg       *config.Config
	mailer    Mailer

	now    func() time.Time
	qrcode func(content, dirPath string) (string, error)
}

func NewAttendeeService(repo *repositories.Repository, cfg *config.Config, mailer Mailer) *AttendeeService {
	return &AttendeeService{
		events:    repo.EventRepo,
		attendees: repo.AttendeeRepo,
		cfg:       cfg,
		mailer:    mailer,
		now:       time.Now,
		qrcode:    utils.GenerateQRCodeImage,
	}
}

// Register creates a registration for the acting user. Preconditions are
// checked in a fixed order and the first failure wins. The capacity decrement
// is an atomic decrement-if-positive, so the last spot can only be taken once
// even under concurrent requests.
func (s *AttendeeService) Register(ident authz.Identity, eventID uuid.UUID, notes string) (*models.Attendee, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if event.Status != models.EventStatusPublished {
		return nil, apperrors.ErrEventNotAvailable
	}

	now := s.now()
	if !event.StartDate.After(now) {
		return nil, apperrors.ErrEventAlreadyStarted
	}

	if event.RegistrationDeadline != nil && event.RegistrationDeadline.Before(now) {
		return nil, apperrors.ErrRegistrationClosed
	}

	if event.Capacity > 0 && event.AvailableSpots <= 0 {
		return nil, apperrors.ErrEventFull
	}

	if _, err := s.attendees.GetByEventAndUser(eventID, ident.ID); err == nil {
		return nil, apperrors.ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reserved := false
	if event.Capacity > 0 {
		ok, err := s.events.ReserveSpot(eventID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrEventFull
		}
		reserved = true
	}

	status := models.AttendeeStatusConfirmed
	if event.RequiresApproval {
		status = models.AttendeeStatusPending
	}

	paymentStatus := models.PaymentStatusFree
	if event.Price > 0 {
		paymentStatus = models.PaymentStatusPending
	}

	attendee := &models.Attendee{
		ID:            uuid.New(),
		EventID:       event.ID,
		UserID:        ident.ID,
		Name:          ident.Name,
		Email:         ident.Email,
		Status:        status,
		TicketNumber:  utils.NewTicketNumber(event.ID),
		PaymentStatus: paymentStatus,
		PaymentAmount: event.Price,
		Notes:         notes,
	}

	if err := s.attendees.Create(attendee); err != nil {
		if reserved {
			if relErr := s.events.ReleaseSpot(event.ID); relErr != nil {
				logrus.WithError(relErr).WithField("event_id", event.ID).Error("failed to release reserved spot")
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, err
	}

	if filename, err := s.qrcode(attendee.TicketNumber, s.cfg.QRDir); err != nil {
		logrus.WithError(err).WithField("attendee_id", attendee.ID).Warn("failed to generate ticket QR code")
	} else {
		attendee.QRCode = "/qrcodes/" + filename
		if err := s.attendees.Update(attendee); err != nil {
			logrus.WithError(err).WithField("attendee_id", attendee.ID).Warn("failed to store QR code path")
		}
	}

	if err := s.mailer.SendRegistrationConfirmation(ident.Name, ident.Email, event.Title, attendee.TicketNumber); err != nil {
		logrus.WithError(err).WithField("attendee_id", attendee.ID).Warn("failed to send confirmation email")
	}

	return attendee, nil
}

// Cancel marks the caller's registration as cancelled and frees the spot.
// The record is kept; cancellation is a status transition, not a delete.
func (s *AttendeeService) Cancel(ident authz.Identity, attendeeID uuid.UUID) error {
	attendee, err := s.attendees.GetByID(attendeeID)
	if err != nil {
		return asNotFound(err)
	}

	if attendee.UserID != ident.ID {
		return apperrors.ErrForbidden
	}

	if attendee.Status == models.AttendeeStatusCancelled {
		return nil
	}

	attendee.Status = models.AttendeeStatusCancelled
	if err := s.attendees.Update(attendee); err != nil {
		return err
	}

	s.releaseSpotFor(attendee.EventID)
	return nil
}

// SetStatus lets the owning event's organizer move a registration through
// its lifecycle. Checking in stamps the check-in time; cancelling frees the
// spot like a user-initiated cancel.
func (s *AttendeeService) SetStatus(ident authz.Identity, attendeeID uuid.UUID, status string) (*models.Attendee, error) {
	attendee, err := s.attendees.GetByID(attendeeID)
	if err != nil {
		return nil, asNotFound(err)
	}

	event, err := s.events.GetByID(attendee.EventID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if event.OrganizerID != ident.ID {
		return nil, apperrors.ErrForbidden
	}

	previous := attendee.Status
	attendee.Status = status
	if status == models.AttendeeStatusCheckedIn {
		now := s.now()
		attendee.CheckedInAt = &now
	}

	if err := s.attendees.Update(attendee); err != nil {
		return nil, err
	}

	if status == models.AttendeeStatusCancelled && previous != models.AttendeeStatusCancelled {
		s.releaseSpotFor(attendee.EventID)
	}

	return attendee, nil
}

// releaseSpotFor restores one spot on the event if it tracks capacity. The
// event may already be deleted; that is tolerated.
func (s *AttendeeService) releaseSpotFor(eventID uuid.UUID) {
	event, err := s.events.GetByID(eventID)
	if err != nil || event.Capacity <= 0 {
		return
	}
	if err := s.events.ReleaseSpot(eventID); err != nil {
		logrus.WithError(err).WithField("event_id", eventID).Error("failed to release spot")
	}
}

// MyRegistrationsSearch lists the caller's own registrations. Free text only
// matches the ticket number here.
func (s *AttendeeService) MyRegistrationsSearch(ident authz.Identity, q SearchQuery) ([]models.Attendee, int64, error) {
	filters := repositories.AttendeeFilters{
		UserID:     ident.ID,
		Status:     q.Status,
		Search:     q.Search,
		TicketOnly: true,
	}
	page := repositories.Page{Page: q.Page, PerPage: q.PerPage}
	if page.PerPage <= 0 {
		page.PerPage = 20
	}
	return s.attendees.Search(filters, page)
}

// EventAttendeesSearch lists an event's registrations for its organizer.
func (s *AttendeeService) EventAttendeesSearch(ident authz.Identity, eventID uuid.UUID, q SearchQuery) ([]models.Attendee, int64, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, 0, asNotFound(err)
	}
	if event.OrganizerID != ident.ID {
		return nil, 0, apperrors.ErrForbidden
	}

	filters := repositories.AttendeeFilters{
		EventID: eventID,
		Status:  q.Status,
		Search:  q.Search,
	}
	page := repositories.Page{Page: q.Page, PerPage: q.PerPage}
	return s.attendees.Search(filters, page)
}

// AdminSearch is the unrestricted registration search.
func (s *AttendeeService) AdminSearch(eventID uuid.UUID, q SearchQuery) ([]models.Attendee, int64, error) {
	filters := repositories.AttendeeFilters{
		EventID: eventID,
		Status:  q.Status,
		Search:  q.Search,
	}
	page := repositories.Page{
		Page:      q.Page,
		PerPage:   q.PerPage,
		Sort:      q.Sort,
		Direction: q.Direction,
	}
	return s.attendees.Search(filters, page)
}

// ExportEventAttendees returns the full attendee list of an event for CSV
// export, restricted to the event owner or an admin.
func (s *AttendeeService) ExportEventAttendees(scope authz.Scope, eventID uuid.UUID) (*models.Event, []models.Attendee, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	if !scope.CanManage(event.OrganizerID) {
		return nil, nil, apperrors.ErrForbidden
	}

	attendees, err := s.attendees.ListByEvent(eventID)
	if err != nil {
		return nil, nil, err
	}
	return event, attendees, nil
}
