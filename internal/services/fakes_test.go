package services

import (
	"strings"
	"sync"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeEventRepo is an in-memory EventRepository. ReserveSpot and ReleaseSpot
// mirror the conditional SQL updates of the real implementation.
type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[uuid.UUID]*models.Event)}
	for _, e := range events {
		cp := *e
		repo.events[e.ID] = &cp
	}
	return repo
}

func (f *fakeEventRepo) Create(event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(id uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *event
	return &cp, nil
}

func (f *fakeEventRepo) Update(event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) Search(filters repositories.EventFilters, page repositories.Page) ([]models.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []models.Event
	for _, event := range f.events {
		if filters.Status != "" && event.Status != filters.Status {
			continue
		}
		if filters.Category != "" && event.Category != filters.Category {
			continue
		}
		if filters.OrganizerID != uuid.Nil && event.OrganizerID != filters.OrganizerID {
			continue
		}
		if filters.StartsAfter != nil && event.StartDate.Before(*filters.StartsAfter) {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(event.Title), strings.ToLower(filters.Search)) {
			continue
		}
		matches = append(matches, *event)
	}
	return matches, int64(len(matches)), nil
}

func (f *fakeEventRepo) ReserveSpot(id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok || event.AvailableSpots <= 0 {
		return false, nil
	}
	event.AvailableSpots--
	return true, nil
}

func (f *fakeEventRepo) ReleaseSpot(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok || event.Capacity <= 0 {
		return nil
	}
	if event.AvailableSpots < event.Capacity {
		event.AvailableSpots++
	}
	return nil
}

func (f *fakeEventRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.events)), nil
}

func (f *fakeEventRepo) spots(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[id].AvailableSpots
}

// fakeAttendeeRepo is an in-memory AttendeeRepository enforcing the unique
// (event, user) constraint the way the database does. createErr, when set,
// overrides Create to simulate storage failures.
type fakeAttendeeRepo struct {
	mu        sync.Mutex
	attendees map[uuid.UUID]*models.Attendee
	createErr error
}

func newFakeAttendeeRepo(attendees ...*models.Attendee) *fakeAttendeeRepo {
	repo := &fakeAttendeeRepo{attendees: make(map[uuid.UUID]*models.Attendee)}
	for _, a := range attendees {
		cp := *a
		repo.attendees[a.ID] = &cp
	}
	return repo
}

func (f *fakeAttendeeRepo) Create(attendee *models.Attendee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.attendees {
		if existing.EventID == attendee.EventID && existing.UserID == attendee.UserID {
			return gorm.ErrDuplicatedKey
		}
		if existing.TicketNumber == attendee.TicketNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *attendee
	f.attendees[attendee.ID] = &cp
	return nil
}

func (f *fakeAttendeeRepo) GetByID(id uuid.UUID) (*models.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attendee, ok := f.attendees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *attendee
	return &cp, nil
}

func (f *fakeAttendeeRepo) GetByEventAndUser(eventID, userID uuid.UUID) (*models.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, attendee := range f.attendees {
		if attendee.EventID == eventID && attendee.UserID == userID {
			cp := *attendee
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendeeRepo) Update(attendee *models.Attendee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.attendees[attendee.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *attendee
	f.attendees[attendee.ID] = &cp
	return nil
}

func (f *fakeAttendeeRepo) Search(filters repositories.AttendeeFilters, page repositories.Page) ([]models.Attendee, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []models.Attendee
	for _, attendee := range f.attendees {
		if filters.EventID != uuid.Nil && attendee.EventID != filters.EventID {
			continue
		}
		if filters.UserID != uuid.Nil && attendee.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && attendee.Status != filters.Status {
			continue
		}
		if filters.Search != "" {
			term := strings.ToLower(filters.Search)
			ticket := strings.ToLower(attendee.TicketNumber)
			if filters.TicketOnly {
				if !strings.Contains(ticket, term) {
					continue
				}
			} else if !strings.Contains(strings.ToLower(attendee.Name), term) &&
				!strings.Contains(strings.ToLower(attendee.Email), term) &&
				!strings.Contains(ticket, term) {
				continue
			}
		}
		matches = append(matches, *attendee)
	}
	return matches, int64(len(matches)), nil
}

func (f *fakeAttendeeRepo) ListByEvent(eventID uuid.UUID) ([]models.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []models.Attendee
	for _, attendee := range f.attendees {
		if attendee.EventID == eventID {
			matches = append(matches, *attendee)
		}
	}
	return matches, nil
}

func (f *fakeAttendeeRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.attendees)), nil
}

func (f *fakeAttendeeRepo) byID(id uuid.UUID) *models.Attendee {
	f.mu.Lock()
	defer f.mu.Unlock()
	attendee, ok := f.attendees[id]
	if !ok {
		return nil
	}
	cp := *attendee
	return &cp
}

// fakeMailer records confirmation emails and can be told to fail.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []string // ticket numbers
	sendErr error
}

func (f *fakeMailer) SendRegistrationConfirmation(name, email, eventTitle, ticketNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, ticketNumber)
	return nil
}
