package repositories

import (
	"time"

	"eventhub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	DB           *gorm.DB
	EventRepo    EventRepository
	AttendeeRepo AttendeeRepository
	UserRepo     UserRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		EventRepo:    NewEventRepository(db),
		AttendeeRepo: NewAttendeeRepository(db),
		UserRepo:     NewUserRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Attendee{},
	)
}

// Page carries pagination and sorting for search queries. Sort columns are
// whitelisted per repository; unknown columns fall back to the default order.
type Page struct {
	Page      int
	PerPage   int
	Sort      string
	Direction string
}

// Offset normalizes the page inputs and returns the SQL offset/limit pair.
func (p Page) Offset(defaultPerPage int) (int, int) {
	limit := p.PerPage
	if limit <= 0 || limit > 100 {
		limit = defaultPerPage
	}
	offset := 0
	if p.Page > 1 {
		offset = (p.Page - 1) * limit
	}
	return offset, limit
}

type EventFilters struct {
	Status      string
	Category    string
	City        string
	Search      string
	OrganizerID uuid.UUID  // uuid.Nil means any organizer
	StartsAfter *time.Time // nil means any start date
}

type AttendeeFilters struct {
	EventID uuid.UUID // uuid.Nil means any event
	UserID  uuid.UUID // uuid.Nil means any user
	Status  string
	Search  string
	// TicketOnly restricts free-text matching to the ticket number; otherwise
	// name, email and ticket number are matched.
	TicketOnly bool
}

type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uuid.UUID) (*models.Event, error)
	Update(event *models.Event) error
	Delete(id uuid.UUID) error
	Search(filters EventFilters, page Page) ([]models.Event, int64, error)
	// ReserveSpot atomically decrements available_spots if at least one spot
	// is left. It reports whether a spot was taken.
	ReserveSpot(id uuid.UUID) (bool, error)
	// ReleaseSpot atomically increments available_spots, capped at capacity.
	ReleaseSpot(id uuid.UUID) error
	Count() (int64, error)
}

type AttendeeRepository interface {
	Create(attendee *models.Attendee) error
	GetByID(id uuid.UUID) (*models.Attendee, error)
	GetByEventAndUser(eventID, userID uuid.UUID) (*models.Attendee, error)
	Update(attendee *models.Attendee) error
	Search(filters AttendeeFilters, page Page) ([]models.Attendee, int64, error)
	ListByEvent(eventID uuid.UUID) ([]models.Attendee, error)
	Count() (int64, error)
}

type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	Create(user *models.User) error
	Count() (int64, error)
}
