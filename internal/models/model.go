package models

import (
	"time"

	"github.com/google/uuid"
)

// Event statuses
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

// Event categories
const (
	CategoryConference = "conference"
	CategoryWorkshop   = "workshop"
	CategorySeminar    = "seminar"
	CategoryNetworking = "networking"
	CategorySocial     = "social"
	CategoryOther      = "other"
)

// Attendee statuses
const (
	AttendeeStatusPending   = "pending"
	AttendeeStatusConfirmed = "confirmed"
	AttendeeStatusCancelled = "cancelled"
	AttendeeStatusCheckedIn = "checked_in"
)

// Payment statuses
const (
	PaymentStatusFree     = "free"
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // user|admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   time.Time  `gorm:"index:idx_events_start_status;not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`

	Venue   string `json:"venue"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`

	// capacity == 0 means unlimited
	Capacity       int `gorm:"default:0" json:"capacity"`
	AvailableSpots int `gorm:"default:0" json:"available_spots"`

	Price    float64 `gorm:"default:0" json:"price"` // 0 means free event
	Currency string  `gorm:"type:varchar(3);default:'EUR'" json:"currency"`

	Status   string `gorm:"type:varchar(20);index:idx_events_start_status;default:'draft'" json:"status"`
	Category string `gorm:"type:varchar(20);default:'other'" json:"category"`

	// Organizer snapshot, copied from the acting user at creation time and
	// never refreshed afterwards.
	OrganizerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"organizer_id"`
	OrganizerName  string    `json:"organizer_name"`
	OrganizerEmail string    `json:"organizer_email"`

	ImageURL string `gorm:"default:''" json:"image_url"`

	RegistrationDeadline *time.Time `json:"registration_deadline"`
	RequiresApproval     bool       `gorm:"default:false" json:"requires_approval"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Attendee struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendees_event_user" json:"event_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendees_event_user" json:"user_id"`

	// Snapshot of the registering user, captured at registration time.
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null" json:"email"`

	Status string `gorm:"type:varchar(20);default:'confirmed'" json:"status"`

	TicketNumber string `gorm:"uniqueIndex;not null" json:"ticket_number"`
	QRCode       string `json:"qr_code"` // served path of the check-in QR image

	PaymentStatus string  `gorm:"type:varchar(20);default:'free'" json:"payment_status"`
	PaymentAmount float64 `gorm:"default:0" json:"payment_amount"`
	PaymentID     string  `json:"payment_id"` // reserved for a future payment provider

	CheckedInAt *time.Time `json:"checked_in_at"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
