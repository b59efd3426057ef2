package repositories

import (
	"errors"
	"fmt"

	"eventhub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var attendeeSortColumns = map[string]string{
	"created_at":    "created_at",
	"name":          "name",
	"email":         "email",
	"status":        "status",
	"ticket_number": "ticket_number",
	"checked_in_at": "checked_in_at",
}

type attendeeRepo struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) AttendeeRepository {
	return &attendeeRepo{db: db}
}

func (r *attendeeRepo) Create(attendee *models.Attendee) error {
	if attendee == nil {
		return errors.New("attendee cannot be nil")
	}
	return r.db.Create(attendee).Error
}

func (r *attendeeRepo) GetByID(id uuid.UUID) (*models.Attendee, error) {
	var attendee models.Attendee
	if err := r.db.Where("id = ?", id).First(&attendee).Error; err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (r *attendeeRepo) GetByEventAndUser(eventID, userID uuid.UUID) (*models.Attendee, error) {
	var attendee models.Attendee
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&attendee).Error; err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (r *attendeeRepo) Update(attendee *models.Attendee) error {
	if attendee == nil {
		return errors.New("attendee cannot be nil")
	}
	return r.db.Save(attendee).Error
}

func (r *attendeeRepo) Search(filters AttendeeFilters, page Page) ([]models.Attendee, int64, error) {
	query := r.db.Model(&models.Attendee{})

	if filters.EventID != uuid.Nil {
		query = query.Where("event_id = ?", filters.EventID)
	}
	if filters.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		term := "%" + escapeLike(filters.Search) + "%"
		if filters.TicketOnly {
			query = query.Where("ticket_number ILIKE ?", term)
		} else {
			query = query.Where(
				"name ILIKE ? OR email ILIKE ? OR ticket_number ILIKE ?",
				term, term, term,
			)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count attendees: %w", err)
	}

	offset, limit := page.Offset(10)

	var attendees []models.Attendee
	if err := query.
		Order(orderClause(attendeeSortColumns, page, "created_at DESC")).
		Offset(offset).
		Limit(limit).
		Find(&attendees).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list attendees: %w", err)
	}

	return attendees, total, nil
}

func (r *attendeeRepo) ListByEvent(eventID uuid.UUID) ([]models.Attendee, error) {
	var attendees []models.Attendee
	if err := r.db.
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&attendees).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	return attendees, nil
}

func (r *attendeeRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Attendee{}).Count(&count).Error
	return count, err
}
