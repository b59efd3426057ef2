package repositories

import (
	"errors"
	"fmt"

	"eventhub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eventSortColumns is the whitelist for caller-supplied sort keys.
var eventSortColumns = map[string]string{
	"start_date": "start_date",
	"created_at": "created_at",
	"title":      "title",
	"price":      "price",
	"capacity":   "capacity",
	"city":       "city",
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	return r.db.Create(event).Error
}

func (r *eventRepo) GetByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Update(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	return r.db.Save(event).Error
}

func (r *eventRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepo) Search(filters EventFilters, page Page) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.City != "" {
		query = query.Where("city ILIKE ?", "%"+escapeLike(filters.City)+"%")
	}
	if filters.OrganizerID != uuid.Nil {
		query = query.Where("organizer_id = ?", filters.OrganizerID)
	}
	if filters.StartsAfter != nil {
		query = query.Where("start_date >= ?", *filters.StartsAfter)
	}
	if filters.Search != "" {
		term := "%" + escapeLike(filters.Search) + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR venue ILIKE ? OR city ILIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	offset, limit := page.Offset(10)

	var events []models.Event
	if err := query.
		Order(orderClause(eventSortColumns, page, "start_date ASC")).
		Offset(offset).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	return events, total, nil
}

// ReserveSpot is the single atomic primitive guarding capacity: the decrement
// only happens when a spot is left, so two concurrent registrations for the
// last spot cannot both succeed.
func (r *eventRepo) ReserveSpot(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND available_spots > 0", id).
		UpdateColumn("available_spots", gorm.Expr("available_spots - 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to reserve spot: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *eventRepo) ReleaseSpot(id uuid.UUID) error {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND capacity > 0", id).
		UpdateColumn("available_spots", gorm.Expr("LEAST(capacity, available_spots + 1)"))
	if result.Error != nil {
		return fmt.Errorf("failed to release spot: %w", result.Error)
	}
	return nil
}

func (r *eventRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

// orderClause resolves a caller-supplied sort against a column whitelist,
// falling back to the given default order.
func orderClause(allowed map[string]string, page Page, defaultOrder string) string {
	column, ok := allowed[page.Sort]
	if !ok {
		return defaultOrder
	}
	direction := "ASC"
	if page.Direction == "desc" {
		direction = "DESC"
	}
	return column + " " + direction
}
