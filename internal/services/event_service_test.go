package services

import (
	"errors"
	"testing"
	"time"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/authz"
	"eventhub-backend/internal/models"

	"github.com/google/uuid"
)

func newTestEventService(events *fakeEventRepo) *EventService {
	return &EventService{
		events: events,
		now:    func() time.Time { return testNow },
	}
}

func organizerIdentity() authz.Identity {
	return authz.Identity{
		ID:    uuid.New(),
		Name:  "Orga Nizer",
		Email: "orga@example.com",
		Role:  authz.RoleUser,
	}
}

func TestCreateEventRequiresTitleAndStartDate(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo())
	ident := organizerIdentity()

	_, err := svc.Create(ident, CreateEventInput{StartDate: testNow.Add(time.Hour)})
	if !errors.Is(err, apperrors.ErrTitleAndStartDateRequired) {
		t.Fatalf("expected TITLE_AND_START_DATE_REQUIRED, got %v", err)
	}

	_, err = svc.Create(ident, CreateEventInput{Title: "Meetup"})
	if !errors.Is(err, apperrors.ErrTitleAndStartDateRequired) {
		t.Fatalf("expected TITLE_AND_START_DATE_REQUIRED, got %v", err)
	}
}

func TestCreateEventDefaults(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo())
	ident := organizerIdentity()

	event, err := svc.Create(ident, CreateEventInput{
		Title:     "Meetup",
		StartDate: testNow.Add(24 * time.Hour),
		Capacity:  50,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if event.Status != models.EventStatusDraft {
		t.Fatalf("expected draft status, got %q", event.Status)
	}
	if event.AvailableSpots != 50 {
		t.Fatalf("expected available spots 50, got %d", event.AvailableSpots)
	}
	if event.Currency != "EUR" {
		t.Fatalf("expected EUR default, got %q", event.Currency)
	}
	if event.Category != models.CategoryOther {
		t.Fatalf("expected other category, got %q", event.Category)
	}
	if event.OrganizerID != ident.ID || event.OrganizerName != ident.Name || event.OrganizerEmail != ident.Email {
		t.Fatalf("expected organizer snapshot from acting user, got %s/%s", event.OrganizerName, event.OrganizerEmail)
	}
}

// Capacity edits keep the booked count: 100 with 60 booked shrunk to 80
// leaves 20 spots.
func TestUpdateCapacityPreservesBookedCount(t *testing.T) {
	ident := organizerIdentity()
	event := &models.Event{
		ID:             uuid.New(),
		Title:          "Big Conf",
		StartDate:      testNow.Add(time.Hour),
		Capacity:       100,
		AvailableSpots: 40,
		Status:         models.EventStatusPublished,
		OrganizerID:    ident.ID,
	}
	events := newFakeEventRepo(event)
	svc := newTestEventService(events)

	newCapacity := 80
	updated, err := svc.Update(authz.ScopeFor(ident), event.ID, UpdateEventInput{Capacity: &newCapacity})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Capacity != 80 {
		t.Fatalf("expected capacity 80, got %d", updated.Capacity)
	}
	if updated.AvailableSpots != 20 {
		t.Fatalf("expected 20 available spots, got %d", updated.AvailableSpots)
	}
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	owner := organizerIdentity()
	event := &models.Event{
		ID:          uuid.New(),
		Title:       "Private",
		StartDate:   testNow.Add(time.Hour),
		OrganizerID: owner.ID,
	}
	events := newFakeEventRepo(event)
	svc := newTestEventService(events)

	title := "Hijacked"
	_, err := svc.Update(authz.ScopeFor(organizerIdentity()), event.ID, UpdateEventInput{Title: &title})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	stored, _ := events.GetByID(event.ID)
	if stored.Title != "Private" {
		t.Fatalf("expected event untouched, got title %q", stored.Title)
	}
}

func TestUpdateAllowedForAdmin(t *testing.T) {
	owner := organizerIdentity()
	event := &models.Event{
		ID:          uuid.New(),
		Title:       "Conf",
		StartDate:   testNow.Add(time.Hour),
		OrganizerID: owner.ID,
	}
	svc := newTestEventService(newFakeEventRepo(event))

	admin := authz.Identity{ID: uuid.New(), Role: authz.RoleAdmin}
	title := "Conf (edited)"
	updated, err := svc.Update(authz.ScopeFor(admin), event.ID, UpdateEventInput{Title: &title})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Conf (edited)" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	owner := organizerIdentity()
	event := &models.Event{ID: uuid.New(), Title: "Conf", OrganizerID: owner.ID}
	events := newFakeEventRepo(event)
	svc := newTestEventService(events)

	if err := svc.Delete(authz.ScopeFor(organizerIdentity()), event.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if _, err := events.GetByID(event.ID); err != nil {
		t.Fatalf("expected event to survive, got %v", err)
	}
}

func TestDuplicateResetsLifecycleFields(t *testing.T) {
	owner := organizerIdentity()
	deadline := testNow.Add(12 * time.Hour)
	event := &models.Event{
		ID:                   uuid.New(),
		Title:                "Workshop",
		StartDate:            testNow.Add(time.Hour),
		Capacity:             30,
		AvailableSpots:       3,
		Price:                15,
		Currency:             "USD",
		Status:               models.EventStatusPublished,
		Category:             models.CategoryWorkshop,
		RegistrationDeadline: &deadline,
		RequiresApproval:     true,
		OrganizerID:          owner.ID,
		OrganizerName:        owner.Name,
		OrganizerEmail:       owner.Email,
	}
	svc := newTestEventService(newFakeEventRepo(event))

	actor := authz.Identity{ID: uuid.New(), Name: "Admin", Email: "admin@example.com", Role: authz.RoleAdmin}
	clone, err := svc.Duplicate(actor, authz.ScopeFor(actor), event.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	if clone.ID == event.ID {
		t.Fatal("expected a new id for the clone")
	}
	if clone.Title != "Workshop (Copy)" {
		t.Fatalf("expected copy suffix, got %q", clone.Title)
	}
	if clone.Status != models.EventStatusDraft {
		t.Fatalf("expected draft clone, got %q", clone.Status)
	}
	if clone.AvailableSpots != 30 {
		t.Fatalf("expected full capacity available, got %d", clone.AvailableSpots)
	}
	if clone.OrganizerID != actor.ID || clone.OrganizerName != "Admin" {
		t.Fatalf("expected organizer reset to acting user, got %s/%s", clone.OrganizerID, clone.OrganizerName)
	}
	if !clone.RequiresApproval || clone.Price != 15 || clone.Currency != "USD" {
		t.Fatalf("expected content fields cloned, got %+v", clone)
	}
}

// Public search must never leak drafts or past events, whatever the caller
// asks for.
func TestPublicSearchOnlyPublishedFutureEvents(t *testing.T) {
	owner := organizerIdentity()
	draft := &models.Event{ID: uuid.New(), Title: "Draft", StartDate: testNow.Add(time.Hour), Status: models.EventStatusDraft, OrganizerID: owner.ID}
	past := &models.Event{ID: uuid.New(), Title: "Past", StartDate: testNow.Add(-time.Hour), Status: models.EventStatusPublished, OrganizerID: owner.ID}
	upcoming := &models.Event{ID: uuid.New(), Title: "Upcoming", StartDate: testNow.Add(time.Hour), Status: models.EventStatusPublished, OrganizerID: owner.ID}
	svc := newTestEventService(newFakeEventRepo(draft, past, upcoming))

	results, total, err := svc.PublicSearch(SearchQuery{Status: models.EventStatusDraft})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("expected a single result, got %d", total)
	}
	if results[0].ID != upcoming.ID {
		t.Fatalf("expected the upcoming published event, got %q", results[0].Title)
	}
}

func TestMyEventsSearchScopesToOrganizer(t *testing.T) {
	owner := organizerIdentity()
	other := organizerIdentity()
	mine := &models.Event{ID: uuid.New(), Title: "Mine", StartDate: testNow, OrganizerID: owner.ID}
	theirs := &models.Event{ID: uuid.New(), Title: "Theirs", StartDate: testNow, OrganizerID: other.ID}
	svc := newTestEventService(newFakeEventRepo(mine, theirs))

	results, total, err := svc.MyEventsSearch(authz.ScopeFor(owner), SearchQuery{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || results[0].ID != mine.ID {
		t.Fatalf("expected only own events, got %d results", total)
	}

	admin := authz.Identity{ID: uuid.New(), Role: authz.RoleAdmin}
	_, total, err = svc.MyEventsSearch(authz.ScopeFor(admin), SearchQuery{})
	if err != nil {
		t.Fatalf("admin search: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected admin to see all events, got %d", total)
	}
}
