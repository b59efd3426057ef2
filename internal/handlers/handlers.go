package handlers

import (
	"errors"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authSvc     *services.AuthService
	eventSvc    *services.EventService
	attendeeSvc *services.AttendeeService
	statsSvc    *services.StatsService
	cfg         *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	eventSvc *services.EventService,
	attendeeSvc *services.AttendeeService,
	statsSvc *services.StatsService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		eventSvc:    eventSvc,
		attendeeSvc: attendeeSvc,
		statsSvc:    statsSvc,
		cfg:         cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.Post("/signup", h.Signup)
		auth.Post("/login", h.Login)
	}

	events := router.Group("/events")
	{
		events.Post("/search", h.SearchEvents)
		events.Get("/:id", h.GetEvent)
	}

	// Protected routes (JWT required)
	protected := router.Group("", middleware.JWT(h.cfg))
	{
		protected.Get("/auth/profile", h.Profile)

		ev := protected.Group("/events")
		{
			ev.Post("/my-events/search", h.SearchMyEvents)
			ev.Post("/", h.CreateEvent)
			ev.Put("/:id", h.UpdateEvent)
			ev.Delete("/:id", h.DeleteEvent)
			ev.Post("/:id/duplicate", h.DuplicateEvent)
			ev.Post("/:id/attendees/search", h.SearchEventAttendees)
			ev.Get("/:id/attendees/export", h.ExportEventAttendees)
		}

		at := protected.Group("/attendees")
		{
			at.Post("/register", h.Register)
			at.Post("/my-registrations/search", h.SearchMyRegistrations)
			at.Post("/admin/search", middleware.RequireAdmin, h.AdminSearchAttendees)
			at.Delete("/:id", h.CancelRegistration)
			at.Put("/:id/status", h.SetAttendeeStatus)
		}

		admin := protected.Group("/admin", middleware.RequireAdmin)
		{
			admin.Get("/stats", h.Stats)
		}
	}
}

// ErrorHandler is the fiber global fallback for errors that escape handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			logrus.WithError(err).WithField("path", c.Path()).Error("internal error")
			return utils.Fail(c, fiberErr.Code, apperrors.CodeServerError)
		}
		return utils.Fail(c, fiberErr.Code, apperrors.ErrNotFound.Code)
	}

	logrus.WithError(err).WithField("path", c.Path()).Error("internal error")
	return utils.Fail(c, fiber.StatusInternalServerError, apperrors.CodeServerError)
}

// respondErr maps service errors to the envelope. Anything outside the code
// taxonomy is logged and reported as SERVER_ERROR.
func respondErr(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return utils.Fail(c, appErr.Status, appErr.Code)
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"path":   c.Path(),
		"method": c.Method(),
	}).Error("request failed")
	return utils.Fail(c, fiber.StatusInternalServerError, apperrors.CodeServerError)
}
