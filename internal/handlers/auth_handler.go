package handlers

import (
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	user, err := h.authSvc.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.Created(c, user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.ParseBody(c, &req); err != nil {
		return respondErr(c, err)
	}

	resp, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, resp)
}

func (h *Handler) Profile(c *fiber.Ctx) error {
	user, err := h.authSvc.GetProfile(middleware.Identity(c).ID)
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, user)
}
