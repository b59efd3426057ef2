package utils

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint returns: {ok, data?, code?, total?}.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Code  string      `json:"code,omitempty"`
	Total *int64      `json:"total,omitempty"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{OK: true, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{OK: true, Data: data})
}

// OKList returns a paginated result set with its total count.
func OKList(c *fiber.Ctx, data interface{}, total int64) error {
	return c.Status(fiber.StatusOK).JSON(Response{OK: true, Data: data, Total: &total})
}

// OKEmpty acknowledges an action that has no payload.
func OKEmpty(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Response{OK: true})
}

func Fail(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(Response{OK: false, Code: code})
}
