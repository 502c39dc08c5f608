package serverutils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	corsAllowOrigins = "*"
	corsAllowMethods = "GET,POST,OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = 86400
)

// CorsMiddleware applies the fixed cross-origin policy. The policy headers are
// set on every response, including errors and requests without an Origin
// header; preflight requests are answered by fiber's cors handler.
func CorsMiddleware() fiber.Handler {
	preflight := cors.New(cors.Config{
		AllowOrigins: corsAllowOrigins,
		AllowMethods: corsAllowMethods,
		AllowHeaders: corsAllowHeaders,
		MaxAge:       corsMaxAge,
	})

	return func(c *fiber.Ctx) error {
		SetCorsHeaders(c)
		return preflight(c)
	}
}

// SetCorsHeaders writes the policy headers onto the response. Error responses
// produced before any middleware runs, such as a rejected oversized body, get
// them through the error renderer.
func SetCorsHeaders(c *fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigins)
	c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
	c.Set(fiber.HeaderAccessControlMaxAge, strconv.Itoa(corsMaxAge))
}
