package serverutils

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// ErrorHandlerMiddleware is the single place where failures are rendered.
// Every error that leaves a handler, and every panic, becomes {"error": message}.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("[PANIC RECOVERED] %v\n%s", r, debug.Stack())
				err = renderError(c, fiber.StatusInternalServerError, panicMessage(r))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		return ErrorHandler(c, err)
	}
}

// ErrorHandler renders err for the fiber app. It is used both by the middleware
// and as fiber.Config.ErrorHandler for errors raised outside the handler chain.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= fiber.StatusInternalServerError {
			log.Errorf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		}
		return renderError(c, httpErr.Code, httpErr.Message)
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return renderError(c, fiber.StatusBadRequest, ve.Error())
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return renderError(c, fiberErr.Code, fiberErr.Message)
	}

	log.Errorf("[ERROR] unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return renderError(c, fiber.StatusInternalServerError, err.Error())
}

func renderError(c *fiber.Ctx, code int, message string) error {
	if message == "" {
		message = MessageInternalServerError
	}
	SetCorsHeaders(c)
	return c.Status(code).JSON(ErrorResponse(message))
}

func panicMessage(r any) string {
	if e, ok := r.(error); ok {
		return e.Error()
	}
	return fmt.Sprintf("%v", r)
}
