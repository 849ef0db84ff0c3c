// Package fiberx holds the fiber glue shared by every HTTP module.
package fiberx

import (
	"errors"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts handler errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors, e.g. 404 for unknown routes
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var xe *errx.Error
	if errors.As(err, &xe) {
		if xe.Type == errx.TypeInternal {
			logx.Errorf("request %s %s failed: %v", c.Method(), c.Path(), err)
		}
		return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    errx.TypeInternal,
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
