package learningValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func paramID(name, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(name))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(name, id)
		return c.Next()
	}
}

// CourseID validates the :courseID route parameter.
func CourseID() fiber.Handler { return paramID("courseID", "Course ID") }

// ModuleID validates the :moduleID route parameter.
func ModuleID() fiber.Handler { return paramID("moduleID", "Module ID") }

// AttemptID validates the :attemptID route parameter.
func AttemptID() fiber.Handler { return paramID("attemptID", "Attempt ID") }

// RequestID validates the :requestID route parameter.
func RequestID() fiber.Handler { return paramID("requestID", "Request ID") }

// QuestionID validates the :questionID route parameter.
func QuestionID() fiber.Handler { return paramID("questionID", "Question ID") }
