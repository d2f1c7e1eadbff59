package learningValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GrantRequest validates an extra-attempt request.
func GrantRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)

		errors := make(map[string]string)

		if reqData.Reason == "" {
			errors["reason"] = "Reason is required!"
		} else if len(reqData.Reason) < 10 {
			errors["reason"] = "Please explain why you need another attempt (at least 10 characters)!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrantRequest", reqData)
		return c.Next()
	}
}

// TutorQuestion validates a tutor question payload.
func TutorQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question string `json:"question"`
			Topic    string `json:"topic"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Question = strings.TrimSpace(reqData.Question)
		reqData.Topic = strings.TrimSpace(reqData.Topic)

		errors := make(map[string]string)

		if reqData.Question == "" {
			errors["question"] = "Question is required!"
		} else if len(reqData.Question) > 2000 {
			errors["question"] = "Question is too long (max 2000 characters)!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTutorQuestion", reqData)
		return c.Next()
	}
}
