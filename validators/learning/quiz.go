package learningValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz validates quiz creation.
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			PassingScore uint   `json:"passing_score"`
			TimeLimit    *uint  `json:"time_limit"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if reqData.TimeLimit != nil && *reqData.TimeLimit == 0 {
			errors["time_limit"] = "Time limit must be a positive number of minutes!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// UpdateQuiz validates quiz updates. All fields optional.
func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			PassingScore uint   `json:"passing_score"`
			TimeLimit    *uint  `json:"time_limit"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if reqData.TimeLimit != nil && *reqData.TimeLimit == 0 {
			errors["time_limit"] = "Time limit must be a positive number of minutes!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// CreateQuestion validates a question with its options. MCQ questions need at
// least two options and exactly one marked correct.
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionText string `json:"question_text"`
			Points       uint   `json:"points"`
			Order        int    `json:"order"`
			Options      []struct {
				OptionText string `json:"option_text"`
				IsCorrect  bool   `json:"is_correct"`
			} `json:"options"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.QuestionText = strings.TrimSpace(reqData.QuestionText)

		if reqData.QuestionText == "" {
			errors["question_text"] = "Question text is required!"
		}
		if reqData.Order < 0 {
			errors["order"] = "Order must be a positive number!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		} else {
			correct := 0
			for i := range reqData.Options {
				reqData.Options[i].OptionText = strings.TrimSpace(reqData.Options[i].OptionText)
				if reqData.Options[i].OptionText == "" {
					errors["options"] = "Option text cannot be empty!"
				}
				if reqData.Options[i].IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				errors["options"] = "Exactly one option must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
