package learningController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"
	services "lms/services/learning"

	"github.com/gofiber/fiber/v2"
)

// GetQuiz returns a module's quiz for taking: questions with their options,
// correctness stripped. Runs the full eligibility check first so a learner
// never sees questions they cannot attempt.
func GetQuiz(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var module learning.Module
	if err := db.First(&module, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", module.ID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz yet!", nil)
	}

	if err := services.CanStartAttempt(db, user.ID, user.IsAdmin(), quiz.ID); err != nil {
		return policyResponse(c, err)
	}

	var questions []learning.QuizQuestion
	if err := db.Where("quiz_id = ?", quiz.ID).Order("question_order asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type OptionView struct {
		ID         uint   `json:"id"`
		OptionText string `json:"option_text"`
		Order      int    `json:"order"`
	}
	type QuestionWithOptions struct {
		learning.QuizQuestion
		Options []OptionView `json:"options"`
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, question := range questions {
		var options []learning.QuizOption
		if err := db.Where("question_id = ?", question.ID).Order("option_order asc").Find(&options).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
		}

		views := make([]OptionView, len(options))
		for j, option := range options {
			views[j] = OptionView{ID: option.ID, OptionText: option.OptionText, Order: option.Order}
		}
		result[i] = QuestionWithOptions{QuizQuestion: question, Options: views}
	}

	attemptCount, _ := services.AttemptCount(db, user.ID, quiz.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"module":        module,
		"quiz":          quiz,
		"questions":     result,
		"attempt_count": attemptCount,
	})
}

// StartQuizAttempt reserves an attempt slot and returns the attempt row.
func StartQuizAttempt(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", moduleID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz yet!", nil)
	}

	attempt, err := services.StartAttempt(db, user.ID, user.IsAdmin(), quiz.ID)
	if err != nil {
		return policyResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt started!", attempt)
}

// SubmitQuizAttempt scores and finalizes an attempt. The violation payload
// travels through untouched; malformed JSON there never blocks submission.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	attemptID := c.Locals("attemptID").(int)

	reqData := new(struct {
		Answers          map[uint]uint `json:"answers"`
		AutoSubmitted    bool          `json:"auto_submitted"`
		ViolationCount   uint          `json:"violation_count"`
		ViolationDetails string        `json:"violation_details"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	attempt, err := services.SubmitAttempt(database.Database.Db, uint(attemptID), user.ID, user.IsAdmin(), services.Submission{
		Answers:          reqData.Answers,
		AutoSubmitted:    reqData.AutoSubmitted,
		ViolationCount:   reqData.ViolationCount,
		ViolationDetails: reqData.ViolationDetails,
	})
	if err != nil {
		return policyResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":       attempt,
		"score":         attempt.Score,
		"passed":        attempt.Passed,
		"earned_points": attempt.EarnedPoints,
		"total_points":  attempt.TotalPoints,
	})
}

// GetAttemptHistory lists the caller's attempts on a module's quiz, newest
// first. Violation details are parsed defensively for display; the raw blob
// is returned untouched when it is not valid JSON.
func GetAttemptHistory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", moduleID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz yet!", nil)
	}

	var attempts []learning.QuizAttempt
	if err := db.Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Order("started_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	type AttemptView struct {
		learning.QuizAttempt
		Violations json.RawMessage `json:"violations,omitempty"`
	}

	result := make([]AttemptView, len(attempts))
	for i, attempt := range attempts {
		result[i] = AttemptView{QuizAttempt: attempt}
		if attempt.ViolationDetails != "" && json.Valid([]byte(attempt.ViolationDetails)) {
			result[i].Violations = json.RawMessage(attempt.ViolationDetails)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"quiz":     quiz,
		"attempts": result,
		"total":    len(result),
	})
}
