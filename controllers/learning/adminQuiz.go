package learningController

import (
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCreateQuiz attaches a quiz to a module. One quiz per module.
func AdminCreateQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var module learning.Module
	if err := db.First(&module, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var existing learning.Quiz
	if err := db.Where("module_id = ?", module.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This module already has a quiz. Edit it instead.", existing)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		PassingScore uint   `json:"passing_score"`
		TimeLimit    *uint  `json:"time_limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quiz := learning.Quiz{
		ModuleID:    &module.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		TimeLimit:   reqData.TimeLimit,
	}
	if reqData.PassingScore > 0 {
		quiz.PassingScore = reqData.PassingScore
	}

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully! Now add questions to the quiz.", quiz)
}

// AdminUpdateQuiz updates quiz settings.
func AdminUpdateQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", moduleID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz. Create one first.", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		PassingScore uint   `json:"passing_score"`
		TimeLimit    *uint  `json:"time_limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		quiz.Title = reqData.Title
	}
	if reqData.Description != "" {
		quiz.Description = reqData.Description
	}
	if reqData.PassingScore > 0 {
		quiz.PassingScore = reqData.PassingScore
	}
	if reqData.TimeLimit != nil {
		quiz.TimeLimit = reqData.TimeLimit
	}

	if err := db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// AdminCreateQuestion adds an MCQ question with its options to a quiz.
// Option validity (at least two options, exactly one correct) is enforced by
// the validator at the API edge.
func AdminCreateQuestion(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", moduleID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz. Create one first.", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		QuestionText string `json:"question_text"`
		Points       uint   `json:"points"`
		Order        int    `json:"order"`
		Options      []struct {
			OptionText string `json:"option_text"`
			IsCorrect  bool   `json:"is_correct"`
		} `json:"options"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	order := reqData.Order
	if order == 0 {
		var count int64
		db.Model(&learning.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&count)
		order = int(count) + 1
	}
	points := reqData.Points
	if points == 0 {
		points = 1
	}

	question := learning.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionText: reqData.QuestionText,
		QuestionType: "multiple_choice",
		Points:       points,
		Order:        order,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for idx, opt := range reqData.Options {
			option := learning.QuizOption{
				QuestionID: question.ID,
				OptionText: opt.OptionText,
				IsCorrect:  opt.IsCorrect,
				Order:      idx + 1,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// AdminDeleteQuestion removes a question and its options.
func AdminDeleteQuestion(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)
	questionID := c.Locals("questionID").(int)
	db := database.Database.Db

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", moduleID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz!", nil)
	}

	var question learning.QuizQuestion
	if err := db.Where("id = ? AND quiz_id = ?", questionID, quiz.ID).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&learning.QuizOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// AdminListQuestions lists a quiz's questions with their options, including
// the correct flags (authoring view).
func AdminListQuestions(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", moduleID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz!", nil)
	}

	var questions []learning.QuizQuestion
	db.Where("quiz_id = ?", quiz.ID).Order("question_order asc").Find(&questions)

	type QuestionWithOptions struct {
		learning.QuizQuestion
		Options []learning.QuizOption `json:"options"`
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, question := range questions {
		var options []learning.QuizOption
		db.Where("question_id = ?", question.ID).Order("option_order asc").Find(&options)
		result[i] = QuestionWithOptions{QuizQuestion: question, Options: options}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}
