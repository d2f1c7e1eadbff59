package learningController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCreateModule creates a new module in a course. The (course, order)
// pair must be unique; duplicates are rejected up front rather than left to
// the database constraint.
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course learning.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title              string `json:"title"`
		Summary            string `json:"summary"`
		Order              int    `json:"order"`
		LearningObjectives string `json:"learning_objectives"`
		Topics             string `json:"topics"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Default to the next order slot if not provided
	order := reqData.Order
	if order == 0 {
		var maxOrder int
		db.Model(&learning.Module{}).Where("course_id = ?", course.ID).
			Select("COALESCE(MAX(module_order), 0)").Scan(&maxOrder)
		order = maxOrder + 1
	}

	var duplicate int64
	db.Model(&learning.Module{}).Where("course_id = ? AND module_order = ?", course.ID, order).Count(&duplicate)
	if duplicate > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, fmt.Sprintf("Module with order %d already exists for this course!", order), nil)
	}

	module := learning.Module{
		CourseID:           course.ID,
		Title:              reqData.Title,
		Summary:            reqData.Summary,
		Order:              order,
		LearningObjectives: reqData.LearningObjectives,
		Topics:             reqData.Topics,
	}

	if err := db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates an existing module.
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var module learning.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title              string `json:"title"`
		Summary            string `json:"summary"`
		Order              int    `json:"order"`
		LearningObjectives string `json:"learning_objectives"`
		Topics             string `json:"topics"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Order > 0 && reqData.Order != module.Order {
		var duplicate int64
		db.Model(&learning.Module{}).Where("course_id = ? AND module_order = ?", module.CourseID, reqData.Order).Count(&duplicate)
		if duplicate > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, fmt.Sprintf("Module with order %d already exists for this course!", reqData.Order), nil)
		}
		module.Order = reqData.Order
	}
	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Summary != "" {
		module.Summary = reqData.Summary
	}
	if reqData.LearningObjectives != "" {
		module.LearningObjectives = reqData.LearningObjectives
	}
	if reqData.Topics != "" {
		module.Topics = reqData.Topics
	}

	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule removes a module together with its quiz, questions and
// options. Deletes are hard: a soft-deleted row would keep holding the
// (course, order) slot in the unique index and block reusing that order.
func AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var module learning.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var quiz learning.Quiz
		err := tx.Where("module_id = ?", module.ID).First(&quiz).Error
		if err == nil {
			var questionIDs []uint
			if err := tx.Model(&learning.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Unscoped().Where("question_id IN ?", questionIDs).Delete(&learning.QuizOption{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&learning.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&quiz).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Unscoped().Delete(&module).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminListModules lists all modules of a course in order.
func AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course learning.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []learning.Module
	if err := db.Where("course_id = ?", course.ID).Order("module_order asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"course":  course,
		"modules": modules,
	})
}
