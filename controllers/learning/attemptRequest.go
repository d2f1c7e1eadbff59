package learningController

import (
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"
	services "lms/services/learning"

	"github.com/gofiber/fiber/v2"
)

// RequestAttemptGrant files a request for one extra attempt on a module's
// quiz once the standard cap is exhausted.
func RequestAttemptGrant(c *fiber.Ctx) error {
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

	enrolled, err := services.IsEnrolled(db, user.ID, module.CourseID)
	if err != nil {
		return policyResponse(c, err)
	}
	if !enrolled {
		return policyResponse(c, services.ErrNotEnrolled)
	}

	var quiz learning.Quiz
	if err := db.Where("module_id = ?", module.ID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module does not have a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedGrantRequest").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	outcome, err := services.RequestGrant(db, user.ID, quiz.ID, reqData.Reason)
	if err != nil {
		return policyResponse(c, err)
	}

	switch outcome {
	case services.GrantAttemptsRemaining:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You still have attempts remaining. You can take the quiz directly.", fiber.Map{"outcome": outcome})
	case services.GrantAlreadyPending:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have a pending request for additional attempts.", fiber.Map{"outcome": outcome})
	case services.GrantAlreadyAvailable:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Your previous request was approved. You can take the quiz now.", fiber.Map{"outcome": outcome})
	default:
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Your request has been submitted. An admin will review it shortly.", fiber.Map{"outcome": outcome})
	}
}

// GetMyAttemptRequests lists the caller's extra-attempt requests.
func GetMyAttemptRequests(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var requests []learning.QuizAttemptRequest
	if err := database.Database.Db.Where("user_id = ?", user.ID).Order("requested_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}
