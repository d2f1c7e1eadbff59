package learningController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	services "lms/services/learning"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentUser resolves the authenticated user set by the JWT middleware.
// Returns a response already written when resolution fails.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return &user, nil
}

// policyResponse maps core policy errors onto the JSON envelope. Unknown
// errors come back as a generic retryable failure.
func policyResponse(c *fiber.Ctx, err error) error {
	switch err {
	case services.ErrNotEnrolled:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must enroll in this course first!", nil)
	case services.ErrModuleLocked:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must pass the previous module's quiz to access this module!", nil)
	case services.ErrNoQuestions:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This quiz does not have any questions yet!", nil)
	case services.ErrAttemptCapExceeded:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You have reached the maximum number of attempts for this quiz. Please request an additional attempt.", nil)
	case services.ErrAlreadyReviewed:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This request has already been reviewed!", nil)
	case services.ErrAlreadyCompleted:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This attempt has already been completed!", nil)
	case gorm.ErrRecordNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please try again!", nil)
	}
}
