package learningController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	learning "lms/models/learning"
	services "lms/services/learning"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

func reviewer(c *fiber.Ctx) (*models.User, error) {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return admin, nil
}

// AdminGetPendingEnrollments lists pending enrollment requests with the
// requesting user and course attached.
func AdminGetPendingEnrollments(c *fiber.Ctx) error {
	db := database.Database.Db

	var requests []learning.EnrollmentRequest
	if err := db.Where("status = ?", learning.StatusPending).Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment requests!", nil)
	}

	type RequestView struct {
		learning.EnrollmentRequest
		UserName    string `json:"user_name"`
		UserEmail   string `json:"user_email"`
		CourseTitle string `json:"course_title"`
	}

	result := make([]RequestView, len(requests))
	for i, request := range requests {
		var user models.User
		db.Where("id = ?", request.UserID).First(&user)
		var course learning.Course
		db.Where("id = ?", request.CourseID).First(&course)
		result[i] = RequestView{
			EnrollmentRequest: request,
			UserName:          user.Name,
			UserEmail:         user.Email,
			CourseTitle:       course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending enrollment requests fetched successfully!", fiber.Map{
		"requests": result,
		"total":    len(result),
	})
}

// AdminApproveEnrollment approves a pending enrollment request and creates
// the enrollment. A second review fails cleanly.
func AdminApproveEnrollment(c *fiber.Ctx) error {
	admin, err := reviewer(c)
	if err != nil {
		return err
	}

	requestID := c.Locals("requestID").(int)

	reqData := new(struct {
		Notes string `json:"notes"`
	})
	c.BodyParser(reqData) // notes are optional

	db := database.Database.Db

	enrollment, err := services.ApproveEnrollment(db, uint(requestID), admin.ID, reqData.Notes)
	if err != nil {
		return policyResponse(c, err)
	}

	go utils.SendEnrollmentDecisionEmail(enrollment.UserID, enrollment.CourseID, true, reqData.Notes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request approved!", enrollment)
}

// AdminRejectEnrollment rejects a pending enrollment request.
func AdminRejectEnrollment(c *fiber.Ctx) error {
	admin, err := reviewer(c)
	if err != nil {
		return err
	}

	requestID := c.Locals("requestID").(int)

	reqData := new(struct {
		Notes string `json:"notes"`
	})
	c.BodyParser(reqData)

	db := database.Database.Db

	var request learning.EnrollmentRequest
	if err := db.First(&request, requestID).Error; err != nil {
		return policyResponse(c, err)
	}

	if err := services.RejectEnrollment(db, uint(requestID), admin.ID, reqData.Notes); err != nil {
		return policyResponse(c, err)
	}

	go utils.SendEnrollmentDecisionEmail(request.UserID, request.CourseID, false, reqData.Notes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request rejected!", nil)
}

// AdminGetPendingGrants lists pending extra-attempt requests.
func AdminGetPendingGrants(c *fiber.Ctx) error {
	db := database.Database.Db

	var requests []learning.QuizAttemptRequest
	if err := db.Where("status = ?", learning.StatusPending).Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempt requests!", nil)
	}

	type RequestView struct {
		learning.QuizAttemptRequest
		UserName     string `json:"user_name"`
		UserEmail    string `json:"user_email"`
		QuizTitle    string `json:"quiz_title"`
		AttemptCount int64  `json:"attempt_count"`
	}

	result := make([]RequestView, len(requests))
	for i, request := range requests {
		var user models.User
		db.Where("id = ?", request.UserID).First(&user)
		var quiz learning.Quiz
		db.Where("id = ?", request.QuizID).First(&quiz)
		attemptCount, _ := services.AttemptCount(db, request.UserID, request.QuizID)
		result[i] = RequestView{
			QuizAttemptRequest: request,
			UserName:           user.Name,
			UserEmail:          user.Email,
			QuizTitle:          quiz.Title,
			AttemptCount:       attemptCount,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending attempt requests fetched successfully!", fiber.Map{
		"requests": result,
		"total":    len(result),
	})
}

// AdminApproveGrant approves a pending extra-attempt request. The grant is
// single-use; consumption happens inside quiz submission.
func AdminApproveGrant(c *fiber.Ctx) error {
	admin, err := reviewer(c)
	if err != nil {
		return err
	}

	requestID := c.Locals("requestID").(int)

	reqData := new(struct {
		Notes string `json:"notes"`
	})
	c.BodyParser(reqData)

	db := database.Database.Db

	var request learning.QuizAttemptRequest
	if err := db.First(&request, requestID).Error; err != nil {
		return policyResponse(c, err)
	}

	if err := services.ApproveGrant(db, uint(requestID), admin.ID, reqData.Notes); err != nil {
		return policyResponse(c, err)
	}

	go utils.SendGrantDecisionEmail(request.UserID, request.QuizID, true, reqData.Notes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt request approved!", nil)
}

// AdminRejectGrant rejects a pending extra-attempt request.
func AdminRejectGrant(c *fiber.Ctx) error {
	admin, err := reviewer(c)
	if err != nil {
		return err
	}

	requestID := c.Locals("requestID").(int)

	reqData := new(struct {
		Notes string `json:"notes"`
	})
	c.BodyParser(reqData)

	db := database.Database.Db

	var request learning.QuizAttemptRequest
	if err := db.First(&request, requestID).Error; err != nil {
		return policyResponse(c, err)
	}

	if err := services.RejectGrant(db, uint(requestID), admin.ID, reqData.Notes); err != nil {
		return policyResponse(c, err)
	}

	go utils.SendGrantDecisionEmail(request.UserID, request.QuizID, false, reqData.Notes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt request rejected!", nil)
}

// AdminDashboardStats summarizes platform activity for the admin dashboard.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses, totalModules, totalEnrollments int64
	db.Model(&learning.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&learning.Module{}).Count(&totalModules)
	db.Model(&learning.CourseEnrollment{}).Count(&totalEnrollments)

	var pendingEnrollments, pendingGrants int64
	db.Model(&learning.EnrollmentRequest{}).Where("status = ?", learning.StatusPending).Count(&pendingEnrollments)
	db.Model(&learning.QuizAttemptRequest{}).Where("status = ?", learning.StatusPending).Count(&pendingGrants)

	today := now.BeginningOfDay()
	weekStart := now.BeginningOfWeek()

	var attemptsToday, attemptsThisWeek, passedThisWeek int64
	db.Model(&learning.QuizAttempt{}).Where("started_at >= ?", today).Count(&attemptsToday)
	db.Model(&learning.QuizAttempt{}).Where("started_at >= ?", weekStart).Count(&attemptsThisWeek)
	db.Model(&learning.QuizAttempt{}).Where("started_at >= ? AND passed = ?", weekStart, true).Count(&passedThisWeek)

	var enrollmentsToday int64
	db.Model(&learning.CourseEnrollment{}).Where("enrolled_at >= ?", today).Count(&enrollmentsToday)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_courses":       totalCourses,
		"total_modules":       totalModules,
		"total_enrollments":   totalEnrollments,
		"pending_enrollments": pendingEnrollments,
		"pending_grants":      pendingGrants,
		"attempts_today":      attemptsToday,
		"attempts_this_week":  attemptsThisWeek,
		"passed_this_week":    passedThisWeek,
		"enrollments_today":   enrollmentsToday,
		"generated_at":        time.Now(),
	})
}
