package learningController

import (
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"
	services "lms/services/learning"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists courses with the caller's enrollment state per course.
func GetAllCourses(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var courses []learning.Course
	if err := db.Where("is_deleted = ?", false).Order("display_order asc, created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	enrolledIDs := make(map[uint]bool)
	var enrollments []learning.CourseEnrollment
	db.Where("user_id = ?", user.ID).Find(&enrollments)
	for _, e := range enrollments {
		enrolledIDs[e.CourseID] = true
	}

	pendingIDs := make(map[uint]bool)
	var requests []learning.EnrollmentRequest
	db.Where("user_id = ? AND status = ?", user.ID, learning.StatusPending).Find(&requests)
	for _, r := range requests {
		pendingIDs[r.CourseID] = true
	}

	type CourseWithStatus struct {
		learning.Course
		ModuleCount       int64 `json:"module_count"`
		IsEnrolled        bool  `json:"is_enrolled"`
		HasPendingRequest bool  `json:"has_pending_request"`
	}

	result := make([]CourseWithStatus, len(courses))
	for i, course := range courses {
		var moduleCount int64
		if err := db.Model(&learning.Module{}).Where("course_id = ?", course.ID).Count(&moduleCount).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		result[i] = CourseWithStatus{
			Course:            course,
			ModuleCount:       moduleCount,
			IsEnrolled:        enrolledIDs[course.ID],
			HasPendingRequest: pendingIDs[course.ID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}

// GetCourseDetails returns a course with its modules, each annotated with
// unlock status, quiz presence and the caller's attempt standing. Unlock
// state is computed fresh on every call.
func GetCourseDetails(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course learning.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []learning.Module
	db.Where("course_id = ?", course.ID).Order("module_order asc").Find(&modules)

	isEnrolled, err := services.IsEnrolled(db, user.ID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	var hasPendingRequest int64
	db.Model(&learning.EnrollmentRequest{}).
		Where("user_id = ? AND course_id = ? AND status = ?", user.ID, course.ID, learning.StatusPending).
		Count(&hasPendingRequest)

	type AttemptInfo struct {
		AttemptCount           int64 `json:"attempt_count"`
		HasPendingRequest      bool  `json:"has_pending_request"`
		HasApprovedUnusedGrant bool  `json:"has_approved_unused_grant"`
		CanTakeQuiz            bool  `json:"can_take_quiz"`
	}

	type ModuleWithStatus struct {
		learning.Module
		IsUnlocked  bool         `json:"is_unlocked"`
		HasQuiz     bool         `json:"has_quiz"`
		QuizID      *uint        `json:"quiz_id"`
		AttemptInfo *AttemptInfo `json:"attempt_info,omitempty"`
	}

	result := make([]ModuleWithStatus, len(modules))
	for i, module := range modules {
		unlocked := false
		if isEnrolled || user.IsAdmin() {
			unlocked, err = services.IsModuleUnlocked(db, user.ID, user.IsAdmin(), &module)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve module access!", nil)
			}
		}

		result[i] = ModuleWithStatus{Module: module, IsUnlocked: unlocked}

		var quiz learning.Quiz
		if err := db.Where("module_id = ?", module.ID).First(&quiz).Error; err != nil {
			continue
		}
		result[i].HasQuiz = true
		result[i].QuizID = &quiz.ID

		if !isEnrolled {
			continue
		}

		attemptCount, _ := services.AttemptCount(db, user.ID, quiz.ID)
		var pendingGrant int64
		db.Model(&learning.QuizAttemptRequest{}).
			Where("user_id = ? AND quiz_id = ? AND status = ?", user.ID, quiz.ID, learning.StatusPending).
			Count(&pendingGrant)
		hasGrant, _ := services.HasUnusedApprovedGrant(db, user.ID, quiz.ID)

		result[i].AttemptInfo = &AttemptInfo{
			AttemptCount:           attemptCount,
			HasPendingRequest:      pendingGrant > 0,
			HasApprovedUnusedGrant: hasGrant,
			CanTakeQuiz:            attemptCount < services.MaxStandardAttempts || hasGrant,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":              course,
		"modules":             result,
		"is_enrolled":         isEnrolled,
		"has_pending_request": hasPendingRequest > 0,
	})
}
