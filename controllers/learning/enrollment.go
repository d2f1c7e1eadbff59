package learningController

import (
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"
	services "lms/services/learning"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestEnrollment files (or revives) an enrollment request for a course.
func RequestEnrollment(c *fiber.Ctx) error {
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

	outcome, err := services.RequestEnrollment(db, user.ID, course.ID)
	if err != nil {
		return policyResponse(c, err)
	}

	switch outcome {
	case services.EnrollmentAlreadyEnrolled:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", fiber.Map{"outcome": outcome})
	case services.EnrollmentAlreadyPending:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have a pending enrollment request for this course!", fiber.Map{"outcome": outcome})
	default:
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request sent. An admin will review it shortly.", fiber.Map{"outcome": outcome})
	}
}

// Unenroll removes the caller's enrollment. The request history stays so a
// later re-request starts a fresh pending cycle.
func Unenroll(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	if err := services.Unenroll(database.Database.Db, user.ID, uint(courseID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully unenrolled from course!", nil)
}

// GetMyEnrollments lists the caller's enrollments with course details.
func GetMyEnrollments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	db := database.Database.Db

	var enrollments []learning.CourseEnrollment
	if err := db.Where("user_id = ?", user.ID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		learning.CourseEnrollment
		CourseTitle    string `json:"course_title"`
		CourseCategory string `json:"course_category"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course learning.Course
		db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			CourseEnrollment: e,
			CourseTitle:      course.Title,
			CourseCategory:   course.Category,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
