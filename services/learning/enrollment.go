package learning

import (
	"time"

	models "lms/models/learning"

	"gorm.io/gorm"
)

// IsEnrolled reports whether the user holds a CourseEnrollment for the course.
// Enrollment existence is the sole gate for module visibility.
func IsEnrolled(db *gorm.DB, userID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// RequestEnrollment records a learner's ask to join a course. A request that
// was previously rejected (or left over after unenrollment) is reset to
// pending with its review metadata cleared, never duplicated.
func RequestEnrollment(db *gorm.DB, userID, courseID uint) (EnrollmentOutcome, error) {
	enrolled, err := IsEnrolled(db, userID, courseID)
	if err != nil {
		return "", err
	}
	if enrolled {
		return EnrollmentAlreadyEnrolled, nil
	}

	var request models.EnrollmentRequest
	err = db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&request).Error
	if err == nil {
		if request.Status == models.StatusPending {
			return EnrollmentAlreadyPending, nil
		}
		request.Status = models.StatusPending
		request.RequestedAt = time.Now()
		request.ReviewedAt = nil
		request.ReviewedBy = nil
		request.Notes = ""
		if err := db.Save(&request).Error; err != nil {
			return "", err
		}
		return EnrollmentCreated, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	request = models.EnrollmentRequest{
		UserID:      userID,
		CourseID:    courseID,
		Status:      models.StatusPending,
		RequestedAt: time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		return "", err
	}
	return EnrollmentCreated, nil
}

// ApproveEnrollment marks a pending request approved and creates the
// CourseEnrollment in the same transaction. A duplicate approval race is
// absorbed: if the enrollment already exists the request is still marked
// approved without creating a second row. A second review of the same
// request fails with ErrAlreadyReviewed.
func ApproveEnrollment(db *gorm.DB, requestID, reviewerID uint, notes string) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.EnrollmentRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		request.Status = models.StatusApproved
		request.ReviewedAt = &now
		request.ReviewedBy = &reviewerID
		request.Notes = notes
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND course_id = ?", request.UserID, request.CourseID).
			First(&enrollment).Error
		if err == nil {
			return nil // already enrolled, keep the single row
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		enrollment = models.CourseEnrollment{
			UserID:              request.UserID,
			CourseID:            request.CourseID,
			EnrolledAt:          now,
			EnrollmentRequestID: &request.ID,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// RejectEnrollment marks a pending request rejected. Fails with
// ErrAlreadyReviewed if the request is not pending.
func RejectEnrollment(db *gorm.DB, requestID, reviewerID uint, notes string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var request models.EnrollmentRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		request.Status = models.StatusRejected
		request.ReviewedAt = &now
		request.ReviewedBy = &reviewerID
		request.Notes = notes
		return tx.Save(&request).Error
	})
}

// Unenroll deletes the CourseEnrollment only. The historical
// EnrollmentRequest stays; a later re-request starts a fresh pending cycle.
func Unenroll(db *gorm.DB, userID, courseID uint) error {
	var enrollment models.CourseEnrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return err
	}
	return db.Unscoped().Delete(&enrollment).Error
}
