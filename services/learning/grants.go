package learning

import (
	"time"

	models "lms/models/learning"

	"gorm.io/gorm"
)

// HasUnusedApprovedGrant reports whether an approved, not-yet-consumed
// extra-attempt grant exists for the (user, quiz) pair.
func HasUnusedApprovedGrant(db *gorm.DB, userID, quizID uint) (bool, error) {
	var count int64
	err := db.Model(&models.QuizAttemptRequest{}).
		Where("user_id = ? AND quiz_id = ? AND status = ? AND used = ?",
			userID, quizID, models.StatusApproved, false).
		Count(&count).Error
	return count > 0, err
}

// RequestGrant files a request for one extra attempt. Nothing is created
// while the learner still has standard attempts, while another request is
// pending, or while an approved grant sits unconsumed; each case is a
// distinct outcome rather than an error.
func RequestGrant(db *gorm.DB, userID, quizID uint, reason string) (GrantOutcome, error) {
	count, err := AttemptCount(db, userID, quizID)
	if err != nil {
		return "", err
	}
	if count < MaxStandardAttempts {
		return GrantAttemptsRemaining, nil
	}

	var pending int64
	err = db.Model(&models.QuizAttemptRequest{}).
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, models.StatusPending).
		Count(&pending).Error
	if err != nil {
		return "", err
	}
	if pending > 0 {
		return GrantAlreadyPending, nil
	}

	available, err := HasUnusedApprovedGrant(db, userID, quizID)
	if err != nil {
		return "", err
	}
	if available {
		return GrantAlreadyAvailable, nil
	}

	request := models.QuizAttemptRequest{
		UserID:      userID,
		QuizID:      quizID,
		Reason:      reason,
		Status:      models.StatusPending,
		RequestedAt: time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		return "", err
	}
	return GrantCreated, nil
}

// ApproveGrant enables exactly one additional attempt. Fails with
// ErrAlreadyReviewed when the request is not pending; grants are never
// replenished automatically.
func ApproveGrant(db *gorm.DB, requestID, reviewerID uint, notes string) error {
	return reviewGrant(db, requestID, reviewerID, notes, models.StatusApproved)
}

// RejectGrant marks a pending request rejected.
func RejectGrant(db *gorm.DB, requestID, reviewerID uint, notes string) error {
	return reviewGrant(db, requestID, reviewerID, notes, models.StatusRejected)
}

func reviewGrant(db *gorm.DB, requestID, reviewerID uint, notes, status string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var request models.QuizAttemptRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		request.Status = status
		request.ReviewedAt = &now
		request.ReviewedBy = &reviewerID
		request.AdminNotes = notes
		return tx.Save(&request).Error
	})
}
