package learning

import (
	"database/sql"
	"math"
	"time"

	models "lms/models/learning"

	"gorm.io/gorm"
)

// Submission carries everything a client reports when turning in a quiz.
// Answers maps question IDs to the selected option ID; omitted questions
// count as unanswered. ViolationDetails is an opaque client payload and is
// persisted verbatim, malformed or not.
type Submission struct {
	Answers          map[uint]uint
	AutoSubmitted    bool
	ViolationCount   uint
	ViolationDetails string
}

// AttemptCount returns the number of attempts the user has taken on the quiz,
// started or completed. Started attempts hold a cap slot.
func AttemptCount(db *gorm.DB, userID, quizID uint) (int64, error) {
	var count int64
	err := db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

// quizModule loads a quiz together with the module it assesses.
func quizModule(db *gorm.DB, quizID uint) (*models.Quiz, *models.Module, error) {
	var quiz models.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return nil, nil, err
	}
	if quiz.ModuleID == nil {
		return nil, nil, gorm.ErrRecordNotFound // orphan quiz, nothing to gate
	}
	var module models.Module
	if err := db.First(&module, *quiz.ModuleID).Error; err != nil {
		return nil, nil, err
	}
	return &quiz, &module, nil
}

// checkEligibility enforces the start conditions: enrollment, module unlock,
// at least one question, and the attempt cap (or a grant, or admin).
func checkEligibility(db *gorm.DB, userID uint, isAdmin bool, quiz *models.Quiz, module *models.Module) error {
	enrolled, err := IsEnrolled(db, userID, module.CourseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	unlocked, err := IsModuleUnlocked(db, userID, isAdmin, module)
	if err != nil {
		return err
	}
	if !unlocked {
		return ErrModuleLocked
	}

	var questions int64
	if err := db.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&questions).Error; err != nil {
		return err
	}
	if questions == 0 {
		return ErrNoQuestions
	}

	if isAdmin {
		return nil
	}
	count, err := AttemptCount(db, userID, quiz.ID)
	if err != nil {
		return err
	}
	if count < MaxStandardAttempts {
		return nil
	}
	granted, err := HasUnusedApprovedGrant(db, userID, quiz.ID)
	if err != nil {
		return err
	}
	if !granted {
		return ErrAttemptCapExceeded
	}
	return nil
}

// CanStartAttempt reports whether the user may start an attempt right now.
// Returns nil or one of ErrNotEnrolled, ErrModuleLocked, ErrNoQuestions,
// ErrAttemptCapExceeded.
func CanStartAttempt(db *gorm.DB, userID uint, isAdmin bool, quizID uint) error {
	quiz, module, err := quizModule(db, quizID)
	if err != nil {
		return err
	}
	return checkEligibility(db, userID, isAdmin, quiz, module)
}

// beginSerializable opens a transaction at SERIALIZABLE isolation so the
// attempt-count read and the attempt/grant write cannot interleave with a
// concurrent submission. The SQLite driver used in tests rejects explicit
// isolation levels but runs serializable by nature, so only that dialect
// skips the option; any other Begin failure surfaces to the caller.
func beginSerializable(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db.Begin()
	}
	return db.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
}

// StartAttempt reserves an attempt slot and records the start time. Total
// points are captured up front; no answers exist yet. The slot is a logical
// checkpoint only, SubmitAttempt re-validates the cap.
func StartAttempt(db *gorm.DB, userID uint, isAdmin bool, quizID uint) (*models.QuizAttempt, error) {
	tx := beginSerializable(db)
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	quiz, module, err := quizModule(tx, quizID)
	if err != nil {
		return nil, err
	}
	if err := checkEligibility(tx, userID, isAdmin, quiz, module); err != nil {
		return nil, err
	}

	var totalPoints int64
	err = tx.Model(&models.QuizQuestion{}).
		Where("quiz_id = ?", quiz.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&totalPoints).Error
	if err != nil {
		return nil, err
	}

	attempt := models.QuizAttempt{
		UserID:      userID,
		QuizID:      quiz.ID,
		TotalPoints: uint(totalPoints),
		StartedAt:   time.Now(),
	}
	if err := tx.Create(&attempt).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SubmitAttempt scores the attempt and finalizes it. This is the single
// authoritative scoring path.
//
// Per question: an answer referencing a valid option of that question is
// recorded with correctness copied from the option; anything else (missing
// answer, foreign option, unknown question) counts as unanswered and is not
// an error. If this attempt sits beyond the standard cap for a non-admin,
// the oldest unused approved grant is consumed in the same transaction; a
// grant can never be consumed twice.
func SubmitAttempt(db *gorm.DB, attemptID, userID uint, isAdmin bool, sub Submission) (*models.QuizAttempt, error) {
	tx := beginSerializable(db)
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	var attempt models.QuizAttempt
	if err := tx.Where("id = ? AND user_id = ?", attemptID, userID).First(&attempt).Error; err != nil {
		return nil, err
	}
	if attempt.CompletedAt != nil {
		return nil, ErrAlreadyCompleted
	}

	var quiz models.Quiz
	if err := tx.First(&quiz, attempt.QuizID).Error; err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := tx.Where("quiz_id = ?", quiz.ID).Order("question_order asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	// Attempts created before this one; decides whether a grant is needed.
	var prior int64
	err := tx.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND id < ?", userID, quiz.ID, attempt.ID).
		Count(&prior).Error
	if err != nil {
		return nil, err
	}

	var totalPoints, earnedPoints uint
	for _, question := range questions {
		totalPoints += question.Points

		optionID, answered := sub.Answers[question.ID]
		if !answered {
			continue
		}
		var option models.QuizOption
		err := tx.Where("id = ? AND question_id = ?", optionID, question.ID).First(&option).Error
		if err == gorm.ErrRecordNotFound {
			continue // option does not belong to this question, treat as unanswered
		}
		if err != nil {
			return nil, err
		}

		answer := models.QuizAnswer{
			AttemptID:        attempt.ID,
			QuestionID:       question.ID,
			SelectedOptionID: &option.ID,
			IsCorrect:        option.IsCorrect,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return nil, err
		}
		if option.IsCorrect {
			earnedPoints += question.Points
		}
	}

	score := float64(0)
	if totalPoints > 0 {
		score = math.Round(float64(earnedPoints)/float64(totalPoints)*100*100) / 100
	}

	now := time.Now()
	attempt.TotalPoints = totalPoints
	attempt.EarnedPoints = earnedPoints
	attempt.Score = score
	attempt.Passed = score >= float64(quiz.PassingScore)
	attempt.CompletedAt = &now
	attempt.AutoSubmitted = sub.AutoSubmitted
	attempt.ViolationCount = sub.ViolationCount
	attempt.ViolationDetails = sub.ViolationDetails

	if !isAdmin && prior >= MaxStandardAttempts {
		var grant models.QuizAttemptRequest
		err := tx.Where("user_id = ? AND quiz_id = ? AND status = ? AND used = ?",
			userID, quiz.ID, models.StatusApproved, false).
			Order("id asc").
			First(&grant).Error
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAttemptCapExceeded
		}
		if err != nil {
			return nil, err
		}
		grant.Used = true
		if err := tx.Save(&grant).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Save(&attempt).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}
