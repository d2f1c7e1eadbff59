package learning

import (
	models "lms/models/learning"

	"gorm.io/gorm"
)

// IsModuleUnlocked computes whether the learner may access the module. Pure
// read; callers must re-evaluate on every access since new passing attempts
// change the result.
//
// Rules, in order: admins bypass all gating; no enrollment locks everything;
// the first module is always open; a missing predecessor order counts as
// satisfied; a predecessor without a quiz is an unsatisfiable gate; otherwise
// the learner needs at least one passing attempt on the predecessor's quiz.
func IsModuleUnlocked(db *gorm.DB, userID uint, isAdmin bool, module *models.Module) (bool, error) {
	if isAdmin {
		return true, nil
	}

	enrolled, err := IsEnrolled(db, userID, module.CourseID)
	if err != nil {
		return false, err
	}
	if !enrolled {
		return false, nil
	}

	if module.Order == 1 {
		return true, nil
	}

	var previous models.Module
	err = db.Where("course_id = ? AND module_order = ?", module.CourseID, module.Order-1).
		First(&previous).Error
	if err == gorm.ErrRecordNotFound {
		return true, nil // no predecessor to satisfy
	}
	if err != nil {
		return false, err
	}

	var quiz models.Quiz
	err = db.Where("module_id = ?", previous.ID).First(&quiz).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil // predecessor has no quiz, gate cannot be satisfied
	}
	if err != nil {
		return false, err
	}

	var passed int64
	err = db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND passed = ?", userID, quiz.ID, true).
		Count(&passed).Error
	if err != nil {
		return false, err
	}
	return passed > 0, nil
}
