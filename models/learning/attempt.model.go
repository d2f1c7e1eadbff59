package learning

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt records a single run at a quiz. Immutable once CompletedAt is set.
type QuizAttempt struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index:idx_user_quiz_attempt;not null"`
	QuizID           uint       `json:"quiz_id" gorm:"index:idx_user_quiz_attempt;not null"`
	Score            float64    `json:"score"` // percentage, 2-decimal precision
	TotalPoints      uint       `json:"total_points"`
	EarnedPoints     uint       `json:"earned_points"`
	Passed           bool       `json:"passed" gorm:"default:false"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	AutoSubmitted    bool       `json:"auto_submitted" gorm:"default:false"` // forced submission reported by the proctoring client
	ViolationCount   uint       `json:"violation_count" gorm:"default:0"`
	ViolationDetails string     `json:"violation_details" gorm:"type:text"` // raw client payload, stored verbatim even when malformed
}

// QuizAnswer is the option a learner selected for one question, with
// correctness denormalized at scoring time for audit.
type QuizAnswer struct {
	gorm.Model
	AttemptID        uint  `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID       uint  `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	SelectedOptionID *uint `json:"selected_option_id"` // nil means unanswered
	IsCorrect        bool  `json:"is_correct" gorm:"default:false"`
}
