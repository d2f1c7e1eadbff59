package learning

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttemptRequest is a learner's ask for one extra attempt beyond the
// standard cap. An approved request is single-use: consuming it flips Used.
type QuizAttemptRequest struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index:idx_user_quiz_request;not null"`
	QuizID      uint       `json:"quiz_id" gorm:"index:idx_user_quiz_request;not null"`
	Reason      string     `json:"reason" gorm:"type:text"`
	Status      string     `json:"status" gorm:"default:'pending'"`
	Used        bool       `json:"used" gorm:"default:false"`
	RequestedAt time.Time  `json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewedBy  *uint      `json:"reviewed_by"`
	AdminNotes  string     `json:"admin_notes" gorm:"type:text"`
}
