package learning

import "gorm.io/gorm"

// ChatSession stores one tutor exchange (question and generated answer)
// scoped to a module topic.
type ChatSession struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	ModuleID *uint  `json:"module_id" gorm:"index"`
	Topic    string `json:"topic"`
	Question string `json:"question" gorm:"type:text"`
	Response string `json:"response" gorm:"type:text"`
}
