package learning

import "gorm.io/gorm"

// Quiz is the assessment attached to a module. A module may have no quiz;
// the progression resolver treats that as an unsatisfiable gate.
type Quiz struct {
	gorm.Model
	ModuleID     *uint  `json:"module_id" gorm:"uniqueIndex"`
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	PassingScore uint   `json:"passing_score" gorm:"default:70"` // minimum percentage to pass
	TimeLimit    *uint  `json:"time_limit"`                      // minutes; informational only, not enforced server-side
}

// QuizQuestion is an MCQ question worth a fixed number of points.
type QuizQuestion struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionText string `json:"question_text" gorm:"type:text"`
	QuestionType string `json:"question_type" gorm:"default:'multiple_choice'"`
	Points       uint   `json:"points" gorm:"default:1"`
	Order        int    `json:"order" gorm:"column:question_order;default:1"`
}

// QuizOption is one choice for a question. Authoring is expected to mark
// exactly one option correct; the assessment engine does not enforce it.
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	Order      int    `json:"order" gorm:"column:option_order;default:1"`
}
