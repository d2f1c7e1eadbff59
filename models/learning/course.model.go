package learning

import "gorm.io/gorm"

// Course is a top-level learning track made of sequential modules.
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"default:'other'"` // math, science, programming, language, history, other
	IsFeatured  bool   `json:"is_featured" gorm:"default:false"`
	Order       int    `json:"order" gorm:"column:display_order;default:1"` // position in course listings
	IsDeleted   bool   `gorm:"default:false"`
}

// Module is one sequential unit of a course. Access to a module is gated
// behind a passing attempt on the previous module's quiz.
type Module struct {
	gorm.Model
	CourseID           uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_course_module_order"`
	Title              string `json:"title"`
	Summary            string `json:"summary" gorm:"type:text"`
	Order              int    `json:"order" gorm:"column:module_order;default:1;uniqueIndex:idx_course_module_order"`
	LearningObjectives string `json:"learning_objectives" gorm:"type:text"` // bullet points separated by newline
	Topics             string `json:"topics" gorm:"type:text"`              // topics covered, separated by newline
}
