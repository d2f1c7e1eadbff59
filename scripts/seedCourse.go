package main

import (
	"encoding/json"
	"lms/config"
	"lms/database"
	learning "lms/models/learning"
	"log"
	"os"

	"gorm.io/gorm"
)

type seedOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type seedQuestion struct {
	Text    string       `json:"text"`
	Points  uint         `json:"points"`
	Options []seedOption `json:"options"`
}

type seedQuiz struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PassingScore uint           `json:"passing_score"`
	TimeLimit    *uint          `json:"time_limit"`
	Questions    []seedQuestion `json:"questions"`
}

type seedModule struct {
	Title              string    `json:"title"`
	Summary            string    `json:"summary"`
	LearningObjectives string    `json:"learning_objectives"`
	Topics             string    `json:"topics"`
	Quiz               *seedQuiz `json:"quiz"`
}

type seedCourse struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	IsFeatured  bool         `json:"is_featured"`
	Modules     []seedModule `json:"modules"`
}

// Loads a course fixture into the database for local development:
//
//	go run scripts/seedCourse.go course-fixture.json
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/seedCourse.go <fixture.json>")
	}

	config.LoadConfig()
	database.ConnectDb()

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read fixture file: %v", err)
	}

	var fixture seedCourse
	if err := json.Unmarshal(data, &fixture); err != nil {
		log.Fatalf("Failed to parse fixture JSON: %v", err)
	}

	if fixture.Title == "" || len(fixture.Modules) == 0 {
		log.Fatal("Fixture must have a course title and at least one module")
	}

	db := database.Database.Db

	var existing learning.Course
	if err := db.Where("title = ? AND is_deleted = ?", fixture.Title, false).First(&existing).Error; err == nil {
		log.Fatalf("Course %q already exists (id %d), refusing to seed a duplicate", fixture.Title, existing.ID)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		course := learning.Course{
			Title:       fixture.Title,
			Description: fixture.Description,
			Category:    fixture.Category,
			IsFeatured:  fixture.IsFeatured,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		log.Printf("Created course %q (id %d)", course.Title, course.ID)

		for i, m := range fixture.Modules {
			module := learning.Module{
				CourseID:           course.ID,
				Title:              m.Title,
				Summary:            m.Summary,
				Order:              i + 1,
				LearningObjectives: m.LearningObjectives,
				Topics:             m.Topics,
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}
			log.Printf("  Module %d: %q", module.Order, module.Title)

			if m.Quiz == nil {
				continue
			}

			quiz := learning.Quiz{
				ModuleID:    &module.ID,
				Title:       m.Quiz.Title,
				Description: m.Quiz.Description,
				TimeLimit:   m.Quiz.TimeLimit,
			}
			if m.Quiz.PassingScore > 0 {
				quiz.PassingScore = m.Quiz.PassingScore
			}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}

			for qi, q := range m.Quiz.Questions {
				points := q.Points
				if points == 0 {
					points = 1
				}
				question := learning.QuizQuestion{
					QuizID:       quiz.ID,
					QuestionText: q.Text,
					QuestionType: "multiple_choice",
					Points:       points,
					Order:        qi + 1,
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
				for oi, o := range q.Options {
					option := learning.QuizOption{
						QuestionID: question.ID,
						OptionText: o.Text,
						IsCorrect:  o.IsCorrect,
						Order:      oi + 1,
					}
					if err := tx.Create(&option).Error; err != nil {
						return err
					}
				}
			}
			log.Printf("    Quiz %q with %d questions", quiz.Title, len(m.Quiz.Questions))
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Seeding failed, nothing written: %v", err)
	}

	log.Println("Seeding complete")
}
