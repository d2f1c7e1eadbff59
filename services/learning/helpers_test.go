package learning

import (
	"fmt"
	"testing"
	"time"

	"lms/database"
	models "lms/models/learning"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory SQLite gives every pooled connection its own database;
	// pin the pool to one connection so all queries see the same data.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createCourse(t *testing.T, db *gorm.DB, title string) *models.Course {
	t.Helper()
	course := models.Course{Title: title, Description: "test course"}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func addModule(t *testing.T, db *gorm.DB, courseID uint, order int) *models.Module {
	t.Helper()
	module := models.Module{
		CourseID: courseID,
		Title:    fmt.Sprintf("Module %d", order),
		Order:    order,
	}
	require.NoError(t, db.Create(&module).Error)
	return &module
}

func addQuiz(t *testing.T, db *gorm.DB, moduleID uint, passingScore uint) *models.Quiz {
	t.Helper()
	quiz := models.Quiz{
		ModuleID:     &moduleID,
		Title:        "Checkpoint",
		PassingScore: passingScore,
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

// addQuestion creates a question worth the given points with one correct and
// two wrong options.
func addQuestion(t *testing.T, db *gorm.DB, quizID uint, points uint, order int) *models.QuizQuestion {
	t.Helper()
	question := models.QuizQuestion{
		QuizID:       quizID,
		QuestionText: fmt.Sprintf("Question %d", order),
		QuestionType: "multiple_choice",
		Points:       points,
		Order:        order,
	}
	require.NoError(t, db.Create(&question).Error)

	for i, correct := range []bool{true, false, false} {
		option := models.QuizOption{
			QuestionID: question.ID,
			OptionText: fmt.Sprintf("Option %d", i+1),
			IsCorrect:  correct,
			Order:      i + 1,
		}
		require.NoError(t, db.Create(&option).Error)
	}
	return &question
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	enrollment := models.CourseEnrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)
}

// pickAnswers selects an option for every question of the quiz: the correct
// one for the first `right` questions in order, a wrong one for the rest.
func pickAnswers(t *testing.T, db *gorm.DB, quizID uint, right int) map[uint]uint {
	t.Helper()

	var questions []models.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quizID).Order("question_order asc").Find(&questions).Error)

	answers := make(map[uint]uint, len(questions))
	for i, question := range questions {
		wantCorrect := i < right
		var option models.QuizOption
		require.NoError(t, db.Where("question_id = ? AND is_correct = ?", question.ID, wantCorrect).
			Order("id asc").First(&option).Error)
		answers[question.ID] = option.ID
	}
	return answers
}

// takeQuiz runs a full start+submit cycle answering `right` questions
// correctly and returns the completed attempt.
func takeQuiz(t *testing.T, db *gorm.DB, userID, quizID uint, right int) *models.QuizAttempt {
	t.Helper()

	attempt, err := StartAttempt(db, userID, false, quizID)
	require.NoError(t, err)

	completed, err := SubmitAttempt(db, attempt.ID, userID, false, Submission{
		Answers: pickAnswers(t, db, quizID, right),
	})
	require.NoError(t, err)
	return completed
}

// singleQuizCourse builds a one-module course with a quiz of `questions`
// questions worth `points` each, and enrolls the user.
func singleQuizCourse(t *testing.T, db *gorm.DB, userID uint, questions int, points uint) *models.Quiz {
	t.Helper()

	course := createCourse(t, db, "Solo")
	module := addModule(t, db, course.ID, 1)
	quiz := addQuiz(t, db, module.ID, 70)
	for i := 1; i <= questions; i++ {
		addQuestion(t, db, quiz.ID, points, i)
	}
	enroll(t, db, userID, course.ID)
	return quiz
}
