package learningController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	learning "lms/models/learning"
	learningRoutes "lms/routers/learningRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{Port: "3000", JWTKey: "test-secret", SaltRound: 10}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	learningRoutes.SetupLearningRoutes(app)
	learningRoutes.SetupAdminRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, role string) (*models.User, string) {
	t.Helper()

	user := models.User{
		Name:     fmt.Sprintf("%s user", role),
		Email:    fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		Role:     role,
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func seedQuizModule(t *testing.T, db *gorm.DB) (*learning.Course, *learning.Module, *learning.Quiz, *learning.QuizOption) {
	t.Helper()

	course := learning.Course{Title: "HTTP Course", Description: "envelope checks"}
	require.NoError(t, db.Create(&course).Error)

	module := learning.Module{CourseID: course.ID, Title: "Module 1", Order: 1}
	require.NoError(t, db.Create(&module).Error)

	quiz := learning.Quiz{ModuleID: &module.ID, Title: "Checkpoint", PassingScore: 70}
	require.NoError(t, db.Create(&quiz).Error)

	question := learning.QuizQuestion{QuizID: quiz.ID, QuestionText: "Q1", QuestionType: "multiple_choice", Points: 1, Order: 1}
	require.NoError(t, db.Create(&question).Error)

	var correct *learning.QuizOption
	for i, isCorrect := range []bool{true, false} {
		option := learning.QuizOption{QuestionID: question.ID, OptionText: fmt.Sprintf("Option %d", i+1), IsCorrect: isCorrect, Order: i + 1}
		require.NoError(t, db.Create(&option).Error)
		if isCorrect {
			o := option
			correct = &o
		}
	}
	return &course, &module, &quiz, correct
}

func enrollUser(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	enrollment := learning.CourseEnrollment{UserID: userID, CourseID: courseID, EnrolledAt: time.Now()}
	require.NoError(t, db.Create(&enrollment).Error)
}

func TestEnrollmentRequestEnvelope(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "USER")
	course, _, _, _ := seedQuizModule(t, db)

	code, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, code)
	assert.True(t, env.Status)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "created-pending", data["outcome"])

	code, env = doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.False(t, env.Status)
	assert.Contains(t, env.Message, "pending enrollment request")
}

func TestRepeatedEnrollmentReviewIsConflict(t *testing.T) {
	app, db := setupApp(t)
	user, token := createUser(t, db, "USER")
	_, adminToken := createUser(t, db, "ADMIN")
	course, _, _, _ := seedQuizModule(t, db)

	code, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusCreated, code)

	var request learning.EnrollmentRequest
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&request).Error)

	path := fmt.Sprintf("/admin/enrollment-requests/%d/approve", request.ID)
	code, env := doRequest(t, app, http.MethodPost, path, adminToken, fiber.Map{"notes": "ok"})
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Status)

	code, env = doRequest(t, app, http.MethodPost, path, adminToken, fiber.Map{"notes": "again"})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.False(t, env.Status)
	assert.Contains(t, env.Message, "already been reviewed")

	var enrollments int64
	db.Model(&learning.CourseEnrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&enrollments)
	assert.EqualValues(t, 1, enrollments)
}

func TestSubmitAndCapEnvelopes(t *testing.T) {
	app, db := setupApp(t)
	user, token := createUser(t, db, "USER")
	course, module, quiz, correct := seedQuizModule(t, db)
	enrollUser(t, db, user.ID, course.ID)

	code, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/module/%d/quiz/start", module.ID), token, nil)
	require.Equal(t, fiber.StatusCreated, code)
	require.True(t, env.Status)

	var started struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &started))
	require.NotZero(t, started.ID)

	submitPath := fmt.Sprintf("/quiz/attempt/%d/submit", started.ID)
	body := fiber.Map{"answers": map[string]uint{fmt.Sprint(correct.QuestionID): correct.ID}}
	code, env = doRequest(t, app, http.MethodPost, submitPath, token, body)
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Status)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, 100.0, result["score"])

	// Burn the remaining standard attempts, then reserve one more row
	// directly so the submit-time re-check is what rejects it.
	now := time.Now()
	for i := 0; i < 2; i++ {
		attempt := learning.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, StartedAt: now, CompletedAt: &now}
		require.NoError(t, db.Create(&attempt).Error)
	}
	overflow := learning.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, StartedAt: now}
	require.NoError(t, db.Create(&overflow).Error)

	code, env = doRequest(t, app, http.MethodPost, fmt.Sprintf("/quiz/attempt/%d/submit", overflow.ID), token, body)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.False(t, env.Status)
	assert.Contains(t, env.Message, "maximum number of attempts")
}

func TestDeletedModuleOrderCanBeReused(t *testing.T) {
	app, db := setupApp(t)
	_, adminToken := createUser(t, db, "ADMIN")
	course, module, quiz, _ := seedQuizModule(t, db)

	deletePath := fmt.Sprintf("/admin/course/%d/module/%d", course.ID, module.ID)
	code, env := doRequest(t, app, http.MethodDelete, deletePath, adminToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	require.True(t, env.Status)

	// The quiz tree goes with the module, including soft-delete leftovers.
	var remaining int64
	db.Unscoped().Model(&learning.Module{}).Where("id = ?", module.ID).Count(&remaining)
	assert.Zero(t, remaining)
	db.Unscoped().Model(&learning.Quiz{}).Where("id = ?", quiz.ID).Count(&remaining)
	assert.Zero(t, remaining)
	db.Unscoped().Model(&learning.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&remaining)
	assert.Zero(t, remaining)

	createPath := fmt.Sprintf("/admin/course/%d/module", course.ID)
	code, env = doRequest(t, app, http.MethodPost, createPath, adminToken, fiber.Map{"title": "Rebuilt module", "order": 1})
	assert.Equal(t, fiber.StatusCreated, code, "the freed order slot must be reusable")
	assert.True(t, env.Status)
}

func TestQuizReadReportsStorageFailure(t *testing.T) {
	app, db := setupApp(t)
	user, token := createUser(t, db, "USER")
	course, module, _, _ := seedQuizModule(t, db)
	enrollUser(t, db, user.ID, course.ID)

	require.NoError(t, db.Migrator().DropTable(&learning.QuizOption{}))

	code, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/module/%d/quiz", module.ID), token, nil)
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.False(t, env.Status)
}
