package learning

import (
	"testing"

	models "lms/models/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func exhaustAttempts(t *testing.T, db *gorm.DB, userID, quizID uint) {
	t.Helper()
	for i := 0; i < MaxStandardAttempts; i++ {
		takeQuiz(t, db, userID, quizID, 0)
	}
}

func TestGrantRequestWhileAttemptsRemain(t *testing.T) {
	db := newTestDB(t)
	quiz := singleQuizCourse(t, db, 1, 2, 1)

	outcome, err := RequestGrant(db, 1, quiz.ID, "did not study enough")
	require.NoError(t, err)
	assert.Equal(t, GrantAttemptsRemaining, outcome)

	var requests int64
	db.Model(&models.QuizAttemptRequest{}).Count(&requests)
	assert.Zero(t, requests)
}

func TestGrantLifecycle(t *testing.T) {
	db := newTestDB(t)
	quiz := singleQuizCourse(t, db, 1, 2, 1)
	exhaustAttempts(t, db, 1, quiz.ID)

	outcome, err := RequestGrant(db, 1, quiz.ID, "network dropped mid-attempt")
	require.NoError(t, err)
	assert.Equal(t, GrantCreated, outcome)

	outcome, err = RequestGrant(db, 1, quiz.ID, "please")
	require.NoError(t, err)
	assert.Equal(t, GrantAlreadyPending, outcome)

	var request models.QuizAttemptRequest
	require.NoError(t, db.Where("user_id = ? AND quiz_id = ?", 1, quiz.ID).First(&request).Error)

	require.NoError(t, ApproveGrant(db, request.ID, 42, "one more shot"))

	outcome, err = RequestGrant(db, 1, quiz.ID, "another")
	require.NoError(t, err)
	assert.Equal(t, GrantAlreadyAvailable, outcome)

	// The grant opens exactly one extra attempt.
	require.NoError(t, CanStartAttempt(db, 1, false, quiz.ID))
	attempt := takeQuiz(t, db, 1, quiz.ID, 2)
	assert.True(t, attempt.Passed)

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.True(t, request.Used, "submission must consume the grant")

	_, err = StartAttempt(db, 1, false, quiz.ID)
	assert.ErrorIs(t, err, ErrAttemptCapExceeded)

	// Consumed grants never block a fresh request.
	outcome, err = RequestGrant(db, 1, quiz.ID, "one more time")
	require.NoError(t, err)
	assert.Equal(t, GrantCreated, outcome)
}

func TestGrantReviewIsNotRepeatable(t *testing.T) {
	db := newTestDB(t)
	quiz := singleQuizCourse(t, db, 1, 2, 1)
	exhaustAttempts(t, db, 1, quiz.ID)

	_, err := RequestGrant(db, 1, quiz.ID, "reason")
	require.NoError(t, err)

	var request models.QuizAttemptRequest
	require.NoError(t, db.Where("user_id = ?", 1).First(&request).Error)

	require.NoError(t, RejectGrant(db, request.ID, 42, "no"))
	assert.ErrorIs(t, ApproveGrant(db, request.ID, 42, "changed my mind"), ErrAlreadyReviewed)
	assert.ErrorIs(t, RejectGrant(db, request.ID, 42, "still no"), ErrAlreadyReviewed)
}

func TestRejectedGrantDoesNotOpenAttempts(t *testing.T) {
	db := newTestDB(t)
	quiz := singleQuizCourse(t, db, 1, 2, 1)
	exhaustAttempts(t, db, 1, quiz.ID)

	_, err := RequestGrant(db, 1, quiz.ID, "reason")
	require.NoError(t, err)

	var request models.QuizAttemptRequest
	require.NoError(t, db.Where("user_id = ?", 1).First(&request).Error)
	require.NoError(t, RejectGrant(db, request.ID, 42, "no"))

	_, err = StartAttempt(db, 1, false, quiz.ID)
	assert.ErrorIs(t, err, ErrAttemptCapExceeded)

	// After rejection the learner may ask again.
	outcome, err := RequestGrant(db, 1, quiz.ID, "second ask")
	require.NoError(t, err)
	assert.Equal(t, GrantCreated, outcome)
}

func TestOldestGrantConsumedFirst(t *testing.T) {
	db := newTestDB(t)
	quiz := singleQuizCourse(t, db, 1, 2, 1)
	exhaustAttempts(t, db, 1, quiz.ID)

	// Two approved grants can only exist via direct admin rows; simulate it.
	first := models.QuizAttemptRequest{UserID: 1, QuizID: quiz.ID, Status: models.StatusApproved}
	second := models.QuizAttemptRequest{UserID: 1, QuizID: quiz.ID, Status: models.StatusApproved}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	takeQuiz(t, db, 1, quiz.ID, 2)

	require.NoError(t, db.First(&first, first.ID).Error)
	require.NoError(t, db.First(&second, second.ID).Error)
	assert.True(t, first.Used)
	assert.False(t, second.Used)
}
