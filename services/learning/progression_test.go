package learning

import (
	"testing"

	models "lms/models/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstModuleOpenForEnrolledUser(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	module1 := addModule(t, db, course.ID, 1)
	enroll(t, db, 1, course.ID)

	unlocked, err := IsModuleUnlocked(db, 1, false, module1)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestEverythingLockedWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	module1 := addModule(t, db, course.ID, 1)

	unlocked, err := IsModuleUnlocked(db, 1, false, module1)
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestNextModuleUnlocksOnlyAfterPassing(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	module1 := addModule(t, db, course.ID, 1)
	quiz1 := addQuiz(t, db, module1.ID, 70)
	for i := 1; i <= 5; i++ {
		addQuestion(t, db, quiz1.ID, 2, i)
	}
	module2 := addModule(t, db, course.ID, 2)
	enroll(t, db, 1, course.ID)

	unlocked, err := IsModuleUnlocked(db, 1, false, module2)
	require.NoError(t, err)
	assert.False(t, unlocked, "no attempt yet")

	failing := takeQuiz(t, db, 1, quiz1.ID, 3) // 60%, below 70
	assert.False(t, failing.Passed)

	unlocked, err = IsModuleUnlocked(db, 1, false, module2)
	require.NoError(t, err)
	assert.False(t, unlocked, "failing attempt must not unlock")

	passing := takeQuiz(t, db, 1, quiz1.ID, 5)
	assert.True(t, passing.Passed)

	unlocked, err = IsModuleUnlocked(db, 1, false, module2)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestQuizlessPredecessorLocksSuccessor(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	addModule(t, db, course.ID, 1) // no quiz
	module2 := addModule(t, db, course.ID, 2)
	enroll(t, db, 1, course.ID)

	unlocked, err := IsModuleUnlocked(db, 1, false, module2)
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestMissingPredecessorOrderUnlocks(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	addModule(t, db, course.ID, 1)
	module5 := addModule(t, db, course.ID, 5) // orders 2-4 never created
	enroll(t, db, 1, course.ID)

	unlocked, err := IsModuleUnlocked(db, 1, false, module5)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestAdminBypassesAllGating(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	addModule(t, db, course.ID, 1)
	module2 := addModule(t, db, course.ID, 2)

	// Not enrolled, predecessor quizless: locked on every rule for a learner.
	unlocked, err := IsModuleUnlocked(db, 99, true, module2)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestUnlockRecomputedAfterUnenroll(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Go Basics")
	module1 := addModule(t, db, course.ID, 1)
	enroll(t, db, 1, course.ID)

	unlocked, err := IsModuleUnlocked(db, 1, false, module1)
	require.NoError(t, err)
	assert.True(t, unlocked)

	require.NoError(t, Unenroll(db, 1, course.ID))

	unlocked, err = IsModuleUnlocked(db, 1, false, module1)
	require.NoError(t, err)
	assert.False(t, unlocked)

	var count int64
	db.Model(&models.CourseEnrollment{}).Where("user_id = ?", 1).Count(&count)
	assert.Zero(t, count)
}
