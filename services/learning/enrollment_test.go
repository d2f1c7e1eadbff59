package learning

import (
	"testing"

	models "lms/models/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentRequestLifecycle(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Algebra")

	outcome, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentCreated, outcome)

	outcome, err = RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentAlreadyPending, outcome)

	var request models.EnrollmentRequest
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&request).Error)

	enrollment, err := ApproveEnrollment(db, request.ID, 42, "welcome")
	require.NoError(t, err)
	assert.Equal(t, uint(1), enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)

	enrolled, err := IsEnrolled(db, 1, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	outcome, err = RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentAlreadyEnrolled, outcome)
}

func TestApproveEnrollmentIsNotRepeatable(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Algebra")

	_, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)

	var request models.EnrollmentRequest
	require.NoError(t, db.Where("user_id = ?", 1).First(&request).Error)

	_, err = ApproveEnrollment(db, request.ID, 42, "")
	require.NoError(t, err)

	_, err = ApproveEnrollment(db, request.ID, 42, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	var enrollments int64
	db.Model(&models.CourseEnrollment{}).Where("user_id = ? AND course_id = ?", 1, course.ID).Count(&enrollments)
	assert.EqualValues(t, 1, enrollments, "double approval must not duplicate the enrollment")
}

func TestRejectThenReviewAgainFails(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Algebra")

	_, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)

	var request models.EnrollmentRequest
	require.NoError(t, db.Where("user_id = ?", 1).First(&request).Error)

	require.NoError(t, RejectEnrollment(db, request.ID, 42, "not yet"))

	err = RejectEnrollment(db, request.ID, 42, "again")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	_, err = ApproveEnrollment(db, request.ID, 42, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	enrolled, err := IsEnrolled(db, 1, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestReRequestAfterRejectionResetsTheSameRow(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Algebra")

	_, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)

	var request models.EnrollmentRequest
	require.NoError(t, db.Where("user_id = ?", 1).First(&request).Error)
	require.NoError(t, RejectEnrollment(db, request.ID, 42, "missing prerequisites"))

	outcome, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentCreated, outcome)

	var requests int64
	db.Model(&models.EnrollmentRequest{}).Where("user_id = ? AND course_id = ?", 1, course.ID).Count(&requests)
	assert.EqualValues(t, 1, requests)

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.Nil(t, request.ReviewedAt)
	assert.Nil(t, request.ReviewedBy)
	assert.Empty(t, request.Notes)
}

func TestUnenrollThenReEnrollCycle(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Algebra")

	_, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)

	var request models.EnrollmentRequest
	require.NoError(t, db.Where("user_id = ?", 1).First(&request).Error)
	_, err = ApproveEnrollment(db, request.ID, 42, "")
	require.NoError(t, err)

	require.NoError(t, Unenroll(db, 1, course.ID))

	enrolled, err := IsEnrolled(db, 1, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	// The stale approved request resets to a fresh pending cycle.
	outcome, err := RequestEnrollment(db, 1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentCreated, outcome)

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.Equal(t, models.StatusPending, request.Status)

	_, err = ApproveEnrollment(db, request.ID, 42, "back again")
	require.NoError(t, err)

	enrolled, err = IsEnrolled(db, 1, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestUnenrollWithoutEnrollmentFails(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Algebra")

	err := Unenroll(db, 1, course.ID)
	assert.Error(t, err)
}
