package learning

import (
	"time"

	"gorm.io/gorm"
)

// Review statuses shared by enrollment and attempt-grant requests.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// EnrollmentRequest tracks a learner's ask to join a course. One row per
// (user, course); re-requesting after rejection or unenrollment resets the
// same row to pending.
type EnrollmentRequest struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_request"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_request"`
	Status      string     `json:"status" gorm:"default:'pending'"`
	RequestedAt time.Time  `json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewedBy  *uint      `json:"reviewed_by"`
	Notes       string     `json:"notes" gorm:"type:text"` // reviewer notes for approval/rejection
}

// CourseEnrollment is the durable record that a learner may access a course.
// Created only by approving an EnrollmentRequest (or directly by an admin).
type CourseEnrollment struct {
	gorm.Model
	UserID              uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_enrollment"`
	CourseID            uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_enrollment"`
	EnrolledAt          time.Time `json:"enrolled_at"`
	EnrollmentRequestID *uint     `json:"enrollment_request_id"`
}
