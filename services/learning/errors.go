package learning

import "errors"

// MaxStandardAttempts is the default attempt cap per learner per quiz.
// Attempts beyond it require an unused approved QuizAttemptRequest.
const MaxStandardAttempts = 3

// Policy violations. These are expected user-facing outcomes, never crashes;
// handlers map them to 4xx responses.
var (
	ErrNotEnrolled        = errors.New("user is not enrolled in this course")
	ErrModuleLocked       = errors.New("previous module's quiz must be passed first")
	ErrNoQuestions        = errors.New("quiz does not have any questions yet")
	ErrAttemptCapExceeded = errors.New("maximum number of quiz attempts reached")
	ErrAlreadyReviewed    = errors.New("request has already been reviewed")
	ErrAlreadyCompleted   = errors.New("attempt has already been completed")
)

// EnrollmentOutcome is the result of a learner's enrollment request.
type EnrollmentOutcome string

const (
	EnrollmentCreated         EnrollmentOutcome = "created-pending"
	EnrollmentAlreadyEnrolled EnrollmentOutcome = "already-enrolled"
	EnrollmentAlreadyPending  EnrollmentOutcome = "already-pending"
)

// GrantOutcome is the result of a learner's extra-attempt request. All four
// cases are outcomes, not errors.
type GrantOutcome string

const (
	GrantCreated           GrantOutcome = "created-pending"
	GrantAlreadyPending    GrantOutcome = "already-pending"
	GrantAlreadyAvailable  GrantOutcome = "already-available"
	GrantAttemptsRemaining GrantOutcome = "attempts-remaining"
)
