package learningRoutes

import (
	controllers "lms/controllers/learning"
	"lms/middleware"
	validators "lms/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupLearningRoutes registers the learner-facing catalog, enrollment,
// quiz and tutor routes.
func SetupLearningRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	courseGroup.Get("/list", controllers.GetAllCourses)
	courseGroup.Get("/my-enrollments", controllers.GetMyEnrollments)
	courseGroup.Get("/:courseID", validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/:courseID/enroll", validators.CourseID(), controllers.RequestEnrollment)
	courseGroup.Delete("/:courseID/enroll", validators.CourseID(), controllers.Unenroll)

	moduleGroup := app.Group("/module", middleware.JWTMiddleware)

	moduleGroup.Get("/:moduleID/quiz", validators.ModuleID(), controllers.GetQuiz)
	moduleGroup.Post("/:moduleID/quiz/start", validators.ModuleID(), controllers.StartQuizAttempt)
	moduleGroup.Get("/:moduleID/quiz/attempts", validators.ModuleID(), controllers.GetAttemptHistory)
	moduleGroup.Post("/:moduleID/quiz/request-attempt", validators.ModuleID(), validators.GrantRequest(), controllers.RequestAttemptGrant)

	moduleGroup.Post("/:moduleID/ask", validators.ModuleID(), validators.TutorQuestion(), controllers.AskModuleTutor)
	moduleGroup.Get("/:moduleID/ask/history", validators.ModuleID(), controllers.GetTutorHistory)
	moduleGroup.Delete("/:moduleID/ask/history", validators.ModuleID(), controllers.DeleteTutorHistory)

	quizGroup := app.Group("/quiz", middleware.JWTMiddleware)

	quizGroup.Post("/attempt/:attemptID/submit", validators.AttemptID(), controllers.SubmitQuizAttempt)
	quizGroup.Get("/my-requests", controllers.GetMyAttemptRequests)
}
