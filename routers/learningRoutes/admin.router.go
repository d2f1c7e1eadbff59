package learningRoutes

import (
	controllers "lms/controllers/learning"
	"lms/middleware"
	validators "lms/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes registers the authoring and review surface. Everything
// here sits behind the JWT check plus the admin role gate.
func SetupAdminRoutes(app *fiber.App) {
	adminCourse := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireAdmin)

	adminCourse.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminCourse.Put("/:courseID", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminCourse.Delete("/:courseID", validators.CourseID(), controllers.AdminDeleteCourse)
	adminCourse.Post("/:courseID/enroll-user", validators.CourseID(), validators.AdminEnroll(), controllers.AdminEnrollUser)

	adminCourse.Get("/:courseID/modules", validators.CourseID(), controllers.AdminListModules)
	adminCourse.Post("/:courseID/module", validators.CourseID(), validators.CreateModule(), controllers.AdminCreateModule)
	adminCourse.Put("/:courseID/module/:moduleID", validators.CourseID(), validators.ModuleID(), validators.UpdateModule(), controllers.AdminUpdateModule)
	adminCourse.Delete("/:courseID/module/:moduleID", validators.CourseID(), validators.ModuleID(), controllers.AdminDeleteModule)

	adminModule := app.Group("/admin/module", middleware.JWTMiddleware, middleware.RequireAdmin)

	adminModule.Post("/:moduleID/quiz", validators.ModuleID(), validators.CreateQuiz(), controllers.AdminCreateQuiz)
	adminModule.Put("/:moduleID/quiz", validators.ModuleID(), validators.UpdateQuiz(), controllers.AdminUpdateQuiz)
	adminModule.Get("/:moduleID/questions", validators.ModuleID(), controllers.AdminListQuestions)
	adminModule.Post("/:moduleID/question", validators.ModuleID(), validators.CreateQuestion(), controllers.AdminCreateQuestion)
	adminModule.Delete("/:moduleID/question/:questionID", validators.ModuleID(), validators.QuestionID(), controllers.AdminDeleteQuestion)

	adminReview := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	adminReview.Get("/enrollment-requests", controllers.AdminGetPendingEnrollments)
	adminReview.Post("/enrollment-requests/:requestID/approve", validators.RequestID(), controllers.AdminApproveEnrollment)
	adminReview.Post("/enrollment-requests/:requestID/reject", validators.RequestID(), controllers.AdminRejectEnrollment)

	adminReview.Get("/attempt-requests", controllers.AdminGetPendingGrants)
	adminReview.Post("/attempt-requests/:requestID/approve", validators.RequestID(), controllers.AdminApproveGrant)
	adminReview.Post("/attempt-requests/:requestID/reject", validators.RequestID(), controllers.AdminRejectGrant)

	adminReview.Get("/dashboard", controllers.AdminDashboardStats)
}
