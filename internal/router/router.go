package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dataconsult/internal/auth"
	"dataconsult/internal/handler"
	"dataconsult/internal/metrics"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Jobs          *handler.JobHandler
	Applications  *handler.ApplicationHandler
	Blogs         *handler.BlogHandler
	Solutions     *handler.SolutionHandler
	Users         *handler.UserHandler
	Submissions   *handler.SubmissionHandler
	Notifications *handler.NotificationHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, logger *slog.Logger, sessions *auth.SessionService, h Handlers) {
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(SessionMiddleware(sessions))
	e.Use(EdgeGate())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Page shells; EdgeGate redirects before these run.
	e.GET("/dashboard", handler.Dashboard)
	e.GET("/dashboard/*", handler.Dashboard)
	e.GET("/admin", handler.Admin)
	e.GET("/admin/*", handler.Admin)

	api := e.Group("/api")

	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/session", h.Auth.Session)

	// Public content
	api.GET("/jobs", h.Jobs.ListJobs)
	api.GET("/jobs/:slug", h.Jobs.GetJob)
	api.GET("/blogs", h.Blogs.ListBlogs)
	api.GET("/blogs/categories", h.Blogs.ListCategories)
	api.GET("/blogs/:slug", h.Blogs.GetBlog)
	api.GET("/solutions", h.Solutions.ListSolutions)
	api.GET("/solutions/:slug", h.Solutions.GetSolution)
	api.POST("/contact", h.Submissions.SubmitContact)
	api.POST("/faq-questions", h.Submissions.AskQuestion)

	// Any signed-in user
	api.POST("/applications", h.Applications.Apply)
	api.GET("/applications/check", h.Applications.Check)
	api.GET("/applications/mine", h.Applications.ListMine)
	api.POST("/applications/resume", h.Applications.UploadResume)
	api.GET("/profile", h.Users.GetProfile)
	api.PATCH("/profile", h.Users.UpdateProfile)
	api.POST("/profile/password", h.Users.ChangePassword)
	api.POST("/profile/avatar", h.Users.UploadAvatar)

	// Back office. Every handler checks its own role; application review
	// also admits HR.
	admin := api.Group("/admin")

	admin.GET("/jobs", h.Jobs.AdminListJobs)
	admin.POST("/jobs", h.Jobs.CreateJob)
	admin.GET("/jobs/:id", h.Jobs.AdminGetJob)
	admin.PATCH("/jobs/:id", h.Jobs.UpdateJob)

	admin.GET("/applications", h.Applications.ListApplications)
	admin.PATCH("/applications/:id/status", h.Applications.UpdateStatus)
	admin.DELETE("/applications/:id", h.Applications.DeleteApplication)

	admin.GET("/blogs", h.Blogs.AdminListBlogs)
	admin.POST("/blogs", h.Blogs.CreateBlog)
	admin.GET("/blogs/:id", h.Blogs.AdminGetBlog)
	admin.PATCH("/blogs/:id", h.Blogs.UpdateBlog)
	admin.DELETE("/blogs/:id", h.Blogs.DeleteBlog)

	admin.POST("/categories", h.Blogs.CreateCategory)
	admin.PUT("/categories/:id", h.Blogs.UpdateCategory)
	admin.DELETE("/categories/:id", h.Blogs.DeleteCategory)

	admin.GET("/solutions", h.Solutions.AdminListSolutions)
	admin.POST("/solutions", h.Solutions.CreateSolution)
	admin.PATCH("/solutions/:id", h.Solutions.UpdateSolution)
	admin.DELETE("/solutions/:id", h.Solutions.DeleteSolution)

	admin.GET("/users", h.Users.ListUsers)
	admin.POST("/users", h.Users.CreateUser)

	admin.GET("/contact", h.Submissions.ListContact)
	admin.GET("/faq-questions", h.Submissions.ListQuestions)

	admin.GET("/notifications", h.Notifications.ListNotifications)
	admin.POST("/notifications/read", h.Notifications.MarkAllRead)
}
