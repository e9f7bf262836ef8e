package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/eduforge/lms/internal/handlers"
	"github.com/eduforge/lms/internal/middleware"
	"github.com/eduforge/lms/internal/service"
)

type Deps struct {
	Auth          *service.AuthService
	AuthHandler   *handlers.AuthHandler
	CourseHandler *handlers.CourseHandler
	QuizHandler   *handlers.QuizHandler
	VideoHandler  *handlers.VideoHandler
	UploadHandler *handlers.UploadHandler

	PDFDir   string
	VideoDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	requireUser := middleware.RequireUser(d.Auth)

	e.POST("/auth/signup", d.AuthHandler.Signup)
	e.POST("/auth/token", d.AuthHandler.Token)
	e.GET("/auth/me", d.AuthHandler.Me, requireUser)

	courses := e.Group("/courses")
	courses.GET("", d.CourseHandler.GetCourses)
	courses.GET("/:id", d.CourseHandler.GetCourse)
	courses.POST("", d.CourseHandler.CreateCourse, requireUser)
	courses.PUT("/:id", d.CourseHandler.UpdateCourse, requireUser)
	courses.DELETE("/:id", d.CourseHandler.DeleteCourse, requireUser)

	quizzes := e.Group("/quizzes")
	quizzes.GET("", d.QuizHandler.GetQuizzes)
	quizzes.GET("/:id", d.QuizHandler.GetQuiz)
	quizzes.POST("", d.QuizHandler.CreateQuiz, requireUser)
	quizzes.PUT("/:id", d.QuizHandler.UpdateQuiz, requireUser)

	questions := e.Group("/questions")
	questions.GET("/:quiz_id", d.QuizHandler.GetQuestions)
	questions.POST("", d.QuizHandler.CreateQuestion, requireUser)
	questions.PUT("/:id", d.QuizHandler.UpdateQuestion, requireUser)

	results := e.Group("/results", requireUser)
	results.POST("", d.QuizHandler.CreateResult)
	results.GET("/:user_id", d.QuizHandler.GetResults)

	e.POST("/upload/pdf", d.UploadHandler.UploadPDF)
	e.DELETE("/pdf_delete", d.UploadHandler.DeletePDF, requireUser)

	videos := e.Group("/videos")
	videos.GET("", d.VideoHandler.GetVideos)
	videos.GET("/:id", d.VideoHandler.GetVideo)
	videos.POST("", d.VideoHandler.UploadVideo, requireUser)
	videos.DELETE("/:id", d.VideoHandler.DeleteVideo, requireUser)

	e.Static("/pdfs", d.PDFDir)
	e.Static("/video-files", d.VideoDir)
}
