package app

import (
	"advising_backend/internal/config"
	"advising_backend/internal/middleware"
	"advising_backend/internal/model"
	"advising_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:code", c.course.GetCourse)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.student.Me)
		authGroup.PUT("/profile", c.student.UpdateProfile)

		a.registerStudentRoutes(authGroup, c)
		a.registerProfessorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	student := group.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/enrollments", c.enrollment.Join)
		student.GET("/enrollments", c.enrollment.MyEnrollments)
		student.PUT("/enrollments/courses/:courseId", c.enrollment.UpdateStatus)

		student.GET("/courses/:courseId/grades", c.grade.PeriodGrades)
		student.GET("/courses/:courseId/performance", c.grade.Summary)

		student.GET("/recommendations", c.recommendation.Recommend)

		student.POST("/courses/:courseId/insights", c.insight.Analyze)
		student.GET("/insights", c.insight.ListInsights)
		student.GET("/courses/:courseId/resources", c.insight.SuggestResources)

		student.GET("/remarks", c.remark.ListForStudent)

		student.POST("/advising/sessions", c.advising.Schedule)
		student.GET("/advising/sessions", c.advising.MySessions)
		student.PUT("/advising/sessions/:id/cancel", c.advising.Cancel)
	}
}

func (a *App) registerProfessorRoutes(group *gin.RouterGroup, c *controllers) {
	professor := group.Group("/professor")
	professor.Use(middleware.RoleMiddleware(model.Professor))
	{
		professor.GET("/courses", c.course.MyCourses)
		professor.GET("/students", c.student.ListStudents)
		professor.PUT("/students/:id/profile", c.student.UpdateProfile)

		professor.POST("/students/:studentId/courses/:courseId/grades", c.grade.AddComponent)
		professor.PUT("/grades/components/:id", c.grade.UpdateComponent)
		professor.DELETE("/grades/components/:id", c.grade.DeleteComponent)
		professor.GET("/courses/:courseId/grades", c.grade.PeriodGrades)
		professor.GET("/courses/:courseId/performance", c.grade.Summary)

		professor.POST("/courses/:courseId/syllabus", c.syllabus.Upload)
		professor.GET("/courses/:courseId/syllabus", c.syllabus.Latest)
		professor.POST("/syllabus/:id/analyze", c.syllabus.Analyze)

		professor.POST("/remarks", c.remark.Create)
		professor.PUT("/remarks/:id", c.remark.Update)
		professor.DELETE("/remarks/:id", c.remark.Delete)
		professor.GET("/remarks", c.remark.ListForStudent)

		professor.POST("/courses/:courseId/insights", c.insight.Analyze)
		professor.GET("/insights", c.insight.ListInsights)
		professor.GET("/insights/risk-alerts", c.insight.RiskAlerts)

		professor.GET("/advising/sessions", c.advising.MySessions)
		professor.PUT("/advising/sessions/:id/complete", c.advising.Complete)
		professor.PUT("/advising/sessions/:id/cancel", c.advising.Cancel)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/courses", c.course.CreateCourse)
		admin.POST("/courses/:id/professors", c.course.AssignProfessor)
	}
}
