package routes

import (
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/controllers"
	"Gin_postgres_redis_library_tool/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)

	authCtl := controllers.NewAuthController(s, s.Repo)
	bookCtl := controllers.NewBookController(s.Repo)
	studentCtl := controllers.NewStudentController(s.Repo)
	issueCtl := controllers.NewIssueController(s.Repo, a.Config)
	requestCtl := controllers.NewRequestController(s.Repo, a.Config)
	reportCtl := controllers.NewReportController(s.Repo, a.RDB)
	inviteCtl := controllers.NewInviteController(s.Repo, a.Config.WebOrigin)
	userCtl := controllers.NewUserController(s.Repo)

	authMW := app.AuthRequired(s.AppSess, s.Repo)
	librarianMW := app.LibrarianOnly()
	studentMW := app.StudentOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	// Public
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/signup", authCtl.Signup)
	}

	authed := r.Group("", authMW, seenMW)
	{
		authed.POST("/auth/logout", authCtl.Logout)
		authed.GET("/auth/whoami", authCtl.Whoami)

		// Catalog: anyone logged in can browse.
		authed.GET("/books", bookCtl.ListBooks)
		authed.GET("/books/:id", bookCtl.GetBook)

		authed.GET("/dashboard", reportCtl.Dashboard)

		// Requests: students file them, both roles can list (students
		// only see their own).
		authed.POST("/books/:id/request", studentMW, requestCtl.RequestBook)
		authed.GET("/requests", requestCtl.ListRequests)
	}

	// Librarian desk
	lib := r.Group("", authMW, seenMW, librarianMW)
	{
		lib.POST("/books", bookCtl.CreateBook)
		lib.POST("/books/:id/recycle", bookCtl.RecycleBook)

		lib.GET("/students", studentCtl.ListStudents)
		lib.POST("/students", studentCtl.CreateStudent)
		lib.GET("/students/:id", studentCtl.GetStudent)

		lib.POST("/issues", issueCtl.IssueBook)
		lib.GET("/issues", issueCtl.ListIssues)
		lib.GET("/issues/:id", issueCtl.GetIssue)
		lib.GET("/issues/:id/fine", issueCtl.PreviewFine)
		lib.POST("/issues/:id/return", issueCtl.ReturnIssue)
		lib.POST("/issues/:id/settle", issueCtl.SettleFine)

		lib.GET("/requests/:id", requestCtl.GetRequest)
		lib.POST("/requests/:id/decide", requestCtl.DecideRequest)

		lib.GET("/reports", reportCtl.Reports)
		lib.GET("/audit", reportCtl.AuditLog)

		lib.POST("/invites", inviteCtl.CreateInvite)
		lib.GET("/invites", inviteCtl.ListInvites)

		lib.GET("/users", userCtl.ListUsers)
	}
}
