package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sparkslearn/console/docs"
	v1 "github.com/sparkslearn/console/internal/api/handler/v1"
	"github.com/sparkslearn/console/internal/api/middleware"
	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/config"
	"github.com/sparkslearn/console/internal/metrics"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth     *v1.AuthHandler
	college  *v1.CollegeHandler
	student  *v1.StudentHandler
	importer *v1.ImportHandler
	audit    *v1.AuditHandler
	workshop *v1.WorkshopHandler
}

func NewServer(conf *config.AppConfig, svcs bootstrap.Services) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(handlers{
		auth:     s.initAuthHandler(svcs),
		college:  v1.NewCollegeHandler(svcs.Colleges),
		student:  v1.NewStudentHandler(svcs.Students, svcs.Registration),
		importer: v1.NewImportHandler(svcs.Import, conf.API.MaxImportBytes),
		audit:    v1.NewAuditHandler(svcs.Audit),
		workshop: v1.NewWorkshopHandler(svcs.Workshops),
	})

	return s
}

func (s *Server) initAuthHandler(svcs bootstrap.Services) *v1.AuthHandler {
	return v1.NewAuthHandler(s.Config.API, svcs.Auth)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.PropagateRequestID())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	console := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		console.GET("/auth/me", h.auth.HandleMe)

		console.GET("/colleges", h.college.HandleListColleges)
		console.POST("/colleges", h.college.HandleCreateCollege)
		console.GET("/colleges/:collegeID", h.college.HandleGetCollege)
		console.PATCH("/colleges/:collegeID/status", h.college.HandleUpdateCollegeStatus)
		console.GET("/colleges/:collegeID/students", h.student.HandleListStudents)
		console.POST("/colleges/:collegeID/students", h.student.HandleRegisterStudent)
		console.POST("/colleges/:collegeID/students/import", h.importer.HandleImport)
		console.GET("/colleges/:collegeID/students/export", h.student.HandleExportRoster)

		console.GET("/students/:studentID", h.student.HandleGetStudent)
		console.DELETE("/students/:studentID", h.student.HandleDeleteStudent)
		console.POST("/students/bulk-delete", h.student.HandleBulkDeleteStudents)
		console.POST("/students/:studentID/points", h.student.HandleAwardPoints)

		console.POST("/colleges/:collegeID/workshops", h.workshop.HandleCreateWorkshop)
		console.GET("/workshops", h.workshop.HandleListWorkshops)
		console.GET("/workshops/:workshopID/submissions", h.workshop.HandleListSubmissions)
		console.POST("/workshops/:workshopID/submissions", h.workshop.HandleSubmitWork)
		console.POST("/submissions/:submissionID/grade", h.workshop.HandleGradeSubmission)

		console.GET("/leaderboard", h.student.HandleLeaderboard)
		console.POST("/season/archive", h.student.HandleArchiveSeason)
		console.GET("/audit", h.audit.HandleListAudit)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Sparks Learn admin console API"
	docs.SwaggerInfo.Description = "Student registration, roster import and gamification for Sparks Learn colleges."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
