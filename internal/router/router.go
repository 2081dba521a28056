package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/handler"
	"github.com/noah-isme/rite-edu-api/internal/middleware"
	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	"github.com/noah-isme/rite-edu-api/pkg/config"
	"github.com/noah-isme/rite-edu-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/rite-edu-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/rite-edu-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	Admin        *handler.AdminHandler
	Teacher      *handler.TeacherHandler
	Student      *handler.StudentHandler
	Franchise    *handler.FranchiseHandler
	Course       *handler.CourseHandler
	Enrollment   *handler.EnrollmentHandler
	Certificate  *handler.CertificateHandler
	Job          *handler.JobHandler
	Announcement *handler.AnnouncementHandler
	Contact      *handler.ContactHandler
	Dashboard    *handler.DashboardHandler
	Export       *handler.ExportHandler
	Metrics      *handler.MetricsHandler
}

// Params holds the router dependencies.
type Params struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Tokens   middleware.TokenValidator
	Audit    middleware.AuditRecorder
	Handlers Handlers
}

// New builds the gin engine with the global middleware chain and every route group.
func New(p Params) *gin.Engine {
	if p.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(p.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))
	r.Use(middleware.WithResponseMeta())

	h := p.Handlers
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if p.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(p.Config.APIPrefix)
	registerPublic(api, h)

	authed := api.Group("")
	authed.Use(middleware.JWT(p.Tokens))
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/notifications", h.Announcement.ListNotifications)
	authed.GET("/examinations", h.Announcement.ListExaminations)

	registerAdmin(authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin)), h, p.Audit)
	registerTeacher(authed.Group("/teacher", middleware.RequireRoles(models.RoleTeacher)), h)
	registerStudent(authed.Group("/student", middleware.RequireRoles(models.RoleStudent)), h)

	franchise := authed.Group("/franchise", middleware.RequireRoles(models.RoleFranchise))
	franchise.GET("/profile", h.Franchise.Profile)

	return r
}

func registerPublic(api *gin.RouterGroup, h Handlers) {
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/register/student", h.Auth.RegisterStudent)
	api.POST("/auth/register/franchise", h.Auth.RegisterFranchise)
	api.GET("/courses", h.Course.List)
	api.GET("/courses/:id", h.Course.Get)
	api.GET("/certificates/verify/:certificateId", h.Certificate.Verify)
	api.POST("/contact", h.Contact.Submit)
}

func registerAdmin(admin *gin.RouterGroup, h Handlers, audit middleware.AuditRecorder) {
	admin.GET("/dashboard", h.Dashboard.Admin)
	admin.GET("/system/metrics", h.Metrics.System)

	admin.GET("/admins", h.Admin.List)
	admin.POST("/admins", h.Admin.Create)
	admin.PUT("/admins/:id", h.Admin.Update)
	admin.DELETE("/admins/:id", middleware.Audit(audit, "admin.delete", "admin"), h.Admin.Delete)
	admin.POST("/password", h.Admin.ChangePassword)

	admin.GET("/teachers", h.Teacher.List)
	admin.POST("/teachers", h.Teacher.Create)
	admin.GET("/teachers/:id", h.Teacher.Get)
	admin.PUT("/teachers/:id", h.Teacher.Update)
	admin.DELETE("/teachers/:id", h.Teacher.Delete)

	admin.GET("/students", h.Student.List)
	admin.GET("/students/:id", h.Student.Get)
	admin.DELETE("/students/:id", middleware.Audit(audit, "student.delete", "student"), h.Student.Delete)

	admin.GET("/franchises", h.Franchise.List)
	admin.GET("/franchises/:id", h.Franchise.Get)
	admin.PATCH("/franchises/:id/status", middleware.Audit(audit, "franchise.status", "franchise"), h.Franchise.SetStatus)

	admin.POST("/courses", h.Course.Create)
	admin.PUT("/courses/:id", h.Course.Update)
	admin.DELETE("/courses/:id", h.Course.Delete)

	admin.GET("/enrollments", h.Enrollment.Pending)
	admin.PATCH("/enrollments/:studentId/:courseId/approve", middleware.Audit(audit, "enrollment.approve", "enrollment"), h.Enrollment.Approve)
	admin.DELETE("/enrollments/:studentId/:courseId", middleware.Audit(audit, "enrollment.reject", "enrollment"), h.Enrollment.Reject)

	admin.GET("/certificates", h.Certificate.List)
	admin.POST("/certificates", middleware.Audit(audit, "certificate.issue", "certificate"), h.Certificate.Issue)
	admin.DELETE("/certificates/:id", middleware.Audit(audit, "certificate.delete", "certificate"), h.Certificate.Delete)

	admin.GET("/jobs", h.Job.List)
	admin.POST("/jobs", h.Job.Create)
	admin.GET("/jobs/:id", h.Job.Get)
	admin.PUT("/jobs/:id", h.Job.Update)
	admin.PATCH("/jobs/:id/status", middleware.Audit(audit, "job.status", "job"), h.Job.ChangeStatus)
	admin.DELETE("/jobs/:id", middleware.Audit(audit, "job.delete", "job"), h.Job.Delete)
	admin.GET("/jobs/:id/applicants", h.Job.Applicants)

	admin.GET("/exports/students", h.Export.Students)
	admin.GET("/exports/jobs/:id/applicants", h.Export.JobApplicants)

	admin.POST("/notifications", h.Announcement.CreateNotification)
	admin.PUT("/notifications/:id", h.Announcement.UpdateNotification)
	admin.DELETE("/notifications/:id", h.Announcement.DeleteNotification)
	admin.POST("/examinations", h.Announcement.CreateExamination)
	admin.PUT("/examinations/:id", h.Announcement.UpdateExamination)
	admin.DELETE("/examinations/:id", h.Announcement.DeleteExamination)

	admin.GET("/contacts", h.Contact.List)
	admin.DELETE("/contacts/:id", h.Contact.Delete)
}

func registerTeacher(teacher *gin.RouterGroup, h Handlers) {
	teacher.GET("/dashboard", h.Teacher.Dashboard)
	teacher.GET("/courses", h.Course.Mine)
}

func registerStudent(student *gin.RouterGroup, h Handlers) {
	student.GET("/dashboard", h.Dashboard.Student)
	student.GET("/profile", h.Student.Profile)
	student.POST("/enrollments", h.Enrollment.Enroll)
	student.GET("/enrollments", h.Enrollment.Mine)
	student.GET("/certificates", h.Certificate.Mine)
	student.GET("/jobs", h.Job.Open)
	student.POST("/jobs/:id/apply", h.Job.Apply)
	student.GET("/jobs/:id/eligibility", h.Job.Eligibility)
}
