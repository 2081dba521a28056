package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/rite-edu-api/api/swagger"
	"github.com/noah-isme/rite-edu-api/internal/handler"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	"github.com/noah-isme/rite-edu-api/internal/router"
	"github.com/noah-isme/rite-edu-api/internal/service"
	"github.com/noah-isme/rite-edu-api/pkg/cache"
	"github.com/noah-isme/rite-edu-api/pkg/config"
	"github.com/noah-isme/rite-edu-api/pkg/database"
	"github.com/noah-isme/rite-edu-api/pkg/export"
	"github.com/noah-isme/rite-edu-api/pkg/logger"
)

// @title RITE Education API
// @version 1.0.0
// @description Courses, enrollments, certificates and the job board for RITE Education.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache.Enabled)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)
	adminRepo := repository.NewAdminRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	franchiseRepo := repository.NewFranchiseRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	jobRepo := repository.NewJobRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	examinationRepo := repository.NewExaminationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.PublicTTL, logr, cfg.Cache.Enabled && redisClient != nil)

	auditSvc := service.NewAuditService(auditRepo, metricsSvc, logr, service.AuditConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: cfg.Audit.MaxRetries,
	})
	auditSvc.Start(context.Background())
	defer auditSvc.Stop()

	authSvc := service.NewAuthService(userRepo, sessionRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	registrationSvc := service.NewRegistrationService(studentRepo, franchiseRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, logr)
	certificateSvc := service.NewCertificateService(certificateRepo, studentRepo, courseRepo, cacheSvc, validate, logr, service.CertificateConfig{
		IDPrefix:    cfg.Certificates.IDPrefix,
		MaxAttempts: cfg.Certificates.MaxAttempts,
		CacheTTL:    cfg.Cache.PublicTTL,
	}).WithMetrics(metricsSvc)
	jobSvc := service.NewJobService(jobRepo, courseRepo, studentRepo, certificateRepo, cacheSvc, validate, logr).WithMetrics(metricsSvc)
	courseSvc := service.NewCourseService(courseRepo, teacherRepo, cacheSvc, cfg.Cache.PublicTTL, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, courseRepo, enrollmentRepo, validate, logr)
	adminSvc := service.NewAdminService(adminRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, enrollmentRepo, certificateRepo, cacheSvc, logr)
	franchiseSvc := service.NewFranchiseService(franchiseRepo, cacheSvc, validate, logr)
	announcementSvc := service.NewAnnouncementService(notificationRepo, examinationRepo, validate, logr)
	contactSvc := service.NewContactService(contactRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Stats:         dashboardRepo,
		Students:      studentRepo,
		Enrollments:   enrollmentRepo,
		Certificates:  certificateRepo,
		Notifications: notificationRepo,
		Examinations:  examinationRepo,
		Jobs:          jobRepo,
		Cache:         cacheSvc,
		Metrics:       metricsSvc,
		CacheTTL:      cfg.Cache.DashboardTTL,
		Logger:        logr,
	})
	exportSvc := service.NewExportService(jobRepo, studentRepo, logr, export.NewCSVExporter(), export.NewPDFExporter())

	engine := router.New(router.Params{
		Config:  cfg,
		Logger:  logr,
		Metrics: metricsSvc,
		Tokens:  authSvc,
		Audit:   auditSvc,
		Handlers: router.Handlers{
			Auth:         handler.NewAuthHandler(authSvc, registrationSvc),
			Admin:        handler.NewAdminHandler(adminSvc),
			Teacher:      handler.NewTeacherHandler(teacherSvc),
			Student:      handler.NewStudentHandler(studentSvc),
			Franchise:    handler.NewFranchiseHandler(franchiseSvc),
			Course:       handler.NewCourseHandler(courseSvc),
			Enrollment:   handler.NewEnrollmentHandler(enrollmentSvc),
			Certificate:  handler.NewCertificateHandler(certificateSvc),
			Job:          handler.NewJobHandler(jobSvc),
			Announcement: handler.NewAnnouncementHandler(announcementSvc),
			Contact:      handler.NewContactHandler(contactSvc),
			Dashboard:    handler.NewDashboardHandler(dashboardSvc),
			Export:       handler.NewExportHandler(exportSvc),
			Metrics:      handler.NewMetricsHandler(metricsSvc, db),
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
