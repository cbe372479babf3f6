package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/udev-hq/intern-portal-backend/internal/config"
	appHTTP "github.com/udev-hq/intern-portal-backend/internal/handler/http"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/email"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/jwt"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/storage"
	"github.com/udev-hq/intern-portal-backend/internal/repository/postgresql"
	attendanceService "github.com/udev-hq/intern-portal-backend/internal/service/attendance"
	authService "github.com/udev-hq/intern-portal-backend/internal/service/auth"
	"github.com/udev-hq/intern-portal-backend/internal/service/file"
	leaveService "github.com/udev-hq/intern-portal-backend/internal/service/leave"
	notificationService "github.com/udev-hq/intern-portal-backend/internal/service/notification"
	taskService "github.com/udev-hq/intern-portal-backend/internal/service/task"
	userService "github.com/udev-hq/intern-portal-backend/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessTokenExpiry.String(),
		cfg.JWT.RefreshTokenExpiry.String(),
	)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}
	fileService := file.NewFileService(fileStorage)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService, fileService)
	userSvc := userService.NewUserService(
		db,
		userRepo,
		taskRepo,
		notificationRepo,
		emailService,
		fileService,
		jwtService,
		cfg.App.FrontendURL+"/login",
	)
	taskSvc := taskService.NewTaskService(db, taskRepo, userRepo, notificationSvc, fileService)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, userRepo, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			FrontendURL:    cfg.App.FrontendURL,
			UploadsDir:     cfg.Storage.BasePath,
			UploadsBaseURL: cfg.Storage.BaseURL,
		},
		jwtService,
		authSvc,
		authHandler,
		userHandler,
		taskHandler,
		leaveHandler,
		attendanceHandler,
		notificationHandler,
	)

	addr := ":" + cfg.App.Port
	fmt.Printf("Server running at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
