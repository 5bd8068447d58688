package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/soumyachk101/HealthTrack-Server/internal/config"
	httpx "github.com/soumyachk101/HealthTrack-Server/internal/http"
	"github.com/soumyachk101/HealthTrack-Server/internal/http/handlers"
	"github.com/soumyachk101/HealthTrack-Server/internal/http/middleware"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/auth"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/chat"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/database"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/notifications"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/repositories"
	"github.com/soumyachk101/HealthTrack-Server/internal/services"
)

// Container holds the wired application graph.
type Container struct {
	Router *gin.Engine
	Casbin *auth.CasbinService
}

// BuildContainer opens the backing stores and wires repositories,
// services, handlers and middleware together.
func BuildContainer(cfg *config.Config) (*Container, error) {
	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init casbin: %w", err)
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	mailClient := notifications.NewMailtrapClient(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFromEmail, cfg.MailFromName)
	notificationSvc := notifications.NewNotificationService(mailClient, cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOTPRepository(gdb)
	pendingRepo := repositories.NewPendingRegistrationRepository(rdb)
	healthRepo := repositories.NewHealthDataRepository(gdb)
	activityRepo := repositories.NewActivityLogRepository(gdb)

	otpSvc := services.NewOTPService(otpRepo, notificationSvc, services.OTPConfig{
		Length:     cfg.OTPLength,
		TTL:        cfg.OTPTTL,
		BypassCode: cfg.OTPBypassCode,
	})

	authSvc := services.NewAuthService(userRepo, pendingRepo, otpSvc, passwordSvc, tokenSvc, activityRepo, notificationSvc, services.AuthConfig{
		TokenTTL:        cfg.TokenTTL,
		OTPTTL:          cfg.OTPTTL,
		RequireLoginOTP: cfg.OTPRequireForLogin,
		BaseURL:         cfg.BaseURL,
	})

	recordsSvc := services.NewRecordsService(healthRepo, userRepo, activityRepo)
	adminSvc := services.NewAdminService(userRepo, healthRepo, activityRepo)
	policySvc := services.NewPolicyService(cas.E)

	chatModels := cfg.ChatModels
	if len(chatModels) == 0 {
		chatModels = services.DefaultChatModels
	}
	chatClient := chat.NewOpenRouterClient(cfg.ChatBaseURL, cfg.ChatAPIKey)
	chatSvc := services.NewChatService(chatClient, chatModels)

	authH := handlers.NewAuthHandlers(authSvc)
	recordsH := handlers.NewRecordsHandlers(recordsSvc)
	adminH := handlers.NewAdminHandlers(adminSvc)
	policyH := handlers.NewPolicyHandlers(policySvc)
	chatH := handlers.NewChatHandlers(chatSvc)

	jwtMW := middleware.NewAuthMW(tokenSvc, userRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	router := httpx.BuildRouter(authH, recordsH, adminH, policyH, chatH, jwtMW, casbinMW)

	return &Container{Router: router, Casbin: cas}, nil
}
