package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fitchain/gymhub/internal/config"
	"fitchain/gymhub/internal/handler"
	"fitchain/gymhub/internal/model"
	"fitchain/gymhub/internal/observability/metrics"
	"fitchain/gymhub/internal/repository"
	"fitchain/gymhub/internal/service"
	jwtpkg "fitchain/gymhub/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Register metrics
	metrics.MustRegister("gymhub")

	// 4. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 5. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 6. Initialize state store (Redis or in-memory)
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		stateStore = repository.NewRedisStateStore(redisClient)
		logger.Info("using Redis state store")
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 7. Initialize repositories
	userRepo := repository.NewPGUserRepository(db)
	personRepo := repository.NewPGPersonRepository(db)
	roleRepo := repository.NewPGRoleAssignmentRepository(db)
	cityRepo := repository.NewPGCityRepository(db)
	addressRepo := repository.NewPGAddressRepository(db)
	branchRepo := repository.NewPGBranchRepository(db)
	adminRepo := repository.NewPGAdminRepository(db)
	trainerRepo := repository.NewPGTrainerRepository(db)
	clientRepo := repository.NewPGClientRepository(db)
	clientBranchRepo := repository.NewPGClientBranchRepository(db)
	invitationRepo := repository.NewPGInvitationRepository(db)
	chatRepo := repository.NewPGChatRepository(db)
	postRepo := repository.NewPGPostRepository(db)

	// 8. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.SigningKey,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)

	// 9. Optional SMTP sender (emails are skipped when not configured)
	var mailSender service.MailSender
	if cfg.SMTP.Host != "" {
		mailSender, err = service.NewSMTPSender(cfg.SMTP)
		if err != nil {
			logger.Fatal("failed to init smtp sender", zap.Error(err))
		}
		logger.Info("SMTP sender initialized", zap.String("host", cfg.SMTP.Host))
	}

	// 10. Initialize services
	authz := service.NewAuthzService(roleRepo)
	authService := service.NewAuthService(userRepo, stateStore, jwtManager)
	webhookService := service.NewWebhookService(cfg.Webhook, userRepo, stateStore)
	branchService := service.NewBranchService(cityRepo, addressRepo, branchRepo)
	adminService := service.NewAdminService(userRepo, personRepo, roleRepo, adminRepo, branchRepo, mailSender, logger)
	trainerService := service.NewTrainerService(userRepo, personRepo, roleRepo, trainerRepo, branchRepo, mailSender, logger)
	clientService := service.NewClientService(userRepo, personRepo, roleRepo, clientRepo, clientBranchRepo, branchRepo, authz, mailSender, logger)
	invitationService := service.NewInvitationService(invitationRepo, clientRepo, mailSender, logger)
	chatService := service.NewChatService(chatRepo, clientRepo, trainerRepo, cfg.Chat.FreeMessages)
	postService := service.NewPostService(postRepo, trainerRepo, cfg.Media.PublicBaseURL)
	profileService := service.NewProfileService(userRepo, personRepo, roleRepo, clientRepo, clientBranchRepo, trainerRepo, adminRepo)

	// 11. Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	webhookHandler := handler.NewWebhookHandler(webhookService)
	profileHandler := handler.NewProfileHandler(profileService)
	branchHandler := handler.NewBranchHandler(branchService)
	adminHandler := handler.NewAdminHandler(adminService)
	trainerHandler := handler.NewTrainerHandler(trainerService)
	clientHandler := handler.NewClientHandler(clientService)
	invitationHandler := handler.NewInvitationHandler(invitationService, clientService)
	chatHandler := handler.NewChatHandler(chatService, clientService, trainerService)
	postHandler := handler.NewPostHandler(postService)

	// 12. Setup router
	router := handler.SetupRouter(
		cfg, logger, jwtManager, authz,
		authHandler, webhookHandler, profileHandler, branchHandler,
		adminHandler, trainerHandler, clientHandler, invitationHandler,
		chatHandler, postHandler,
	)

	// 13. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 14. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 15. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
