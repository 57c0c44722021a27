package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fitchain/gymhub/internal/config"
	"fitchain/gymhub/internal/handler/middleware"
	"fitchain/gymhub/internal/service"
	jwtpkg "fitchain/gymhub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	authz service.AuthzService,
	authHandler *AuthHandler,
	webhookHandler *WebhookHandler,
	profileHandler *ProfileHandler,
	branchHandler *BranchHandler,
	adminHandler *AdminHandler,
	trainerHandler *TrainerHandler,
	clientHandler *ClientHandler,
	invitationHandler *InvitationHandler,
	chatHandler *ChatHandler,
	postHandler *PostHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))

	// Health check and metrics
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}
	r.POST("/api/v1/webhooks/identity", webhookHandler.IdentityEvent)
	r.POST("/api/v1/invitations/accept", invitationHandler.AcceptInvitation)

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.POST("/auth/change-password", authHandler.ChangePassword)

		protected.GET("/me/profile", profileHandler.Me)

		// Branch directory
		protected.GET("/branches", branchHandler.ListBranches)
		protected.GET("/branches/:id", branchHandler.GetBranch)
		protected.GET("/branches/:id/trainers", trainerHandler.ListByBranch)

		// Trainer catalog
		protected.GET("/trainers", trainerHandler.Catalog)
		protected.GET("/trainers/:id", trainerHandler.GetTrainer)
		protected.GET("/trainers/:id/posts", postHandler.FeedByTrainer)

		// Invitations (client-only, enforced in the handler)
		protected.POST("/invitations", invitationHandler.CreateInvitation)
		protected.GET("/invitations", invitationHandler.ListMyInvitations)
		protected.DELETE("/invitations/:id", invitationHandler.CancelInvitation)

		// Chat
		protected.POST("/conversations", chatHandler.StartConversation)
		protected.GET("/conversations", chatHandler.ListConversations)
		protected.POST("/conversations/:id/contract", chatHandler.MarkContract)
		protected.POST("/conversations/:id/messages", chatHandler.SendMessage)
		protected.GET("/conversations/:id/messages", chatHandler.ListMessages)
		protected.POST("/messages/:id/read", chatHandler.MarkMessageRead)

		// Social feed
		protected.GET("/posts", postHandler.Feed)
		protected.POST("/posts", postHandler.CreatePost)
		protected.DELETE("/posts/:id", postHandler.DeletePost)
		protected.POST("/posts/:id/like", postHandler.ToggleLike)
	}

	// Branch-admin routes (JWT + admin or super-admin role)
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(jwtManager))
	admin.Use(middleware.RequireAdmin(authz))
	{
		admin.POST("/clients", clientHandler.ProvisionClient)
		admin.GET("/clients/:id", clientHandler.GetClient)
		admin.PATCH("/clients/:id/payment", clientHandler.SetPayment)
		admin.DELETE("/clients/:id", clientHandler.DeactivateClient)
		admin.POST("/clients/:id/branches", clientHandler.LinkToBranch)
		admin.DELETE("/clients/:id/branches/:branch_id", clientHandler.UnlinkFromBranch)
		admin.GET("/branches/:id/clients", clientHandler.ListByBranch)

		// Trainer staffing is a branch-admin duty; super admins pass the same
		// gate.
		admin.POST("/trainers", trainerHandler.ProvisionTrainer)
		admin.PATCH("/trainers/:id/schedule", trainerHandler.UpdateSchedule)
		admin.PATCH("/trainers/:id/specialties", trainerHandler.UpdateSpecialties)
		admin.POST("/trainers/:id/branch", trainerHandler.AssignBranch)
		admin.DELETE("/trainers/:id", trainerHandler.DeactivateTrainer)
	}

	// Super-admin routes
	super := r.Group("/api/v1/super")
	super.Use(middleware.JWTAuth(jwtManager))
	super.Use(middleware.RequireSuperAdmin(authz))
	{
		super.POST("/cities", branchHandler.CreateCity)
		super.GET("/cities", branchHandler.ListCities)

		super.POST("/branches", branchHandler.CreateBranch)
		super.PATCH("/branches/:id/status", branchHandler.UpdateBranchStatus)
		super.DELETE("/branches/:id", branchHandler.DeleteBranch)

		super.POST("/admins", adminHandler.ProvisionAdmin)
		super.GET("/admins", adminHandler.ListAdmins)
		super.GET("/admins/:id", adminHandler.GetAdmin)
		super.POST("/admins/:id/branch", adminHandler.AssignToBranch)
		super.DELETE("/admins/:id/branch", adminHandler.RevokeFromBranch)
		super.DELETE("/admins/:id", adminHandler.DeactivateAdmin)
	}

	return r
}
