package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/middleware"
	"citizen-portal-backend/internal/models"
)

// SetupRoutes configures all application routes. Global middleware
// (logging, recovery, CORS) is applied to the router in main before this
// is called. The per-domain route groups are generated from the domain
// descriptors, so every service shares one handler set.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	userService core.UserService,
	submissionService core.SubmissionService,
	triageService core.TriageService,
	notificationService core.NotificationService,
	panicService core.PanicService,
	councilService core.CouncilService,
	receiptService core.ReceiptService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized; routes cannot be secured.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	submissionHandler := NewSubmissionHandler(submissionService, receiptService)
	adminHandler := NewAdminHandler(submissionService, triageService)
	notificationHandler := NewNotificationHandler(notificationService)
	panicHandler := NewPanicHandler(panicService)
	councilHandler := NewCouncilHandler(councilService)

	apiV1 := router.Group("/api/v1")
	{
		// Public open-data proxy; the home page renders it pre-login.
		apiV1.GET("/council/members", councilHandler.ListMembers)

		usersGroup := apiV1.Group("/users", authMW.VerifyToken())
		{
			usersGroup.POST("/initialize", authHandler.InitializeUserProfile)
			usersGroup.GET("/me", userHandler.GetMe)
			usersGroup.PUT("/me", userHandler.UpdateMe)
		}

		notificationsGroup := apiV1.Group("/notifications", authMW.VerifyToken())
		{
			notificationsGroup.GET("", notificationHandler.List)
			notificationsGroup.PUT("/:id/read", notificationHandler.MarkRead)
		}

		advocacyGroup := apiV1.Group("/advocacy", authMW.VerifyToken())
		{
			advocacyGroup.GET("/panic-contact", panicHandler.GetContact)
			advocacyGroup.PUT("/panic-contact", panicHandler.SaveContact)
			advocacyGroup.POST("/panic", panicHandler.Trigger)
		}

		// Citizen-facing submission routes, one group per service domain.
		for _, domain := range models.Domains {
			domainGroup := apiV1.Group("/"+domain.Slug, authMW.VerifyToken())
			{
				domainGroup.POST("/submissions", submissionHandler.Create(domain))
				domainGroup.GET("/submissions", submissionHandler.ListMine(domain))
				domainGroup.GET("/submissions/stream", submissionHandler.Stream(domain))
				domainGroup.GET("/submissions/:id", submissionHandler.Get(domain))
				if domain.Slug == "consumer-protection" {
					domainGroup.GET("/submissions/:id/receipt", submissionHandler.Receipt(domain))
				}
			}
		}

		// Triage dashboards, gated to admins and the domain's staff role.
		for _, domain := range models.Domains {
			adminGroup := apiV1.Group("/admin/"+domain.Slug,
				authMW.VerifyToken(),
				middleware.RequireRole(userService, domain.StaffRole),
			)
			{
				adminGroup.GET("/submissions", adminHandler.ListAll(domain))
				adminGroup.GET("/submissions/stream", adminHandler.Stream(domain))
				adminGroup.GET("/submissions/:id", adminHandler.Get(domain))
				adminGroup.GET("/histogram", adminHandler.Histogram(domain))
				adminGroup.PUT("/submissions/:id/status", adminHandler.ChangeStatus(domain))
				adminGroup.POST("/submissions/:id/messages", adminHandler.SendMessage(domain))
				adminGroup.POST("/submissions/:id/attachments", adminHandler.AttachFile(domain))
			}
		}

		// User management is admin-only.
		adminUsersGroup := apiV1.Group("/admin/users",
			authMW.VerifyToken(),
			middleware.RequireRole(userService),
		)
		{
			adminUsersGroup.GET("", userHandler.ListUsers)
			adminUsersGroup.PUT("/:uid", userHandler.AdminUpdateUser)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Citizen portal backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
