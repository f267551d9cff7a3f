package router

import (
	"time"

	"taraas/config"
	"taraas/internal/clock"
	"taraas/internal/domain"
	"taraas/internal/handler"
	"taraas/internal/middleware"
	"taraas/internal/repository"
	"taraas/internal/service"
	"taraas/pkg/mailer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers into the HTTP engine. The
// settlement service is returned so the caller can attach the scheduled job.
func Setup(cfg *config.Config, db *gorm.DB, log *zap.Logger, clk clock.Clock, m mailer.Mailer) (*gin.Engine, *service.SettlementService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	customerRepo := repository.NewCustomerRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	statementRepo := repository.NewStatementRepository(db)
	otpRepo := repository.NewOtpRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	insightsRepo := repository.NewInsightsRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, customerRepo)
	otpSvc := service.NewOtpService(otpRepo, m, cfg.Otp, clk, log)
	searchSvc := service.NewSearchService(providerRepo, reviewRepo, txRepo, cfg.Search, log)
	settlementSvc := service.NewSettlementService(providerRepo, txRepo, statementRepo, cfg.Commission, clk, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	otpHandler := handler.NewOtpHandler(otpSvc)
	searchHandler := handler.NewSearchHandler(searchSvc)
	customerHandler := handler.NewCustomerHandler(customerRepo, txRepo)
	providerHandler := handler.NewProviderHandler(providerRepo)
	reviewHandler := handler.NewReviewHandler(reviewRepo, providerRepo, customerRepo)
	txHandler := handler.NewTransactionHandler(txRepo, providerRepo, customerRepo)
	statementHandler := handler.NewStatementHandler(statementRepo, clk)
	offerHandler := handler.NewOfferHandler(offerRepo, providerRepo, txRepo, clk)
	insightsHandler := handler.NewInsightsHandler(insightsRepo, txRepo, customerRepo, clk)
	adminHandler := handler.NewAdminHandler(settlementSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole(domain.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		otpGroup := api.Group("/otp")
		{
			otpGroup.POST("/send", otpHandler.Send)
			otpGroup.POST("/verify", otpHandler.Verify)
		}

		api.GET("/search", searchHandler.Search)
		api.GET("/customers/exists", customerHandler.Exists)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", customerHandler.Me)
			me.PATCH("/profile", customerHandler.UpdateProfile)
			me.GET("/reviews", reviewHandler.ListMine)
			me.GET("/transactions", txHandler.ListMine)
		}

		api.GET("/providers", providerHandler.List)
		api.GET("/providers/:id", providerHandler.Get)
		api.GET("/providers/:id/reviews", reviewHandler.ListByProvider)
		api.GET("/providers/:id/offers", offerHandler.ListByProvider)
		api.POST("/providers/:id/view", insightsHandler.RecordView)
		api.POST("/providers/:id/lead", authMw, insightsHandler.RecordLead)

		api.POST("/reviews", authMw, reviewHandler.Submit)
		api.GET("/offers", authMw, offerHandler.ListActive)

		txGroup := api.Group("/transactions")
		txGroup.Use(authMw)
		{
			txGroup.POST("", txHandler.Initiate)
			txGroup.POST("/:id/confirm", txHandler.ConfirmPayment)
			txGroup.POST("/:id/reject", txHandler.Reject)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.POST("/providers", providerHandler.Create)
			admin.PUT("/providers/:id", providerHandler.Update)
			admin.POST("/transactions/:id/verify", txHandler.Verify)
			admin.GET("/providers/:id/transactions", txHandler.ListByProvider)
			admin.GET("/providers/:id/statements", statementHandler.ListByProvider)
			admin.POST("/statements/:id/pay", statementHandler.Pay)
			admin.GET("/providers/:id/insights", insightsHandler.Dashboard)
			admin.POST("/offers", offerHandler.Create)
			admin.DELETE("/offers/:id", offerHandler.Delete)
			admin.POST("/commission/calculate", adminHandler.CalculateCommission)
		}
	}

	return r, settlementSvc
}
