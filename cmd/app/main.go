package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"influhub/cmd/fx/account_fx"
	"influhub/cmd/fx/admin_fx"
	"influhub/cmd/fx/affiliate_fx"
	"influhub/cmd/fx/billing_fx"
	"influhub/cmd/fx/controllers_fx"
	"influhub/cmd/fx/db_fx"
	"influhub/cmd/fx/discovery_fx"
	"influhub/cmd/fx/settings_fx"
	"influhub/cmd/fx/training_fx"
	"influhub/cmd/fx/webhook_fx"
	"influhub/internal/api/controllers"
	"influhub/internal/infra"
	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Invoke(initLogging),
		db_fx.Module,
		settings_fx.Module,
		account_fx.Module,
		billing_fx.Module,
		affiliate_fx.Module,
		webhook_fx.Module,
		admin_fx.Module,
		training_fx.Module,
		discovery_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func initLogging(cfg infra.Config) error {
	return logging.Init(cfg.Production)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.Config) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logging.L().Info("starting HTTP server", zap.String("port", cfg.Port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logging.L().Fatal("server failed", logging.Err(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logging.L().Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg infra.Config,
	userRepo repositories.UserRepository,
	accountController *controllers.AccountController,
	billingController *controllers.BillingController,
	webhookController *controllers.WebhookController,
	affiliateController *controllers.AffiliateController,
	adminController *controllers.AdminController,
	trainingController *controllers.TrainingController,
	discoveryController *controllers.DiscoveryController,
) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// The webhook route stays outside the api group: no auth, raw body.
	r.POST("/webhook/payments", webhookController.HandlePaymentEvent)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", accountController.Register)
	auth.POST("/login", accountController.Login)

	user := api.Group("")
	user.Use(middleware.JWTAuthMiddleware())
	{
		user.GET("/profile", accountController.Profile)
		user.PATCH("/profile", accountController.UpdateProfile)
		user.PATCH("/profile/update-password", accountController.UpdatePassword)
		user.GET("/dashboard/stats", accountController.DashboardStats)

		payment := user.Group("/payment")
		payment.GET("/plans", billingController.ListPlans)
		payment.POST("/subscription", billingController.CreateSubscription)
		payment.POST("/cancel", billingController.CancelSubscription)
		payment.POST("/reactivate", billingController.ReactivateSubscription)
		payment.POST("/course-intent", billingController.CreateCourseIntent)

		affiliate := user.Group("/affiliate")
		affiliate.GET("/dashboard", affiliateController.Dashboard)
		affiliate.GET("/payouts", affiliateController.ListPayouts)
		affiliate.POST("/request-payout", affiliateController.RequestPayout)

		member := user.Group("")
		member.Use(middleware.RequireMembership(userRepo))
		{
			member.GET("/training/courses", trainingController.ListCourses)
			member.GET("/training/courses/:courseId", trainingController.CourseDetail)
			member.POST("/training/videos/:videoId/progress", trainingController.SetVideoProgress)

			member.GET("/products", discoveryController.ListProducts)
		}
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/affiliates/leaderboard", adminController.Leaderboard)
		admin.GET("/payouts", adminController.ListPayouts)
		admin.PATCH("/payouts/:payoutId/status", adminController.UpdatePayoutStatus)
		admin.GET("/stats", adminController.Stats)
		admin.GET("/settings", adminController.Settings)
		admin.PUT("/settings", adminController.UpdateSettings)

		admin.POST("/courses", adminController.CreateCourse)
		admin.PUT("/courses/:courseId", adminController.UpdateCourse)
		admin.DELETE("/courses/:courseId", adminController.DeleteCourse)
		admin.POST("/courses/:courseId/sections", adminController.CreateSection)
		admin.PUT("/sections/:sectionId", adminController.UpdateSection)
		admin.DELETE("/sections/:sectionId", adminController.DeleteSection)
		admin.POST("/sections/:sectionId/videos", adminController.CreateVideo)
		admin.PUT("/sections/:sectionId/videos/order", adminController.ReorderVideos)
		admin.PUT("/videos/:videoId", adminController.UpdateVideo)
		admin.DELETE("/videos/:videoId", adminController.DeleteVideo)

		admin.POST("/products", adminController.CreateProduct)
		admin.DELETE("/products/:productId", adminController.DeleteProduct)
	}

	return r
}
