package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bazary/bazary-backend/internal/config"
	"github.com/bazary/bazary-backend/internal/handler"
	appmw "github.com/bazary/bazary-backend/internal/middleware"
	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"github.com/bazary/bazary-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(conn *gorm.DB, rdb *redis.Client, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if host == "bazary.mg" || strings.HasSuffix(host, ".bazary.mg") || strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	txRunner := repository.NewTxRunner(conn)
	userRepo := repository.NewUserRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	proposalRepo := repository.NewProposalRepository(conn)
	convRepo := repository.NewConversationRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)
	favoriteRepo := repository.NewFavoriteRepository(conn)
	reportRepo := repository.NewReportRepository(conn)
	alertRepo := repository.NewKeywordAlertRepository(conn)
	notifRepo := repository.NewNotificationRepository(conn)

	notifSvc := service.NewNotificationService(notifRepo)
	alertSvc := service.NewKeywordAlertService(alertRepo, notifSvc)
	productSvc := service.NewProductService(productRepo, alertSvc, txRunner)
	negotiationSvc := service.NewNegotiationService(proposalRepo, productRepo, convRepo, notifSvc, txRunner)
	convSvc := service.NewConversationService(convRepo, productRepo, notifSvc)
	reviewSvc := service.NewReviewService(reviewRepo, userRepo, convRepo, notifSvc, txRunner)
	moderationSvc := service.NewModerationService(reportRepo, productRepo, txRunner)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, productRepo, notifSvc)
	userSvc := service.NewUserService(userRepo, reviewRepo, txRunner, cfg.JWTSecret, cfg.JWTTTL)

	userHandler := handler.NewUserHandler(userSvc)
	productHandler := handler.NewProductHandler(productSvc)
	proposalHandler := handler.NewProposalHandler(negotiationSvc)
	convHandler := handler.NewConversationHandler(convSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	reportHandler := handler.NewReportHandler(moderationSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)
	alertHandler := handler.NewKeywordAlertHandler(alertSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	adminHandler := handler.NewAdminHandler(userSvc, productSvc, userRepo, productRepo, reportRepo)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret)
	writeLimit := func(action string) echo.MiddlewareFunc {
		return appmw.ActionRateLimit(rdb, action, time.Minute)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	api.POST("/auth/register", userHandler.Register)
	api.POST("/auth/login", userHandler.Login)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get, authMw.OptionalAuth)
	api.GET("/users/:id/public", userHandler.GetPublicProfile)
	api.GET("/reviews", reviewHandler.List)

	auth := api.Group("", authMw.RequireAuth)

	auth.GET("/me", userHandler.Me)
	auth.PUT("/me", userHandler.UpdateMe)
	auth.GET("/me/products", productHandler.ListMine)

	auth.POST("/products", productHandler.Create, writeLimit("product_create"))
	auth.PUT("/products/:id", productHandler.Update)
	auth.POST("/products/:id/bump", productHandler.Bump)
	auth.DELETE("/products/:id", productHandler.Delete)

	auth.POST("/products/:id/proposals", proposalHandler.Propose, writeLimit("proposal_create"))
	auth.GET("/products/:id/proposals", proposalHandler.ListByProduct)
	auth.PUT("/products/:id/proposals/:proposalId", proposalHandler.Decide)

	auth.POST("/conversations", convHandler.Start)
	auth.GET("/conversations", convHandler.List)
	auth.GET("/conversations/unread-count", convHandler.UnreadCount)
	auth.GET("/conversations/:id/messages", convHandler.ListMessages)
	auth.POST("/conversations/:id/messages", convHandler.PostMessage, writeLimit("message_create"))

	auth.POST("/reviews", reviewHandler.Create, writeLimit("review_create"))

	auth.POST("/products/:id/report", reportHandler.File, writeLimit("report_create"))

	auth.POST("/favorites", favoriteHandler.Add)
	auth.DELETE("/favorites/:productId", favoriteHandler.Remove)
	auth.GET("/favorites/:productId", favoriteHandler.Check)
	auth.GET("/me/favorites", favoriteHandler.List)

	auth.POST("/keyword-alerts", alertHandler.Create)
	auth.GET("/keyword-alerts", alertHandler.List)
	auth.DELETE("/keyword-alerts/:id", alertHandler.Delete)

	auth.GET("/notifications", notifHandler.List)
	auth.GET("/notifications/unread-count", notifHandler.UnreadCount)
	auth.POST("/notifications/:id/read", notifHandler.MarkRead)
	auth.POST("/notifications/read-all", notifHandler.MarkAllRead)

	staff := api.Group("", authMw.RequireAuth, authMw.RequireRole(model.RoleModerator, model.RoleAdmin))
	staff.GET("/reports", reportHandler.List)
	staff.PUT("/reports/:id", reportHandler.Resolve)
	staff.GET("/admin/products", adminHandler.ListProducts)
	staff.PUT("/admin/products/:id/hidden", adminHandler.SetProductHidden)
	staff.PUT("/admin/products/:id/status", adminHandler.SetProductStatus)
	staff.GET("/admin/stats", adminHandler.Stats)

	admin := api.Group("/admin", authMw.RequireAuth, authMw.RequireRole(model.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.ChangeRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
