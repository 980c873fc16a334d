package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/handler"
	"github.com/noah-isme/refine-admin-api/internal/middleware"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/service"
	"github.com/noah-isme/refine-admin-api/pkg/config"
	"github.com/noah-isme/refine-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/refine-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/refine-admin-api/pkg/middleware/requestid"
)

// services bundles everything the router hands to handlers. Exports and
// Notifier may be nil, which leaves their routes unregistered.
type services struct {
	Auth       *service.AuthService
	Access     *service.AccessControlService
	Posts      *service.PostService
	Categories *service.CategoryService
	Roles      *service.RoleService
	Grid       *service.GridService
	Exports    *service.ExportService
	Notifier   *service.ChangeNotifier
	Metrics    *service.MetricsService
	Audit      middleware.AuditRecorder
	Checks     map[string]handler.HealthCheck
}

func newRouter(cfg *config.Config, logr *zap.Logger, svc services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svc.Metrics))

	metricsHandler := handler.NewMetricsHandler(svc.Metrics, svc.Checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(svc.Audit, logr, action, resource)
	}
	can := func(resource, action string) gin.HandlerFunc {
		return middleware.Can(svc.Access, resource, action)
	}

	api := r.Group(cfg.APIPrefix)

	authHandler := handler.NewAuthHandler(svc.Auth)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	secured := api.Group("")
	secured.Use(middleware.JWT(svc.Auth))
	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/auth/permissions", authHandler.Permissions)
	secured.GET("/access-control/can", handler.NewAccessControlHandler(svc.Access).Can)

	postHandler := handler.NewPostHandler(svc.Posts)
	posts := secured.Group("/posts")
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", audit(models.AuditActionCreate, models.ResourcePosts), postHandler.Create)
	posts.PATCH("/:id", audit(models.AuditActionUpdate, models.ResourcePosts), postHandler.Update)
	posts.PUT("/:id", audit(models.AuditActionUpdate, models.ResourcePosts), postHandler.Update)
	posts.DELETE("/:id", audit(models.AuditActionDelete, models.ResourcePosts), postHandler.Delete)
	posts.DELETE("", audit(models.AuditActionDelete, models.ResourcePosts), postHandler.DeleteMany)

	categoryHandler := handler.NewCategoryHandler(svc.Categories)
	categories := secured.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", can(models.ResourceCategories, models.ActionCreate), audit(models.AuditActionCreate, models.ResourceCategories), categoryHandler.Create)
	categories.PATCH("/:id", can(models.ResourceCategories, models.ActionEdit), audit(models.AuditActionUpdate, models.ResourceCategories), categoryHandler.Update)
	categories.PUT("/:id", can(models.ResourceCategories, models.ActionEdit), audit(models.AuditActionUpdate, models.ResourceCategories), categoryHandler.Update)
	categories.DELETE("/:id", can(models.ResourceCategories, models.ActionDelete), audit(models.AuditActionDelete, models.ResourceCategories), categoryHandler.Delete)

	roleHandler := handler.NewRoleHandler(svc.Roles)
	roles := secured.Group("/roles")
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.Get)
	roles.POST("", audit(models.AuditActionCreate, models.ResourceRoles), roleHandler.Create)

	gridHandler := handler.NewGridHandler(svc.Grid)
	grid := secured.Group("/grid")
	grid.GET("/posts/columns", gridHandler.Columns(models.ResourcePosts))
	grid.GET("/categories/columns", gridHandler.Columns(models.ResourceCategories))
	grid.GET("/posts/category-options", categoryHandler.Options)
	grid.POST("/posts/filters/to-backend", gridHandler.FiltersToBackend)
	grid.POST("/posts/filters/to-ui", gridHandler.FiltersToUI)
	grid.POST("/posts/sort/to-backend", gridHandler.SortToBackend)
	grid.POST("/posts/sort/to-ui", gridHandler.SortToUI)

	if svc.Exports != nil {
		exportHandler := handler.NewExportHandler(svc.Exports)
		posts.POST("/export", can(models.ResourcePosts, models.ActionExport), audit(models.AuditActionExport, models.ResourcePosts), exportHandler.Create(models.ResourcePosts))
		secured.GET("/exports/:id", exportHandler.Status)
		api.GET("/exports/download/:token", exportHandler.Download)
	}

	if cfg.Live.Enabled && svc.Notifier != nil {
		liveHandler := handler.NewLiveHandler(svc.Notifier, svc.Metrics, handler.LiveConfig{
			OriginPatterns: cfg.Live.OriginPatterns,
			BufferSize:     cfg.Live.BufferSize,
		}, logr)
		secured.GET("/live/:resource", liveHandler.Subscribe)
	}

	return r
}
