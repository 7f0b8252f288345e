package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/config"
	"github.com/fichadoradamathias/Restaurante2/internal/api/handler"
	"github.com/fichadoradamathias/Restaurante2/internal/api/middleware"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
	"github.com/fichadoradamathias/Restaurante2/pkg/redis"
)

// sweepInterval frecuencia mínima del barrido de semanas vencidas
const sweepInterval = time.Minute

// New arma el router de Gin con todas las rutas de la API
func New(
	cfg *config.Config,
	h *handler.Handler,
	svc *service.Service,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.CORS.AllowOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	// Toda petición a la API dispara el barrido perezoso de semanas
	// vencidas; no hay cron aparte.
	api.Use(middleware.Sweep(svc.Week, sweepInterval, logger))

	// ── Rutas públicas ──
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// ── Rutas autenticadas ──
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.POST("/auth/password", h.Auth.ChangePassword)
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/weeks/current", h.Week.Current)
		authed.GET("/weeks/:id", h.Week.Get)
		authed.GET("/weeks/:id/menu", h.Menu.Catalog)

		authed.PUT("/weeks/:id/order", h.Order.Submit)
		authed.GET("/weeks/:id/order", h.Order.MyOrder)
	}

	// ── Rutas de administración ──
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(jwtMgr, rdb, logger), middleware.AdminOnly())
	{
		admin.POST("/users", h.User.Create)
		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id", h.User.Update)
		admin.DELETE("/users/:id", h.User.Deactivate)
		admin.POST("/users/:id/password", h.User.ResetPassword)

		admin.POST("/offices", h.Office.Create)
		admin.GET("/offices", h.Office.List)
		admin.PUT("/offices/:id", h.Office.Update)
		admin.DELETE("/offices/:id", h.Office.Delete)

		admin.POST("/weeks", h.Week.Create)
		admin.GET("/weeks", h.Week.List)
		admin.POST("/weeks/:id/close", h.Week.Close)
		admin.POST("/weeks/:id/finalize", h.Week.Finalize)
		admin.DELETE("/weeks/:id", h.Week.Delete)

		admin.POST("/weeks/:id/menu", h.Menu.AddItem)
		admin.PUT("/menu-items/:id", h.Menu.UpdateItem)
		admin.DELETE("/menu-items/:id", h.Menu.DeleteItem)

		admin.GET("/weeks/:id/orders", h.Order.ListByWeek)
		admin.GET("/weeks/:id/compliance", h.Order.Compliance)

		admin.POST("/weeks/:id/export", h.Export.Export)
		admin.GET("/weeks/:id/exports", h.Export.History)

		admin.GET("/audit-logs", h.Audit.List)
	}

	return r
}
