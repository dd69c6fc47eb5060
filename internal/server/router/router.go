package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/server/handlers"
	"github.com/dlamayo/boardinghouse/internal/service/auth"
)

// New wires the Gin engine with required routes and middlewares. Read routes
// are public; every mutation sits behind the admin session gate.
func New(beds *handlers.BedHandler, admin *handlers.AdminHandler, sheet *handlers.SheetHandler, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/admin/login", admin.Login)
		api.POST("/admin/logout", admin.Logout)
		api.GET("/admin/check", admin.Check)

		api.GET("/beds", beds.ListBeds)
		api.GET("/rooms", beds.ListRooms)
		api.GET("/tenants", beds.ListTenants)
		api.GET("/sheets", sheet.Get)

		edit := api.Group("", requireAdmin(authSvc))
		{
			edit.POST("/beds", beds.CreateBed)
			edit.PATCH("/beds/:id", beds.UpdateBed)
			edit.POST("/beds/:id/rent", beds.SetRent)
			edit.POST("/beds/:id/payments", beds.AddPayment)
			edit.DELETE("/beds/:id", beds.TrashBed)
			edit.POST("/beds/:id/restore", beds.RestoreBed)
			edit.DELETE("/beds/:id/purge", beds.PurgeBed)
		}
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requireAdmin turns the session gate into the canEdit capability: requests
// without a valid session never reach a mutation handler.
func requireAdmin(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || !authSvc.Verify(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			return
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
