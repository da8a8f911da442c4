// Package router assembles the gin engine: middleware, health, metrics,
// swagger and the audit API routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "magictravel/internal/docs" // Import swagger docs
	"magictravel/internal/handlers"
	"magictravel/internal/middleware"
	"magictravel/internal/services"
)

// Deps holds everything the router needs to build the engine.
type Deps struct {
	Audit       services.AuditServicer
	Reports     services.ReportServicer
	CORSOrigins []string
	// Ping reports whether the database is reachable. Nil skips the check.
	Ping func() error
}

// New builds the gin engine with every middleware and route registered.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(handlers.NotFound)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/api/health", health(deps.Ping))

	auditHandler := handlers.NewAuditHandler(deps.Audit)
	reportHandler := handlers.NewReportHandler(deps.Reports)

	v1 := r.Group("/api/v1")

	audits := v1.Group("/audits")
	audits.GET("", auditHandler.List)
	audits.GET("/stats", auditHandler.Stats)
	audits.GET("/table/:table", auditHandler.ListByTable)
	audits.GET("/user/:usuario_id", auditHandler.ListByUser)
	audits.GET("/records/:table/:audit_id", auditHandler.Show)
	audits.POST("/report", reportHandler.Generate)
	audits.POST("/purge", auditHandler.Purge)

	return r
}

func health(ping func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
