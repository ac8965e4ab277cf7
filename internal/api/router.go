package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dashboardAPI "github.com/srihari7072/golfzon-dashboard/internal/api/dashboard"
	"github.com/srihari7072/golfzon-dashboard/internal/config"
	"github.com/srihari7072/golfzon-dashboard/internal/middleware"
	redisx "github.com/srihari7072/golfzon-dashboard/internal/redis"
	dashboardService "github.com/srihari7072/golfzon-dashboard/internal/service/dashboard"
	"github.com/srihari7072/golfzon-dashboard/internal/store"
	storePayments "github.com/srihari7072/golfzon-dashboard/internal/store/payments"
	storeReservations "github.com/srihari7072/golfzon-dashboard/internal/store/reservations"
	storeVisitors "github.com/srihari7072/golfzon-dashboard/internal/store/visitors"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(r *gin.Engine, log *zap.Logger) {
	r.Use(middleware.MetricsMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Golfzon Dashboard",
			"description": "Aggregation service for golf course sales, visitor, and reservation dashboards.",
			"version":     "1.0.0",
			"endpoints":   []string{"/v1/health", "/v1/dashboard", "/metrics"},
		})
	})
	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cfg := config.Load()
	cache := redisx.NewCache(cfg.RedisAddr, time.Duration(cfg.CacheTTLSeconds)*time.Second, log)
	r.Use(middleware.RedisRateLimit(cache.GetClient(), cfg.RateLimitPerMinute))

	db, err := store.NewDB(context.Background(), cfg.PostgresURL, int32(cfg.MaxDBConnections))
	if err != nil {
		log.Warn("db init failed", zap.Error(err))
		return
	}

	paymentsRepo := storePayments.NewPaymentsRepository(db, log)
	reservationsRepo := storeReservations.NewReservationsRepository(db, log)
	visitorsRepo := storeVisitors.NewVisitorsRepository(db, log)

	svc := dashboardService.NewService(log, paymentsRepo, reservationsRepo, visitorsRepo, cache)
	dashboardAPI.NewDashboardHandler(log, svc).Register(r)
}
