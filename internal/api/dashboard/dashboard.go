package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srihari7072/golfzon-dashboard/internal/service/dashboard"
)

type DashboardHandler struct {
	log *zap.Logger
	svc *dashboard.Service
}

func NewDashboardHandler(log *zap.Logger, svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{log: log, svc: svc}
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	g := r.Group("/v1/dashboard")
	g.GET("/sales", h.sales)
	g.GET("/visitors", h.visitors)
	g.GET("/reservations", h.reservations)
	g.GET("/heatmap", h.heatmap)
	g.GET("/composition", h.composition)
	g.GET("/performance", h.performance)
	g.GET("/age-groups", h.ageGroups)
	g.GET("/today", h.today)
}

func (h *DashboardHandler) sales(c *gin.Context) {
	period := c.DefaultQuery("period", "30days")
	resp, err := h.svc.SalesTrend(c.Request.Context(), period)
	if err != nil {
		h.fail(c, "sales trend failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) visitors(c *gin.Context) {
	period := c.DefaultQuery("period", "30days")
	resp, err := h.svc.VisitorTrend(c.Request.Context(), period)
	if err != nil {
		h.fail(c, "visitor trend failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) reservations(c *gin.Context) {
	period := c.DefaultQuery("period", "30days")
	resp, err := h.svc.ReservationTrend(c.Request.Context(), period)
	if err != nil {
		h.fail(c, "reservation trend failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) heatmap(c *gin.Context) {
	resp, err := h.svc.Heatmap(c.Request.Context())
	if err != nil {
		h.fail(c, "heatmap failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) composition(c *gin.Context) {
	resp, err := h.svc.MemberComposition(c.Request.Context())
	if err != nil {
		h.fail(c, "composition failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) performance(c *gin.Context) {
	resp, err := h.svc.PerformanceIndicators(c.Request.Context())
	if err != nil {
		h.fail(c, "performance indicators failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) ageGroups(c *gin.Context) {
	resp, err := h.svc.AgeGroups(c.Request.Context())
	if err != nil {
		h.fail(c, "age groups failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) today(c *gin.Context) {
	resp, err := h.svc.TodayOverview(c.Request.Context())
	if err != nil {
		h.fail(c, "today overview failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// fail is the last-resort guard; aggregation errors normally degrade to a
// zero-valued payload inside the service. Internals stay in the log.
func (h *DashboardHandler) fail(c *gin.Context, msg string, err error) {
	h.log.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
