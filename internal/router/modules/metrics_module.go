package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/customer-directory/internal/interface/metrics"
)

type MetricsModule struct {
	Metrics *metrics.HTTPMetrics
}

func NewMetricsModule(m *metrics.HTTPMetrics) *MetricsModule { return &MetricsModule{Metrics: m} }

func (m *MetricsModule) Name() string { return "metrics" }

// Register exposes the Prometheus scrape endpoint.
func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
}
