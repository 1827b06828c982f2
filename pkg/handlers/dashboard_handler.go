package handlers

import (
	"net/http"
	"strconv"

	"loom-monitor-api/pkg/models"
	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler ダッシュボード要約とレポートのハンドラー
type DashboardHandler struct {
	snapshotService    *services.SnapshotService
	scoringService     *services.ScoringService
	alertService       *services.AlertService
	reportService      *services.ReportService
	defaultSensitivity float64
}

// NewDashboardHandler 新しいダッシュボードハンドラーを作成
func NewDashboardHandler(snapshotService *services.SnapshotService, scoringService *services.ScoringService, alertService *services.AlertService, reportService *services.ReportService, defaultSensitivity float64) *DashboardHandler {
	return &DashboardHandler{
		snapshotService:    snapshotService,
		scoringService:     scoringService,
		alertService:       alertService,
		reportService:      reportService,
		defaultSensitivity: defaultSensitivity,
	}
}

// sensitivityFromQuery クエリパラメータから感度を取得（1.0〜3.0に制限）
func sensitivityFromQuery(c *gin.Context, fallback float64) float64 {
	if raw := c.Query("sensitivity"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 1.0 && v <= 3.0 {
			return v
		}
	}
	return fallback
}

// GetSummary ダッシュボード先頭のKPIまとめを返す
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	prod, sup := h.snapshotService.Snapshot()
	sensitivity := sensitivityFromQuery(c, h.defaultSensitivity)

	healthScore := h.scoringService.CalculateSystemHealth(prod, sup)
	riskIndex := h.scoringService.CalculateRiskIndex(prod, sup)
	alerts := h.alertService.GenerateAlerts(prod, sup, sensitivity)

	criticalCount := 0
	for _, a := range alerts {
		if a.Severity == models.SeverityCritical {
			criticalCount++
		}
	}

	var totalOutput float64
	var effSum float64
	for _, r := range prod {
		totalOutput += r.ActualOutput
		effSum += r.Efficiency
	}
	avgEfficiency := 0.0
	if len(prod) > 0 {
		avgEfficiency = effSum / float64(len(prod))
	}

	summary := models.DashboardSummary{
		HealthScore:   healthScore,
		RiskIndex:     riskIndex,
		AvgEfficiency: avgEfficiency,
		TotalOutput:   totalOutput,
		AlertCount:    len(alerts),
		CriticalCount: criticalCount,
		Insight:       h.reportService.GenerateInsightSummary(healthScore, riskIndex, criticalCount),
		DowntimeRisk:  h.scoringService.PredictDowntimeRisk(prod),
		Banner:        h.alertService.CreateBannerMessage(alerts),
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// GetReport 総合インサイトレポートを返す
func (h *DashboardHandler) GetReport(c *gin.Context) {
	prod, sup := h.snapshotService.Snapshot()
	sensitivity := sensitivityFromQuery(c, h.defaultSensitivity)

	report := h.reportService.GenerateReport(prod, sup, sensitivity)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}
