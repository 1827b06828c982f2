package handlers

import (
	"net/http"
	"strconv"

	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 予測・説明系エンドポイントのハンドラー
type AnalyticsHandler struct {
	snapshotService     *services.SnapshotService
	analyticsService    *services.AnalyticsService
	efficiencyThreshold float64
}

// NewAnalyticsHandler 新しい分析ハンドラーを作成
func NewAnalyticsHandler(snapshotService *services.SnapshotService, analyticsService *services.AnalyticsService, efficiencyThreshold float64) *AnalyticsHandler {
	return &AnalyticsHandler{
		snapshotService:     snapshotService,
		analyticsService:    analyticsService,
		efficiencyThreshold: efficiencyThreshold,
	}
}

// GetForecast 指定列の線形予測を返す
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	column := c.DefaultQuery("column", "efficiency")

	horizon := 12
	if raw := c.Query("horizon"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			horizon = v
		}
	}

	prod, _ := h.snapshotService.Snapshot()
	forecast := h.analyticsService.ForecastMetrics(prod, column, horizon)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"column":   column,
		"horizon":  horizon,
		"forecast": forecast,
	})
}

// GetFeatureImportance 目的変数に対する特徴量重要度を返す
func (h *AnalyticsHandler) GetFeatureImportance(c *gin.Context) {
	target := c.DefaultQuery("target", "efficiency")

	prod, _ := h.snapshotService.Snapshot()
	importance := h.analyticsService.CalculateFeatureImportance(prod, target)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"target":     target,
		"importance": importance,
	})
}

// GetRootCauses 効率低下の根本原因分析結果を返す
func (h *AnalyticsHandler) GetRootCauses(c *gin.Context) {
	threshold := h.efficiencyThreshold
	if raw := c.Query("threshold"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 && v <= 100 {
			threshold = v
		}
	}

	prod, _ := h.snapshotService.Snapshot()
	rootCauses := h.analyticsService.PerformRootCauseAnalysis(prod, threshold)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"threshold":   threshold,
		"root_causes": rootCauses,
	})
}

// GetTrendDecomposition 指定列のトレンド分解を返す
func (h *AnalyticsHandler) GetTrendDecomposition(c *gin.Context) {
	column := c.DefaultQuery("column", "efficiency")

	period := 12
	if raw := c.Query("period"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 2 && v <= 60 {
			period = v
		}
	}

	prod, _ := h.snapshotService.Snapshot()

	values, ok := h.analyticsService.ExtractColumn(prod, column)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "未知の列名です: " + column,
		})
		return
	}

	components := h.analyticsService.DecomposeTrend(values, period)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"column":     column,
		"period":     period,
		"components": components,
	})
}
