package handlers

import (
	"net/http"

	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// AlertHandler アラート関連のハンドラー
type AlertHandler struct {
	snapshotService    *services.SnapshotService
	alertService       *services.AlertService
	defaultSensitivity float64
}

// NewAlertHandler 新しいアラートハンドラーを作成
func NewAlertHandler(snapshotService *services.SnapshotService, alertService *services.AlertService, defaultSensitivity float64) *AlertHandler {
	return &AlertHandler{
		snapshotService:    snapshotService,
		alertService:       alertService,
		defaultSensitivity: defaultSensitivity,
	}
}

// GetAlerts 現在のスナップショットに対する優先度付きアラート一覧を返す
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	prod, sup := h.snapshotService.Snapshot()
	sensitivity := sensitivityFromQuery(c, h.defaultSensitivity)

	alerts := h.alertService.GenerateAlerts(prod, sup, sensitivity)
	alerts = h.alertService.PrioritizeAlerts(alerts)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"alerts":  alerts,
		"count":   len(alerts),
	})
}

// GetBanner CRITICALアラート用のバナーメッセージを返す（なければ空文字列）
func (h *AlertHandler) GetBanner(c *gin.Context) {
	prod, sup := h.snapshotService.Snapshot()
	sensitivity := sensitivityFromQuery(c, h.defaultSensitivity)

	alerts := h.alertService.GenerateAlerts(prod, sup, sensitivity)
	banner := h.alertService.CreateBannerMessage(alerts)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"banner":  banner,
	})
}
