package handlers

import (
	"log"
	"net/http"

	"loom-monitor-api/pkg/models"
	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// IngestHandler 外部コレクターからのスナップショット投入ハンドラー
type IngestHandler struct {
	transformService *services.TransformService
	snapshotService  *services.SnapshotService
}

// NewIngestHandler 新しい投入ハンドラーを作成
func NewIngestHandler(transformService *services.TransformService, snapshotService *services.SnapshotService) *IngestHandler {
	return &IngestHandler{
		transformService: transformService,
		snapshotService:  snapshotService,
	}
}

// IngestSnapshot 生の生産・サプライヤーデータを正規化してストアに反映する。
// どちらかの行が不正な場合はスナップショットを一切更新しない
// （部分的なテーブルをコアに流し込まないため）。
func (h *IngestHandler) IngestSnapshot(c *gin.Context) {
	var request models.SnapshotIngestRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	prod, err := h.transformService.TransformProduction(request.Production)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "生産データの正規化に失敗しました: " + err.Error(),
		})
		return
	}

	sup, err := h.transformService.TransformSupplier(request.Supplier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "サプライヤーデータの正規化に失敗しました: " + err.Error(),
		})
		return
	}

	h.snapshotService.Update(prod, sup)
	log.Printf("スナップショットを更新しました: 生産 %d件, サプライヤー %d件", len(prod), len(sup))

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"production_records": len(prod),
		"supplier_records":   len(sup),
	})
}
