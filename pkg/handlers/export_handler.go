package handlers

import (
	"fmt"
	"net/http"
	"time"

	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ExportHandler スナップショットのエクスポート用ハンドラー
type ExportHandler struct {
	snapshotService *services.SnapshotService
	exportService   *services.ExportService
}

// NewExportHandler 新しいエクスポートハンドラーを作成
func NewExportHandler(snapshotService *services.SnapshotService, exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		snapshotService: snapshotService,
		exportService:   exportService,
	}
}

// DownloadProductionCSV 生産スナップショットをCSVでダウンロードさせる
func (h *ExportHandler) DownloadProductionCSV(c *gin.Context) {
	prod, _ := h.snapshotService.Snapshot()

	data, err := h.exportService.ExportProductionCSV(prod)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "CSVの生成に失敗しました: " + err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("production_data_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// DownloadSupplierCSV サプライヤースナップショットをCSVでダウンロードさせる
func (h *ExportHandler) DownloadSupplierCSV(c *gin.Context) {
	_, sup := h.snapshotService.Snapshot()

	data, err := h.exportService.ExportSupplierCSV(sup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "CSVの生成に失敗しました: " + err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("supplier_data_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// DownloadWorkbook 両テーブルをExcelワークブックでダウンロードさせる
func (h *ExportHandler) DownloadWorkbook(c *gin.Context) {
	prod, sup := h.snapshotService.Snapshot()

	data, err := h.exportService.ExportWorkbook(prod, sup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "ワークブックの生成に失敗しました: " + err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("mill_snapshot_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
