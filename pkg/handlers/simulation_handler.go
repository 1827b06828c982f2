package handlers

import (
	"net/http"

	"loom-monitor-api/pkg/models"
	"loom-monitor-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// SimulationHandler What-Ifシナリオシミュレーターのハンドラー
type SimulationHandler struct {
	simulationService *services.SimulationService
}

// NewSimulationHandler 新しいシミュレーションハンドラーを作成
func NewSimulationHandler(simulationService *services.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// RunSimulation 仮想的な運用パラメータ変更の影響を計算する
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var request models.SimulationRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	result := h.simulationService.SimulateWhatIf(
		request.CurrentHealth,
		request.CurrentRisk,
		request.EfficiencyChange,
		request.TemperatureChange,
		request.SupplyImprovement,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
