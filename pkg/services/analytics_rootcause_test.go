package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformRootCauseAnalysisNoIssues(t *testing.T) {
	service := NewAnalyticsService()

	// 全行が閾値以上 → 「No Issues」のセンチネル1件のみ
	records := makeProductionRecords(
		[]float64{32, 33, 31},
		[]float64{0, 1, 0},
		[]float64{1200, 1190, 1210},
		[]float64{90, 85, 88},
	)

	causes := service.PerformRootCauseAnalysis(records, 75.0)
	assert.Len(t, causes, 1)
	assert.Equal(t, "No Issues", causes[0].Factor)
	assert.Equal(t, "System operating normally", causes[0].Impact)
	assert.Equal(t, 0.0, causes[0].Contribution)
}

func TestPerformRootCauseAnalysisTemperatureAndDowntime(t *testing.T) {
	service := NewAnalyticsService()

	// 低効率グループは温度が7°C高く、ダウンタイムが2.5分長い
	records := makeProductionRecords(
		[]float64{40, 40, 40, 33, 33, 33},
		[]float64{3, 3, 3, 0.5, 0.5, 0.5},
		[]float64{1200, 1200, 1200, 1200, 1200, 1200},
		[]float64{60, 62, 58, 90, 92, 88},
	)

	causes := service.PerformRootCauseAnalysis(records, 75.0)
	assert.Len(t, causes, 2)

	// 寄与度の降順でソートされる：温度70 > ダウンタイム50
	assert.Equal(t, "Temperature", causes[0].Factor)
	assert.InDelta(t, 70.0, causes[0].Contribution, 1e-9)
	assert.Contains(t, causes[0].Impact, "Higher by 7.0°C")

	assert.Equal(t, "Downtime", causes[1].Factor)
	assert.InDelta(t, 50.0, causes[1].Contribution, 1e-9)
}

func TestPerformRootCauseAnalysisSpeedInstability(t *testing.T) {
	service := NewAnalyticsService()

	// 低効率グループのみ回転速度にばらつきがある
	records := makeProductionRecords(
		[]float64{32, 32, 32, 32, 32, 32},
		[]float64{0, 0, 0, 0, 0, 0},
		[]float64{1100, 1300, 1150, 1200, 1200, 1200},
		[]float64{60, 62, 58, 90, 92, 88},
	)

	causes := service.PerformRootCauseAnalysis(records, 75.0)
	assert.Len(t, causes, 1)
	assert.Equal(t, "Speed Instability", causes[0].Factor)
	assert.Equal(t, 100.0, causes[0].Contribution)
}

func TestCalculateFeatureImportance(t *testing.T) {
	service := NewAnalyticsService()

	records := makeProductionRecords(
		[]float64{31, 35, 33, 38, 30, 36},
		[]float64{0, 3, 1, 4, 0, 2},
		[]float64{1200, 1150, 1190, 1120, 1210, 1160},
		[]float64{92, 70, 85, 62, 95, 74},
	)

	importance := service.CalculateFeatureImportance(records, ColumnEfficiency)
	assert.NotEmpty(t, importance)

	// 目的変数自身は含まれない
	_, hasTarget := importance[ColumnEfficiency]
	assert.False(t, hasTarget)

	// 重要度は合計1に正規化される
	var total float64
	for _, v := range importance {
		assert.GreaterOrEqual(t, v, 0.0)
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestCalculateFeatureImportanceUnknownTarget(t *testing.T) {
	service := NewAnalyticsService()
	records := makeProductionRecords([]float64{32}, []float64{0}, []float64{1200}, []float64{90})

	importance := service.CalculateFeatureImportance(records, "humidity")
	assert.NotNil(t, importance)
	assert.Empty(t, importance)
}
