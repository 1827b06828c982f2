package services

import (
	"math"

	"loom-monitor-api/pkg/models"
)

// calculateMean パッケージ内部用のヘルパー関数：平均値を計算
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateStandardDeviation 母標準偏差（n分母）を計算。
// 予測残差の標準偏差に使用する。
func calculateStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := calculateMean(values)
	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)))
}

// calculateSampleStandardDeviation 標本標準偏差（n-1分母）を計算。
// 異常検知と根本原因分析の閾値に使用する。
func calculateSampleStandardDeviation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := calculateMean(values)
	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)-1))
}

// clamp valueを[lo, hi]に収める
func clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}

// round1 小数第1位に丸める
func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// 数値列の名前。列抽出とfeature importanceで共有する。
const (
	ColumnTargetOutput    = "target_output"
	ColumnActualOutput    = "actual_output"
	ColumnTemperatureC    = "temperature_c"
	ColumnDowntimeMinutes = "downtime_minutes"
	ColumnSpeedRPM        = "speed_rpm"
	ColumnOutputGap       = "output_gap"
	ColumnEfficiency      = "efficiency"
)

// productionNumericColumns feature importanceが走査する数値列の順序
var productionNumericColumns = []string{
	ColumnTargetOutput,
	ColumnActualOutput,
	ColumnTemperatureC,
	ColumnDowntimeMinutes,
	ColumnSpeedRPM,
	ColumnOutputGap,
	ColumnEfficiency,
}

// ExtractColumn 生産レコードから名前で数値列を抽出する。
// 未知の列名の場合は第2戻り値がfalseになる。
func (s *AnalyticsService) ExtractColumn(records []models.ProductionRecord, column string) ([]float64, bool) {
	return productionColumn(records, column)
}

// productionColumn 生産レコードから名前で数値列を抽出する。
// 未知の列名の場合はfalseを返す。
func productionColumn(records []models.ProductionRecord, column string) ([]float64, bool) {
	var pick func(r models.ProductionRecord) float64
	switch column {
	case ColumnTargetOutput:
		pick = func(r models.ProductionRecord) float64 { return r.TargetOutput }
	case ColumnActualOutput:
		pick = func(r models.ProductionRecord) float64 { return r.ActualOutput }
	case ColumnTemperatureC:
		pick = func(r models.ProductionRecord) float64 { return r.TemperatureC }
	case ColumnDowntimeMinutes:
		pick = func(r models.ProductionRecord) float64 { return r.DowntimeMinutes }
	case ColumnSpeedRPM:
		pick = func(r models.ProductionRecord) float64 { return r.SpeedRPM }
	case ColumnOutputGap:
		pick = func(r models.ProductionRecord) float64 { return r.OutputGap }
	case ColumnEfficiency:
		pick = func(r models.ProductionRecord) float64 { return r.Efficiency }
	default:
		return nil, false
	}

	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = pick(r)
	}
	return values, true
}
