package services

import (
	"math"

	"loom-monitor-api/pkg/models"
)

// DefaultSensitivity 素の異常検知に使うZスコア閾値のデフォルト値。
// アラートパイプラインはより敏感な1.5を渡す。
const DefaultSensitivity = 2.0

// DetectAnomalies Zスコア法で異常検知を実行。|x - mean| / std > sensitivity の
// 行をtrueとする行ごとのブール列を返す。テーブルが空、または列名が未知の場合は
// 空のスライスを返す（エラーにはしない）。標準偏差が0のときは全てfalse。
func (s *AnalyticsService) DetectAnomalies(records []models.ProductionRecord, column string, sensitivity float64) []bool {
	values, ok := productionColumn(records, column)
	if !ok || len(values) == 0 {
		return []bool{}
	}

	mean := calculateMean(values)
	std := calculateSampleStandardDeviation(values)

	flags := make([]bool, len(values))
	if std == 0 {
		return flags
	}

	for i, v := range values {
		flags[i] = math.Abs(v-mean)/std > sensitivity
	}
	return flags
}

// DetectSpike 平均 + sensitivity*標準偏差 を上回るスパイクを検出
func (s *AnalyticsService) DetectSpike(records []models.ProductionRecord, column string, sensitivity float64) []bool {
	values, ok := productionColumn(records, column)
	if !ok || len(values) == 0 {
		return []bool{}
	}

	mean := calculateMean(values)
	std := calculateSampleStandardDeviation(values)

	flags := make([]bool, len(values))
	if std == 0 {
		return flags
	}

	threshold := mean + sensitivity*std
	for i, v := range values {
		flags[i] = v > threshold
	}
	return flags
}

// DetectDrop 平均 - sensitivity*標準偏差 を下回るドロップを検出
func (s *AnalyticsService) DetectDrop(records []models.ProductionRecord, column string, sensitivity float64) []bool {
	values, ok := productionColumn(records, column)
	if !ok || len(values) == 0 {
		return []bool{}
	}

	mean := calculateMean(values)
	std := calculateSampleStandardDeviation(values)

	flags := make([]bool, len(values))
	if std == 0 {
		return flags
	}

	threshold := mean - sensitivity*std
	for i, v := range values {
		flags[i] = v < threshold
	}
	return flags
}

// anyFlag ブール列に1つでもtrueがあるか
func anyFlag(flags []bool) bool {
	for _, f := range flags {
		if f {
			return true
		}
	}
	return false
}
