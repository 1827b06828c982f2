package services

import (
	"fmt"
	"math"
	"sort"

	"loom-monitor-api/pkg/models"
)

// CalculateFeatureImportance 目的変数に対する各数値列の重要度を計算する
// （擬似SHAPスタイル）。ピアソン相関の絶対値を取り、目的変数自身を除外して
// 合計が1になるよう正規化する。目的変数が未知の列名の場合や、有効な相関が
// 1つも取れない場合は空のマップを返す。
func (s *AnalyticsService) CalculateFeatureImportance(records []models.ProductionRecord, target string) map[string]float64 {
	targetValues, ok := productionColumn(records, target)
	if !ok || len(targetValues) == 0 {
		return map[string]float64{}
	}

	absCorrelations := make(map[string]float64)
	var total float64

	for _, column := range productionNumericColumns {
		if column == target {
			continue
		}
		values, _ := productionColumn(records, column)
		corr, err := s.CalculateCorrelation(values, targetValues)
		if err != nil {
			// 分散0の列は重要度に寄与しない
			continue
		}
		abs := math.Abs(corr)
		absCorrelations[column] = abs
		total += abs
	}

	if len(absCorrelations) == 0 || total == 0 {
		return map[string]float64{}
	}

	importance := make(map[string]float64, len(absCorrelations))
	for column, abs := range absCorrelations {
		importance[column] = abs / total
	}
	return importance
}

// PerformRootCauseAnalysis 効率低下に寄与する上位3要因を特定する。
// 行を低効率グループ（< threshold）と通常グループ（>= threshold）に分割し、
// 温度・ダウンタイム・回転速度のばらつきについてグループ間の乖離が基準を
// 超えた要因を寄与度つきで返す。低効率グループが空なら「No Issues」の
// センチネル1件だけを返す。
func (s *AnalyticsService) PerformRootCauseAnalysis(records []models.ProductionRecord, threshold float64) []models.RootCause {
	var low, normal []models.ProductionRecord
	for _, r := range records {
		if r.Efficiency < threshold {
			low = append(low, r)
		} else {
			normal = append(normal, r)
		}
	}

	if len(low) == 0 {
		return []models.RootCause{
			{Factor: "No Issues", Impact: "System operating normally", Contribution: 0},
		}
	}

	var rootCauses []models.RootCause

	// 温度要因
	lowTemps, _ := productionColumn(low, ColumnTemperatureC)
	normalTemps, _ := productionColumn(normal, ColumnTemperatureC)
	tempDiff := calculateMean(lowTemps) - calculateMean(normalTemps)
	if math.Abs(tempDiff) > 2 {
		direction := "Higher"
		if tempDiff < 0 {
			direction = "Lower"
		}
		rootCauses = append(rootCauses, models.RootCause{
			Factor:       "Temperature",
			Impact:       fmt.Sprintf("%s by %.1f°C during low efficiency", direction, math.Abs(tempDiff)),
			Contribution: math.Min(math.Abs(tempDiff)*10, 100),
		})
	}

	// ダウンタイム要因
	lowDowntime, _ := productionColumn(low, ColumnDowntimeMinutes)
	normalDowntime, _ := productionColumn(normal, ColumnDowntimeMinutes)
	downtimeDiff := calculateMean(lowDowntime) - calculateMean(normalDowntime)
	if downtimeDiff > 0.5 {
		rootCauses = append(rootCauses, models.RootCause{
			Factor:       "Downtime",
			Impact:       fmt.Sprintf("Increased by %.1f minutes", downtimeDiff),
			Contribution: math.Min(downtimeDiff*20, 100),
		})
	}

	// 回転速度の不安定性
	lowSpeeds, _ := productionColumn(low, ColumnSpeedRPM)
	normalSpeeds, _ := productionColumn(normal, ColumnSpeedRPM)
	lowStd := calculateSampleStandardDeviation(lowSpeeds)
	normalStd := calculateSampleStandardDeviation(normalSpeeds)

	if normalStd == 0 {
		// 通常グループのばらつきが0で低効率側にばらつきがある場合は、
		// 不安定性ありとみなして寄与度を上限にする
		if lowStd > 0 {
			rootCauses = append(rootCauses, models.RootCause{
				Factor:       "Speed Instability",
				Impact:       "RPM variance present only during low efficiency",
				Contribution: 100,
			})
		}
	} else if lowStd > normalStd*1.2 {
		ratio := lowStd / normalStd
		rootCauses = append(rootCauses, models.RootCause{
			Factor:       "Speed Instability",
			Impact:       fmt.Sprintf("RPM variance %.0f%% higher", (ratio-1)*100),
			Contribution: math.Min((ratio-1)*100, 100),
		})
	}

	sort.SliceStable(rootCauses, func(i, j int) bool {
		return rootCauses[i].Contribution > rootCauses[j].Contribution
	})
	if len(rootCauses) > 3 {
		rootCauses = rootCauses[:3]
	}
	return rootCauses
}
