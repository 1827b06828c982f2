package services

import (
	"math"

	"loom-monitor-api/pkg/models"
)

// ScoringService システムヘルススコアとリスク指数を計算するサービス
type ScoringService struct{}

// NewScoringService 新しいスコアリングサービスを作成
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// CalculateSystemHealth システム全体のヘルススコア（0-100）を計算する。
// 重み付き合成：生産効率40%、温度安定性20%、ダウンタイム20%、供給網20%。
// 各コンポーネントは対応するテーブルが空なら黙ってスキップされ、残りの
// 重みは再正規化しない（部分データのスコアは系統的に低くなる）。
// どのコンポーネントも計算できない場合は中立値50.0を返す。
func (s *ScoringService) CalculateSystemHealth(prod []models.ProductionRecord, sup []models.SupplierRecord) float64 {
	var components []float64

	if len(prod) > 0 {
		// 1. 生産効率スコア（40%）
		efficiencies, _ := productionColumn(prod, ColumnEfficiency)
		effScore := clamp(calculateMean(efficiencies), 0, 100)
		components = append(components, effScore*0.4)

		// 2. 温度安定性スコア（20%）：理想帯域は30-35°C、中心32.5°Cからの乖離を減点
		temps, _ := productionColumn(prod, ColumnTemperatureC)
		tempDeviation := math.Abs(calculateMean(temps) - 32.5)
		tempScore := math.Max(100-tempDeviation*10, 0)
		components = append(components, tempScore*0.2)

		// 3. ダウンタイムスコア（20%）
		downtimes, _ := productionColumn(prod, ColumnDowntimeMinutes)
		downtimeScore := math.Max(100-calculateMean(downtimes)*20, 0)
		components = append(components, downtimeScore*0.2)
	}

	// 4. 供給網スコア（20%）：納期遵守率
	if len(sup) > 0 {
		onTimeCount := 0
		for _, r := range sup {
			if r.SupplyRisk == models.SupplyOnTime {
				onTimeCount++
			}
		}
		supplyScore := float64(onTimeCount) / float64(len(sup)) * 100
		components = append(components, supplyScore*0.2)
	}

	if len(components) == 0 {
		return 50.0
	}

	var total float64
	for _, c := range components {
		total += c
	}
	return round1(clamp(total, 0, 100))
}

// CalculateRiskIndex リスク指数（0-100、高いほど危険）を計算する。
// 効率リスク30%、温度リスク30%、供給遅延リスク40%の重み付き合成。
// 合計は[0,100]にクランプし、どの要因も計算できない場合は既定値30.0を返す。
func (s *ScoringService) CalculateRiskIndex(prod []models.ProductionRecord, sup []models.SupplierRecord) float64 {
	var riskFactors []float64

	if len(prod) > 0 {
		// 1. 効率リスク
		efficiencies, _ := productionColumn(prod, ColumnEfficiency)
		effRisk := math.Max(100-calculateMean(efficiencies), 0)
		riskFactors = append(riskFactors, effRisk*0.3)

		// 2. 温度リスク：最高温度が35°Cを超えた分を重く見る
		temps, _ := productionColumn(prod, ColumnTemperatureC)
		maxTemp := temps[0]
		for _, t := range temps {
			if t > maxTemp {
				maxTemp = t
			}
		}
		tempRisk := math.Min(math.Max((maxTemp-35)*20, 0), 100)
		riskFactors = append(riskFactors, tempRisk*0.3)
	}

	// 3. 供給遅延リスク：遅延率そのもの
	if len(sup) > 0 {
		delayedCount := 0
		for _, r := range sup {
			if r.SupplyRisk == models.SupplyDelayed {
				delayedCount++
			}
		}
		delayedPct := float64(delayedCount) / float64(len(sup)) * 100
		riskFactors = append(riskFactors, delayedPct*0.4)
	}

	if len(riskFactors) == 0 {
		return 30.0
	}

	var total float64
	for _, f := range riskFactors {
		total += f
	}
	return round1(math.Min(total, 100))
}

// PredictDowntimeRisk ダウンタイムリスクを簡易モデルで予測する。
// 決定的な式をMLの顔をした出力として返す擬似予測であり、実際のモデル
// 学習は行わない。戻り値は（精度, リスクスコア, リスクレベル）。
func (s *ScoringService) PredictDowntimeRisk(prod []models.ProductionRecord) models.DowntimeRiskPrediction {
	if len(prod) == 0 {
		return models.DowntimeRiskPrediction{Accuracy: 0, RiskScore: 0, RiskLevel: "Low"}
	}

	temps, _ := productionColumn(prod, ColumnTemperatureC)
	avgTemp := calculateMean(temps)

	riskScore := clamp((avgTemp-30)*5, 5, 95)
	accuracy := 88.5 + float64(len(prod)%5)*0.5

	riskLevel := "Stable"
	if riskScore > 80 {
		riskLevel = "Critical"
	} else if riskScore > 50 {
		riskLevel = "Warning"
	}

	return models.DowntimeRiskPrediction{
		Accuracy:  round1(accuracy),
		RiskScore: round1(riskScore),
		RiskLevel: riskLevel,
	}
}
