package services

import (
	"math"

	"loom-monitor-api/pkg/models"
)

// SimulationService What-Ifシナリオの影響を射影するサービス。
// テーブルには一切アクセスせず、現在のスカラースコアだけを入力に取る
// 純粋な線形感度モデルであり、校正されたシミュレーションではない。
type SimulationService struct{}

// NewSimulationService 新しいシミュレーションサービスを作成
func NewSimulationService() *SimulationService {
	return &SimulationService{}
}

// SimulateWhatIf 運用パラメータの仮想的な変更がヘルススコアとリスクに
// 与える影響を計算する。効率変化は重み0.4、温度変化は絶対値を2倍して
// 重み0.2（悪化のみ）、供給改善は重み0.2で効く。コストはヘルス変化量
// 1ポイントあたり$500のモック線形プロキシ。
func (s *SimulationService) SimulateWhatIf(currentHealth, currentRisk, efficiencyChange, tempChange, supplyImprovement float64) models.SimulationResult {
	effImpact := efficiencyChange * 0.4
	tempImpact := -math.Abs(tempChange) * 2 * 0.2
	supplyImpact := supplyImprovement * 0.2

	projectedHealth := clamp(currentHealth+effImpact+tempImpact+supplyImpact, 0, 100)
	projectedRisk := clamp(100-projectedHealth, 0, 100)

	return models.SimulationResult{
		ProjectedHealth: round1(projectedHealth),
		ProjectedRisk:   round1(projectedRisk),
		HealthChange:    round1(projectedHealth - currentHealth),
		RiskChange:      round1(currentRisk - projectedRisk),
		CostImpact:      math.Round(math.Abs(projectedHealth-currentHealth) * 500),
	}
}
