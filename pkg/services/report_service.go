package services

import (
	"fmt"
	"time"

	"loom-monitor-api/pkg/models"

	"github.com/google/uuid"
)

// ReportService スコア・アラート・根本原因・特徴量重要度を1つの
// インサイトレポートに合成するサービス
type ReportService struct {
	analyticsService    *AnalyticsService
	scoringService      *ScoringService
	alertService        *AlertService
	efficiencyThreshold float64
}

// NewReportService 新しいレポートサービスを作成
func NewReportService(analyticsService *AnalyticsService, scoringService *ScoringService, alertService *AlertService, efficiencyThreshold float64) *ReportService {
	return &ReportService{
		analyticsService:    analyticsService,
		scoringService:      scoringService,
		alertService:        alertService,
		efficiencyThreshold: efficiencyThreshold,
	}
}

// GenerateReport 現在のスナップショットに対する総合分析レポートを作成する
func (rs *ReportService) GenerateReport(prod []models.ProductionRecord, sup []models.SupplierRecord, sensitivity float64) *models.InsightReport {
	healthScore := rs.scoringService.CalculateSystemHealth(prod, sup)
	riskIndex := rs.scoringService.CalculateRiskIndex(prod, sup)

	alerts := rs.alertService.GenerateAlerts(prod, sup, sensitivity)
	criticalCount := 0
	for _, a := range alerts {
		if a.Severity == models.SeverityCritical {
			criticalCount++
		}
	}

	return &models.InsightReport{
		ReportID:          uuid.New().String(),
		GeneratedAt:       time.Now().Format(time.RFC3339),
		HealthScore:       healthScore,
		RiskIndex:         riskIndex,
		Insight:           rs.GenerateInsightSummary(healthScore, riskIndex, criticalCount),
		Alerts:            alerts,
		Banner:            rs.alertService.CreateBannerMessage(alerts),
		RootCauses:        rs.analyticsService.PerformRootCauseAnalysis(prod, rs.efficiencyThreshold),
		FeatureImportance: rs.analyticsService.CalculateFeatureImportance(prod, ColumnEfficiency),
		DowntimeRisk:      rs.scoringService.PredictDowntimeRisk(prod),
		ActionPlan:        rs.alertService.BuildActionPlan(alerts, healthScore, riskIndex),
		DataPoints:        len(prod),
	}
}

// GenerateInsightSummary ヘルススコア・リスク指数・CRITICALアラート数から
// 1文のインサイトを生成する
func (rs *ReportService) GenerateInsightSummary(healthScore, riskIndex float64, alertsCount int) string {
	if healthScore >= 80 {
		return fmt.Sprintf("✅ System operating at optimal levels with %.0f%% health score. Continue monitoring routine parameters.", healthScore)
	}
	if healthScore >= 60 {
		insight := fmt.Sprintf("⚠️ System health at %.0f%% with %d active alert(s). ", healthScore, alertsCount)
		if riskIndex >= 60 {
			insight += "Immediate attention required on high-risk areas to prevent deterioration."
		} else {
			insight += "Proactive maintenance recommended to restore optimal performance."
		}
		return insight
	}
	return fmt.Sprintf("🚨 CRITICAL: System health critically low at %.0f%%. Immediate intervention required across %d alert areas.", healthScore, alertsCount)
}

// CalculateTrendIndicator 前回値との比較でトレンド記号（↑, ↓, →）を返す
func CalculateTrendIndicator(current, previous float64) string {
	switch {
	case current > previous:
		return "↑"
	case current < previous:
		return "↓"
	default:
		return "→"
	}
}
